package importing

import (
	"fmt"
	"sort"

	"github.com/vfg2006/leads-dashboard-api/internal/domain"
)

// Diagnostics acumula o que foi descartado durante a classificação.
type Diagnostics struct {
	Skipped            int
	DateParseMisses    int
	unresolvedSellers  map[string]struct{}
	unresolvedChannels map[string]struct{}
	warnings           []string
}

func newDiagnostics() *Diagnostics {
	return &Diagnostics{
		unresolvedSellers:  make(map[string]struct{}),
		unresolvedChannels: make(map[string]struct{}),
	}
}

func (d *Diagnostics) sellerMiss(name string) {
	d.unresolvedSellers[name] = struct{}{}
}

func (d *Diagnostics) channelMiss(label string) {
	d.unresolvedChannels[label] = struct{}{}
}

func (d *Diagnostics) warn(format string, args ...any) {
	d.warnings = append(d.warnings, fmt.Sprintf(format, args...))
}

func (d *Diagnostics) UnresolvedSellers() []string {
	return sortedKeys(d.unresolvedSellers)
}

func (d *Diagnostics) UnresolvedChannels() []string {
	return sortedKeys(d.unresolvedChannels)
}

func (d *Diagnostics) Warnings() []string {
	return append([]string(nil), d.warnings...)
}

// merge soma os descartes de outra etapa nesta.
func (d *Diagnostics) merge(other *Diagnostics) {
	if other == nil {
		return
	}
	d.Skipped += other.Skipped
	d.DateParseMisses += other.DateParseMisses
	for name := range other.unresolvedSellers {
		d.unresolvedSellers[name] = struct{}{}
	}
	for label := range other.unresolvedChannels {
		d.unresolvedChannels[label] = struct{}{}
	}
	d.warnings = append(d.warnings, other.warnings...)
}

func (d *Diagnostics) fill(report *domain.ImportReport) {
	report.Skipped += d.Skipped
	report.DateParseMisses += d.DateParseMisses
	report.UnresolvedSellers = d.UnresolvedSellers()
	report.UnresolvedChannels = d.UnresolvedChannels()
	report.Warnings = d.Warnings()
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
