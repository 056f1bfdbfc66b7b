package reporting

import (
	"sort"
	"time"

	"github.com/vfg2006/leads-dashboard-api/internal/domain"
	"github.com/vfg2006/leads-dashboard-api/pkg/calendar"
	"github.com/vfg2006/leads-dashboard-api/pkg/datekey"
	"github.com/vfg2006/leads-dashboard-api/pkg/utils"
)

type counters struct {
	leads int
	sales int
	bats  int
}

func (c *counters) add(release *domain.Release) {
	c.leads += release.Leads
	c.sales += release.Sales
	c.bats += release.Bats
}

func (c counters) metrics() domain.Metrics {
	return domain.Metrics{
		Leads:          c.leads,
		Sales:          c.sales,
		Bats:           c.bats,
		ConversionRate: utils.Percentage(c.sales, c.leads),
		BatsRate:       utils.Percentage(c.bats, c.sales),
	}
}

type channelGroup struct {
	id    string
	name  string
	total counters
}

type sellerGroup struct {
	id       string
	name     string
	total    counters
	channels *channelGroups
}

// channelGroups mantém os grupos na ordem em que aparecem nos lançamentos.
type channelGroups struct {
	order []*channelGroup
	index map[string]*channelGroup
}

func newChannelGroups() *channelGroups {
	return &channelGroups{index: make(map[string]*channelGroup)}
}

func (g *channelGroups) get(release *domain.Release) *channelGroup {
	group, ok := g.index[release.ChannelID]
	if !ok {
		group = &channelGroup{id: release.ChannelID, name: release.ChannelName}
		g.index[release.ChannelID] = group
		g.order = append(g.order, group)
	}
	return group
}

func (g *channelGroups) summaries(withColor bool) []domain.ChannelSummary {
	summaries := make([]domain.ChannelSummary, 0, len(g.order))
	for _, group := range g.order {
		summary := domain.ChannelSummary{
			ChannelID:   group.id,
			ChannelName: group.name,
			Metrics:     group.total.metrics(),
		}
		if withColor {
			summary.Color = Color(group.name, true)
		}
		summaries = append(summaries, summary)
	}
	setChannelRanks(summaries)
	return summaries
}

// Aggregate consolida os lançamentos de [start, end] em totais, por vendedor (com canais),
// por canal e por dia. Lançamentos fora do período ou sem vendedor/canal são ignorados.
func Aggregate(releases []*domain.Release, start, end time.Time) *domain.DashboardData {
	startKey, endKey := periodKeys(start, end)

	var total counters
	channels := newChannelGroups()
	sellerIndex := make(map[string]*sellerGroup)
	var sellers []*sellerGroup

	for _, release := range inPeriod(releases, startKey, endKey) {
		total.add(release)
		channels.get(release).total.add(release)

		seller, ok := sellerIndex[release.SellerID]
		if !ok {
			seller = &sellerGroup{id: release.SellerID, name: release.SellerName, channels: newChannelGroups()}
			sellerIndex[release.SellerID] = seller
			sellers = append(sellers, seller)
		}
		seller.total.add(release)
		seller.channels.get(release).total.add(release)
	}

	sellerSummaries := make([]domain.SellerSummary, 0, len(sellers))
	for _, seller := range sellers {
		sellerSummaries = append(sellerSummaries, domain.SellerSummary{
			SellerID:   seller.id,
			SellerName: seller.name,
			Metrics:    seller.total.metrics(),
			Color:      Color(seller.id, false),
			Channels:   seller.channels.summaries(false),
		})
	}
	setSellerRanks(sellerSummaries)

	totals := total.metrics()

	return &domain.DashboardData{
		Period:       domain.Period{Start: start, End: end},
		Totals:       totals,
		Sellers:      sellerSummaries,
		Channels:     channels.summaries(true),
		Timeline:     Timeline(releases, start, end),
		BusinessDays: BusinessDayAveragesFor(totals, start, end),
	}
}

// Timeline gera uma entrada por dia civil de [start, end], inclusive, mesmo sem lançamentos.
func Timeline(releases []*domain.Release, start, end time.Time) []domain.DayEntry {
	startKey, endKey := periodKeys(start, end)
	if startKey == "" || endKey == "" || startKey > endKey {
		return []domain.DayEntry{}
	}

	type dayGroup struct {
		date    time.Time
		total   counters
		sellers []*sellerGroup
		index   map[string]*sellerGroup
	}

	var days []*dayGroup
	byKey := make(map[string]*dayGroup)
	for day := utils.StartOfDay(start); datekey.ToDateKey(day) <= endKey; day = day.AddDate(0, 0, 1) {
		group := &dayGroup{date: day, index: make(map[string]*sellerGroup)}
		days = append(days, group)
		byKey[datekey.ToDateKey(day)] = group
	}

	for _, release := range inPeriod(releases, startKey, endKey) {
		day, ok := byKey[datekey.ToDateKey(release.DateRelease)]
		if !ok {
			continue
		}
		day.total.add(release)

		seller, ok := day.index[release.SellerID]
		if !ok {
			seller = &sellerGroup{id: release.SellerID, name: release.SellerName}
			day.index[release.SellerID] = seller
			day.sellers = append(day.sellers, seller)
		}
		seller.total.add(release)
	}

	timeline := make([]domain.DayEntry, 0, len(days))
	for _, day := range days {
		entry := domain.DayEntry{
			DateKey:       datekey.ToDateKey(day.date),
			DateFormatted: datekey.Format(day.date),
			Metrics:       day.total.metrics(),
			Sellers:       make([]domain.DaySeller, 0, len(day.sellers)),
		}
		for _, seller := range day.sellers {
			entry.Sellers = append(entry.Sellers, domain.DaySeller{
				SellerID:   seller.id,
				SellerName: seller.name,
				Metrics:    seller.total.metrics(),
			})
		}
		timeline = append(timeline, entry)
	}

	return timeline
}

// BusinessDayAveragesFor divide os totais pelos dias úteis do período (0 quando não há dias úteis).
func BusinessDayAveragesFor(totals domain.Metrics, start, end time.Time) domain.BusinessDayAverages {
	return domain.BusinessDayAverages{
		BusinessDays: calendar.CountBusinessDays(start, end),
		LeadsPerDay:  calendar.BusinessDayAverage(float64(totals.Leads), start, end),
		SalesPerDay:  calendar.BusinessDayAverage(float64(totals.Sales), start, end),
		BatsPerDay:   calendar.BusinessDayAverage(float64(totals.Bats), start, end),
	}
}

// RankSellers ordena por vendas, decrescente. Empates mantêm a ordem de entrada.
func RankSellers(sellers []domain.SellerSummary) []domain.SellerSummary {
	ranked := append([]domain.SellerSummary(nil), sellers...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Sales > ranked[j].Sales
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

func RankChannels(channels []domain.ChannelSummary) []domain.ChannelSummary {
	ranked := append([]domain.ChannelSummary(nil), channels...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Sales > ranked[j].Sales
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

func setSellerRanks(sellers []domain.SellerSummary) {
	ranked := RankSellers(sellers)
	positions := make(map[string]int, len(ranked))
	for _, seller := range ranked {
		positions[seller.SellerID] = seller.Rank
	}
	for i := range sellers {
		sellers[i].Rank = positions[sellers[i].SellerID]
	}
}

func setChannelRanks(channels []domain.ChannelSummary) {
	ranked := RankChannels(channels)
	positions := make(map[string]int, len(ranked))
	for _, channel := range ranked {
		positions[channel.ChannelID] = channel.Rank
	}
	for i := range channels {
		channels[i].Rank = positions[channels[i].ChannelID]
	}
}

func periodKeys(start, end time.Time) (string, string) {
	return datekey.ToDateKey(start), datekey.ToDateKey(end)
}

func inPeriod(releases []*domain.Release, startKey, endKey string) []*domain.Release {
	filtered := make([]*domain.Release, 0, len(releases))
	if startKey == "" || endKey == "" {
		return filtered
	}
	for _, release := range releases {
		if release == nil || release.SellerID == "" || release.ChannelID == "" {
			continue
		}
		key := datekey.ToDateKey(release.DateRelease)
		if key == "" || key < startKey || key > endKey {
			continue
		}
		filtered = append(filtered, release)
	}
	return filtered
}
