package reporting

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPeriod = errors.New("start and end dates are required and start must not be after end")
	ErrFetchReleases = errors.New("error fetching releases from database")
)

// ReportError é um erro com contexto adicional para os relatórios
type ReportError struct {
	Err     error
	Code    string
	Details string
}

func (e *ReportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ReportError) Unwrap() error {
	return e.Err
}

func NewReportError(err error, code string, details string) *ReportError {
	return &ReportError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
