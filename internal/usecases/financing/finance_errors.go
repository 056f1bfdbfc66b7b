package financing

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTicketMedio = errors.New("ticket médio deve ser maior que zero")
	ErrSaveFinance        = errors.New("erro ao gravar dados financeiros")
)

// FinanceError é um erro com contexto adicional para o módulo financeiro
type FinanceError struct {
	Err     error
	Code    string
	Details string
}

func (e *FinanceError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *FinanceError) Unwrap() error {
	return e.Err
}

func NewFinanceError(err error, code string, details string) *FinanceError {
	return &FinanceError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
