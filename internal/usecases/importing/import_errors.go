package importing

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Erros estruturais: abortam a importação inteira
	ErrMissingColumns   = errors.New("required columns missing")
	ErrEmptySpreadsheet = errors.New("spreadsheet has no rows")
	ErrNoSellers        = errors.New("no active sellers registered")
	ErrNoChannels       = errors.New("no channels registered")
	ErrInvalidDate      = errors.New("invalid reference date")

	// Erros de banco de dados
	ErrFetchSellers  = errors.New("error fetching sellers from database")
	ErrFetchChannels = errors.New("error fetching channels from database")
	ErrLookupRelease = errors.New("error looking up existing release")
	ErrSaveReleases  = errors.New("error saving releases")
)

// ValidationError indica quais colunas obrigatórias não existem na planilha.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingColumns.Error(), strings.Join(e.Missing, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrMissingColumns
}

// ImportError é um erro com contexto adicional para a importação
type ImportError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

func (e *ImportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

func NewImportError(err error, code string, details string) *ImportError {
	return &ImportError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
