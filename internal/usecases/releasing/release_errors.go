package releasing

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrReleaseNotFound   = errors.New("lançamento não encontrado")
	ErrReleaseConflict   = errors.New("já existe lançamento para o vendedor, canal e dia")
	ErrInvalidRelease    = errors.New("lançamento inválido")
	ErrInvalidPeriod     = errors.New("período inválido")
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
	ErrGenerateID        = errors.New("erro ao gerar identificador")
)

// ValidationError lista, por campo, o que falhou na validação do lançamento.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return fmt.Sprintf("%s: %s", ErrInvalidRelease.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidRelease
}

// ReleaseError é um erro com contexto adicional para lançamentos
type ReleaseError struct {
	Err       error  // Erro base
	Code      string // Código de erro para API
	ReleaseID string // ID do lançamento envolvido (quando aplicável)
	Details   string // Detalhes adicionais
}

func (e *ReleaseError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ReleaseError) Unwrap() error {
	return e.Err
}

func NewReleaseError(err error, code string, details string) *ReleaseError {
	return &ReleaseError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func NewReleaseErrorWithID(err error, code string, releaseID string, details string) *ReleaseError {
	return &ReleaseError{
		Err:       err,
		Code:      code,
		ReleaseID: releaseID,
		Details:   details,
	}
}
