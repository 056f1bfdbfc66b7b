package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// Erros de autenticação
	ErrInvalidCredentials    = "AUTH_001" // Credenciais inválidas
	ErrUserDisabled          = "AUTH_002" // Usuário desativado
	ErrUserNotFound          = "AUTH_003" // Usuário não encontrado
	ErrInvalidToken          = "AUTH_006" // Token inválido
	ErrExpiredToken          = "AUTH_007" // Token expirado
	ErrInsufficientPrivilege = "AUTH_008" // Privilégios insuficientes
	ErrUserAlreadyExists     = "AUTH_009" // Usuário já existe

	// Erros de validação
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido

	// Erros de lançamentos
	ErrReleaseNotFound = "REL_001" // Lançamento não encontrado
	ErrReleaseConflict = "REL_002" // Já existe lançamento para vendedor, canal e dia

	// Erros de ranking
	ErrRankingNotFound = "RNK_001" // Ranking mensal ainda não processado

	// Erros de importação de planilhas
	ErrMissingColumns   = "IMP_001" // Colunas obrigatórias ausentes
	ErrEmptySpreadsheet = "IMP_002" // Planilha vazia
	ErrUnreadableFile   = "IMP_003" // Arquivo não é uma planilha válida

	// Erros do servidor
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrRouteNotFound     = "SRV_003" // Rota inexistente
	ErrMethodNotAllowed  = "SRV_004" // Método não suportado pela rota
	ErrSyncAlreadyActive = "SRV_005" // Sincronização já em andamento
)

var httpStatusMap = map[string]int{
	ErrInvalidCredentials:    http.StatusUnauthorized,
	ErrUserDisabled:          http.StatusForbidden,
	ErrUserNotFound:          http.StatusNotFound,
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrUserAlreadyExists:     http.StatusBadRequest,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrReleaseNotFound:       http.StatusNotFound,
	ErrReleaseConflict:       http.StatusConflict,
	ErrRankingNotFound:       http.StatusNotFound,
	ErrMissingColumns:        http.StatusUnprocessableEntity,
	ErrEmptySpreadsheet:      http.StatusUnprocessableEntity,
	ErrUnreadableFile:        http.StatusBadRequest,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrRouteNotFound:         http.StatusNotFound,
	ErrMethodNotAllowed:      http.StatusMethodNotAllowed,
	ErrDatabaseOperation:     http.StatusInternalServerError,
	ErrSyncAlreadyActive:     http.StatusConflict,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// StatusFor retorna o status HTTP de um código, ou 500 se o código for desconhecido
func StatusFor(code string) int {
	if status, exists := httpStatusMap[code]; exists {
		return status
	}
	return http.StatusInternalServerError
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	_ = json.NewEncoder(w).Encode(APIError{
		Code:    code,
		Message: message,
		Details: details,
	})
}
