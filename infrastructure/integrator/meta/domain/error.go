package metadomain

import (
	"fmt"
	"time"
)

// ErrorResponse representa a estrutura de erro da API do Meta
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API do Meta
type ErrorDetails struct {
	Message      string      `json:"message"`
	Type         string      `json:"type"`
	Code         int         `json:"code"`
	ErrorSubcode int         `json:"error_subcode,omitempty"`
	FBTraceID    string      `json:"fbtrace_id"`
	ErrorData    interface{} `json:"error_data,omitempty"`
}

// IsAuthError verifica se o erro é de credencial inválida ou expirada.
// O código 190 representa token expirado; os subcódigos 460, 463 e 467
// cobrem as demais variações de problemas de token.
func (e *ErrorResponse) IsAuthError() bool {
	return e.Error.Code == 190 ||
		(e.Error.Type == "OAuthException" && (e.Error.ErrorSubcode == 460 || e.Error.ErrorSubcode == 463 || e.Error.ErrorSubcode == 467))
}

// IsRateLimited verifica se o erro é de limite de requisições.
// Códigos 4 (app), 17 (usuário), 32 (page) e 613 (custom rate limit).
func (e *ErrorResponse) IsRateLimited() bool {
	switch e.Error.Code {
	case 4, 17, 32, 613:
		return true
	}
	return false
}

// AuthError indica credencial inválida ou expirada. Não é retryable: a conta
// é marcada como falha para o run inteiro.
type AuthError struct {
	AccountID string
	Message   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("credencial inválida para a conta %s: %s", e.AccountID, e.Message)
}

// RateLimitError indica limite de requisições. RetryAfter carrega a sugestão
// do servidor quando presente; zero quando ausente.
type RateLimitError struct {
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("limite de requisições da API do Meta atingido: %s", e.Message)
}

// NetworkError indica falha de conexão ou timeout. Retryable.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("erro de rede na chamada à API do Meta: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// MalformedResponseError indica payload com formato inesperado. Não é
// retryable e aborta apenas a página corrente.
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("resposta malformada da API do Meta: %s", e.Reason)
}

// FetchExhaustedError indica que as tentativas de uma página se esgotaram.
// Aborta apenas o par (data, conta) corrente.
type FetchExhaustedError struct {
	AccountID string
	Since     time.Time
	Until     time.Time
	Page      int
	LastErr   error
}

func (e *FetchExhaustedError) Error() string {
	return fmt.Sprintf(
		"tentativas esgotadas na página %d da conta %s (%s a %s): %v",
		e.Page,
		e.AccountID,
		e.Since.Format(time.DateOnly),
		e.Until.Format(time.DateOnly),
		e.LastErr,
	)
}

func (e *FetchExhaustedError) Unwrap() error {
	return e.LastErr
}
