package syncing

import (
	"errors"
	"fmt"

	metadomain "github.com/vfg2006/meta-sheets-sync/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-sheets-sync/internal/domain"
)

// ErrAllAccountsFailed indica que nenhuma conta passou na validação de
// conexão; o processo deve terminar com código de saída diferente de zero.
var ErrAllAccountsFailed = errors.New("todas as contas falharam na validação de conexão")

// errSkipRecord marca atividades que não representam cobrança; o
// orquestrador as pula silenciosamente.
var errSkipRecord = errors.New("registro fora do escopo de cobrança")

// NormalizationError indica um registro bruto sem um campo obrigatório.
// O orquestrador pula e loga o registro; não aborta o par.
type NormalizationError struct {
	RecordID string
	Field    string
	Reason   string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("registro %q sem o campo obrigatório %q: %s", e.RecordID, e.Field, e.Reason)
}

// WriteError indica falha no append do batch de um par (data, conta). Os
// dados já buscados do par são descartados; não há retry interno.
type WriteError struct {
	Worksheet string
	Rows      int
	Err       error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("erro ao gravar %d linhas na aba %q: %v", e.Rows, e.Worksheet, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// categorize mapeia o erro de um par para a categoria do sumário final.
func categorize(err error) domain.ErrorCategory {
	var authErr *metadomain.AuthError
	var exhausted *metadomain.FetchExhaustedError
	var malformed *metadomain.MalformedResponseError
	var writeErr *WriteError

	switch {
	case errors.As(err, &authErr):
		return domain.ErrorCategoryAuth
	case errors.As(err, &exhausted):
		return domain.ErrorCategoryFetchExhausted
	case errors.As(err, &writeErr):
		return domain.ErrorCategoryWrite
	case errors.As(err, &malformed):
		return domain.ErrorCategoryMalformed
	default:
		return domain.ErrorCategoryFetchExhausted
	}
}
