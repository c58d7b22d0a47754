package meta

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/meta-sheets-sync/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-sheets-sync/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/meta-sheets-sync/internal/domain"
	"github.com/vfg2006/meta-sheets-sync/pkg/retry"
)

// Fetcher percorre o resultado paginado de um recurso para uma conta e um
// intervalo de datas, aplicando retry com backoff nas falhas transitórias.
type Fetcher struct {
	client metaclient.Client
	policy retry.Policy
}

func NewFetcher(client metaclient.Client, policy retry.Policy) *Fetcher {
	return &Fetcher{
		client: client,
		policy: policy,
	}
}

// FetchAll inicia uma varredura. O stream resultante é finito e não pode ser
// retomado do meio: abandonar o stream abandona as páginas restantes, e uma
// nova chamada recomeça da primeira página.
func (f *Fetcher) FetchAll(ctx context.Context, accountID string, resource domain.Resource, window domain.DateWindow) *PageStream {
	// o cursor vazio inicial conta como consumido: se a API o devolver com
	// has_next, a varredura laçaria na primeira página
	seen := map[string]struct{}{"": {}}

	return &PageStream{
		ctx:       ctx,
		client:    f.client,
		policy:    f.policy,
		accountID: accountID,
		resource:  resource,
		window:    window,
		seen:      seen,
	}
}

// PageStream itera as páginas no estilo bufio.Scanner:
//
//	stream := fetcher.FetchAll(ctx, accountID, resource, window)
//	for stream.Next() {
//		records := stream.Records()
//		...
//	}
//	if err := stream.Err(); err != nil { ... }
type PageStream struct {
	ctx       context.Context
	client    metaclient.Client
	policy    retry.Policy
	accountID string
	resource  domain.Resource
	window    domain.DateWindow

	cursor  metadomain.Cursor
	seen    map[string]struct{}
	page    int
	records []json.RawMessage
	err     error
	done    bool
}

// Next busca a próxima página. Retorna falso quando a varredura terminou ou
// falhou; nesse caso Err distingue os dois casos.
func (s *PageStream) Next() bool {
	if s.done || s.err != nil {
		return false
	}

	page, err := s.fetchPageWithRetry()
	if err != nil {
		s.err = err
		return false
	}

	// Um cursor nunca pode se repetir dentro da mesma varredura, nem mesmo o
	// vazio inicial. Repetição indica violação de contrato da API e aborta o
	// par em vez de laçar silenciosamente.
	if page.Cursor.HasNext {
		if _, reused := s.seen[page.Cursor.Token]; reused {
			s.err = &metadomain.MalformedResponseError{
				Reason: "cursor de paginação repetido: " + formatCursor(page.Cursor.Token),
			}
			return false
		}
		s.seen[page.Cursor.Token] = struct{}{}
	}

	s.page++
	s.records = page.Records
	s.cursor = page.Cursor
	s.done = !page.Cursor.HasNext

	logrus.WithFields(logrus.Fields{
		"account_id": s.accountID,
		"resource":   s.resource,
		"page":       s.page,
		"records":    len(page.Records),
		"has_next":   page.Cursor.HasNext,
	}).Debug("meta: página recebida")

	return true
}

// Records retorna os registros brutos da página corrente.
func (s *PageStream) Records() []json.RawMessage {
	return s.records
}

func (s *PageStream) Err() error {
	return s.err
}

// fetchPageWithRetry tenta a MESMA página sob a política de backoff; páginas
// já entregues nunca são rebuscadas. Esgotar as tentativas vira
// FetchExhaustedError com o contexto do par.
func (s *PageStream) fetchPageWithRetry() (*metaclient.Page, error) {
	var page *metaclient.Page

	err := retry.Do(s.ctx, s.policy, classifyTransient, func() error {
		fetched, err := s.client.FetchPage(s.ctx, s.accountID, s.resource, s.window, s.cursor)
		if err != nil {
			return err
		}
		page = fetched
		return nil
	})
	if err != nil {
		var exhausted *retry.ExhaustedError
		if errors.As(err, &exhausted) {
			return nil, &metadomain.FetchExhaustedError{
				AccountID: s.accountID,
				Since:     s.window.Since,
				Until:     s.window.Until,
				Page:      s.page + 1,
				LastErr:   exhausted.LastErr,
			}
		}
		return nil, err
	}

	return page, nil
}

func formatCursor(token string) string {
	if token == "" {
		return "(vazio)"
	}
	return token
}

// classifyTransient marca RateLimitError e NetworkError como transitórios,
// propagando a sugestão de Retry-After do servidor quando presente.
func classifyTransient(err error) (bool, time.Duration) {
	var rateLimited *metadomain.RateLimitError
	if errors.As(err, &rateLimited) {
		return true, rateLimited.RetryAfter
	}

	var network *metadomain.NetworkError
	if errors.As(err, &network) {
		return true, 0
	}

	return false, 0
}
