package metaclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	metadomain "github.com/vfg2006/meta-sheets-sync/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-sheets-sync/internal/domain"
)

var jsonDecoder = jsoniter.ConfigCompatibleWithStandardLibrary

// Page é uma página bruta de registros com o estado de paginação que a
// acompanha.
type Page struct {
	Records []json.RawMessage
	Cursor  metadomain.Cursor
}

// Client é o acesso autenticado à Graph API do Meta: páginas de um recurso e
// probe de conexão por conta. Falhas são sempre tipadas (AuthError,
// RateLimitError, NetworkError, MalformedResponseError).
type Client interface {
	FetchPage(ctx context.Context, accountID string, resource domain.Resource, window domain.DateWindow, cursor metadomain.Cursor) (*Page, error)
	Probe(ctx context.Context, accountID string) (*metadomain.AccountDetails, error)
}

type Config struct {
	URL         string
	AccessToken string
	Timeout     time.Duration
	PageLimit   int
}

type MetaClient struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config) *MetaClient {
	if cfg.PageLimit <= 0 {
		cfg.PageLimit = 1000
	}

	return &MetaClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// get executa a requisição e devolve o corpo, mapeando toda falha para um
// erro tipado. Nunca descarta uma página silenciosamente.
func (c *MetaClient) get(ctx context.Context, accountID, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &metadomain.NetworkError{Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &metadomain.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &metadomain.NetworkError{Err: err}
	}

	if resp.StatusCode == http.StatusOK {
		return body, nil
	}

	return nil, c.classifyErrorResponse(accountID, resp, body)
}

// classifyErrorResponse converte uma resposta de erro da Graph API no erro
// tipado correspondente.
func (c *MetaClient) classifyErrorResponse(accountID string, resp *http.Response, body []byte) error {
	var errResp metadomain.ErrorResponse
	if err := jsonDecoder.Unmarshal(body, &errResp); err != nil {
		return &metadomain.MalformedResponseError{
			Reason: fmt.Sprintf("status %d com corpo indecifrável: %.200s", resp.StatusCode, string(body)),
		}
	}

	switch {
	case errResp.IsRateLimited() || resp.StatusCode == http.StatusTooManyRequests:
		return &metadomain.RateLimitError{
			RetryAfter: retryAfterHint(resp),
			Message:    errResp.Error.Message,
		}
	case errResp.IsAuthError() || resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &metadomain.AuthError{
			AccountID: accountID,
			Message:   errResp.Error.Message,
		}
	case resp.StatusCode >= http.StatusInternalServerError:
		return &metadomain.NetworkError{
			Err: fmt.Errorf("status %d: %s", resp.StatusCode, errResp.Error.Message),
		}
	default:
		return &metadomain.MalformedResponseError{
			Reason: fmt.Sprintf("status %d: %s", resp.StatusCode, errResp.Error.Message),
		}
	}
}

// retryAfterHint extrai a sugestão de espera do servidor, quando presente.
func retryAfterHint(resp *http.Response) time.Duration {
	header := resp.Header.Get("Retry-After")
	if header == "" {
		return 0
	}

	seconds, err := strconv.Atoi(header)
	if err != nil || seconds <= 0 {
		return 0
	}

	return time.Duration(seconds) * time.Second
}
