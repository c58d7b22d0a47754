package notifier

import (
	"bytes"
	"context"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-sheets-sync/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// timeout fixo e curto: a notificação não pode segurar o encerramento do run
const notifyTimeout = 5 * time.Second

// WebhookNotifier entrega o sumário do run a um endpoint HTTP em modo
// fire-and-forget: qualquer falha é apenas logada e nunca altera o status do
// run.
type WebhookNotifier struct {
	url        string
	httpClient *http.Client
}

func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url: url,
		httpClient: &http.Client{
			Timeout: notifyTimeout,
		},
	}
}

type runFinishedPayload struct {
	RunID          string   `json:"run_id"`
	Resource       string   `json:"resource"`
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	RowsWritten    int      `json:"rows_written"`
	AccountsFailed []string `json:"accounts_failed"`
}

func (n *WebhookNotifier) NotifyRunFinished(ctx context.Context, summary *domain.SyncRunSummary) {
	payload := runFinishedPayload{
		RunID:          summary.RunID,
		Resource:       string(summary.Resource),
		StartDate:      summary.StartDate.Format(time.DateOnly),
		EndDate:        summary.EndDate.Format(time.DateOnly),
		RowsWritten:    summary.RowsWritten,
		AccountsFailed: summary.AccountsFailed(),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		logrus.WithError(err).Warn("notifier: erro ao serializar o sumário do run")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		logrus.WithError(err).Warn("notifier: erro ao criar a requisição de notificação")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).Warn("notifier: falha ao entregar a notificação do run")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		logrus.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"url":    n.url,
		}).Warn("notifier: endpoint recusou a notificação do run")
		return
	}

	logrus.WithField("run_id", summary.RunID).Debug("notifier: sumário do run entregue")
}
