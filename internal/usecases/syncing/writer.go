package syncing

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-sheets-sync/internal/domain"
)

// Cabeçalhos fixos das abas de destino, criados antes da primeira escrita.
var (
	InsightsHeader = []string{
		"Campaign Name", "Account Name", "Date", "Impressions", "Spend",
		"CPM", "Clicks", "CPC", "CTR", "Reach",
	}

	TransactionsHeader = []string{
		"Account", "Transaction ID", "Faktur Pajak", "Date", "Amount",
		"With Tax", "Card", "URL Invoice",
	}
)

// BatchWriter acumula as linhas de um par (data, conta) e faz exatamente uma
// chamada de append em bloco por par: uma ida ao servidor por par em vez de
// uma por linha.
type BatchWriter struct {
	store   SheetStore
	ensured map[string]bool
}

func NewBatchWriter(store SheetStore) *BatchWriter {
	return &BatchWriter{
		store:   store,
		ensured: make(map[string]bool),
	}
}

// WriteInsights grava todos os insights de um par (data, conta) em um único
// append. Retorna o número de linhas gravadas.
func (w *BatchWriter) WriteInsights(ctx context.Context, worksheet string, insights []*domain.CampaignInsight) (int, error) {
	if len(insights) == 0 {
		return 0, nil
	}

	rows := make([][]interface{}, 0, len(insights))
	for _, insight := range insights {
		rows = append(rows, []interface{}{
			insight.CampaignName,
			insight.AccountName,
			insight.Date.Format(time.DateOnly),
			insight.Impressions,
			insight.Spend,
			insight.CPM,
			insight.Clicks,
			insight.CPC,
			insight.CTR,
			insight.Reach,
		})
	}

	return w.appendBatch(ctx, worksheet, InsightsHeader, rows)
}

// WriteTransactions grava todas as transações de um par (data, conta) em um
// único append. A coluna Faktur Pajak fica em branco para preenchimento
// manual.
func (w *BatchWriter) WriteTransactions(ctx context.Context, worksheet string, transactions []*domain.Transaction) (int, error) {
	if len(transactions) == 0 {
		return 0, nil
	}

	rows := make([][]interface{}, 0, len(transactions))
	for _, tx := range transactions {
		rows = append(rows, []interface{}{
			tx.AccountName,
			tx.TransactionID,
			"",
			tx.Date.Format(time.DateOnly),
			tx.Amount,
			tx.AmountWithTax,
			tx.CardLast4,
			tx.InvoiceURL,
		})
	}

	return w.appendBatch(ctx, worksheet, TransactionsHeader, rows)
}

// Ensure cria a aba com o cabeçalho na primeira vez que ela é tocada no run.
// Chamadas seguintes para a mesma aba não vão ao servidor.
func (w *BatchWriter) Ensure(ctx context.Context, worksheet string, header []string) error {
	if w.ensured[worksheet] {
		return nil
	}

	if err := w.store.EnsureWorksheet(ctx, worksheet, header); err != nil {
		return err
	}
	w.ensured[worksheet] = true
	return nil
}

func (w *BatchWriter) appendBatch(ctx context.Context, worksheet string, header []string, rows [][]interface{}) (int, error) {
	if err := w.Ensure(ctx, worksheet, header); err != nil {
		return 0, &WriteError{Worksheet: worksheet, Rows: len(rows), Err: err}
	}

	if err := w.store.AppendRows(ctx, worksheet, rows); err != nil {
		return 0, &WriteError{Worksheet: worksheet, Rows: len(rows), Err: err}
	}

	logrus.WithFields(logrus.Fields{
		"worksheet": worksheet,
		"rows":      len(rows),
	}).Info("writer: batch gravado na planilha")

	return len(rows), nil
}
