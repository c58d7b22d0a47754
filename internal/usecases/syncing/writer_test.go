package syncing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/meta-sheets-sync/internal/domain"
	"github.com/vfg2006/meta-sheets-sync/internal/usecases/syncing"
	"github.com/vfg2006/meta-sheets-sync/internal/usecases/syncing/mocks"
	"go.uber.org/mock/gomock"
)

func TestBatchWriterWriteInsights(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockSheetStore(ctrl)
	writer := syncing.NewBatchWriter(store)

	date := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	insights := []*domain.CampaignInsight{
		{AccountID: "123456", AccountName: "Loja Norte", CampaignName: "Campanha A", Date: date, Impressions: 100, Spend: 10.5},
		{AccountID: "123456", AccountName: "Loja Norte", CampaignName: "Campanha B", Date: date, Impressions: 200, Spend: 20.5},
	}

	store.EXPECT().
		EnsureWorksheet(gomock.Any(), "[wip] boost ads", syncing.InsightsHeader).
		Return(nil)

	// um único append para o par inteiro
	store.EXPECT().
		AppendRows(gomock.Any(), "[wip] boost ads", gomock.Len(2)).
		Return(nil)

	rows, err := writer.WriteInsights(context.Background(), "[wip] boost ads", insights)
	require.NoError(t, err)
	assert.Equal(t, 2, rows)
}

func TestBatchWriterEnsuresWorksheetOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockSheetStore(ctrl)
	writer := syncing.NewBatchWriter(store)

	date := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	insights := []*domain.CampaignInsight{
		{AccountID: "123456", CampaignName: "Campanha A", Date: date},
	}

	store.EXPECT().
		EnsureWorksheet(gomock.Any(), "[wip] boost ads", syncing.InsightsHeader).
		Return(nil).
		Times(1)

	store.EXPECT().
		AppendRows(gomock.Any(), "[wip] boost ads", gomock.Any()).
		Return(nil).
		Times(2)

	_, err := writer.WriteInsights(context.Background(), "[wip] boost ads", insights)
	require.NoError(t, err)

	_, err = writer.WriteInsights(context.Background(), "[wip] boost ads", insights)
	require.NoError(t, err)
}

func TestBatchWriterEnsureSharesCacheWithAppend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockSheetStore(ctrl)
	writer := syncing.NewBatchWriter(store)

	date := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	transactions := []*domain.Transaction{
		{AccountID: "123456", AccountName: "Loja Norte", TransactionID: "txn_123", Date: date, Amount: 100},
	}

	// Ensure explícito seguido do append vai ao servidor uma única vez
	store.EXPECT().
		EnsureWorksheet(gomock.Any(), "Meta Transaction IDs", syncing.TransactionsHeader).
		Return(nil).
		Times(1)

	store.EXPECT().
		AppendRows(gomock.Any(), "Meta Transaction IDs", gomock.Any()).
		Return(nil)

	require.NoError(t, writer.Ensure(context.Background(), "Meta Transaction IDs", syncing.TransactionsHeader))
	require.NoError(t, writer.Ensure(context.Background(), "Meta Transaction IDs", syncing.TransactionsHeader))

	_, err := writer.WriteTransactions(context.Background(), "Meta Transaction IDs", transactions)
	require.NoError(t, err)
}

func TestBatchWriterEmptyBatchSkipsAppend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockSheetStore(ctrl)
	writer := syncing.NewBatchWriter(store)

	// nenhuma chamada ao store esperada
	rows, err := writer.WriteInsights(context.Background(), "[wip] boost ads", nil)
	require.NoError(t, err)
	assert.Zero(t, rows)

	rows, err = writer.WriteTransactions(context.Background(), "Meta Transaction IDs", nil)
	require.NoError(t, err)
	assert.Zero(t, rows)
}

func TestBatchWriterAppendFailureIsWriteError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockSheetStore(ctrl)
	writer := syncing.NewBatchWriter(store)

	date := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	transactions := []*domain.Transaction{
		{AccountID: "123456", AccountName: "Loja Norte", TransactionID: "txn_123", Date: date, Amount: 100},
	}

	store.EXPECT().
		EnsureWorksheet(gomock.Any(), "Meta Transaction IDs", syncing.TransactionsHeader).
		Return(nil)

	store.EXPECT().
		AppendRows(gomock.Any(), "Meta Transaction IDs", gomock.Any()).
		Return(errors.New("quota exceeded"))

	rows, err := writer.WriteTransactions(context.Background(), "Meta Transaction IDs", transactions)
	assert.Zero(t, rows)

	var writeErr *syncing.WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, "Meta Transaction IDs", writeErr.Worksheet)
	assert.Equal(t, 1, writeErr.Rows)
}

func TestBatchWriterTransactionRowLayout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockSheetStore(ctrl)
	writer := syncing.NewBatchWriter(store)

	date := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	tx := &domain.Transaction{
		AccountID:     "123456",
		AccountName:   "Loja Norte",
		TransactionID: "txn_123",
		Date:          date,
		Amount:        1000000,
		AmountWithTax: 1110000,
		CardLast4:     "1234",
		InvoiceURL:    domain.BillingInvoiceURL("123456", "txn_123"),
	}

	store.EXPECT().
		EnsureWorksheet(gomock.Any(), "Meta Transaction IDs", syncing.TransactionsHeader).
		Return(nil)

	store.EXPECT().
		AppendRows(gomock.Any(), "Meta Transaction IDs", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, rows [][]interface{}) error {
			require.Len(t, rows, 1)
			row := rows[0]
			require.Len(t, row, len(syncing.TransactionsHeader))
			assert.Equal(t, "Loja Norte", row[0])
			assert.Equal(t, "txn_123", row[1])
			assert.Equal(t, "", row[2]) // Faktur Pajak em branco
			assert.Equal(t, "2026-08-30", row[3])
			assert.Equal(t, float64(1000000), row[4])
			assert.Equal(t, float64(1110000), row[5])
			assert.Equal(t, "1234", row[6])
			return nil
		})

	_, err := writer.WriteTransactions(context.Background(), "Meta Transaction IDs", []*domain.Transaction{tx})
	require.NoError(t, err)
}
