package syncing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/meta-sheets-sync/internal/domain"
)

func testRegistry() *domain.AccountRegistry {
	return domain.NewAccountRegistry([]domain.AdAccount{
		{ID: "123456", Name: "Loja Norte"},
		{ID: "789012", Name: "Loja Sul"},
	})
}

func TestLoadExistingTransactionKeys(t *testing.T) {
	registry := testRegistry()

	rows := [][]string{
		{"Account", "Transaction ID", "Faktur Pajak", "Date"}, // cabeçalho
		{"Loja Norte", "txn_123", "", "2026-08-29"},
		{"Loja Sul", "txn_456", "", "2026-08-29"},
		{"Loja Desconhecida", "txn_789", "", "2026-08-29"}, // conta não configurada
		{"Loja Norte", "", "", "2026-08-29"},               // sem transaction id
		{"Loja Norte"},                                     // linha curta
	}

	keys := LoadExistingTransactionKeys(rows, registry)

	require.Len(t, keys, 2)
	assert.Contains(t, keys, domain.TransactionKey{AccountID: "123456", TransactionID: "txn_123"})
	assert.Contains(t, keys, domain.TransactionKey{AccountID: "789012", TransactionID: "txn_456"})
}

func TestFilterNewTransactions(t *testing.T) {
	date := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	existing := map[domain.TransactionKey]struct{}{
		{AccountID: "123456", TransactionID: "txn_123"}: {},
	}

	duplicate := &domain.Transaction{AccountID: "123456", TransactionID: "txn_123", Date: date}
	fresh := &domain.Transaction{AccountID: "123456", TransactionID: "txn_456", Date: date}
	otherAccount := &domain.Transaction{AccountID: "789012", TransactionID: "txn_123", Date: date}

	filtered := FilterNewTransactions([]*domain.Transaction{duplicate, fresh, otherAccount}, existing)

	// txn_123 da mesma conta sai; o mesmo ID em outra conta é outra chave
	require.Len(t, filtered, 2)
	assert.Equal(t, "txn_456", filtered[0].TransactionID)
	assert.Equal(t, "789012", filtered[1].AccountID)
}

func TestFilterNewTransactionsIsIdempotent(t *testing.T) {
	date := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	registry := testRegistry()

	tx := &domain.Transaction{AccountID: "123456", AccountName: "Loja Norte", TransactionID: "txn_123", Date: date}

	// primeiro run: planilha só com cabeçalho
	first := FilterNewTransactions(
		[]*domain.Transaction{tx},
		LoadExistingTransactionKeys([][]string{{"Account", "Transaction ID"}}, registry),
	)
	require.Len(t, first, 1)

	// segundo run: a linha gravada volta na leitura e o candidato é filtrado
	rows := [][]string{
		{"Account", "Transaction ID"},
		{tx.AccountName, tx.TransactionID},
	}
	second := FilterNewTransactions(
		[]*domain.Transaction{tx},
		LoadExistingTransactionKeys(rows, registry),
	)
	assert.Empty(t, second)
}
