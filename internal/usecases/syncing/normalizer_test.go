package syncing

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/meta-sheets-sync/internal/domain"
)

var testAccount = domain.AdAccount{ID: "123456", Name: "Loja Norte"}

func TestNormalizeInsight(t *testing.T) {
	normalizer := Normalizer{TaxRate: 0.11, DefaultCardLast4: "N/A"}
	date := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	t.Run("Payload completo vira insight canônico", func(t *testing.T) {
		raw := json.RawMessage(`{
			"account_name": "Loja Norte",
			"campaign_name": "Campanha Agosto",
			"impressions": "1500",
			"spend": "250.75",
			"cpm": "167.17",
			"clicks": "32",
			"cpc": "7.84",
			"ctr": "2.13",
			"reach": "1200"
		}`)

		insight, err := normalizer.NormalizeInsight(raw, testAccount, date)
		require.NoError(t, err)

		assert.Equal(t, "123456", insight.AccountID)
		assert.Equal(t, "Loja Norte", insight.AccountName)
		assert.Equal(t, "Campanha Agosto", insight.CampaignName)
		assert.Equal(t, date, insight.Date)
		assert.Equal(t, 1500, insight.Impressions)
		assert.Equal(t, 250.75, insight.Spend)
		assert.Equal(t, 167.17, insight.CPM)
		assert.Equal(t, 32, insight.Clicks)
		assert.Equal(t, 7.84, insight.CPC)
		assert.Equal(t, 2.13, insight.CTR)
		assert.Equal(t, 1200, insight.Reach)
	})

	t.Run("Métricas ausentes viram zero", func(t *testing.T) {
		raw := json.RawMessage(`{"campaign_name": "Campanha Sem Cliques", "impressions": "10"}`)

		insight, err := normalizer.NormalizeInsight(raw, testAccount, date)
		require.NoError(t, err)

		assert.Equal(t, 10, insight.Impressions)
		assert.Zero(t, insight.Clicks)
		assert.Zero(t, insight.Spend)
	})

	t.Run("Nome da conta ausente usa o nome configurado", func(t *testing.T) {
		raw := json.RawMessage(`{"campaign_name": "Campanha"}`)

		insight, err := normalizer.NormalizeInsight(raw, testAccount, date)
		require.NoError(t, err)
		assert.Equal(t, "Loja Norte", insight.AccountName)
	})

	t.Run("Nome da campanha ausente é erro de normalização", func(t *testing.T) {
		raw := json.RawMessage(`{"impressions": "10"}`)

		_, err := normalizer.NormalizeInsight(raw, testAccount, date)

		var normErr *NormalizationError
		require.ErrorAs(t, err, &normErr)
		assert.Equal(t, "campaign_name", normErr.Field)
	})

	t.Run("Métrica indecifrável é erro de normalização", func(t *testing.T) {
		raw := json.RawMessage(`{"campaign_name": "Campanha", "impressions": "muitas"}`)

		_, err := normalizer.NormalizeInsight(raw, testAccount, date)

		var normErr *NormalizationError
		require.ErrorAs(t, err, &normErr)
		assert.Equal(t, "impressions", normErr.Field)
	})

	t.Run("Métrica negativa é erro de normalização", func(t *testing.T) {
		raw := json.RawMessage(`{"campaign_name": "Campanha", "spend": "-1.50"}`)

		_, err := normalizer.NormalizeInsight(raw, testAccount, date)

		var normErr *NormalizationError
		require.ErrorAs(t, err, &normErr)
		assert.Equal(t, "spend", normErr.Field)
	})
}

func TestNormalizeTransaction(t *testing.T) {
	normalizer := Normalizer{TaxRate: 0.11, DefaultCardLast4: "N/A"}

	t.Run("Cobrança completa vira transação com imposto", func(t *testing.T) {
		raw := json.RawMessage(`{
			"event_time": "2026-08-30T14:22:05+0700",
			"event_type": "funding_event_successful_charge",
			"extra_data": "{\"transaction_id\":\"txn_123\",\"new_value\":1000000,\"currency\":\"IDR\",\"card_num\":\"4111111111111234\"}"
		}`)

		tx, err := normalizer.NormalizeTransaction(raw, testAccount)
		require.NoError(t, err)

		assert.Equal(t, "123456", tx.AccountID)
		assert.Equal(t, "Loja Norte", tx.AccountName)
		assert.Equal(t, "txn_123", tx.TransactionID)
		assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), tx.Date)
		assert.Equal(t, float64(1000000), tx.Amount)
		assert.Equal(t, "IDR", tx.Currency)
		assert.Equal(t, float64(1110000), tx.AmountWithTax)
		assert.Equal(t, "1234", tx.CardLast4)
		assert.Contains(t, tx.InvoiceURL, "act=123456")
		assert.Contains(t, tx.InvoiceURL, "txid=txn_123")
	})

	t.Run("Arredondamento do imposto em duas casas", func(t *testing.T) {
		raw := json.RawMessage(`{
			"event_time": "2026-08-30T14:22:05+0700",
			"event_type": "ad_account_billing_charge",
			"extra_data": "{\"transaction_id\":\"txn_777\",\"new_value\":99.99,\"currency\":\"USD\"}"
		}`)

		tx, err := normalizer.NormalizeTransaction(raw, testAccount)
		require.NoError(t, err)

		// 99.99 * 1.11 = 110.9889 → 110.99
		assert.Equal(t, 110.99, tx.AmountWithTax)
	})

	t.Run("Cartão ausente usa o placeholder configurado", func(t *testing.T) {
		raw := json.RawMessage(`{
			"event_time": "2026-08-30T14:22:05+0700",
			"event_type": "ad_account_billing_charge",
			"extra_data": "{\"transaction_id\":\"txn_888\",\"new_value\":10,\"currency\":\"USD\"}"
		}`)

		tx, err := normalizer.NormalizeTransaction(raw, testAccount)
		require.NoError(t, err)
		assert.Equal(t, "N/A", tx.CardLast4)
	})

	t.Run("Atividade fora do escopo de cobrança é pulada", func(t *testing.T) {
		raw := json.RawMessage(`{
			"event_time": "2026-08-30T14:22:05+0700",
			"event_type": "update_campaign_budget",
			"extra_data": "{}"
		}`)

		_, err := normalizer.NormalizeTransaction(raw, testAccount)
		assert.True(t, errors.Is(err, errSkipRecord))
	})

	t.Run("Cobrança sem transaction_id é erro de normalização", func(t *testing.T) {
		raw := json.RawMessage(`{
			"event_time": "2026-08-30T14:22:05+0700",
			"event_type": "ad_account_billing_charge",
			"extra_data": "{\"new_value\":10}"
		}`)

		_, err := normalizer.NormalizeTransaction(raw, testAccount)

		var normErr *NormalizationError
		require.ErrorAs(t, err, &normErr)
		assert.Equal(t, "transaction_id", normErr.Field)
	})

	t.Run("Cobrança sem extra_data é erro de normalização", func(t *testing.T) {
		raw := json.RawMessage(`{
			"event_time": "2026-08-30T14:22:05+0700",
			"event_type": "ad_account_billing_charge"
		}`)

		_, err := normalizer.NormalizeTransaction(raw, testAccount)

		var normErr *NormalizationError
		require.ErrorAs(t, err, &normErr)
		assert.Equal(t, "extra_data", normErr.Field)
	})

	t.Run("Valor negativo é erro de normalização", func(t *testing.T) {
		raw := json.RawMessage(`{
			"event_time": "2026-08-30T14:22:05+0700",
			"event_type": "ad_account_billing_charge",
			"extra_data": "{\"transaction_id\":\"txn_999\",\"new_value\":-5}"
		}`)

		_, err := normalizer.NormalizeTransaction(raw, testAccount)

		var normErr *NormalizationError
		require.ErrorAs(t, err, &normErr)
		assert.Equal(t, "new_value", normErr.Field)
	})

	t.Run("Timestamp em formato desconhecido é erro de normalização", func(t *testing.T) {
		raw := json.RawMessage(`{
			"event_time": "30/08/2026",
			"event_type": "ad_account_billing_charge",
			"extra_data": "{\"transaction_id\":\"txn_555\",\"new_value\":10}"
		}`)

		_, err := normalizer.NormalizeTransaction(raw, testAccount)

		var normErr *NormalizationError
		require.ErrorAs(t, err, &normErr)
		assert.Equal(t, "event_time", normErr.Field)
	})
}
