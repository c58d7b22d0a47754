package domain

import (
	"fmt"
	"time"
)

// Transaction é o registro canônico de uma cobrança do Meta.
// AmountWithTax = round(Amount * (1 + taxRate), 2), calculado pelo
// normalizador.
type Transaction struct {
	AccountID     string    `json:"account_id"`
	AccountName   string    `json:"account_name"`
	TransactionID string    `json:"transaction_id"`
	Date          time.Time `json:"date"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	AmountWithTax float64   `json:"amount_with_tax"`
	CardLast4     string    `json:"card_last4"`
	InvoiceURL    string    `json:"invoice_url"`
}

// TransactionKey é a chave natural (account_id, transaction_id) usada na
// deduplicação contra a planilha de destino.
type TransactionKey struct {
	AccountID     string
	TransactionID string
}

func (t *Transaction) Key() TransactionKey {
	return TransactionKey{AccountID: t.AccountID, TransactionID: t.TransactionID}
}

// BillingInvoiceURL monta a URL do invoice no gerenciador de anúncios.
func BillingInvoiceURL(accountID, transactionID string) string {
	return fmt.Sprintf(
		"https://business.facebook.com/ads/manage/billing_transaction/?act=%s&pdf=true&print=false&source=billing_summary&tx_type=3&txid=%s",
		accountID,
		transactionID,
	)
}
