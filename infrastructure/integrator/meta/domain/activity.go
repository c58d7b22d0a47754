package metadomain

import "strings"

// RawActivity é uma entrada do log de atividades da conta. As cobranças
// chegam como atividades cujo extra_data é uma string JSON com os campos da
// transação.
type RawActivity struct {
	EventTime string `json:"event_time"`
	EventType string `json:"event_type"`
	ExtraData string `json:"extra_data"`
}

// ActivityExtraData é o conteúdo decodificado de extra_data para eventos de
// cobrança.
type ActivityExtraData struct {
	TransactionID string  `json:"transaction_id"`
	NewValue      float64 `json:"new_value"`
	Currency      string  `json:"currency"`
	CardNumber    string  `json:"card_num,omitempty"`
}

// IsBillingEvent informa se a atividade representa uma cobrança ou pagamento.
func (a RawActivity) IsBillingEvent() bool {
	eventType := strings.ToLower(a.EventType)
	return strings.Contains(eventType, "charge") ||
		strings.Contains(eventType, "payment") ||
		strings.Contains(eventType, "bill")
}

// AccountDetails é a resposta do probe de uma conta.
type AccountDetails struct {
	ID            string `json:"id"`
	AccountID     string `json:"account_id"`
	Name          string `json:"name"`
	Currency      string `json:"currency"`
	AccountStatus int    `json:"account_status"`
}
