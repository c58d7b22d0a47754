package domain

// ConnectionTestResult é o veredito do probe de uma conta, produzido uma
// única vez por run pelo validador de conexão e somente lido depois disso.
type ConnectionTestResult struct {
	AccountID string `json:"account_id"`
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`
}

// ConnectionResults é o cache imutável de vereditos do run, indexado por
// account_id. Construído uma vez e passado por valor aos estágios seguintes.
type ConnectionResults map[string]ConnectionTestResult

// OK informa se a conta passou no probe. Contas ausentes contam como falha.
func (r ConnectionResults) OK(accountID string) bool {
	result, ok := r[accountID]
	return ok && result.OK
}
