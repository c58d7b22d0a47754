package domain

// AdAccount representa uma conta de anúncios do Meta configurada para o run.
// O ID é o identificador numérico da conta, sem o prefixo "act_".
type AdAccount struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AccountRegistry guarda o conjunto imutável de contas configuradas.
// A ordem de iteração segue a ordem de configuração.
type AccountRegistry struct {
	accounts []AdAccount
	byID     map[string]AdAccount
	byName   map[string]AdAccount
}

func NewAccountRegistry(accounts []AdAccount) *AccountRegistry {
	r := &AccountRegistry{
		accounts: make([]AdAccount, len(accounts)),
		byID:     make(map[string]AdAccount, len(accounts)),
		byName:   make(map[string]AdAccount, len(accounts)),
	}

	copy(r.accounts, accounts)
	for _, acc := range accounts {
		r.byID[acc.ID] = acc
		r.byName[acc.Name] = acc
	}

	return r
}

// Accounts retorna uma cópia da lista de contas, na ordem de configuração.
func (r *AccountRegistry) Accounts() []AdAccount {
	out := make([]AdAccount, len(r.accounts))
	copy(out, r.accounts)
	return out
}

func (r *AccountRegistry) Get(id string) (AdAccount, bool) {
	acc, ok := r.byID[id]
	return acc, ok
}

// GetByName resolve uma conta pelo nome de exibição. Usado para reconstruir
// as chaves de deduplicação a partir das linhas já persistidas na planilha.
func (r *AccountRegistry) GetByName(name string) (AdAccount, bool) {
	acc, ok := r.byName[name]
	return acc, ok
}

func (r *AccountRegistry) Len() int {
	return len(r.accounts)
}
