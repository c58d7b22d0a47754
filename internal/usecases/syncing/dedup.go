package syncing

import (
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-sheets-sync/internal/domain"
)

// colunas da aba de transações usadas na reconstrução das chaves
const (
	columnAccountName   = 0
	columnTransactionID = 1
)

// LoadExistingTransactionKeys reconstrói o conjunto de chaves
// (account_id, transaction_id) a partir das linhas já persistidas na aba de
// transações. A primeira linha é o cabeçalho. O nome de exibição gravado na
// planilha é resolvido para o ID da conta via registry; linhas de contas não
// configuradas não podem colidir com candidatos e são ignoradas.
func LoadExistingTransactionKeys(rows [][]string, registry *domain.AccountRegistry) map[domain.TransactionKey]struct{} {
	keys := make(map[domain.TransactionKey]struct{})

	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) <= columnTransactionID || row[columnTransactionID] == "" {
			continue
		}

		account, ok := registry.GetByName(row[columnAccountName])
		if !ok {
			logrus.WithField("account_name", row[columnAccountName]).
				Debug("dedup: linha de conta não configurada ignorada")
			continue
		}

		keys[domain.TransactionKey{
			AccountID:     account.ID,
			TransactionID: row[columnTransactionID],
		}] = struct{}{}
	}

	return keys
}

// FilterNewTransactions remove os candidatos cuja chave já está persistida,
// preservando a ordem dos que sobrevivem. Este é o único mecanismo que
// impede linhas duplicadas na planilha de destino.
func FilterNewTransactions(candidates []*domain.Transaction, existing map[domain.TransactionKey]struct{}) []*domain.Transaction {
	filtered := make([]*domain.Transaction, 0, len(candidates))

	for _, tx := range candidates {
		if _, dup := existing[tx.Key()]; dup {
			logrus.WithFields(logrus.Fields{
				"account_id":     tx.AccountID,
				"transaction_id": tx.TransactionID,
			}).Debug("dedup: transação já persistida, pulando")
			continue
		}
		filtered = append(filtered, tx)
	}

	return filtered
}
