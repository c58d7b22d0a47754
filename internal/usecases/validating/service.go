package validating

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-sheets-sync/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/meta-sheets-sync/internal/domain"
)

// Service valida a conexão de cada conta com exatamente um probe por run,
// independentemente de quantas datas serão buscadas depois: O(contas)
// probes em vez de O(contas × datas). O mapa resultante é o cache de
// vereditos consultado pelo orquestrador e nunca é mutado após a construção.
type Service struct {
	client metaclient.Client
}

func NewService(client metaclient.Client) *Service {
	return &Service{client: client}
}

func (s *Service) ValidateAll(ctx context.Context, accounts []domain.AdAccount) domain.ConnectionResults {
	results := make(domain.ConnectionResults, len(accounts))

	for _, account := range accounts {
		details, err := s.client.Probe(ctx, account.ID)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"account_id": account.ID,
				"error":      err.Error(),
			}).Warn("validação: probe de conexão falhou")

			results[account.ID] = domain.ConnectionTestResult{
				AccountID: account.ID,
				OK:        false,
				Error:     err.Error(),
			}
			continue
		}

		logrus.WithFields(logrus.Fields{
			"account_id":   account.ID,
			"account_name": details.Name,
		}).Info("validação: conexão com a conta confirmada")

		results[account.ID] = domain.ConnectionTestResult{
			AccountID: account.ID,
			OK:        true,
		}
	}

	return results
}
