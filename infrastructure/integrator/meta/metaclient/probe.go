package metaclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/meta-sheets-sync/infrastructure/integrator/meta/domain"
)

// Probe testa a conexão com uma conta, devolvendo os detalhes dela quando a
// credencial é válida. É chamado uma única vez por conta por run.
func (c *MetaClient) Probe(ctx context.Context, accountID string) (*metadomain.AccountDetails, error) {
	params := url.Values{}
	params.Add("access_token", c.cfg.AccessToken)
	params.Add("fields", "account_id,name,currency,account_status")

	requestURL := fmt.Sprintf("%s/act_%s?%s", c.cfg.URL, accountID, params.Encode())

	body, err := c.get(ctx, accountID, requestURL)
	if err != nil {
		return nil, err
	}

	var details metadomain.AccountDetails
	if err := jsonDecoder.Unmarshal(body, &details); err != nil {
		return nil, &metadomain.MalformedResponseError{
			Reason: fmt.Sprintf("detalhes da conta indecifráveis: %v", err),
		}
	}

	logrus.WithFields(logrus.Fields{
		"account_id":   accountID,
		"account_name": details.Name,
		"currency":     details.Currency,
	}).Debug("meta: probe de conexão bem-sucedido")

	return &details, nil
}
