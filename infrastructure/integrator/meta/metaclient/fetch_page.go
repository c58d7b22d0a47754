package metaclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	metadomain "github.com/vfg2006/meta-sheets-sync/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-sheets-sync/internal/domain"
)

const (
	insightFields  = "campaign_name,account_name,account_id,impressions,spend,cpm,clicks,cpc,ctr,reach"
	activityFields = "event_time,event_type,extra_data"

	// fim do dia em segundos, para fechar o intervalo de atividades
	endOfDaySeconds = 86399
)

type pageEnvelope struct {
	Data   []json.RawMessage `json:"data"`
	Paging metadomain.Paging `json:"paging"`
}

// FetchPage busca uma página do recurso para a conta e o intervalo de datas.
// Um cursor vazio inicia a varredura; o cursor retornado aponta para a
// próxima página.
func (c *MetaClient) FetchPage(
	ctx context.Context,
	accountID string,
	resource domain.Resource,
	window domain.DateWindow,
	cursor metadomain.Cursor,
) (*Page, error) {
	requestURL, err := c.buildPageURL(accountID, resource, window, cursor)
	if err != nil {
		return nil, err
	}

	body, err := c.get(ctx, accountID, requestURL)
	if err != nil {
		return nil, err
	}

	var envelope pageEnvelope
	if err := jsonDecoder.Unmarshal(body, &envelope); err != nil {
		return nil, &metadomain.MalformedResponseError{
			Reason: fmt.Sprintf("envelope de página indecifrável: %v", err),
		}
	}

	if envelope.Data == nil {
		return nil, &metadomain.MalformedResponseError{
			Reason: "envelope de página sem o campo data",
		}
	}

	return &Page{
		Records: envelope.Data,
		Cursor:  envelope.Paging.NextCursor(),
	}, nil
}

func (c *MetaClient) buildPageURL(
	accountID string,
	resource domain.Resource,
	window domain.DateWindow,
	cursor metadomain.Cursor,
) (string, error) {
	params := url.Values{}
	params.Add("access_token", c.cfg.AccessToken)
	params.Add("limit", strconv.Itoa(c.cfg.PageLimit))

	if cursor.Token != "" {
		params.Add("after", cursor.Token)
	}

	var baseURL string

	switch resource {
	case domain.ResourceInsights:
		baseURL = fmt.Sprintf("%s/act_%s/insights", c.cfg.URL, accountID)
		timeRange := fmt.Sprintf("{\"since\":\"%s\",\"until\":\"%s\"}",
			window.Since.Format(time.DateOnly), window.Until.Format(time.DateOnly))

		params.Add("level", "campaign")
		params.Add("time_range", timeRange)
		params.Add("fields", insightFields)

	case domain.ResourceTransactions:
		baseURL = fmt.Sprintf("%s/act_%s/activities", c.cfg.URL, accountID)

		params.Add("time_start", strconv.FormatInt(window.Since.Unix(), 10))
		params.Add("time_stop", strconv.FormatInt(window.Until.Unix()+endOfDaySeconds, 10))
		params.Add("fields", activityFields)

	default:
		return "", &metadomain.MalformedResponseError{
			Reason: fmt.Sprintf("recurso desconhecido: %s", resource),
		}
	}

	return baseURL + "?" + params.Encode(), nil
}
