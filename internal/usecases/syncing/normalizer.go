package syncing

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	metadomain "github.com/vfg2006/meta-sheets-sync/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-sheets-sync/internal/domain"
	"github.com/vfg2006/meta-sheets-sync/pkg/utils"
)

var jsonDecoder = jsoniter.ConfigCompatibleWithStandardLibrary

// Normalizer converte payloads brutos da API nas formas canônicas
// CampaignInsight e Transaction. Função pura: sem I/O e sem estado
// compartilhado.
type Normalizer struct {
	TaxRate          float64
	DefaultCardLast4 string
}

// NormalizeInsight converte um insight bruto de campanha.
func (n Normalizer) NormalizeInsight(raw json.RawMessage, account domain.AdAccount, date time.Time) (*domain.CampaignInsight, error) {
	var insight metadomain.RawInsight
	if err := jsonDecoder.Unmarshal(raw, &insight); err != nil {
		return nil, &NormalizationError{
			RecordID: account.ID,
			Field:    "payload",
			Reason:   err.Error(),
		}
	}

	if insight.CampaignName == "" {
		return nil, &NormalizationError{
			RecordID: account.ID,
			Field:    "campaign_name",
			Reason:   "ausente no payload",
		}
	}

	accountName := insight.AccountName
	if accountName == "" {
		accountName = account.Name
	}

	out := &domain.CampaignInsight{
		AccountID:    account.ID,
		AccountName:  accountName,
		CampaignName: insight.CampaignName,
		Date:         date,
	}

	var err error
	if out.Impressions, err = parseMetricInt(insight.CampaignName, "impressions", insight.Impressions); err != nil {
		return nil, err
	}
	if out.Spend, err = parseMetricFloat(insight.CampaignName, "spend", insight.Spend); err != nil {
		return nil, err
	}
	if out.CPM, err = parseMetricFloat(insight.CampaignName, "cpm", insight.CPM); err != nil {
		return nil, err
	}
	if out.Clicks, err = parseMetricInt(insight.CampaignName, "clicks", insight.Clicks); err != nil {
		return nil, err
	}
	if out.CPC, err = parseMetricFloat(insight.CampaignName, "cpc", insight.CPC); err != nil {
		return nil, err
	}
	if out.CTR, err = parseMetricFloat(insight.CampaignName, "ctr", insight.CTR); err != nil {
		return nil, err
	}
	if out.Reach, err = parseMetricInt(insight.CampaignName, "reach", insight.Reach); err != nil {
		return nil, err
	}

	return out, nil
}

// NormalizeTransaction converte uma atividade de cobrança. Atividades fora
// do escopo de cobrança retornam errSkipRecord. O imposto é calculado aqui:
// amount_with_tax = round(amount * (1 + tax_rate), 2).
func (n Normalizer) NormalizeTransaction(raw json.RawMessage, account domain.AdAccount) (*domain.Transaction, error) {
	var activity metadomain.RawActivity
	if err := jsonDecoder.Unmarshal(raw, &activity); err != nil {
		return nil, &NormalizationError{
			RecordID: account.ID,
			Field:    "payload",
			Reason:   err.Error(),
		}
	}

	if !activity.IsBillingEvent() {
		return nil, errSkipRecord
	}

	if activity.ExtraData == "" {
		return nil, &NormalizationError{
			RecordID: activity.EventType,
			Field:    "extra_data",
			Reason:   "ausente no payload",
		}
	}

	var extra metadomain.ActivityExtraData
	if err := jsonDecoder.Unmarshal([]byte(activity.ExtraData), &extra); err != nil {
		return nil, &NormalizationError{
			RecordID: activity.EventType,
			Field:    "extra_data",
			Reason:   fmt.Sprintf("JSON indecifrável: %v", err),
		}
	}

	if extra.TransactionID == "" {
		return nil, &NormalizationError{
			RecordID: activity.EventType,
			Field:    "transaction_id",
			Reason:   "ausente no extra_data",
		}
	}

	if extra.NewValue < 0 {
		return nil, &NormalizationError{
			RecordID: extra.TransactionID,
			Field:    "new_value",
			Reason:   "valor negativo",
		}
	}

	date, err := parseEventTime(activity.EventTime)
	if err != nil {
		return nil, &NormalizationError{
			RecordID: extra.TransactionID,
			Field:    "event_time",
			Reason:   err.Error(),
		}
	}

	card := lastFour(extra.CardNumber)
	if card == "" {
		card = n.DefaultCardLast4
	}

	return &domain.Transaction{
		AccountID:     account.ID,
		AccountName:   account.Name,
		TransactionID: extra.TransactionID,
		Date:          date,
		Amount:        extra.NewValue,
		Currency:      extra.Currency,
		AmountWithTax: utils.RoundWithTwoDecimalPlace(extra.NewValue * (1 + n.TaxRate)),
		CardLast4:     card,
		InvoiceURL:    domain.BillingInvoiceURL(account.ID, extra.TransactionID),
	}, nil
}

func parseMetricInt(recordID, field, value string) (int, error) {
	if value == "" {
		return 0, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, &NormalizationError{RecordID: recordID, Field: field, Reason: err.Error()}
	}
	if parsed < 0 {
		return 0, &NormalizationError{RecordID: recordID, Field: field, Reason: "valor negativo"}
	}

	return parsed, nil
}

func parseMetricFloat(recordID, field, value string) (float64, error) {
	if value == "" {
		return 0, nil
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, &NormalizationError{RecordID: recordID, Field: field, Reason: err.Error()}
	}
	if parsed < 0 {
		return 0, &NormalizationError{RecordID: recordID, Field: field, Reason: "valor negativo"}
	}

	return parsed, nil
}

// parseEventTime aceita os formatos de timestamp usados pela Graph API no
// log de atividades.
func parseEventTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("ausente no payload")
	}

	layouts := []string{
		"2006-01-02T15:04:05-0700",
		time.RFC3339,
		time.DateOnly,
	}

	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, fmt.Errorf("timestamp em formato desconhecido: %q", value)
}

func lastFour(card string) string {
	if len(card) < 4 {
		return ""
	}
	return card[len(card)-4:]
}
