package domain

import "time"

// CampaignInsight é o registro canônico de performance de uma campanha em um
// dia. Produzido pelo normalizador e consumido imediatamente pelo batch
// writer; nunca é mutado depois de criado.
type CampaignInsight struct {
	AccountID    string    `json:"account_id"`
	AccountName  string    `json:"account_name"`
	CampaignName string    `json:"campaign_name"`
	Date         time.Time `json:"date"`
	Impressions  int       `json:"impressions"`
	Spend        float64   `json:"spend"`
	CPM          float64   `json:"cpm"`
	Clicks       int       `json:"clicks"`
	CPC          float64   `json:"cpc"`
	CTR          float64   `json:"ctr"`
	Reach        int       `json:"reach"`
}
