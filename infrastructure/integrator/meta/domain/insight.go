package metadomain

// RawInsight é o payload bruto de um insight de campanha como a Graph API o
// devolve: métricas numéricas chegam como strings.
type RawInsight struct {
	AccountID    string `json:"account_id"`
	AccountName  string `json:"account_name"`
	CampaignName string `json:"campaign_name"`
	Impressions  string `json:"impressions"`
	Spend        string `json:"spend"`
	CPM          string `json:"cpm"`
	Clicks       string `json:"clicks"`
	CPC          string `json:"cpc"`
	CTR          string `json:"ctr"`
	Reach        string `json:"reach"`
	DateStart    string `json:"date_start"`
	DateStop     string `json:"date_stop"`
}
