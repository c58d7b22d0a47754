package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/meta-sheets-sync/internal/domain"
)

func TestParseAccounts(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantErr  bool
		wantLen  int
		validate func(t *testing.T, registry *domain.AccountRegistry)
	}{
		{
			name:    "Mapeamento simples com duas contas",
			raw:     "123456:Loja Norte,789012:Loja Sul",
			wantLen: 2,
			validate: func(t *testing.T, registry *domain.AccountRegistry) {
				acc, ok := registry.Get("123456")
				require.True(t, ok)
				assert.Equal(t, "Loja Norte", acc.Name)

				acc, ok = registry.GetByName("Loja Sul")
				require.True(t, ok)
				assert.Equal(t, "789012", acc.ID)
			},
		},
		{
			name:    "Espaços em volta das entradas são ignorados",
			raw:     " 123456 : Loja Norte , 789012:Loja Sul ",
			wantLen: 2,
			validate: func(t *testing.T, registry *domain.AccountRegistry) {
				_, ok := registry.GetByName("Loja Norte")
				assert.True(t, ok)
			},
		},
		{
			name:    "Mapeamento vazio produz registro sem contas",
			raw:     "",
			wantLen: 0,
		},
		{
			name:    "Entrada sem nome é rejeitada",
			raw:     "123456",
			wantErr: true,
		},
		{
			name:    "Entrada com nome vazio é rejeitada",
			raw:     "123456:",
			wantErr: true,
		},
		{
			name:    "ID duplicado é rejeitado",
			raw:     "123456:Loja Norte,123456:Loja Sul",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry, err := ParseAccounts(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				var cfgErr *ConfigurationError
				assert.ErrorAs(t, err, &cfgErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantLen, registry.Len())
			if tt.validate != nil {
				tt.validate(t, registry)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	registry, err := ParseAccounts("123456:Loja Norte")
	require.NoError(t, err)

	valid := &Config{
		Meta:     Meta{AccessToken: "token"},
		Sheets:   Sheets{SpreadsheetID: "sheet-id"},
		Sync:     Sync{TaxRate: 0.11},
		Accounts: registry,
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{
			name:   "Token ausente",
			mutate: func(c *Config) { c.Meta.AccessToken = "" },
			field:  "META_ACCESS_TOKEN",
		},
		{
			name:   "Planilha ausente",
			mutate: func(c *Config) { c.Sheets.SpreadsheetID = "" },
			field:  "SHEETS_SPREADSHEET_ID",
		},
		{
			name:   "Nenhuma conta configurada",
			mutate: func(c *Config) { c.Accounts, _ = ParseAccounts("") },
			field:  "META_ACCOUNTS",
		},
		{
			name:   "Taxa de imposto negativa",
			mutate: func(c *Config) { c.Sync.TaxRate = -0.1 },
			field:  "SYNC_TAX_RATE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}
