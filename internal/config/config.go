package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/meta-sheets-sync/internal/domain"
)

// ConfigurationError indica configuração ausente ou inválida. O processo não
// deve iniciar nenhum run quando este erro é retornado.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuração inválida (%s): %s", e.Field, e.Reason)
}

type Config struct {
	App          App         `mapstructure:",squash"`
	Server       Server      `mapstructure:",squash"`
	Database     Database    `mapstructure:",squash"`
	Meta         Meta        `mapstructure:",squash"`
	Sheets       Sheets      `mapstructure:",squash"`
	Sync         Sync        `mapstructure:",squash"`
	InsightsSync JobSchedule `mapstructure:",squash"`
	BillingSync  BillingJob  `mapstructure:",squash"`
	Notifier     Notifier    `mapstructure:",squash"`
	Auth         Auth        `mapstructure:",squash"`

	// Accounts é derivado de META_ACCOUNTS e nunca lido diretamente do viper.
	Accounts *domain.AccountRegistry `mapstructure:"-"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host    string `mapstructure:"host"`
	Port    string `mapstructure:"port"`
	Enabled bool   `mapstructure:"server_enabled"`
}

type Database struct {
	Enabled       bool   `mapstructure:"database_enabled"`
	DSN           string `mapstructure:"-"`
	Driver        string `mapstructure:"database_driver"`
	Password      string `mapstructure:"database_password"`
	RetentionDays int    `mapstructure:"database_retention_days"`
	URL           string `mapstructure:"database_url"`
	User          string `mapstructure:"database_user"`
}

type Meta struct {
	BaseURL        string `mapstructure:"meta_base_url"`
	URL            string `mapstructure:"meta_url"`
	Version        string `mapstructure:"meta_version"`
	AccessToken    string `mapstructure:"meta_access_token"`
	AccountsRaw    string `mapstructure:"meta_accounts"`
	TimeoutSeconds int    `mapstructure:"meta_timeout_seconds"`
	PageLimit      int    `mapstructure:"meta_page_limit"`
}

type Sheets struct {
	SpreadsheetID   string `mapstructure:"sheets_spreadsheet_id"`
	CredentialsFile string `mapstructure:"sheets_credentials_file"`
}

type Sync struct {
	TaxRate               float64 `mapstructure:"sync_tax_rate"`
	UTCOffsetHours        int     `mapstructure:"sync_utc_offset_hours"`
	DefaultCardLast4      string  `mapstructure:"sync_default_card_last4"`
	InsightsWorksheet     string  `mapstructure:"sync_insights_worksheet"`
	TransactionsWorksheet string  `mapstructure:"sync_transactions_worksheet"`
	MaxRetries            int     `mapstructure:"sync_max_retries"`
	BaseDelaySeconds      int     `mapstructure:"sync_base_delay_seconds"`
	MaxDelaySeconds       int     `mapstructure:"sync_max_delay_seconds"`
}

type JobSchedule struct {
	CronSchedule string `mapstructure:"insights_sync_cron"`
	LookbackDays int    `mapstructure:"insights_sync_lookback_days"`
	Enabled      bool   `mapstructure:"insights_sync_enabled"`
}

type BillingJob struct {
	CronSchedule string `mapstructure:"billing_sync_cron"`
	LookbackDays int    `mapstructure:"billing_sync_lookback_days"`
	Enabled      bool   `mapstructure:"billing_sync_enabled"`
}

type Notifier struct {
	Enabled bool   `mapstructure:"notifier_enabled"`
	URL     string `mapstructure:"notifier_url"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("SERVER_ENABLED", false)

	viper.SetDefault("DATABASE_ENABLED", false)
	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/metasync")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_RETENTION_DAYS", 180)

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_TIMEOUT_SECONDS", 30)
	viper.SetDefault("META_PAGE_LIMIT", 1000)

	viper.SetDefault("SHEETS_CREDENTIALS_FILE", "credentials.json")

	viper.SetDefault("SYNC_TAX_RATE", 0.11)
	viper.SetDefault("SYNC_UTC_OFFSET_HOURS", 7)
	viper.SetDefault("SYNC_DEFAULT_CARD_LAST4", "N/A")
	viper.SetDefault("SYNC_INSIGHTS_WORKSHEET", "[wip] boost ads")
	viper.SetDefault("SYNC_TRANSACTIONS_WORKSHEET", "Meta Transaction IDs")
	viper.SetDefault("SYNC_MAX_RETRIES", 3)
	viper.SetDefault("SYNC_BASE_DELAY_SECONDS", 2)
	viper.SetDefault("SYNC_MAX_DELAY_SECONDS", 60)

	viper.SetDefault("INSIGHTS_SYNC_CRON", "0 3 * * *") // Todos os dias às 3h da manhã
	viper.SetDefault("INSIGHTS_SYNC_LOOKBACK_DAYS", 1)
	viper.SetDefault("INSIGHTS_SYNC_ENABLED", false)

	viper.SetDefault("BILLING_SYNC_CRON", "0 4 * * *") // Todos os dias às 4h da manhã
	viper.SetDefault("BILLING_SYNC_LOOKBACK_DAYS", 90)
	viper.SetDefault("BILLING_SYNC_ENABLED", false)

	viper.SetDefault("NOTIFIER_ENABLED", false)
	viper.SetDefault("NOTIFIER_URL", "")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if config.Meta.URL == "" {
		config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	accounts, err := ParseAccounts(config.Meta.AccountsRaw)
	if err != nil {
		return nil, err
	}
	config.Accounts = accounts

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate confere o mínimo necessário para um run: token de acesso, planilha
// alvo e ao menos uma conta configurada.
func (c *Config) Validate() error {
	if c.Meta.AccessToken == "" {
		return &ConfigurationError{Field: "META_ACCESS_TOKEN", Reason: "token de acesso não informado"}
	}

	if c.Sheets.SpreadsheetID == "" {
		return &ConfigurationError{Field: "SHEETS_SPREADSHEET_ID", Reason: "planilha de destino não informada"}
	}

	if c.Accounts == nil || c.Accounts.Len() == 0 {
		return &ConfigurationError{Field: "META_ACCOUNTS", Reason: "nenhuma conta de anúncio configurada"}
	}

	if c.Sync.TaxRate < 0 {
		return &ConfigurationError{Field: "SYNC_TAX_RATE", Reason: "taxa de imposto negativa"}
	}

	return nil
}

// ParseAccounts interpreta o mapeamento "id:nome,id:nome" de META_ACCOUNTS.
// IDs duplicados são rejeitados para não corromper a deduplicação por conta.
func ParseAccounts(raw string) (*domain.AccountRegistry, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.NewAccountRegistry(nil), nil
	}

	entries := strings.Split(raw, ",")
	accounts := make([]domain.AdAccount, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))

	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		id, name, found := strings.Cut(entry, ":")
		id = strings.TrimSpace(id)
		name = strings.TrimSpace(name)
		if !found || id == "" || name == "" {
			return nil, &ConfigurationError{
				Field:  "META_ACCOUNTS",
				Reason: fmt.Sprintf("entrada inválida %q, esperado id:nome", entry),
			}
		}

		if _, dup := seen[id]; dup {
			return nil, &ConfigurationError{
				Field:  "META_ACCOUNTS",
				Reason: fmt.Sprintf("conta %s configurada mais de uma vez", id),
			}
		}
		seen[id] = struct{}{}

		accounts = append(accounts, domain.AdAccount{ID: id, Name: name})
	}

	return domain.NewAccountRegistry(accounts), nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
