package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-sheets-sync/infrastructure/database/postgres"
	"github.com/vfg2006/meta-sheets-sync/infrastructure/integrator/meta"
	"github.com/vfg2006/meta-sheets-sync/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/meta-sheets-sync/infrastructure/integrator/sheets/sheetsclient"
	"github.com/vfg2006/meta-sheets-sync/infrastructure/repository"
	"github.com/vfg2006/meta-sheets-sync/internal/api"
	"github.com/vfg2006/meta-sheets-sync/internal/config"
	"github.com/vfg2006/meta-sheets-sync/internal/domain"
	"github.com/vfg2006/meta-sheets-sync/internal/notifier"
	"github.com/vfg2006/meta-sheets-sync/internal/scheduler"
	"github.com/vfg2006/meta-sheets-sync/internal/usecases/syncing"
	"github.com/vfg2006/meta-sheets-sync/internal/usecases/validating"
	"github.com/vfg2006/meta-sheets-sync/pkg/retry"
	"github.com/vfg2006/meta-sheets-sync/pkg/utils"
)

// Códigos de saída do processo
const (
	exitOK            = 0
	exitConfiguration = 1
	exitAllFailed     = 2
)

type cliFlags struct {
	date      string
	startDate string
	endDate   string
	billing   bool
	lastDays  int
	serve     bool
}

func main() {
	configureLogger()

	flags := parseFlags()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Error("Erro ao carregar a configuração")
		os.Exit(exitConfiguration)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	// Interrupção para o run após o par corrente e ainda executa o estágio
	// de relatório antes de sair
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Handle do destino: falhar aqui é fatal, nenhum run pode começar
	store, err := sheetsclient.NewClient(ctx, sheetsclient.Config{
		SpreadsheetID:   cfg.Sheets.SpreadsheetID,
		CredentialsFile: cfg.Sheets.CredentialsFile,
	})
	if err != nil {
		logrus.WithError(err).Error("Erro ao abrir a planilha de destino")
		os.Exit(exitConfiguration)
	}

	metaClient := metaclient.NewClient(metaclient.Config{
		URL:         cfg.Meta.URL,
		AccessToken: cfg.Meta.AccessToken,
		Timeout:     time.Duration(cfg.Meta.TimeoutSeconds) * time.Second,
		PageLimit:   cfg.Meta.PageLimit,
	})

	policy := retry.Policy{
		MaxRetries: cfg.Sync.MaxRetries,
		BaseDelay:  time.Duration(cfg.Sync.BaseDelaySeconds) * time.Second,
		Multiplier: 2,
		MaxDelay:   time.Duration(cfg.Sync.MaxDelaySeconds) * time.Second,
	}

	fetcher := meta.NewFetcher(metaClient, policy)
	validator := validating.NewService(metaClient)

	syncer := syncing.NewService(
		syncing.Config{
			InsightsWorksheet:     cfg.Sync.InsightsWorksheet,
			TransactionsWorksheet: cfg.Sync.TransactionsWorksheet,
			TaxRate:               cfg.Sync.TaxRate,
			DefaultCardLast4:      cfg.Sync.DefaultCardLast4,
		},
		cfg.Accounts,
		validator,
		fetcherAdapter{fetcher},
		store,
	)

	if cfg.Notifier.Enabled && cfg.Notifier.URL != "" {
		syncer = syncer.WithNotifier(notifier.NewWebhookNotifier(cfg.Notifier.URL))
	}

	var runRepository repository.SyncRunRepository
	if cfg.Database.Enabled {
		pgConn, err := postgres.NewConnection(ctx, cfg.Database)
		if err != nil {
			logrus.WithError(err).Error("Erro ao conectar ao PostgreSQL")
			os.Exit(exitConfiguration)
		}
		defer pgConn.Close()

		runRepository = repository.NewSyncRunRepository(pgConn)
		if err := runRepository.EnsureSchema(ctx); err != nil {
			logrus.WithError(err).Error("Erro ao preparar a tabela de histórico")
			os.Exit(exitConfiguration)
		}

		// varredura de retenção: runs mais antigos que a janela configurada
		// saem do histórico a cada inicialização
		if cfg.Database.RetentionDays > 0 {
			removed, err := runRepository.DeleteOlderThan(ctx, cfg.Database.RetentionDays)
			if err != nil {
				logrus.WithError(err).Warn("Erro na varredura de retenção do histórico")
			} else if removed > 0 {
				logrus.WithField("removed", removed).Info("Runs antigos removidos do histórico")
			}
		}

		syncer = syncer.WithRunRecorder(runRepository)
		logrus.Info("Histórico de runs habilitado no PostgreSQL")
	}

	if flags.serve || cfg.Server.Enabled {
		runServer(ctx, cfg, syncer, runRepository)
		return
	}

	os.Exit(runOnce(ctx, cfg, syncer, flags))
}

func parseFlags() cliFlags {
	flags := cliFlags{}

	flag.StringVar(&flags.date, "date", "", "data única para sincronizar insights (YYYY-MM-DD, padrão: ontem)")
	flag.StringVar(&flags.startDate, "start-date", "", "início do intervalo de insights (YYYY-MM-DD)")
	flag.StringVar(&flags.endDate, "end-date", "", "fim do intervalo de insights (YYYY-MM-DD)")
	flag.BoolVar(&flags.billing, "billing", false, "sincronizar transações de cobrança em vez de insights")
	flag.IntVar(&flags.lastDays, "last-days", 90, "janela em dias para a sincronização de cobranças")
	flag.BoolVar(&flags.serve, "serve", false, "iniciar o servidor HTTP e o agendador em vez de um run único")
	flag.Parse()

	return flags
}

// runOnce executa um único run e devolve o código de saída do processo.
func runOnce(ctx context.Context, cfg *config.Config, syncer *syncing.Service, flags cliFlags) int {
	var summary *domain.SyncRunSummary
	var err error

	if flags.billing {
		window, werr := billingWindow(cfg, flags)
		if werr != nil {
			logrus.WithError(werr).Error("Intervalo de cobranças inválido")
			return exitConfiguration
		}
		summary, err = syncer.SyncTransactions(ctx, window)
	} else {
		dates, derr := insightDates(cfg, flags)
		if derr != nil {
			logrus.WithError(derr).Error("Datas de insights inválidas")
			return exitConfiguration
		}
		summary, err = syncer.SyncInsights(ctx, dates)
	}

	if err != nil {
		if errors.Is(err, syncing.ErrAllAccountsFailed) {
			printFailures(summary)
			return exitAllFailed
		}
		logrus.WithError(err).Error("Run de sincronização falhou")
		return exitConfiguration
	}

	printFailures(summary)
	return exitOK
}

// insightDates resolve as datas do run de insights a partir das flags.
// Sem flags o run cobre o "ontem" do fuso configurado.
func insightDates(cfg *config.Config, flags cliFlags) ([]time.Time, error) {
	if flags.startDate != "" || flags.endDate != "" {
		if flags.startDate == "" || flags.endDate == "" {
			return nil, errors.New("start-date e end-date devem ser informados juntos")
		}

		start, err := utils.ParseDate(flags.startDate)
		if err != nil {
			return nil, fmt.Errorf("start-date inválida: %w", err)
		}
		end, err := utils.ParseDate(flags.endDate)
		if err != nil {
			return nil, fmt.Errorf("end-date inválida: %w", err)
		}
		if end.Before(*start) {
			return nil, errors.New("end-date anterior a start-date")
		}

		return utils.DateRange(*start, *end), nil
	}

	if flags.date != "" {
		date, err := utils.ParseDate(flags.date)
		if err != nil {
			return nil, fmt.Errorf("date inválida: %w", err)
		}
		return []time.Time{*date}, nil
	}

	return []time.Time{utils.Yesterday(time.Now(), cfg.Sync.UTCOffsetHours)}, nil
}

// billingWindow resolve a janela do run de cobranças: os últimos N dias até
// o "ontem" do fuso configurado, ou o intervalo explícito das flags.
func billingWindow(cfg *config.Config, flags cliFlags) (domain.DateWindow, error) {
	if flags.startDate != "" && flags.endDate != "" {
		start, err := utils.ParseDate(flags.startDate)
		if err != nil {
			return domain.DateWindow{}, fmt.Errorf("start-date inválida: %w", err)
		}
		end, err := utils.ParseDate(flags.endDate)
		if err != nil {
			return domain.DateWindow{}, fmt.Errorf("end-date inválida: %w", err)
		}
		if end.Before(*start) {
			return domain.DateWindow{}, errors.New("end-date anterior a start-date")
		}
		return domain.DateWindow{Since: *start, Until: *end}, nil
	}

	if flags.lastDays < 1 {
		return domain.DateWindow{}, errors.New("last-days deve ser ao menos 1")
	}

	until := utils.Yesterday(time.Now(), cfg.Sync.UTCOffsetHours)
	since := until.AddDate(0, 0, -(flags.lastDays - 1))

	return domain.DateWindow{Since: since, Until: until}, nil
}

// printFailures escreve o resumo das falhas do run na saída padrão
func printFailures(summary *domain.SyncRunSummary) {
	if summary == nil {
		return
	}

	fmt.Printf("run %s: %d linha(s) escrita(s)\n", summary.RunID, summary.RowsWritten)

	for _, failure := range summary.PairFailures {
		if failure.Date.IsZero() {
			fmt.Printf("  conta %s: %s (%s)\n", failure.AccountID, failure.Error, failure.Category)
			continue
		}
		fmt.Printf("  conta %s, data %s: %s (%s)\n",
			failure.AccountID, failure.Date.Format(time.DateOnly), failure.Error, failure.Category)
	}
}

func runServer(ctx context.Context, cfg *config.Config, syncer *syncing.Service, runRepository repository.SyncRunRepository) {
	syncJobService := scheduler.NewSyncJobService(syncer, cfg)

	if err := syncJobService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização")
	} else {
		logrus.Info("Agendador de sincronização iniciado com sucesso")
	}

	server, err := api.New(cfg, syncJobService, runRepository)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// fetcherAdapter adapta o stream concreto do integrador à interface do
// pipeline.
type fetcherAdapter struct {
	fetcher *meta.Fetcher
}

func (a fetcherAdapter) FetchAll(ctx context.Context, accountID string, resource domain.Resource, window domain.DateWindow) syncing.PageStream {
	return a.fetcher.FetchAll(ctx, accountID, resource, window)
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}
