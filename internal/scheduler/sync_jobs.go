package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-sheets-sync/internal/config"
	"github.com/vfg2006/meta-sheets-sync/internal/domain"
	"github.com/vfg2006/meta-sheets-sync/internal/usecases/syncing"
	"github.com/vfg2006/meta-sheets-sync/pkg/utils"
)

// SyncJobStatus expõe o estado corrente dos jobs agendados.
type SyncJobStatus struct {
	Running             bool       `json:"running"`
	LastRunStartedAt    *time.Time `json:"last_run_started_at,omitempty"`
	LastRunFinishedAt   *time.Time `json:"last_run_finished_at,omitempty"`
	LastRunResource     string     `json:"last_run_resource,omitempty"`
	LastRunRowsWritten  int        `json:"last_run_rows_written"`
	LastRunPairFailures int        `json:"last_run_pair_failures"`
}

// SyncJobService agenda as sincronizações recorrentes de insights e de
// transações de cobrança. Apenas um run pode estar ativo por vez, inclusive
// quando disparado manualmente pela API.
type SyncJobService struct {
	scheduler *gocron.Scheduler
	appConfig *config.Config
	syncer    *syncing.Service

	runMutex sync.Mutex
	running  bool

	statusMutex sync.Mutex
	status      SyncJobStatus
}

func NewSyncJobService(syncer *syncing.Service, appConfig *config.Config) *SyncJobService {
	scheduler := gocron.NewScheduler(time.UTC)

	logrus.WithFields(logrus.Fields{
		"insights_cron":    appConfig.InsightsSync.CronSchedule,
		"insights_enabled": appConfig.InsightsSync.Enabled,
		"billing_cron":     appConfig.BillingSync.CronSchedule,
		"billing_enabled":  appConfig.BillingSync.Enabled,
	}).Info("Configuração do agendador de sincronização carregada")

	return &SyncJobService{
		scheduler: scheduler,
		appConfig: appConfig,
		syncer:    syncer,
	}
}

// Start registra os jobs habilitados e inicia o agendador.
func (s *SyncJobService) Start(ctx context.Context) error {
	if s.appConfig.InsightsSync.Enabled {
		_, err := s.scheduler.Cron(s.appConfig.InsightsSync.CronSchedule).Do(func() {
			s.runInsightsJob(ctx)
		})
		if err != nil {
			return fmt.Errorf("erro ao agendar sincronização de insights: %w", err)
		}
	} else {
		logrus.Info("Sincronização agendada de insights desabilitada por configuração")
	}

	if s.appConfig.BillingSync.Enabled {
		_, err := s.scheduler.Cron(s.appConfig.BillingSync.CronSchedule).Do(func() {
			s.runBillingJob(ctx)
		})
		if err != nil {
			return fmt.Errorf("erro ao agendar sincronização de cobranças: %w", err)
		}
	} else {
		logrus.Info("Sincronização agendada de cobranças desabilitada por configuração")
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerManualSync dispara um run fora do agendamento. Retorna erro quando já
// existe um run em andamento.
func (s *SyncJobService) TriggerManualSync(ctx context.Context, resource domain.Resource) error {
	switch resource {
	case domain.ResourceInsights:
		go s.runInsightsJob(ctx)
	case domain.ResourceTransactions:
		go s.runBillingJob(ctx)
	default:
		return fmt.Errorf("recurso desconhecido: %s", resource)
	}
	return nil
}

func (s *SyncJobService) GetStatus() SyncJobStatus {
	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()

	status := s.status
	s.runMutex.Lock()
	status.Running = s.running
	s.runMutex.Unlock()

	return status
}

func (s *SyncJobService) runInsightsJob(ctx context.Context) {
	if !s.acquireRun() {
		logrus.Info("Sincronização já em andamento, ignorando job de insights")
		return
	}
	defer s.releaseRun()

	yesterday := utils.Yesterday(time.Now(), s.appConfig.Sync.UTCOffsetHours)

	lookback := s.appConfig.InsightsSync.LookbackDays
	if lookback < 1 {
		lookback = 1
	}
	dates := utils.DateRange(yesterday.AddDate(0, 0, -(lookback-1)), yesterday)

	s.markStarted(domain.ResourceInsights)

	summary, err := s.syncer.SyncInsights(ctx, dates)
	if err != nil {
		logrus.WithError(err).Error("Job de sincronização de insights falhou")
	}
	s.markFinished(summary)
}

func (s *SyncJobService) runBillingJob(ctx context.Context) {
	if !s.acquireRun() {
		logrus.Info("Sincronização já em andamento, ignorando job de cobranças")
		return
	}
	defer s.releaseRun()

	yesterday := utils.Yesterday(time.Now(), s.appConfig.Sync.UTCOffsetHours)

	lookback := s.appConfig.BillingSync.LookbackDays
	if lookback < 1 {
		lookback = 1
	}
	window := domain.DateWindow{
		Since: yesterday.AddDate(0, 0, -(lookback - 1)),
		Until: yesterday,
	}

	s.markStarted(domain.ResourceTransactions)

	summary, err := s.syncer.SyncTransactions(ctx, window)
	if err != nil {
		logrus.WithError(err).Error("Job de sincronização de cobranças falhou")
	}
	s.markFinished(summary)
}

func (s *SyncJobService) acquireRun() bool {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	if s.running {
		return false
	}
	s.running = true
	return true
}

func (s *SyncJobService) releaseRun() {
	s.runMutex.Lock()
	s.running = false
	s.runMutex.Unlock()
}

func (s *SyncJobService) markStarted(resource domain.Resource) {
	now := time.Now()

	s.statusMutex.Lock()
	s.status.LastRunStartedAt = &now
	s.status.LastRunResource = string(resource)
	s.statusMutex.Unlock()
}

func (s *SyncJobService) markFinished(summary *domain.SyncRunSummary) {
	now := time.Now()

	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()

	s.status.LastRunFinishedAt = &now
	if summary != nil {
		s.status.LastRunRowsWritten = summary.RowsWritten
		s.status.LastRunPairFailures = len(summary.PairFailures)
	}
}
