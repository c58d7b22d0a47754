package syncing

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-sheets-sync/internal/domain"
	"github.com/vfg2006/meta-sheets-sync/pkg/utils"
)

// Config são os parâmetros do pipeline que o orquestrador precisa conhecer.
type Config struct {
	InsightsWorksheet     string
	TransactionsWorksheet string
	TaxRate               float64
	DefaultCardLast4      string
}

// Service é o orquestrador do run: valida as contas uma única vez, percorre
// o intervalo de datas em ordem ascendente e executa
// fetch → normalize → dedup → write por par (data, conta). Nenhuma falha de
// par é fatal para o run; o sumário final registra cada uma.
type Service struct {
	cfg        Config
	registry   *domain.AccountRegistry
	validator  ConnectionValidator
	fetcher    PageFetcher
	store      SheetStore
	normalizer Normalizer
	notifier   RunNotifier
	runs       RunRecorder
}

func NewService(
	cfg Config,
	registry *domain.AccountRegistry,
	validator ConnectionValidator,
	fetcher PageFetcher,
	store SheetStore,
) *Service {
	return &Service{
		cfg:       cfg,
		registry:  registry,
		validator: validator,
		fetcher:   fetcher,
		store:     store,
		normalizer: Normalizer{
			TaxRate:          cfg.TaxRate,
			DefaultCardLast4: cfg.DefaultCardLast4,
		},
	}
}

// WithNotifier habilita a notificação do sumário ao final do run.
func (s *Service) WithNotifier(notifier RunNotifier) *Service {
	s.notifier = notifier
	return s
}

// WithRunRecorder habilita a persistência do histórico de runs.
func (s *Service) WithRunRecorder(runs RunRecorder) *Service {
	s.runs = runs
	return s
}

// SyncInsights sincroniza os insights de campanha das datas informadas.
// Retorna ErrAllAccountsFailed quando nenhuma conta passa na validação; o
// sumário é sempre produzido e reportado, inclusive em cancelamento.
func (s *Service) SyncInsights(ctx context.Context, dates []time.Time) (*domain.SyncRunSummary, error) {
	if len(dates) == 0 {
		return nil, errors.New("nenhuma data informada para o run de insights")
	}

	sorted := make([]time.Time, len(dates))
	copy(sorted, dates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	window := domain.DateWindow{Since: sorted[0], Until: sorted[len(sorted)-1]}
	summary := s.newSummary(domain.ResourceInsights, window)

	okAccounts := s.validateAccounts(ctx, summary)
	if len(okAccounts) == 0 {
		s.report(ctx, summary)
		return summary, ErrAllAccountsFailed
	}

	writer := NewBatchWriter(s.store)

loop:
	for _, date := range sorted {
		for _, account := range okAccounts {
			if ctx.Err() != nil {
				logrus.Info("sync: cancelamento recebido, interrompendo após o par corrente")
				break loop
			}

			logrus.WithFields(logrus.Fields{
				"account_id":   account.ID,
				"account_name": account.Name,
				"date":         date.Format(time.DateOnly),
			}).Info("sync: processando insights para conta e data")

			rows, err := s.syncInsightPair(ctx, writer, account, date)
			if err != nil {
				s.recordPairFailure(summary, account, date, err)
				continue
			}

			summary.AddRowsWritten(rows)
		}
	}

	s.report(ctx, summary)
	return summary, nil
}

// SyncTransactions sincroniza as cobranças do intervalo informado. O fetch é
// um por conta sobre o intervalo inteiro; a deduplicação e a escrita são por
// par (data, conta), com uma leitura das chaves existentes antes de cada
// batch e exatamente um append por par.
func (s *Service) SyncTransactions(ctx context.Context, window domain.DateWindow) (*domain.SyncRunSummary, error) {
	summary := s.newSummary(domain.ResourceTransactions, window)

	okAccounts := s.validateAccounts(ctx, summary)
	if len(okAccounts) == 0 {
		s.report(ctx, summary)
		return summary, ErrAllAccountsFailed
	}

	writer := NewBatchWriter(s.store)

	for _, account := range okAccounts {
		if ctx.Err() != nil {
			logrus.Info("sync: cancelamento recebido, interrompendo após o par corrente")
			break
		}

		logrus.WithFields(logrus.Fields{
			"account_id":   account.ID,
			"account_name": account.Name,
			"start_date":   window.Since.Format(time.DateOnly),
			"end_date":     window.Until.Format(time.DateOnly),
		}).Info("sync: processando transações para conta")

		transactions, err := s.fetchTransactions(ctx, account, window)
		if err != nil {
			s.recordPairFailure(summary, account, time.Time{}, err)
			continue
		}

		for _, date := range transactionDates(transactions) {
			if ctx.Err() != nil {
				break
			}

			group := transactionsOn(transactions, date)

			rows, err := s.writeTransactionBatch(ctx, writer, group)
			if err != nil {
				s.recordPairFailure(summary, account, date, err)
				continue
			}

			summary.AddRowsWritten(rows)
		}
	}

	s.report(ctx, summary)
	return summary, nil
}

// validateAccounts roda o validador uma única vez e devolve as contas aptas,
// registrando as reprovadas no sumário. Contas reprovadas nunca recebem
// fetch ou write pelo resto do run.
func (s *Service) validateAccounts(ctx context.Context, summary *domain.SyncRunSummary) []domain.AdAccount {
	accounts := s.registry.Accounts()
	summary.AccountsAttempted = len(accounts)

	results := s.validator.ValidateAll(ctx, accounts)

	okAccounts := make([]domain.AdAccount, 0, len(accounts))
	for _, account := range accounts {
		if results.OK(account.ID) {
			okAccounts = append(okAccounts, account)
			continue
		}

		result := results[account.ID]
		logrus.WithFields(logrus.Fields{
			"account_id": account.ID,
			"error":      result.Error,
		}).Warn("sync: conta reprovada na validação de conexão, excluída do run")

		summary.RecordFailure(domain.PairFailure{
			AccountID: account.ID,
			Category:  domain.ErrorCategoryValidation,
			Error:     result.Error,
		})
	}

	return okAccounts
}

func (s *Service) syncInsightPair(ctx context.Context, writer *BatchWriter, account domain.AdAccount, date time.Time) (int, error) {
	stream := s.fetcher.FetchAll(ctx, account.ID, domain.ResourceInsights, domain.SingleDayWindow(date))

	var insights []*domain.CampaignInsight
	for stream.Next() {
		for _, raw := range stream.Records() {
			insight, err := s.normalizer.NormalizeInsight(raw, account, date)
			if err != nil {
				s.logSkippedRecord(account, err)
				continue
			}
			insights = append(insights, insight)
		}
	}
	if err := stream.Err(); err != nil {
		// registros já coletados do par são descartados para preservar o
		// all-or-nothing do batch
		return 0, err
	}

	return writer.WriteInsights(ctx, s.cfg.InsightsWorksheet, insights)
}

func (s *Service) fetchTransactions(ctx context.Context, account domain.AdAccount, window domain.DateWindow) ([]*domain.Transaction, error) {
	stream := s.fetcher.FetchAll(ctx, account.ID, domain.ResourceTransactions, window)

	var transactions []*domain.Transaction
	for stream.Next() {
		for _, raw := range stream.Records() {
			tx, err := s.normalizer.NormalizeTransaction(raw, account)
			if err != nil {
				if !errors.Is(err, errSkipRecord) {
					s.logSkippedRecord(account, err)
				}
				continue
			}
			transactions = append(transactions, tx)
		}
	}
	if err := stream.Err(); err != nil {
		return nil, err
	}

	return transactions, nil
}

// writeTransactionBatch lê as chaves já persistidas, filtra duplicatas e
// grava o batch do par em um único append. As chaves são lidas uma vez antes
// da escrita e nunca atualizadas no meio do batch.
func (s *Service) writeTransactionBatch(ctx context.Context, writer *BatchWriter, group []*domain.Transaction) (int, error) {
	// a aba precisa existir antes da leitura das chaves; o cache do writer
	// garante uma única criação por run
	if err := writer.Ensure(ctx, s.cfg.TransactionsWorksheet, TransactionsHeader); err != nil {
		return 0, &WriteError{Worksheet: s.cfg.TransactionsWorksheet, Rows: len(group), Err: err}
	}

	rows, err := s.store.ReadRows(ctx, s.cfg.TransactionsWorksheet)
	if err != nil {
		return 0, &WriteError{Worksheet: s.cfg.TransactionsWorksheet, Rows: len(group), Err: err}
	}

	existing := LoadExistingTransactionKeys(rows, s.registry)
	filtered := FilterNewTransactions(group, existing)

	return writer.WriteTransactions(ctx, s.cfg.TransactionsWorksheet, filtered)
}

func (s *Service) newSummary(resource domain.Resource, window domain.DateWindow) *domain.SyncRunSummary {
	runID, err := utils.GenerateRunID()
	if err != nil {
		runID = "unknown"
	}

	return domain.NewSyncRunSummary(runID, resource, window)
}

func (s *Service) recordPairFailure(summary *domain.SyncRunSummary, account domain.AdAccount, date time.Time, err error) {
	fields := logrus.Fields{
		"account_id": account.ID,
		"error":      err.Error(),
	}
	if !date.IsZero() {
		fields["date"] = date.Format(time.DateOnly)
	}
	logrus.WithFields(fields).Error("sync: falha no par, avançando para o próximo")

	summary.RecordFailure(domain.PairFailure{
		AccountID: account.ID,
		Date:      date,
		Category:  categorize(err),
		Error:     err.Error(),
	})
}

func (s *Service) logSkippedRecord(account domain.AdAccount, err error) {
	logrus.WithFields(logrus.Fields{
		"account_id": account.ID,
		"error":      err.Error(),
	}).Warn("sync: registro pulado na normalização")
}

// report finaliza o sumário e o entrega aos colaboradores de relatório.
// Roda mesmo em cancelamento, com o que foi acumulado até então.
func (s *Service) report(ctx context.Context, summary *domain.SyncRunSummary) {
	summary.Finalize()

	logrus.WithFields(logrus.Fields{
		"run_id":             summary.RunID,
		"resource":           summary.Resource,
		"start_date":         summary.StartDate.Format(time.DateOnly),
		"end_date":           summary.EndDate.Format(time.DateOnly),
		"accounts_attempted": summary.AccountsAttempted,
		"accounts_failed":    summary.AccountsFailed(),
		"rows_written":       summary.RowsWritten,
		"duration":           summary.FinishedAt.Sub(summary.StartedAt).String(),
	}).Info("sync: run finalizado")

	reportCtx := context.WithoutCancel(ctx)

	if s.notifier != nil {
		s.notifier.NotifyRunFinished(reportCtx, summary)
	}

	if s.runs != nil {
		if err := s.runs.SaveRun(reportCtx, summary); err != nil {
			logrus.WithError(err).Warn("sync: falha ao persistir histórico do run")
		}
	}
}

// transactionDates devolve as datas distintas das transações, ascendentes.
func transactionDates(transactions []*domain.Transaction) []time.Time {
	seen := make(map[time.Time]struct{})
	var dates []time.Time

	for _, tx := range transactions {
		if _, ok := seen[tx.Date]; ok {
			continue
		}
		seen[tx.Date] = struct{}{}
		dates = append(dates, tx.Date)
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

func transactionsOn(transactions []*domain.Transaction, date time.Time) []*domain.Transaction {
	var group []*domain.Transaction
	for _, tx := range transactions {
		if tx.Date.Equal(date) {
			group = append(group, tx)
		}
	}
	return group
}
