package domain

import (
	"sort"
	"time"
)

// Resource identifica o conjunto de dados sincronizado em um run.
type Resource string

const (
	ResourceInsights     Resource = "insights"
	ResourceTransactions Resource = "transactions"
)

// DateWindow é o intervalo fechado [Since, Until] de uma busca.
type DateWindow struct {
	Since time.Time
	Until time.Time
}

func SingleDayWindow(date time.Time) DateWindow {
	return DateWindow{Since: date, Until: date}
}

// ErrorCategory classifica a falha de um par (data, conta) no sumário final.
type ErrorCategory string

const (
	ErrorCategoryAuth           ErrorCategory = "auth"
	ErrorCategoryFetchExhausted ErrorCategory = "fetch_exhausted"
	ErrorCategoryMalformed      ErrorCategory = "malformed_response"
	ErrorCategoryWrite          ErrorCategory = "write"
	ErrorCategoryValidation     ErrorCategory = "validation"
)

// PairFailure registra a falha de um par (data, conta). Para falhas de
// validação a data é zero, já que a conta inteira foi excluída do run.
type PairFailure struct {
	AccountID string        `json:"account_id"`
	Date      time.Time     `json:"date,omitempty"`
	Category  ErrorCategory `json:"category"`
	Error     string        `json:"error"`
}

// SyncRunSummary é construído incrementalmente pelo orquestrador, que é seu
// único dono, e finalizado no estágio de Reporting.
type SyncRunSummary struct {
	RunID             string        `json:"run_id"`
	Resource          Resource      `json:"resource"`
	StartDate         time.Time     `json:"start_date"`
	EndDate           time.Time     `json:"end_date"`
	AccountsAttempted int           `json:"accounts_attempted"`
	RowsWritten       int           `json:"rows_written"`
	PairFailures      []PairFailure `json:"pair_failures,omitempty"`
	StartedAt         time.Time     `json:"started_at"`
	FinishedAt        time.Time     `json:"finished_at"`

	failedAccounts map[string]struct{}
}

func NewSyncRunSummary(runID string, resource Resource, window DateWindow) *SyncRunSummary {
	return &SyncRunSummary{
		RunID:          runID,
		Resource:       resource,
		StartDate:      window.Since,
		EndDate:        window.Until,
		StartedAt:      time.Now(),
		failedAccounts: make(map[string]struct{}),
	}
}

func (s *SyncRunSummary) RecordFailure(failure PairFailure) {
	s.PairFailures = append(s.PairFailures, failure)
	s.failedAccounts[failure.AccountID] = struct{}{}
}

func (s *SyncRunSummary) AddRowsWritten(n int) {
	s.RowsWritten += n
}

// AccountsFailed retorna o conjunto de contas com ao menos uma falha,
// ordenado para saída estável.
func (s *SyncRunSummary) AccountsFailed() []string {
	out := make([]string, 0, len(s.failedAccounts))
	for id := range s.failedAccounts {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (s *SyncRunSummary) Finalize() {
	s.FinishedAt = time.Now()
}
