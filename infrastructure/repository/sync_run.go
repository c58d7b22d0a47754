package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/meta-sheets-sync/infrastructure/database/postgres"
	"github.com/vfg2006/meta-sheets-sync/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	syncRunsTable = "sync_runs sr"
)

type SyncRunRepository interface {
	EnsureSchema(ctx context.Context) error
	SaveRun(ctx context.Context, summary *domain.SyncRunSummary) error
	GetLastRun(ctx context.Context, resource domain.Resource) (*domain.SyncRunSummary, error)
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}

type syncRunRepository struct {
	conn *postgres.Connection
}

func NewSyncRunRepository(conn *postgres.Connection) SyncRunRepository {
	return &syncRunRepository{
		conn: conn,
	}
}

// EnsureSchema cria a tabela de histórico quando ela ainda não existe.
// Idempotente, executada uma vez na inicialização.
func (r *syncRunRepository) EnsureSchema(ctx context.Context) error {
	ddl := `
		CREATE TABLE IF NOT EXISTS sync_runs (
			run_id             VARCHAR(32) PRIMARY KEY,
			resource           VARCHAR(16) NOT NULL,
			start_date         DATE NOT NULL,
			end_date           DATE NOT NULL,
			accounts_attempted INTEGER NOT NULL,
			rows_written       INTEGER NOT NULL,
			pair_failures      JSONB,
			started_at         TIMESTAMPTZ NOT NULL,
			finished_at        TIMESTAMPTZ NOT NULL
		)`

	if _, err := r.conn.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("erro ao criar a tabela sync_runs: %w", err)
	}

	return nil
}

func (r *syncRunRepository) SaveRun(ctx context.Context, summary *domain.SyncRunSummary) error {
	failures, err := json.Marshal(summary.PairFailures)
	if err != nil {
		return fmt.Errorf("erro ao serializar as falhas do run: %w", err)
	}

	query, args, err := squirrel.
		Insert("sync_runs").
		Columns(
			"run_id",
			"resource",
			"start_date",
			"end_date",
			"accounts_attempted",
			"rows_written",
			"pair_failures",
			"started_at",
			"finished_at",
		).
		Values(
			summary.RunID,
			string(summary.Resource),
			summary.StartDate.Format("2006-01-02"),
			summary.EndDate.Format("2006-01-02"),
			summary.AccountsAttempted,
			summary.RowsWritten,
			failures,
			summary.StartedAt,
			summary.FinishedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao salvar o histórico do run: %w", err)
	}

	return nil
}

func (r *syncRunRepository) GetLastRun(ctx context.Context, resource domain.Resource) (*domain.SyncRunSummary, error) {
	query, args, err := squirrel.
		Select("sr.run_id, sr.resource, sr.start_date, sr.end_date, sr.accounts_attempted, sr.rows_written, sr.pair_failures, sr.started_at, sr.finished_at").
		From(syncRunsTable).
		Where(squirrel.Eq{"sr.resource": string(resource)}).
		OrderBy("sr.finished_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRowContext(ctx, query, args...)
	summary, err := r.scanRun(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear o run: %w", err)
	}

	return summary, nil
}

func (r *syncRunRepository) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)

	query, args, err := squirrel.
		Delete("sync_runs").
		Where(squirrel.Lt{"finished_at": cutoff}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao remover runs antigos: %w", err)
	}

	return result.RowsAffected()
}

func (r *syncRunRepository) scanRun(row *sql.Row) (*domain.SyncRunSummary, error) {
	var (
		summary  domain.SyncRunSummary
		resource string
		failures []byte
	)

	if err := row.Scan(
		&summary.RunID,
		&resource,
		&summary.StartDate,
		&summary.EndDate,
		&summary.AccountsAttempted,
		&summary.RowsWritten,
		&failures,
		&summary.StartedAt,
		&summary.FinishedAt,
	); err != nil {
		return nil, err
	}

	summary.Resource = domain.Resource(resource)

	if len(failures) > 0 {
		if err := json.Unmarshal(failures, &summary.PairFailures); err != nil {
			return nil, fmt.Errorf("erro ao desserializar as falhas do run: %w", err)
		}
	}

	return &summary, nil
}
