package syncing

import (
	"context"
	"encoding/json"

	"github.com/vfg2006/meta-sheets-sync/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

// PageStream é a sequência finita e não-reiniciável de páginas de um par
// (conta, intervalo). Consumida no estilo bufio.Scanner.
type PageStream interface {
	Next() bool
	Records() []json.RawMessage
	Err() error
}

// PageFetcher inicia a varredura paginada de um recurso.
type PageFetcher interface {
	FetchAll(ctx context.Context, accountID string, resource domain.Resource, window domain.DateWindow) PageStream
}

// ConnectionValidator produz o cache de vereditos do run, com exatamente um
// probe por conta.
type ConnectionValidator interface {
	ValidateAll(ctx context.Context, accounts []domain.AdAccount) domain.ConnectionResults
}

// SheetStore são as primitivas da planilha de destino. AppendRows é
// all-or-nothing na fronteira da chamada: nenhuma linha parcial é escrita
// sem o batch inteiro.
type SheetStore interface {
	EnsureWorksheet(ctx context.Context, worksheet string, header []string) error
	ReadRows(ctx context.Context, worksheet string) ([][]string, error)
	AppendRows(ctx context.Context, worksheet string, rows [][]interface{}) error
}

// RunNotifier entrega o sumário final a um endpoint externo. Fire-and-forget:
// falha de entrega nunca afeta o resultado do run.
type RunNotifier interface {
	NotifyRunFinished(ctx context.Context, summary *domain.SyncRunSummary)
}

// RunRecorder persiste sumários de runs finalizados para histórico.
// Opcional; o pipeline nunca lê de volta.
type RunRecorder interface {
	SaveRun(ctx context.Context, summary *domain.SyncRunSummary) error
}
