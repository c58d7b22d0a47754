package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/meta-sheets-sync/internal/domain"
)

func TestAcquireRunGaranteUmRunPorVez(t *testing.T) {
	service := &SyncJobService{}

	require.True(t, service.acquireRun())

	// segundo run concorrente é recusado enquanto o primeiro não termina
	assert.False(t, service.acquireRun())

	service.releaseRun()
	assert.True(t, service.acquireRun())
}

func TestGetStatusRefleteRunEmAndamento(t *testing.T) {
	service := &SyncJobService{}

	assert.False(t, service.GetStatus().Running)

	require.True(t, service.acquireRun())
	assert.True(t, service.GetStatus().Running)

	service.releaseRun()
	assert.False(t, service.GetStatus().Running)
}

func TestMarkFinishedAtualizaStatus(t *testing.T) {
	service := &SyncJobService{}

	service.markStarted(domain.ResourceInsights)
	service.markFinished(&domain.SyncRunSummary{
		RowsWritten: 12,
		PairFailures: []domain.PairFailure{
			{AccountID: "123456"},
		},
	})

	status := service.GetStatus()
	assert.Equal(t, string(domain.ResourceInsights), status.LastRunResource)
	assert.Equal(t, 12, status.LastRunRowsWritten)
	assert.Equal(t, 1, status.LastRunPairFailures)
	require.NotNil(t, status.LastRunStartedAt)
	require.NotNil(t, status.LastRunFinishedAt)
}

func TestMarkFinishedSemSumario(t *testing.T) {
	service := &SyncJobService{}

	service.markFinished(nil)

	status := service.GetStatus()
	assert.Zero(t, status.LastRunRowsWritten)
	require.NotNil(t, status.LastRunFinishedAt)
}

func TestTriggerManualSyncRecusaRecursoDesconhecido(t *testing.T) {
	service := &SyncJobService{}

	err := service.TriggerManualSync(context.Background(), domain.Resource("vendas"))
	assert.Error(t, err)
}
