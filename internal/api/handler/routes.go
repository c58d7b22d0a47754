package handler

import (
	"net/http"

	"github.com/vfg2006/meta-sheets-sync/infrastructure/repository"
	"github.com/vfg2006/meta-sheets-sync/internal/api/handler/router"
	"github.com/vfg2006/meta-sheets-sync/internal/scheduler"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func SyncJobs(service *scheduler.SyncJobService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/sync/:resource/run",
			Method:  http.MethodPost,
			Handler: RunSyncJob(service),
		},
		{
			Path:    "/v1/sync/status",
			Method:  http.MethodGet,
			Handler: GetSyncStatus(service),
		},
	}
}

func SyncRunHistory(runHistory repository.SyncRunRepository) []router.Route {
	return []router.Route{
		{
			// prefixo estático: o roteador não aceita :resource ao lado de
			// /v1/sync/status na mesma árvore de método
			Path:    "/v1/sync/history/:resource",
			Method:  http.MethodGet,
			Handler: GetLastSyncRun(runHistory),
		},
	}
}
