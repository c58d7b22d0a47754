package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-sheets-sync/internal/domain"
	"github.com/vfg2006/meta-sheets-sync/internal/scheduler"
	"github.com/vfg2006/meta-sheets-sync/pkg/apiErrors"
)

// Recursos aceitos no disparo manual de sincronização
const (
	SyncResourceInsights = "insights"
	SyncResourceBilling  = "billing"
)

// RunSyncJob dispara manualmente uma sincronização fora do agendamento
func RunSyncJob(service *scheduler.SyncJobService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunSyncJob")

		resourceParam := httprouter.ParamsFromContext(r.Context()).ByName("resource")
		if resourceParam == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Recurso de sincronização não especificado", nil)
			return
		}

		var resource domain.Resource
		switch resourceParam {
		case SyncResourceInsights:
			resource = domain.ResourceInsights
		case SyncResourceBilling:
			resource = domain.ResourceTransactions
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Recurso inválido. Valores aceitos: insights, billing", nil)
			return
		}

		if service.GetStatus().Running {
			apiErrors.WriteError(w, apiErrors.ErrSyncInProgress, "Sincronização já em andamento", nil)
			return
		}

		// o run continua depois da resposta, então não herda o cancelamento da requisição
		if err := service.TriggerManualSync(context.WithoutCancel(r.Context()), resource); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao disparar a sincronização", err.Error())
			return
		}

		response := map[string]any{
			"message":  "Sincronização iniciada com sucesso",
			"resource": resourceParam,
		}
		json.NewEncoder(w).Encode(response)
	}
}

// GetSyncStatus retorna o estado corrente dos jobs de sincronização
func GetSyncStatus(service *scheduler.SyncJobService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetSyncStatus")

		json.NewEncoder(w).Encode(service.GetStatus())
	}
}
