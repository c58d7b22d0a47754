package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-sheets-sync/infrastructure/repository"
	"github.com/vfg2006/meta-sheets-sync/internal/domain"
	"github.com/vfg2006/meta-sheets-sync/pkg/apiErrors"
)

// GetLastSyncRun retorna o sumário do último run persistido do recurso
func GetLastSyncRun(runHistory repository.SyncRunRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetLastSyncRun")

		var resource domain.Resource
		switch httprouter.ParamsFromContext(r.Context()).ByName("resource") {
		case SyncResourceInsights:
			resource = domain.ResourceInsights
		case SyncResourceBilling:
			resource = domain.ResourceTransactions
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Recurso inválido. Valores aceitos: insights, billing", nil)
			return
		}

		summary, err := runHistory.GetLastRun(r.Context(), resource)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao consultar o histórico de runs", err.Error())
			return
		}

		if summary == nil {
			apiErrors.WriteError(w, apiErrors.ErrNotFound, "Nenhum run registrado para o recurso", nil)
			return
		}

		json.NewEncoder(w).Encode(summary)
	}
}
