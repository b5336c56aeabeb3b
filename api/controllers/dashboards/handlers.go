package dashboards

import (
	"net/http"

	"github.com/angelmondragon/bulkdiscount-backend/api/middleware"
	"github.com/angelmondragon/bulkdiscount-backend/api/responses"
	"github.com/angelmondragon/bulkdiscount-backend/internal/merchants"
	pkgerrors "github.com/angelmondragon/bulkdiscount-backend/pkg/errors"
	"github.com/angelmondragon/bulkdiscount-backend/pkg/logger"
)

func Merchant(svc merchants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}
		merchantID, err := middleware.MerchantID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.MerchantDashboard(r.Context(), merchantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func Admin(svc merchants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}
		dto, err := svc.AdminDashboard(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}
