package discounts

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/bulkdiscount-backend/api/middleware"
	"github.com/angelmondragon/bulkdiscount-backend/api/responses"
	"github.com/angelmondragon/bulkdiscount-backend/api/validators"
	internaldiscounts "github.com/angelmondragon/bulkdiscount-backend/internal/discounts"
	pkgerrors "github.com/angelmondragon/bulkdiscount-backend/pkg/errors"
	"github.com/angelmondragon/bulkdiscount-backend/pkg/logger"
)

const discountIDParam = "discountId"

// List returns the merchant's bulk discounts, smallest threshold first.
func List(svc internaldiscounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, ok := merchantFrom(w, r, svc, logg)
		if !ok {
			return
		}
		list, err := svc.List(r.Context(), merchantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func Get(svc internaldiscounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, discountID, ok := discountFrom(w, r, svc, logg)
		if !ok {
			return
		}
		dto, err := svc.Get(r.Context(), merchantID, discountID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func Create(svc internaldiscounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, ok := merchantFrom(w, r, svc, logg)
		if !ok {
			return
		}
		var req DiscountRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.Create(r.Context(), merchantID, req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// Update applies a partial change; blank or absent fields keep their stored
// value.
func Update(svc internaldiscounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, discountID, ok := discountFrom(w, r, svc, logg)
		if !ok {
			return
		}
		var req DiscountRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.Update(r.Context(), merchantID, discountID, req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func Delete(svc internaldiscounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, discountID, ok := discountFrom(w, r, svc, logg)
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), merchantID, discountID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

func merchantFrom(w http.ResponseWriter, r *http.Request, svc internaldiscounts.Service, logg *logger.Logger) (uuid.UUID, bool) {
	if svc == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "discount service unavailable"))
		return uuid.Nil, false
	}
	id, err := middleware.MerchantID(r)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return uuid.Nil, false
	}
	return id, true
}

func discountFrom(w http.ResponseWriter, r *http.Request, svc internaldiscounts.Service, logg *logger.Logger) (uuid.UUID, uuid.UUID, bool) {
	merchantID, ok := merchantFrom(w, r, svc, logg)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	discountID, err := validators.ParseUUIDParam(r, discountIDParam)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return uuid.Nil, uuid.Nil, false
	}
	return merchantID, discountID, true
}
