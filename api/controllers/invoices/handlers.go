package invoices

import (
	"net/http"

	"github.com/angelmondragon/bulkdiscount-backend/api/middleware"
	"github.com/angelmondragon/bulkdiscount-backend/api/responses"
	"github.com/angelmondragon/bulkdiscount-backend/api/validators"
	internalinvoices "github.com/angelmondragon/bulkdiscount-backend/internal/invoices"
	pkgerrors "github.com/angelmondragon/bulkdiscount-backend/pkg/errors"
	"github.com/angelmondragon/bulkdiscount-backend/pkg/logger"
)

const (
	invoiceIDParam     = "invoiceId"
	invoiceItemIDParam = "invoiceItemId"
)

type itemStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending packaged shipped"`
}

// MerchantShow renders an invoice restricted to the merchant's own lines.
func MerchantShow(svc internalinvoices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invoice service unavailable"))
			return
		}
		merchantID, err := middleware.MerchantID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		invoiceID, err := validators.ParseUUIDParam(r, invoiceIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithInvoiceID(ctx, invoiceID.String())
		}
		dto, err := svc.MerchantInvoice(ctx, merchantID, invoiceID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// AdminShow renders the whole invoice with totals across every merchant.
func AdminShow(svc internalinvoices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invoice service unavailable"))
			return
		}
		invoiceID, err := validators.ParseUUIDParam(r, invoiceIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithInvoiceID(ctx, invoiceID.String())
		}
		dto, err := svc.AdminInvoice(ctx, invoiceID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func UpdateItemStatus(svc internalinvoices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invoice service unavailable"))
			return
		}
		merchantID, err := middleware.MerchantID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		invoiceID, err := validators.ParseUUIDParam(r, invoiceIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := validators.ParseUUIDParam(r, invoiceItemIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req itemStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.UpdateItemStatus(r.Context(), merchantID, invoiceID, itemID, req.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}
