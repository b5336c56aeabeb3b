package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/bulkdiscount-backend/api/responses"
	"github.com/angelmondragon/bulkdiscount-backend/api/validators"
	"github.com/angelmondragon/bulkdiscount-backend/pkg/logger"
)

const merchantIDParam = "merchantId"

// MerchantScope parses the {merchantId} path segment once for every nested
// route and tags the request logger with it.
func MerchantScope(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			merchantID, err := validators.ParseUUIDParam(r, merchantIDParam)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := WithMerchantID(r.Context(), merchantID)
			if logg != nil {
				ctx = logg.WithMerchantID(ctx, merchantID.String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// MerchantID returns the merchant resolved by MerchantScope, parsing the path
// parameter directly when the middleware did not run.
func MerchantID(r *http.Request) (uuid.UUID, error) {
	if id, ok := MerchantIDFromContext(r.Context()); ok {
		return id, nil
	}
	return validators.ParseUUIDParam(r, merchantIDParam)
}
