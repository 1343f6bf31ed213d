package controllers

import (
	"net/http"

	"github.com/Abhi-engg/farmstand-backend/api/responses"
	bannersvc "github.com/Abhi-engg/farmstand-backend/internal/banners"
	"github.com/Abhi-engg/farmstand-backend/pkg/logger"
)

// ListBanners serves the active promotional slides in display order.
func ListBanners(svc bannersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listed, err := svc.ListActive(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, listed)
	}
}
