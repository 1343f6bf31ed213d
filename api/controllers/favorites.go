package controllers

import (
	"net/http"

	"github.com/Abhi-engg/farmstand-backend/api/responses"
	favoritesvc "github.com/Abhi-engg/farmstand-backend/internal/favorites"
	"github.com/Abhi-engg/farmstand-backend/pkg/logger"
)

// ListFavorites returns the caller's saved products, newest first.
func ListFavorites(svc favoritesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		listed, err := svc.ListForUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, listed)
	}
}
