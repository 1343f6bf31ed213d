package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Abhi-engg/farmstand-backend/api/responses"
	reviewsvc "github.com/Abhi-engg/farmstand-backend/internal/reviews"
	pkgerrors "github.com/Abhi-engg/farmstand-backend/pkg/errors"
	"github.com/Abhi-engg/farmstand-backend/pkg/logger"
)

// DeleteReview removes one of the caller's own reviews.
func DeleteReview(svc reviewsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reviewID, err := uuid.Parse(chi.URLParam(r, "reviewID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "review id must be a valid UUID"))
			return
		}
		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteReview(r.Context(), reviewID, userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
