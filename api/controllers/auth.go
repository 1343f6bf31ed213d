package controllers

import (
	"net/http"

	"github.com/Abhi-engg/farmstand-backend/api/responses"
	"github.com/Abhi-engg/farmstand-backend/api/validators"
	authsvc "github.com/Abhi-engg/farmstand-backend/internal/auth"
	pkgerrors "github.com/Abhi-engg/farmstand-backend/pkg/errors"
	"github.com/Abhi-engg/farmstand-backend/pkg/logger"
)

// AuthLogin authenticates credentials and issues the token pair.
func AuthLogin(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body authsvc.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// AuthRegister creates the account and immediately logs it in.
func AuthRegister(registerSvc authsvc.RegisterService, loginSvc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if registerSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "registration service unavailable"))
			return
		}

		var body authsvc.RegisterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := registerSvc.Register(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if loginSvc != nil {
			session, err := loginSvc.Login(r.Context(), authsvc.LoginRequest{
				Email:    body.Email,
				Password: body.Password,
			})
			if err == nil {
				responses.WriteSuccessStatus(w, http.StatusCreated, session)
				return
			}
			if logg != nil {
				logg.Error(r.Context(), "register.autologin", err)
			}
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, user)
	}
}
