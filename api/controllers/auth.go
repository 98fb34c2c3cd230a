package controllers

import (
	"net/http"

	"github.com/solsticegems/solstice-backend/api/responses"
	"github.com/solsticegems/solstice-backend/api/validators"
	authsvc "github.com/solsticegems/solstice-backend/internal/auth"
	pkgerrors "github.com/solsticegems/solstice-backend/pkg/errors"
	"github.com/solsticegems/solstice-backend/pkg/logger"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// AdminLogin authenticates a back-office user and returns an access token.
func AdminLogin(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}
		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.Login(r.Context(), payload.Email, payload.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
