package auth

import (
	"net/http"

	"github.com/dropDatabas3/socialauth/internal/http/dto"
	httperrors "github.com/dropDatabas3/socialauth/internal/http/errors"
	"github.com/dropDatabas3/socialauth/internal/observability/logger"
)

// AutoLogIn maneja GET /auth/auto/log-in. Responde true|false, nunca error.
func (c *Controller) AutoLogIn(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, c.service.LogInAuto(r.Context(), r.Header.Get("Authorization")))
}

// ValidateNick maneja GET /auth/nick/validate?nick=...
func (c *Controller) ValidateNick(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	nick := r.URL.Query().Get("nick")
	if nick == "" {
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("nick"))
		return
	}
	ok, err := c.service.ValidateNick(ctx, nick)
	if err != nil {
		logger.From(ctx).Error("nick validation failed", logger.Layer("controller"), logger.Err(err))
		httperrors.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ok)
}

// ValidateJWT maneja GET /auth/jwt/validate: {valid, socialId} o 401.
func (c *Controller) ValidateJWT(w http.ResponseWriter, r *http.Request) {
	sub, err := c.service.ValidateToken(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.TokenValidResponse{Valid: true, SocialID: sub})
}
