package auth

import (
	"net/http"

	svc "github.com/dropDatabas3/socialauth/internal/auth"
	"github.com/dropDatabas3/socialauth/internal/domain/repository"
	"github.com/dropDatabas3/socialauth/internal/http/dto"
	httperrors "github.com/dropDatabas3/socialauth/internal/http/errors"
	"github.com/dropDatabas3/socialauth/internal/observability/logger"
)

// KakaoLogIn maneja POST /auth/kakao/log-in {accessToken}.
func (c *Controller) KakaoLogIn(w http.ResponseWriter, r *http.Request) {
	var req dto.KakaoLogInRequest
	if err := decode(w, r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}
	c.login(w, r, repository.ProviderKakao, req.AccessToken)
}

// GoogleLogIn maneja POST /auth/google/log-in {idToken}.
func (c *Controller) GoogleLogIn(w http.ResponseWriter, r *http.Request) {
	c.idTokenLogIn(w, r, repository.ProviderGoogle)
}

// AppleLogIn maneja POST /auth/apple/log-in {idToken}.
func (c *Controller) AppleLogIn(w http.ResponseWriter, r *http.Request) {
	c.idTokenLogIn(w, r, repository.ProviderApple)
}

func (c *Controller) idTokenLogIn(w http.ResponseWriter, r *http.Request, p repository.Provider) {
	var req dto.IDTokenLogInRequest
	if err := decode(w, r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}
	c.login(w, r, p, req.IDToken)
}

func (c *Controller) login(w http.ResponseWriter, r *http.Request, p repository.Provider, credential string) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("Controller.Login"), logger.Provider(p.String()))

	res, err := c.service.Login(ctx, svc.LoginInput{Provider: p, Credential: credential})
	if err != nil {
		log.Debug("login failed", logger.Err(err))
		httperrors.WriteError(w, err)
		return
	}
	if res.SignUpRequired {
		writeJSON(w, http.StatusOK, dto.SignUpRequiredResponse{Status: dto.StatusSignUpRequired})
		return
	}
	writeJSON(w, http.StatusOK, dto.AuthResponse{JWT: res.Token, UserInfo: dto.UserInfo{Nick: res.Nick}})
}
