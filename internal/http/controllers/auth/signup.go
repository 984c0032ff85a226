package auth

import (
	"net/http"

	svc "github.com/dropDatabas3/socialauth/internal/auth"
	"github.com/dropDatabas3/socialauth/internal/domain/repository"
	"github.com/dropDatabas3/socialauth/internal/http/dto"
	httperrors "github.com/dropDatabas3/socialauth/internal/http/errors"
	"github.com/dropDatabas3/socialauth/internal/observability/logger"
)

// KakaoSignUp maneja POST /auth/kakao/sign-up {nick, name, accessToken}.
func (c *Controller) KakaoSignUp(w http.ResponseWriter, r *http.Request) {
	var req dto.KakaoSignUpRequest
	if err := decode(w, r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}
	c.signUp(w, r, svc.SignUpInput{
		Provider: repository.ProviderKakao, Credential: req.AccessToken, Nick: req.Nick, Name: req.Name,
	})
}

// GoogleSignUp maneja POST /auth/google/sign-up {nick, idToken, name?}.
func (c *Controller) GoogleSignUp(w http.ResponseWriter, r *http.Request) {
	var req dto.GoogleSignUpRequest
	if err := decode(w, r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}
	c.signUp(w, r, svc.SignUpInput{
		Provider: repository.ProviderGoogle, Credential: req.IDToken, Nick: req.Nick, Name: req.Name,
	})
}

// AppleSignUp maneja POST /auth/apple/sign-up {nick, name, idToken}.
func (c *Controller) AppleSignUp(w http.ResponseWriter, r *http.Request) {
	var req dto.AppleSignUpRequest
	if err := decode(w, r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}
	c.signUp(w, r, svc.SignUpInput{
		Provider: repository.ProviderApple, Credential: req.IDToken, Nick: req.Nick, Name: req.Name,
	})
}

func (c *Controller) signUp(w http.ResponseWriter, r *http.Request, in svc.SignUpInput) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("Controller.SignUp"), logger.Provider(in.Provider.String()))

	// nick libre y sin palabras prohibidas; el store sigue siendo la garantía final
	ok, err := c.service.ValidateNick(ctx, in.Nick)
	if err != nil {
		log.Error("nick validation failed", logger.Err(err))
		httperrors.WriteError(w, err)
		return
	}
	if !ok {
		httperrors.WriteError(w, httperrors.ErrNickUnavailable)
		return
	}

	res, err := c.service.SignUp(ctx, in)
	if err != nil {
		log.Debug("signup failed", logger.Err(err))
		httperrors.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.AuthResponse{JWT: res.Token, UserInfo: dto.UserInfo{Nick: res.Nick}})
}
