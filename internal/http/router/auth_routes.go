package router

import (
	"github.com/go-chi/chi/v5"

	authctrl "github.com/dropDatabas3/socialauth/internal/http/controllers/auth"
	mw "github.com/dropDatabas3/socialauth/internal/http/middlewares"
)

// registerAuthRoutes monta /auth/*. Las respuestas llevan tokens: no-store en todas.
func registerAuthRoutes(r chi.Router, c *authctrl.Controller) {
	r.Use(mw.WithNoStore())

	// POST /auth/{provider}/log-in
	r.Post("/kakao/log-in", c.KakaoLogIn)
	r.Post("/google/log-in", c.GoogleLogIn)
	r.Post("/apple/log-in", c.AppleLogIn)

	// POST /auth/{provider}/sign-up
	r.Post("/kakao/sign-up", c.KakaoSignUp)
	r.Post("/google/sign-up", c.GoogleSignUp)
	r.Post("/apple/sign-up", c.AppleSignUp)

	// GET /auth/auto/log-in (Authorization: Bearer ...)
	r.Get("/auto/log-in", c.AutoLogIn)
	r.Get("/nick/validate", c.ValidateNick)
	r.Get("/jwt/validate", c.ValidateJWT)
}
