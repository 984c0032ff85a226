// Package dto contiene los requests y responses JSON de la API de autenticación.
package dto

// KakaoLogInRequest: POST /auth/kakao/log-in
type KakaoLogInRequest struct {
	AccessToken string `json:"accessToken" validate:"required"`
}

// IDTokenLogInRequest: POST /auth/google/log-in y /auth/apple/log-in
type IDTokenLogInRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// KakaoSignUpRequest: POST /auth/kakao/sign-up
type KakaoSignUpRequest struct {
	Nick        string `json:"nick" validate:"required,min=1,max=100"`
	Name        string `json:"name" validate:"required,min=1,max=100"`
	AccessToken string `json:"accessToken" validate:"required"`
}

// GoogleSignUpRequest: POST /auth/google/sign-up. El nombre sale del ID token;
// name es opcional y solo se usa si el token no trae "name".
type GoogleSignUpRequest struct {
	Nick    string `json:"nick" validate:"required,min=1,max=100"`
	Name    string `json:"name" validate:"omitempty,max=100"`
	IDToken string `json:"idToken" validate:"required"`
}

// AppleSignUpRequest: POST /auth/apple/sign-up. Apple solo manda el nombre al cliente.
type AppleSignUpRequest struct {
	Nick    string `json:"nick" validate:"required,min=1,max=100"`
	Name    string `json:"name" validate:"required,min=1,max=100"`
	IDToken string `json:"idToken" validate:"required"`
}

type UserInfo struct {
	Nick string `json:"nick"`
}

// AuthResponse es la respuesta de login y signup exitosos.
type AuthResponse struct {
	JWT      string   `json:"jwt"`
	UserInfo UserInfo `json:"userInfo"`
}

const StatusSignUpRequired = "SIGN_UP_REQUIRED"

// SignUpRequiredResponse se devuelve cuando la identidad no tiene cuenta.
type SignUpRequiredResponse struct {
	Status string `json:"status"`
}

// TokenValidResponse: GET /auth/jwt/validate
type TokenValidResponse struct {
	Valid    bool   `json:"valid"`
	SocialID string `json:"socialId"`
}
