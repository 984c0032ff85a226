package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	svc "github.com/dropDatabas3/socialauth/internal/auth"
)

type fakeService struct {
	nickOK    bool
	nickErr   error
	signUpErr error
	signedUp  bool
	lastIn    svc.SignUpInput
}

func (f *fakeService) Login(context.Context, svc.LoginInput) (*svc.LoginResult, error) {
	return &svc.LoginResult{SignUpRequired: true}, nil
}

func (f *fakeService) SignUp(_ context.Context, in svc.SignUpInput) (*svc.SignUpResult, error) {
	f.signedUp = true
	f.lastIn = in
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return &svc.SignUpResult{Token: "t", Nick: in.Nick}, nil
}

func (f *fakeService) ValidateNick(context.Context, string) (bool, error) { return f.nickOK, f.nickErr }
func (f *fakeService) ValidateToken(context.Context, string) (string, error) {
	return "", svc.ErrMissingCredential
}
func (f *fakeService) LogInAuto(context.Context, string) bool { return false }

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestSignUp_NickCheckedBeforeSignUp(t *testing.T) {
	f := &fakeService{nickOK: false}
	rec := post(NewController(f).GoogleSignUp, `{"nick":"x","idToken":"t"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "NICK_UNAVAILABLE")
	assert.False(t, f.signedUp)
}

func TestGoogleSignUp_OptionalName(t *testing.T) {
	f := &fakeService{nickOK: true}
	c := NewController(f)

	rec := post(c.GoogleSignUp, `{"nick":"x","idToken":"t","name":"Fallback"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Fallback", f.lastIn.Name)

	rec = post(c.GoogleSignUp, `{"nick":"y","idToken":"t"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, f.lastIn.Name)

	rec = post(c.GoogleSignUp, `{"nick":"z","idToken":"t","name":"`+strings.Repeat("n", 101)+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignUp_StoreFailureIs500(t *testing.T) {
	f := &fakeService{nickErr: errors.New("db down")}
	rec := post(NewController(f).KakaoSignUp, `{"nick":"x","name":"n","accessToken":"t"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	f = &fakeService{nickOK: true, signUpErr: errors.New("db down")}
	rec = post(NewController(f).AppleSignUp, `{"nick":"x","name":"n","idToken":"t"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db down")
}

func TestDecodeErrors(t *testing.T) {
	c := NewController(&fakeService{})

	rec := post(c.KakaoLogIn, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_JSON")

	rec = post(c.KakaoLogIn, ``)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "MISSING_FIELDS")

	rec = post(c.GoogleLogIn, `{"idToken":"t"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"SIGN_UP_REQUIRED"}`, rec.Body.String())
}

func TestValidateNick_MissingParam(t *testing.T) {
	rec := httptest.NewRecorder()
	NewController(&fakeService{}).ValidateNick(rec, httptest.NewRequest(http.MethodGet, "/auth/nick/validate", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
