package dto

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		req    any
		fields []string
	}{
		{"kakao login ok", KakaoLogInRequest{AccessToken: "t"}, nil},
		{"kakao login missing token", KakaoLogInRequest{}, []string{"accessToken"}},
		{"google signup ok", GoogleSignUpRequest{Nick: "n", IDToken: "t"}, nil},
		{"kakao signup missing", KakaoSignUpRequest{Nick: "n"}, []string{"name", "accessToken"}},
		{"apple signup nick too long", AppleSignUpRequest{Nick: strings.Repeat("a", 101), Name: "n", IDToken: "t"}, []string{"nick"}},
		{"hangul counts runes", KakaoSignUpRequest{Nick: strings.Repeat("닉", 100), Name: "테스트이름", AccessToken: "t"}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.req)
			if tc.fields == nil {
				assert.NoError(t, err)
				return
			}
			var fe *FieldsError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tc.fields, fe.Fields)
		})
	}
}
