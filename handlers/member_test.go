package handlers

import (
	"net/http"
	"testing"

	"palette/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberEndpoints(t *testing.T) {
	s := newTestServer(t)
	token := s.signUp("wltn")

	w := s.doJSON(http.MethodPost, "/member/signup", "", dto.SignUpRequest{Email: "wltn@palette.test", Password: "1234", Name: "again"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.doJSON(http.MethodPost, "/member/signup", "", dto.SignUpRequest{Email: "new@palette.test", Password: "1234", Name: " "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "이름을 입력해주세요.", decode[Response](t, w).Error)

	w = s.doJSON(http.MethodPost, "/member/login", "", dto.LoginRequest{Email: "wltn@palette.test", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, "/member/me", token, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[dto.MemberResponse](t, w)
	assert.Equal(t, "wltn", me.Name)
	assert.Equal(t, "wltn@palette.test", me.Email)

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/member/me", "", nil, "").Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodPost, "/member/logout", "", nil, "").Code)

	w = s.do(http.MethodPost, "/member/totp", token, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode[dto.TotpResponse](t, w).URL, "otpauth://")
	w = s.doJSON(http.MethodPost, "/member/login", "", dto.LoginRequest{Email: "wltn@palette.test", Password: "1234"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/healthz", "", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = s.do(http.MethodGet, "/metrics", "", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
