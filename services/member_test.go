package services

import (
	"testing"
	"time"

	"palette/dto"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignUpAndLogin(t *testing.T) {
	f := newFixture(t)
	m := f.member(t, "wltn")
	assert.NotEqual(t, "1234", m.Password)

	_, err := f.members.SignUp(f.ctx, dto.SignUpRequest{Email: "WLTN@palette.test", Password: "abcd", Name: "other"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	logged, err := f.members.Login(f.ctx, dto.LoginRequest{Email: "wltn@palette.test", Password: "1234"})
	require.NoError(t, err)
	assert.Equal(t, m.ID, logged.ID)

	_, err = f.members.Login(f.ctx, dto.LoginRequest{Email: "wltn@palette.test", Password: "nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.members.Login(f.ctx, dto.LoginRequest{Email: "nobody@palette.test", Password: "1234"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginWithTotp(t *testing.T) {
	f := newFixture(t)
	m := f.member(t, "skfk")

	url, err := f.members.EnableTotp(f.ctx, m)
	require.NoError(t, err)
	assert.Contains(t, url, "otpauth://totp/palette")

	_, err = f.members.Login(f.ctx, dto.LoginRequest{Email: m.Email, Password: "1234"})
	assert.ErrorIs(t, err, ErrTotpRequired)

	stored, err := f.members.FindByID(f.ctx, m.ID)
	require.NoError(t, err)
	code, err := totp.GenerateCode(stored.TotpSecret, time.Now())
	require.NoError(t, err)
	_, err = f.members.Login(f.ctx, dto.LoginRequest{Email: m.Email, Password: "1234", OTP: code})
	assert.NoError(t, err)

	_, err = f.members.Login(f.ctx, dto.LoginRequest{Email: m.Email, Password: "1234", OTP: "000000x"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestFindMemberNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.members.FindByID(f.ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}
