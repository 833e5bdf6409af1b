package service

import (
	"context"
	"testing"

	"sparkles-laundry/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users, "test-secret")

	user, token, err := svc.Register(context.Background(), "Jane", "Jane@Example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "jane@example.com", user.Email, "emails are stored lowercased")
	assert.NotEqual(t, "hunter22", user.PasswordHash)

	_, loginToken, err := svc.Login(context.Background(), "jane@example.com", "hunter22")
	require.NoError(t, err)

	userID, err := svc.ParseToken(loginToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestRegisterDuplicateEmailGenericMessage(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users, "test-secret")

	_, _, err := svc.Register(context.Background(), "Jane", "jane@example.com", "hunter22")
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), "Other", "jane@example.com", "password")
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	// The message must not reveal that the address is taken.
	assert.NotContains(t, err.Error(), "exists")
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), "test-secret")

	_, _, err := svc.Register(context.Background(), "", "jane@example.com", "hunter22")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, _, err = svc.Register(context.Background(), "Jane", "not-an-email", "hunter22")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, _, err = svc.Register(context.Background(), "Jane", "jane@example.com", "short")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), "test-secret")
	_, _, err := svc.Register(context.Background(), "Jane", "jane@example.com", "hunter22")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "jane@example.com", "wrong")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "hunter22")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestParseTokenRejectsGarbageAndForeignKeys(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), "test-secret")

	_, err := svc.ParseToken("not.a.token")
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))

	other := NewAuthService(newFakeUserRepo(), "other-secret")
	_, token, err := other.Register(context.Background(), "Eve", "eve@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.ParseToken(token)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
}
