package jwt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", "1h")

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "company-1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Greater(t, expiresAt, int64(0))

	ctx, err := ContextWithToken(context.Background(), svc.JWTAuth(), token)
	require.NoError(t, err)

	actor, err := ActorFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, Actor{UserID: "user-1", CompanyID: "company-1"}, actor)
	assert.Equal(t, token, RawTokenFromContext(ctx))
}

func TestGenerateAccessToken_InvalidExpiration(t *testing.T) {
	svc := NewJWTService("secret", "forever")
	_, _, err := svc.GenerateAccessToken("user-1", "company-1")
	assert.Error(t, err)
}

func TestContextWithToken_WrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", "1h")
	verifier := NewJWTService("secret-b", "1h")

	token, _, err := issuer.GenerateAccessToken("user-1", "company-1")
	require.NoError(t, err)

	_, err = ContextWithToken(context.Background(), verifier.JWTAuth(), token)
	assert.Error(t, err)
}

func TestActorFromContext_MissingCompany(t *testing.T) {
	svc := NewJWTService("secret", "1h")
	token, _, err := svc.GenerateAccessToken("user-1", "")
	require.NoError(t, err)

	ctx, err := ContextWithToken(context.Background(), svc.JWTAuth(), token)
	require.NoError(t, err)

	_, err = ActorFromContext(ctx)
	assert.ErrorIs(t, err, ErrCompanyIDMissing)
}

func TestActorFromContext_NoToken(t *testing.T) {
	_, err := ActorFromContext(context.Background())
	assert.Error(t, err)
}

func TestRawTokenFromContext_Empty(t *testing.T) {
	assert.Empty(t, RawTokenFromContext(context.Background()))
	assert.Equal(t, "abc", RawTokenFromContext(WithRawToken(context.Background(), "abc")))
}
