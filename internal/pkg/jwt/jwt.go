package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var (
	ErrMissingClaims    = errors.New("token claims are missing")
	ErrCompanyIDMissing = errors.New("company_id claim is missing or invalid")
	ErrUserIDMissing    = errors.New("user_id claim is missing or invalid")
)

type Service interface {
	GenerateAccessToken(userID string, companyID string) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

// GenerateAccessToken signs an access token. The login flow lives in the
// upstream HRIS; this is used by tooling and tests.
func (j *JWTService) GenerateAccessToken(userID string, companyID string) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id":    userID,
		"company_id": companyID,
		"type":       "access",
		"exp":        expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// Actor identifies who is calling.
type Actor struct {
	UserID    string
	CompanyID string
}

// ActorFromContext reads the verified claims placed by jwtauth.Verifier.
func ActorFromContext(ctx context.Context) (Actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Actor{}, err
	}
	if claims == nil {
		return Actor{}, ErrMissingClaims
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return Actor{}, ErrCompanyIDMissing
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Actor{}, ErrUserIDMissing
	}

	return Actor{UserID: userID, CompanyID: companyID}, nil
}

// ContextWithToken verifies tokenString and stores it the way jwtauth.Verifier does.
func ContextWithToken(ctx context.Context, ja *jwtauth.JWTAuth, tokenString string) (context.Context, error) {
	token, err := jwtauth.VerifyToken(ja, tokenString)
	if err != nil {
		return ctx, err
	}
	return WithRawToken(jwtauth.NewContext(ctx, token, nil), tokenString), nil
}

type rawTokenKey struct{}

// WithRawToken keeps the encoded bearer token so it can be forwarded upstream.
func WithRawToken(ctx context.Context, tokenString string) context.Context {
	return context.WithValue(ctx, rawTokenKey{}, tokenString)
}

// RawTokenFromContext returns the bearer token stored by WithRawToken.
func RawTokenFromContext(ctx context.Context) string {
	s, _ := ctx.Value(rawTokenKey{}).(string)
	return s
}
