package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"benishangul-police/idregistry/internal/apperrors"
	"benishangul-police/idregistry/internal/constants"
)

// TokenTTL is how long a session token stays valid. There is no revocation
// list; expiry is the only server-side bound on a token's life.
const TokenTTL = 24 * time.Hour

// TokenService signs and verifies session tokens.
type TokenService struct {
	secretKey []byte
}

// NewTokenService creates a new token service
func NewTokenService(secretKey []byte) *TokenService {
	return &TokenService{secretKey: secretKey}
}

// Issue signs a session token for the principal.
func (s *TokenService) Issue(p *Principal) (string, time.Time, error) {
	expiresAt := time.Now().Add(TokenTTL)

	claims := jwt.MapClaims{
		"sub":      fmt.Sprintf("%d", p.AccountID),
		"uid":      float64(p.AccountID),
		"username": p.Username,
		"role":     string(p.Role),
		"exp":      expiresAt.Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// Verify parses the token and returns the principal it asserts. Any parse or
// expiry failure comes back as an Unauthorized kind.
func (s *TokenService) Verify(tokenString string) (*Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindUnauthorized, "invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, apperrors.New(apperrors.KindUnauthorized, "invalid token")
	}

	uid, ok := claims["uid"].(float64)
	if !ok {
		return nil, apperrors.New(apperrors.KindUnauthorized, "missing or invalid uid claim")
	}

	username, ok := claims["username"].(string)
	if !ok {
		return nil, apperrors.New(apperrors.KindUnauthorized, "missing or invalid username claim")
	}

	role, ok := claims["role"].(string)
	if !ok || !constants.Role(role).Valid() {
		return nil, apperrors.New(apperrors.KindUnauthorized, "missing or invalid role claim")
	}

	return &Principal{
		AccountID: uint(uid),
		Username:  username,
		Role:      constants.Role(role),
	}, nil
}
