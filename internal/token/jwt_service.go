package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/incidra/incidra/internal/ports"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// JWTService verifies inbound bearer tokens and mints fresh
// service-to-service tokens for upstream calls. Both sides use the shared
// HS256 secret, but verification and minting are kept as separate
// operations so the two trust boundaries stay distinct.
type JWTService struct {
	secret   []byte
	tokenTTL time.Duration
}

func NewJWTService(secret string, tokenTTL time.Duration) *JWTService {
	return &JWTService{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

// Verify parses and validates a caller's token and extracts its claims.
func (s *JWTService) Verify(tokenString string) (*ports.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, s.handleValidationError(err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	subject, ok := mapClaims["sub"].(string)
	if !ok || subject == "" {
		return nil, ErrInvalidToken
	}

	claims := &ports.Claims{
		Subject: subject,
		Raw:     mapClaims,
	}
	if userType, ok := mapClaims["user_type"].(string); ok {
		claims.UserType = userType
	}

	return claims, nil
}

// Mint signs a fresh token carrying the caller's full claim set for the
// upstream incident-query service, with refreshed expiry. The service is a
// trusted intermediary: the original token is never forwarded.
func (s *JWTService) Mint(claims *ports.Claims) (string, error) {
	tokenClaims := jwt.MapClaims{}
	for name, value := range claims.Raw {
		tokenClaims[name] = value
	}
	tokenClaims["sub"] = claims.Subject
	tokenClaims["exp"] = time.Now().Add(s.tokenTTL).Unix()
	tokenClaims["iat"] = time.Now().Unix()
	if claims.UserType != "" {
		tokenClaims["user_type"] = claims.UserType
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims)

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign service token: %w", err)
	}

	return tokenString, nil
}

func (s *JWTService) handleValidationError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return ErrTokenExpired
	}
	return ErrInvalidToken
}
