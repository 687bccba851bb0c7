package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/incidra/incidra/internal/ports"
)

func TestJWTService(t *testing.T) {
	service := NewJWTService("test-secret", time.Hour)

	t.Run("MintAndVerify", func(t *testing.T) {
		minted, err := service.Mint(&ports.Claims{Subject: "user-123", UserType: "company"})
		require.NoError(t, err)
		require.NotEmpty(t, minted)

		claims, err := service.Verify(minted)
		require.NoError(t, err)
		assert.Equal(t, "user-123", claims.Subject)
		assert.Equal(t, "company", claims.UserType)
	})

	t.Run("VerifyGarbageToken", func(t *testing.T) {
		_, err := service.Verify("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("VerifyWrongSecret", func(t *testing.T) {
		other := NewJWTService("other-secret", time.Hour)
		minted, err := other.Mint(&ports.Claims{Subject: "user-123"})
		require.NoError(t, err)

		_, err = service.Verify(minted)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("VerifyExpiredToken", func(t *testing.T) {
		short := NewJWTService("test-secret", -time.Minute)
		minted, err := short.Mint(&ports.Claims{Subject: "user-123"})
		require.NoError(t, err)

		_, err = service.Verify(minted)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("VerifyMissingSubject", func(t *testing.T) {
		raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_type": "company",
			"exp":       time.Now().Add(time.Hour).Unix(),
		})
		signed, err := raw.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = service.Verify(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("MintCarriesFullClaimSet", func(t *testing.T) {
		minted, err := service.Mint(&ports.Claims{
			Subject:  "user-123",
			UserType: "company",
			Raw: map[string]interface{}{
				"sub":        "user-123",
				"user_type":  "company",
				"company_id": "company-9",
			},
		})
		require.NoError(t, err)

		claims, err := service.Verify(minted)
		require.NoError(t, err)
		assert.Equal(t, "user-123", claims.Subject)
		assert.Equal(t, "company", claims.UserType)
		assert.Equal(t, "company-9", claims.Raw["company_id"])

		// Expiry is refreshed on mint, not copied from the inbound token.
		exp, ok := claims.Raw["exp"].(float64)
		require.True(t, ok)
		assert.Greater(t, exp, float64(time.Now().Unix()))
	})

	t.Run("VerifyTokenWithoutUserType", func(t *testing.T) {
		minted, err := service.Mint(&ports.Claims{Subject: "user-123"})
		require.NoError(t, err)

		claims, err := service.Verify(minted)
		require.NoError(t, err)
		assert.Equal(t, "user-123", claims.Subject)
		assert.Empty(t, claims.UserType)
	})
}
