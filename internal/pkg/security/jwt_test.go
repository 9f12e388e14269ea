package security

import (
	"Inkstone/internal/api/config"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(42, "inkwell")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, "inkwell", claims.Username)
	assert.Equal(t, "Inkstone", claims.Issuer)
}

func TestTokenTTL_FollowsConfig(t *testing.T) {
	// 未加载配置时回退到 24 小时
	assert.Equal(t, 24*time.Hour, TokenTTL())

	saved := config.Cfg
	config.Cfg = &config.Config{JWT: config.JWTConfig{ExpireHours: 168}}
	defer func() { config.Cfg = saved }()
	assert.Equal(t, 168*time.Hour, TokenTTL())
}

func TestValidateToken_Tampered(t *testing.T) {
	token, err := GenerateToken(1, "a")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + ".AAAA" + parts[2][4:]

	_, err = ValidateToken(tampered)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	claims := &UserClaims{
		UserID:   7,
		Username: "old",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			Issuer:    "Inkstone",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecret())
	require.NoError(t, err)

	_, err = ValidateToken(tokenString)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateToken_WrongSigningMethod(t *testing.T) {
	// alg=none 的 token 必须被拒绝
	claims := &UserClaims{UserID: 1}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateToken(tokenString)
	assert.Error(t, err)
}

func TestExtractSignature(t *testing.T) {
	token, err := GenerateToken(3, "sig")
	require.NoError(t, err)

	signature, err := ExtractSignature(token)
	require.NoError(t, err)
	assert.Equal(t, strings.Split(token, ".")[2], signature)

	_, err = ExtractSignature("only.two")
	assert.Error(t, err)
}
