package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-testing"

func init() {
	gin.SetMode(gin.TestMode)
}

func TestGenerateJWT_Success(t *testing.T) {
	token, err := New(testSecret).GenerateJWT("user-123", "test@example.com", TokenTTL)

	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3, "JWT should have 3 parts")
}

func TestGenerateJWT_MissingSecret(t *testing.T) {
	_, err := New("").GenerateJWT("user-123", "test@example.com", TokenTTL)

	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestValidateJWT_ValidToken(t *testing.T) {
	a := New(testSecret)

	token, err := a.GenerateJWT("user-123", "test@example.com", TokenTTL)
	require.NoError(t, err)

	claims, err := a.ValidateJWT(token)

	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "test@example.com", claims.Email)

	// expiry follows the requested ttl
	diff := claims.ExpiresAt.Time.Sub(time.Now().Add(TokenTTL)).Abs()
	assert.Less(t, diff, 5*time.Second)
}

func TestValidateJWT_ExpiredToken(t *testing.T) {
	a := New(testSecret)

	token, err := a.GenerateJWT("user-123", "test@example.com", -time.Hour)
	require.NoError(t, err)

	_, err = a.ValidateJWT(token)

	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidateJWT_TamperedToken(t *testing.T) {
	a := New(testSecret)

	token, err := a.GenerateJWT("user-123", "test@example.com", TokenTTL)
	require.NoError(t, err)

	_, err = a.ValidateJWT(token[:len(token)-5] + "XXXXX")

	assert.Error(t, err, "tampered token should be rejected")
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	token, err := New(testSecret).GenerateJWT("user-123", "test@example.com", TokenTTL)
	require.NoError(t, err)

	_, err = New("different-secret-key").ValidateJWT(token)

	assert.Error(t, err, "token signed with different secret should be rejected")
}

func TestValidateJWT_AlgorithmConfusionAttack(t *testing.T) {
	claims := Claims{
		UserID: "attacker",
		Email:  "attacker@evil.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = New(testSecret).ValidateJWT(tokenString)

	assert.Error(t, err, "alg=none must be rejected")
}

func TestValidateJWT_MalformedTokens(t *testing.T) {
	a := New(testSecret)

	for _, token := range []string{"", "not-a-jwt", "a.b", "a.b.c.d", "...."} {
		_, err := a.ValidateJWT(token)
		assert.Error(t, err, "malformed token '%s' should be rejected", token)
	}
}

func runOptional(a *Authenticator, header string) (string, string) {
	var userID, email string

	router := gin.New()
	router.Use(a.OptionalAuthMiddleware())
	router.GET("/", func(c *gin.Context) {
		userID, _ = GetUserID(c)
		email, _ = GetEmail(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}

	router.ServeHTTP(httptest.NewRecorder(), req)

	return userID, email
}

func TestOptionalAuthMiddleware(t *testing.T) {
	a := New(testSecret)

	token, err := a.GenerateJWT("user-123", "test@example.com", TokenTTL)
	require.NoError(t, err)

	userID, email := runOptional(a, "Bearer "+token)
	assert.Equal(t, "user-123", userID)
	assert.Equal(t, "test@example.com", email)

	userID, email = runOptional(a, "")
	assert.Empty(t, userID)
	assert.Empty(t, email)

	userID, _ = runOptional(a, "Bearer garbage")
	assert.Empty(t, userID)

	userID, _ = runOptional(a, "Token "+token)
	assert.Empty(t, userID)

	userID, _ = runOptional(New(""), "Bearer "+token)
	assert.Empty(t, userID)
}
