package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParse(t *testing.T) {
	ts := TokenService{Secret: []byte("test-secret"), Issuer: "portfoliohub", Duration: time.Hour}
	admin := &Admin{ID: "admin-1", Username: "admin", TokenVersion: 3}

	tok, exp, err := ts.Sign(admin)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := ts.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.AdminID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, 3, claims.TokenVersion)
	assert.Equal(t, "portfoliohub", claims.Issuer)
}

func TestParseWrongSecret(t *testing.T) {
	ts := TokenService{Secret: []byte("test-secret"), Issuer: "portfoliohub", Duration: time.Hour}
	tok, _, err := ts.Sign(&Admin{ID: "admin-1", Username: "admin"})
	require.NoError(t, err)

	other := TokenService{Secret: []byte("other-secret"), Issuer: "portfoliohub", Duration: time.Hour}
	_, err = other.Parse(tok)
	assert.Error(t, err)
}

func TestParseExpiredToken(t *testing.T) {
	ts := TokenService{Secret: []byte("test-secret"), Issuer: "portfoliohub", Duration: -time.Minute}
	tok, _, err := ts.Sign(&Admin{ID: "admin-1", Username: "admin"})
	require.NoError(t, err)

	_, err = ts.Parse(tok)
	assert.Error(t, err)
}

func TestParseRejectsNonHS256(t *testing.T) {
	// a token signed with "none" must never get through
	claims := Claims{AdminID: "admin-1", Username: "admin"}
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	tok, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	ts := TokenService{Secret: []byte("test-secret"), Issuer: "portfoliohub", Duration: time.Hour}
	_, err = ts.Parse(tok)
	assert.Error(t, err)
}
