package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jwkFor(kid string, pub *rsa.PublicKey) JSONWebKey {
	return JSONWebKey{
		Kid: kid,
		Kty: "RSA",
		Alg: "RS256",
		Use: "sig",
		N:   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
		E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
	}
}

func TestProviderVerifiesRS256(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_ = json.NewEncoder(w).Encode(JWKS{Keys: []JSONWebKey{jwkFor("k1", &key.PublicKey)}})
	}))
	defer srv.Close()

	p := NewProvider(srv.URL)

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	token.Header["kid"] = "k1"
	signed, err := token.SignedString(key)
	require.NoError(t, err)

	parsed, err := jwt.Parse(signed, p.KeyFunc)
	require.NoError(t, err)
	assert.True(t, parsed.Valid)

	// cached after the first fetch
	_, err = jwt.Parse(signed, p.KeyFunc)
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())

	// unknown kid within the cooldown does not refetch
	_, err = p.PublicKey(t.Context(), "missing")
	assert.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestProviderRejectsHMAC(t *testing.T) {
	p := NewProvider("http://127.0.0.1:0")
	token := jwt.New(jwt.SigningMethodHS256)
	_, err := p.KeyFunc(token)
	assert.Error(t, err)
}
