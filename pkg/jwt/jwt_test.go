package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	m, err := NewManager("test-secret", 0)
	require.NoError(t, err)

	issued := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m.now = func() time.Time { return issued }

	sub := Subject{ID: uuid.New(), Email: "ana@x.com", Username: "ana"}
	token, err := m.GenerateToken(sub)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, sub.ID, id)
	assert.Equal(t, "ana@x.com", claims.Email)
	assert.Equal(t, "ana", claims.Username)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, issued.Add(8*time.Hour), claims.ExpiresAt.Time.UTC())
}

func TestTokenIDsAreUnique(t *testing.T) {
	m, err := NewManager("test-secret", time.Hour)
	require.NoError(t, err)

	sub := Subject{ID: uuid.New(), Email: "ana@x.com", Username: "ana"}
	a, err := m.GenerateToken(sub)
	require.NoError(t, err)
	b, err := m.GenerateToken(sub)
	require.NoError(t, err)

	ca, err := m.ParseToken(a)
	require.NoError(t, err)
	cb, err := m.ParseToken(b)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	m, err := NewManager("test-secret", time.Hour)
	require.NoError(t, err)

	issued := time.Now().Add(-2 * time.Hour)
	m.now = func() time.Time { return issued }
	token, err := m.GenerateToken(Subject{ID: uuid.New()})
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsForeignSignature(t *testing.T) {
	ours, err := NewManager("our-secret", time.Hour)
	require.NoError(t, err)
	theirs, err := NewManager("their-secret", time.Hour)
	require.NoError(t, err)

	token, err := theirs.GenerateToken(Subject{ID: uuid.New()})
	require.NoError(t, err)

	_, err = ours.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsUnsignedToken(t *testing.T) {
	m, err := NewManager("test-secret", time.Hour)
	require.NoError(t, err)

	claims := gojwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewManagerRequiresSecret(t *testing.T) {
	_, err := NewManager("", time.Hour)
	assert.Error(t, err)
}
