package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	j := NewJWTer("secret", "plantya", time.Hour)
	tok, exp, err := j.Issue("A00001", "ADMIN")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	c, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "A00001", c.UserID)
	assert.Equal(t, "ADMIN", c.Role)
	assert.Equal(t, "A00001", c.Subject)
}

func TestParseRejectsForeignIssuerAndSecret(t *testing.T) {
	j := NewJWTer("secret", "plantya", time.Hour)
	tok, _, err := j.Issue("U00001", "USER")
	require.NoError(t, err)

	_, err = NewJWTer("secret", "other", time.Hour).Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewJWTer("other-secret", "plantya", time.Hour).Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	j := NewJWTer("secret", "plantya", time.Minute)
	j.now = func() time.Time { return time.Now().Add(-time.Hour) }
	tok, _, err := j.Issue("U00001", "USER")
	require.NoError(t, err)

	j.now = nil
	_, err = j.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPassword(t *testing.T) {
	h, err := HashPassword("plantya_U00001")
	require.NoError(t, err)
	assert.NotEqual(t, "plantya_U00001", h)
	assert.True(t, CheckPassword("plantya_U00001", h))
	assert.False(t, CheckPassword("wrong", h))
	assert.False(t, CheckPassword("x", "not-a-hash"))
}
