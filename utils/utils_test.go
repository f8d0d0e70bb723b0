package utils

import (
	"crypto/tls"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueParse(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	token, err := m.IssueAdmin()
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "Admin", claims.Name)
	assert.True(t, claims.IsAdmin)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret", time.Hour).IssueAdmin()
	require.NoError(t, err)

	_, err = NewTokenManager("other", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := m.IssueAdmin()
	require.NoError(t, err)

	_, err = NewTokenManager("secret", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	_, err := NewTokenManager("secret", time.Hour).Parse("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		token  string
		err    error
	}{
		{"", "", ErrMissingToken},
		{"   ", "", ErrMissingToken},
		{"Bearer", "", ErrMalformedToken},
		{"Basic abc", "", ErrMalformedToken},
		{"Bearer a b", "", ErrMalformedToken},
		{"Bearer abc", "abc", nil},
		{"bearer abc", "abc", nil},
	}
	for _, tc := range cases {
		token, err := BearerToken(tc.header)
		if tc.err != nil {
			assert.True(t, errors.Is(err, tc.err), "header %q: got %v", tc.header, err)
			continue
		}
		assert.NoError(t, err)
		assert.Equal(t, tc.token, token)
	}
}

func TestPasscodeChecker_Plain(t *testing.T) {
	c := NewPasscodeChecker("letmein", "")
	assert.True(t, c.Check("letmein"))
	assert.False(t, c.Check("letmein "))
	assert.False(t, c.Check(""))

	assert.False(t, NewPasscodeChecker("", "").Check(""))
}

func TestPasscodeChecker_Hash(t *testing.T) {
	hash, err := HashPasscode("letmein")
	require.NoError(t, err)

	c := NewPasscodeChecker("ignored", hash)
	assert.True(t, c.Check("letmein"))
	assert.False(t, c.Check("ignored"))
}

func TestImageIntake_Filename(t *testing.T) {
	i := NewImageIntake(t.TempDir(), "uploads")
	i.now = func() time.Time { return time.UnixMilli(1700000000123) }

	assert.Equal(t, "1700000000123-cat.png", i.Filename("cat.png"))
	assert.Equal(t, "1700000000123-passwd", i.Filename("../../etc/passwd"))
	assert.Equal(t, "1700000000123-evil.png", i.Filename(`..\..\evil.png`))
	assert.Equal(t, "1700000000123-upload", i.Filename(""))
}

func TestImageIntake_URL(t *testing.T) {
	i := NewImageIntake("uploads", "/uploads/")

	r := httptest.NewRequest("POST", "/api/events", nil)
	r.Host = "example.com:5000"
	assert.Equal(t, "http://example.com:5000/uploads/1-a.png", i.URL(r, "1-a.png"))

	r.TLS = &tls.ConnectionState{}
	assert.Equal(t, "https://example.com:5000/uploads/1-a.png", i.URL(r, "1-a.png"))

	r.TLS = nil
	r.Header.Set("X-Forwarded-Proto", "https, http")
	assert.Equal(t, "https", RequestScheme(r))
}

func TestImageIntake_EnsureDir(t *testing.T) {
	dir := t.TempDir() + "/nested/uploads"
	i := NewImageIntake(dir, "uploads")
	require.NoError(t, i.EnsureDir())
	assert.DirExists(t, dir)
}

func TestResolveImageURL(t *testing.T) {
	url, err := ResolveImageURL("http://h/uploads/a.png", "http://elsewhere/b.png")
	require.NoError(t, err)
	assert.Equal(t, "http://h/uploads/a.png", url)

	url, err = ResolveImageURL("", "http://elsewhere/b.png")
	require.NoError(t, err)
	assert.Equal(t, "http://elsewhere/b.png", url)

	_, err = ResolveImageURL("", "")
	assert.ErrorIs(t, err, ErrImageRequired)
}
