package session

import (
	"encoding/base64"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jwtWithExp(exp time.Time) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none"}`))
	payload := base64.RawURLEncoding.EncodeToString(
		[]byte(fmt.Sprintf(`{"sub":"1","exp":%d}`, exp.Unix())))
	return header + "." + payload + ".sig"
}

func TestTokenExpiry_JWT(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	got, ok := TokenExpiry(jwtWithExp(exp))
	require.True(t, ok)
	assert.Equal(t, exp.Unix(), got.Unix())
}

func TestTokenExpiry_OpaqueToken(t *testing.T) {
	_, ok := TokenExpiry("ust-9c1f2b7a40e84d1f")
	assert.False(t, ok)
}

func TestTokenExpiry_NoClaim(t *testing.T) {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none"}`))
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"1"}`))
	_, ok := TokenExpiry(header + "." + payload + ".sig")
	assert.False(t, ok)
}

func TestSessionValid(t *testing.T) {
	now := time.Now()

	var nilSession *Session
	assert.False(t, nilSession.Valid(now))
	assert.False(t, (&Session{}).Valid(now))

	// Embedded claim wins over the recorded expiry.
	expired := &Session{
		Token:     jwtWithExp(now.Add(-time.Minute)),
		ExpiresAt: now.Add(time.Hour),
	}
	assert.False(t, expired.Valid(now))

	live := &Session{Token: jwtWithExp(now.Add(time.Minute))}
	assert.True(t, live.Valid(now))

	// Opaque token falls back to the expiry recorded at login.
	opaque := &Session{Token: "ust-abc", ExpiresAt: now.Add(time.Hour)}
	assert.True(t, opaque.Valid(now))
	opaque.ExpiresAt = now.Add(-time.Hour)
	assert.False(t, opaque.Valid(now))

	// No expiry at all: present means valid.
	assert.True(t, (&Session{Token: "ust-abc"}).Valid(now))
}

func TestStore_SaveLoadClear(t *testing.T) {
	st := NewStoreAt(t.TempDir())

	s, err := st.Load()
	require.NoError(t, err)
	assert.Nil(t, s)

	in := Session{
		Token:     "ust-abc",
		Username:  "admin",
		ExpiresAt: time.Now().Add(time.Hour).UTC().Truncate(time.Second),
	}
	require.NoError(t, st.Save(in))

	s, err = st.Load()
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, in.Token, s.Token)
	assert.Equal(t, in.Username, s.Username)
	assert.Equal(t, "ust-abc", st.Token())

	require.NoError(t, st.Clear())
	s, err = st.Load()
	require.NoError(t, err)
	assert.Nil(t, s)
	assert.Empty(t, st.Token())

	// Clearing again is a no-op.
	require.NoError(t, st.Clear())
}

func TestStore_TokenExpired(t *testing.T) {
	st := NewStoreAt(t.TempDir())
	require.NoError(t, st.Save(Session{
		Token:     "ust-old",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))
	assert.Empty(t, st.Token())
}
