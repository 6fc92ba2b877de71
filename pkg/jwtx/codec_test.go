package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/so-ota-biz/fridge-chef/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time          { return f.now }
func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func newTestCodec(t *testing.T, clock *fakeClock) *jwtx.Codec {
	t.Helper()
	c, err := jwtx.NewCodec(jwtx.Config{
		Secret:     []byte(testSecret),
		Issuer:     "fridge-chef",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
		Now:        clock.Now,
	})
	require.NoError(t, err)
	return c
}

func TestNewCodecSecret(t *testing.T) {
	_, err := jwtx.NewCodec(jwtx.Config{})
	require.ErrorIs(t, err, jwtx.ErrSecretMissing)

	_, err = jwtx.NewCodec(jwtx.Config{Secret: []byte("short")})
	require.ErrorIs(t, err, jwtx.ErrSecretTooShort)

	c, err := jwtx.NewCodec(jwtx.Config{Secret: []byte(testSecret)})
	require.NoError(t, err)
	require.Equal(t, jwtx.DefaultAccessTokenTTL, c.TTL(jwtx.KindAccess))
	require.Equal(t, jwtx.DefaultRefreshTokenTTL, c.TTL(jwtx.KindRefresh))
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		subject string
		email   string
		kind    jwtx.Kind
		ttl     time.Duration
	}{
		{"access", "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", "a@x.com", jwtx.KindAccess, 15 * time.Minute},
		{"refresh", "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", "a@x.com", jwtx.KindRefresh, 7 * 24 * time.Hour},
		{"unicode email", "user-2", "ユーザー@example.jp", jwtx.KindAccess, 15 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			clock := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
			codec := newTestCodec(t, clock)

			token, err := codec.Issue(tt.subject, tt.email, tt.kind)
			require.NoError(t, err)

			claims, err := codec.Verify(token, tt.kind)
			require.NoError(t, err)
			require.Equal(t, tt.subject, claims.Subject)
			require.Equal(t, tt.email, claims.Email)

			// Still valid one second before expiry.
			clock.Advance(tt.ttl - time.Second)
			_, err = codec.Verify(token, tt.kind)
			require.NoError(t, err)

			clock.Advance(time.Second)
			_, err = codec.Verify(token, tt.kind)
			require.ErrorIs(t, err, jwtx.ErrExpired)
		})
	}
}

func TestVerifyRejectsWrongKind(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	codec := newTestCodec(t, clock)

	refresh, err := codec.Issue("sub", "a@x.com", jwtx.KindRefresh)
	require.NoError(t, err)
	_, err = codec.Verify(refresh, jwtx.KindAccess)
	require.ErrorIs(t, err, jwtx.ErrWrongKind)

	access, err := codec.Issue("sub", "a@x.com", jwtx.KindAccess)
	require.NoError(t, err)
	_, err = codec.Verify(access, jwtx.KindRefresh)
	require.ErrorIs(t, err, jwtx.ErrWrongKind)
}

func TestVerifyTamperedTokenAlwaysFailsSignature(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	codec := newTestCodec(t, clock)

	token, err := codec.Issue("01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", "a@x.com", jwtx.KindAccess)
	require.NoError(t, err)

	for i := range len(token) {
		if token[i] == '.' {
			continue
		}
		replacement := byte('A')
		if token[i] == 'A' {
			replacement = 'B'
		}
		tampered := token[:i] + string(replacement) + token[i+1:]

		_, err := codec.Verify(tampered, jwtx.KindAccess)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig, "byte %d", i)
	}
}

func TestVerifyMalformed(t *testing.T) {
	codec := newTestCodec(t, &fakeClock{now: time.Now()})

	for _, in := range []string{"", "abc", "a.b", "a..c", "a.b.c.d", ".."} {
		_, err := codec.Verify(in, jwtx.KindAccess)
		require.ErrorIs(t, err, jwtx.ErrMalformed, "input %q", in)
	}
}

func TestVerifyRejectsOtherSecret(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	codec := newTestCodec(t, clock)

	other, err := jwtx.NewCodec(jwtx.Config{Secret: []byte(strings.Repeat("z", 32)), Issuer: "fridge-chef", Now: clock.Now})
	require.NoError(t, err)

	token, err := other.Issue("sub", "a@x.com", jwtx.KindAccess)
	require.NoError(t, err)

	_, err = codec.Verify(token, jwtx.KindAccess)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestVerifyRejectsAlgNone(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	codec := newTestCodec(t, clock)

	claims := jwtx.NewClaims("sub", "a@x.com", jwtx.KindAccess, time.Minute, "fridge-chef", clock.now)
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	// "none" tokens end with an empty signature segment.
	_, err = codec.Verify(unsigned, jwtx.KindAccess)
	require.Error(t, err)

	_, err = codec.Verify(unsigned+"c2ln", jwtx.KindAccess)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestVerifyIssuerMismatch(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	codec := newTestCodec(t, clock)

	other, err := jwtx.NewCodec(jwtx.Config{Secret: []byte(testSecret), Issuer: "someone-else", Now: clock.Now})
	require.NoError(t, err)

	token, err := other.Issue("sub", "a@x.com", jwtx.KindAccess)
	require.NoError(t, err)

	_, err = codec.Verify(token, jwtx.KindAccess)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}

func TestIssueRejectsEmptySubject(t *testing.T) {
	codec := newTestCodec(t, &fakeClock{now: time.Now()})

	_, err := codec.Issue("", "a@x.com", jwtx.KindAccess)
	require.ErrorIs(t, err, jwtx.ErrInvalidClaim)

	_, err = codec.Issue("sub", "a@x.com", jwtx.Kind("id"))
	require.ErrorIs(t, err, jwtx.ErrInvalidClaim)
}
