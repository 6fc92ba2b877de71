package identity_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/so-ota-biz/fridge-chef/internal/api/identity"
	"github.com/so-ota-biz/fridge-chef/internal/api/store/drivers/sqlite"
	"github.com/so-ota-biz/fridge-chef/pkg/cryptox"
	"github.com/so-ota-biz/fridge-chef/pkg/slogx"
	"github.com/stretchr/testify/require"
)

type outbox struct {
	mu     sync.Mutex
	tokens map[string]string
}

func (o *outbox) SendConfirmation(_ context.Context, email, token string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.tokens[email] = token
	return nil
}

func (o *outbox) token(email string) string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.tokens[email]
}

func newLocal(t *testing.T, requireConfirmation bool) (*identity.Local, *outbox, *time.Time) {
	t.Helper()
	s, err := sqlite.NewStore("file::memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })

	clock := time.Now().UTC()
	box := &outbox{tokens: make(map[string]string)}
	return &identity.Local{
		Store:               s,
		Hasher:              cryptox.NewPasswordHasher("pepper"),
		Notifier:            box,
		Logger:              slogx.Discard(),
		RequireConfirmation: requireConfirmation,
		ConfirmationTTL:     time.Hour,
		Now:                 func() time.Time { return clock },
	}, box, &clock
}

func TestLocalConfirmationFlow(t *testing.T) {
	t.Parallel()
	l, box, _ := newLocal(t, true)
	ctx := context.Background()

	created, err := l.CreateAccount(ctx, "A@x.com", "Aa123456")
	require.NoError(t, err)
	require.Equal(t, "a@x.com", created.Email)
	require.False(t, created.EmailConfirmed)
	require.NotEmpty(t, box.token("a@x.com"))

	got, err := l.VerifyCredentials(ctx, "a@x.com", "Aa123456")
	require.NoError(t, err)
	require.False(t, got.EmailConfirmed)

	_, err = l.ConfirmEmail(ctx, "not-the-token")
	require.ErrorIs(t, err, identity.ErrInvalidToken)

	confirmed, err := l.ConfirmEmail(ctx, box.token("a@x.com"))
	require.NoError(t, err)
	require.True(t, confirmed.EmailConfirmed)
	require.Equal(t, created.SubjectID, confirmed.SubjectID)

	_, err = l.ConfirmEmail(ctx, box.token("a@x.com"))
	require.ErrorIs(t, err, identity.ErrInvalidToken, "tokens are single use")

	got, err = l.VerifyCredentials(ctx, "a@x.com", "Aa123456")
	require.NoError(t, err)
	require.True(t, got.EmailConfirmed)
}

func TestLocalConfirmationExpires(t *testing.T) {
	t.Parallel()
	l, box, clock := newLocal(t, true)
	ctx := context.Background()

	_, err := l.CreateAccount(ctx, "a@x.com", "Aa123456")
	require.NoError(t, err)

	*clock = clock.Add(2 * time.Hour)
	_, err = l.ConfirmEmail(ctx, box.token("a@x.com"))
	require.ErrorIs(t, err, identity.ErrInvalidToken)
}

func TestLocalWithoutConfirmation(t *testing.T) {
	t.Parallel()
	l, box, _ := newLocal(t, false)
	ctx := context.Background()

	created, err := l.CreateAccount(ctx, "a@x.com", "Aa123456")
	require.NoError(t, err)
	require.True(t, created.EmailConfirmed)
	require.Empty(t, box.token("a@x.com"))
}

func TestLocalCredentials(t *testing.T) {
	t.Parallel()
	l, _, _ := newLocal(t, false)
	ctx := context.Background()

	created, err := l.CreateAccount(ctx, "a@x.com", "Aa123456")
	require.NoError(t, err)

	_, err = l.CreateAccount(ctx, "A@X.COM", "Bb123456")
	require.ErrorIs(t, err, identity.ErrEmailTaken)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"valid", "a@x.com", "Aa123456", nil},
		{"email is case-insensitive", "A@x.com", "Aa123456", nil},
		{"wrong password", "a@x.com", "Aa1234567", identity.ErrInvalidCredentials},
		{"unknown email", "b@x.com", "Aa123456", identity.ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := l.VerifyCredentials(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, created.SubjectID, got.SubjectID)
		})
	}

	t.Run("change password", func(t *testing.T) {
		require.ErrorIs(t, l.ChangePassword(ctx, created.SubjectID, "wrong", "Cc123456"), identity.ErrInvalidCredentials)
		require.NoError(t, l.ChangePassword(ctx, created.SubjectID, "Aa123456", "Cc123456"))

		_, err := l.VerifyCredentials(ctx, "a@x.com", "Aa123456")
		require.ErrorIs(t, err, identity.ErrInvalidCredentials)
		_, err = l.VerifyCredentials(ctx, "a@x.com", "Cc123456")
		require.NoError(t, err)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, l.DeleteAccount(ctx, created.SubjectID))
		require.ErrorIs(t, l.DeleteAccount(ctx, created.SubjectID), identity.ErrNotFound)
		_, err := l.GetAccount(ctx, created.SubjectID)
		require.ErrorIs(t, err, identity.ErrNotFound)
	})
}

func TestLocalNotifierFailureRollsBack(t *testing.T) {
	t.Parallel()
	l, _, _ := newLocal(t, true)
	ctx := context.Background()

	l.Notifier = identity.NotifierFunc(func(context.Context, string, string) error {
		return errors.New("smtp down")
	})
	_, err := l.CreateAccount(ctx, "a@x.com", "Aa123456")
	require.ErrorIs(t, err, identity.ErrUnavailable)

	_, err = l.VerifyCredentials(ctx, "a@x.com", "Aa123456")
	require.ErrorIs(t, err, identity.ErrInvalidCredentials, "the account was removed")
}
