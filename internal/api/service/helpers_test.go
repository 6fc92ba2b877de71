package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/so-ota-biz/fridge-chef/internal/api/domain"
	"github.com/so-ota-biz/fridge-chef/internal/api/identity"
	"github.com/so-ota-biz/fridge-chef/internal/api/store"
	"github.com/so-ota-biz/fridge-chef/internal/api/store/drivers/sqlite"
	"github.com/so-ota-biz/fridge-chef/pkg/jwtx"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

// MockProvider stands in for the identity provider.
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) CreateAccount(ctx context.Context, email, password string) (identity.Identity, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(identity.Identity), args.Error(1)
}

func (m *MockProvider) VerifyCredentials(ctx context.Context, email, password string) (identity.Identity, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(identity.Identity), args.Error(1)
}

func (m *MockProvider) ConfirmEmail(ctx context.Context, token string) (identity.Identity, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(identity.Identity), args.Error(1)
}

func (m *MockProvider) GetAccount(ctx context.Context, subjectID string) (identity.Identity, error) {
	args := m.Called(ctx, subjectID)
	return args.Get(0).(identity.Identity), args.Error(1)
}

func (m *MockProvider) ChangePassword(ctx context.Context, subjectID, current, next string) error {
	return m.Called(ctx, subjectID, current, next).Error(0)
}

func (m *MockProvider) DeleteAccount(ctx context.Context, subjectID string) error {
	return m.Called(ctx, subjectID).Error(0)
}

func newStore(t *testing.T) store.Store {
	t.Helper()
	s, err := sqlite.NewStore("file::memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// seedAccount inserts the account row a profile needs to exist.
func seedAccount(t *testing.T, s store.Store, id, email string) {
	t.Helper()
	require.NoError(t, s.Accounts().CreateAccount(context.Background(), domain.Account{
		ID:             id,
		Email:          email,
		PasswordHash:   "unused",
		EmailConfirmed: true,
	}))
}

func seedUser(t *testing.T, s store.Store, id, email string) {
	t.Helper()
	seedAccount(t, s, id, email)
	require.NoError(t, s.Users().CreateUser(context.Background(), domain.User{ID: id, Email: email}))
}

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newCodec(t *testing.T, c *clock) *jwtx.Codec {
	t.Helper()
	codec, err := jwtx.NewCodec(jwtx.Config{
		Secret:     testSecret,
		Issuer:     "fridge-chef",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: time.Hour,
		Now:        c.Now,
	})
	require.NoError(t, err)
	return codec
}

func ptr[T any](v T) *T { return &v }
