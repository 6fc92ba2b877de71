package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/so-ota-biz/fridge-chef/internal/api/domain"
	"github.com/so-ota-biz/fridge-chef/internal/api/identity"
	"github.com/so-ota-biz/fridge-chef/internal/api/store"
	"github.com/so-ota-biz/fridge-chef/pkg/jwtx"
	"github.com/so-ota-biz/fridge-chef/pkg/slogx"
)

// SessionService signs users up and in and rotates their credentials.
// Sessions are stateless: a session is the pair of tokens it hands out.
type SessionService struct {
	Identity identity.Provider
	Store    store.Store
	Codec    *jwtx.Codec
}

// Session is a freshly issued credential pair.
type Session struct {
	User         domain.User
	AccessToken  string
	RefreshToken string
}

type SignUpInput struct {
	Email       string
	Password    string
	DisplayName string
	FirstName   string
	LastName    string
}

// SignUp registers the account with the identity provider and stores the
// profile. No credentials are issued.
func (s *SessionService) SignUp(ctx context.Context, in SignUpInput) (domain.User, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return domain.User{}, err
	}
	if err := validatePassword("password", in.Password); err != nil {
		return domain.User{}, err
	}
	user := domain.User{Email: email}
	if user.DisplayName, err = optionalName("displayName", in.DisplayName); err != nil {
		return domain.User{}, err
	}
	if user.FirstName, err = optionalName("firstName", in.FirstName); err != nil {
		return domain.User{}, err
	}
	if user.LastName, err = optionalName("lastName", in.LastName); err != nil {
		return domain.User{}, err
	}

	id, err := s.Identity.CreateAccount(ctx, email, in.Password)
	if err != nil {
		return domain.User{}, mapIdentityErr(err)
	}

	user.ID = id.SubjectID
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		// Undo the account so the email can be used again.
		if derr := s.Identity.DeleteAccount(ctx, id.SubjectID); derr != nil {
			slogx.FromContext(ctx).ErrorContext(ctx, "failed to remove account after profile error",
				"subject_id", id.SubjectID, "err", derr)
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	return s.Store.Users().GetUserByID(ctx, user.ID)
}

// SignIn checks the credentials and issues a new session. Unconfirmed
// accounts are rejected with ErrEmailNotConfirmed.
func (s *SessionService) SignIn(ctx context.Context, email, password string) (Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Session{}, ErrInvalidCredentials
	}

	id, err := s.Identity.VerifyCredentials(ctx, strings.ToLower(email), password)
	if err != nil {
		return Session{}, mapIdentityErr(err)
	}
	if !id.EmailConfirmed {
		return Session{}, ErrEmailNotConfirmed
	}

	user, err := s.loadUser(ctx, id.SubjectID)
	if err != nil {
		return Session{}, err
	}
	return s.issue(user)
}

// Refresh verifies a refresh credential and issues a new pair. The old
// refresh credential is not revoked and stays valid until it expires.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	if refreshToken == "" {
		return Session{}, ErrUnauthenticated
	}

	claims, err := s.Codec.Verify(refreshToken, jwtx.KindRefresh)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	user, err := s.loadUser(ctx, claims.Subject)
	if err != nil {
		return Session{}, err
	}
	return s.issue(user)
}

// Me returns the profile behind an authenticated subject.
func (s *SessionService) Me(ctx context.Context, subjectID string) (domain.User, error) {
	return s.loadUser(ctx, subjectID)
}

// ConfirmEmail consumes a confirmation token.
func (s *SessionService) ConfirmEmail(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return invalid("token", "is required")
	}
	_, err := s.Identity.ConfirmEmail(ctx, token)
	return mapIdentityErr(err)
}

// loadUser treats a vanished profile as an unauthenticated caller.
func (s *SessionService) loadUser(ctx context.Context, subjectID string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUnauthenticated
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *SessionService) issue(user domain.User) (Session, error) {
	access, err := s.Codec.Issue(user.ID, user.Email, jwtx.KindAccess)
	if err != nil {
		return Session{}, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.Codec.Issue(user.ID, user.Email, jwtx.KindRefresh)
	if err != nil {
		return Session{}, fmt.Errorf("issue refresh token: %w", err)
	}
	return Session{User: user, AccessToken: access, RefreshToken: refresh}, nil
}
