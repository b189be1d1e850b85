// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, refresh-token rotation and
// the user's own profile.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophcatalog/internal/common"
	"github.com/dmitrijs2005/gophcatalog/internal/dbx"
	"github.com/dmitrijs2005/gophcatalog/internal/logging"
	"github.com/dmitrijs2005/gophcatalog/internal/server/models"
	"github.com/dmitrijs2005/gophcatalog/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/gophcatalog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophcatalog/internal/server/repositories/users"
	"github.com/google/uuid"
)

const tokenTypeBearer = "Bearer"

const (
	msgInvalidCredentials  = "Invalid email or password"
	msgInvalidRefreshToken = "Invalid refresh token"
	msgUserNotFound        = "User not found"
	msgUsernameEmpty       = "Username cannot be empty"
	msgEmailEmpty          = "Email cannot be empty"
	msgPasswordTooShort    = "Password must be at least 6 characters"
	msgInvalidEmail        = "Invalid email format"
	msgUsernameTooLong     = "Username must be at most 50 characters"
	msgUsernameExists      = "Username already exists"
	msgEmailExists         = "Email already exists"
)

// PasswordHasher is satisfied by *cryptox.Hasher.
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, password, encoded string) (bool, error)
}

// TokenIssuer is satisfied by *auth.TokenManager.
type TokenIssuer interface {
	IssueAccessToken(userID uuid.UUID, username string, role models.Role, now time.Time) (string, error)
	NewRefreshToken() string
	AccessTTL() time.Duration
	RefreshTTL() time.Duration
}

type UserService struct {
	tx          dbx.Transactor
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	tokens      TokenIssuer
	log         logging.Logger
	now         func() time.Time

	dummyMu   sync.Mutex
	dummyHash string
}

func NewUserService(tx dbx.Transactor, m repomanager.RepositoryManager, hasher PasswordHasher, tokens TokenIssuer, log logging.Logger) *UserService {
	return &UserService{
		tx:          tx,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		log:         log,
		now:         time.Now,
	}
}

// Register creates a user with the "user" role and signs them in.
// Username conflicts are reported before email conflicts.
func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	username, email, err := validateCredentials(req.Username, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	conn := s.tx.Conn()
	if err := s.ensureUnique(ctx, s.repomanager.Users(conn), uuid.Nil, &username, &email); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(ctx, req.Password)
	if err != nil {
		return nil, common.NewInternalError(fmt.Errorf("hash password: %w", err))
	}

	var resp *models.AuthResponse
	err = s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.repomanager.Users(tx).Create(ctx, &models.User{
			Username:     username,
			Email:        email,
			PasswordHash: hash,
			Role:         models.RoleUser,
		})
		if err != nil {
			return mapUserWriteError(err)
		}

		resp, err = s.issueTokens(ctx, s.repomanager.RefreshTokens(tx), user)
		return err
	})
	if err != nil {
		return nil, common.AsAppError(err)
	}

	s.log.Info(ctx, "user registered", "user_id", resp.User.ID)
	return resp, nil
}

// Login verifies credentials, revokes every refresh token the user holds
// and issues a new pair. All credential failures look the same to callers.
func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if validate.Struct(models.LoginRequest{Email: email, Password: req.Password}) != nil {
		return nil, common.NewAuthenticationError(msgInvalidCredentials)
	}

	user, err := s.repomanager.Users(s.tx.Conn()).GetByEmail(ctx, email)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		// unknown emails still pay for one verification
		_, _ = s.hasher.Verify(ctx, req.Password, s.fallbackHash(ctx))
		return nil, common.NewAuthenticationError(msgInvalidCredentials)
	case err != nil:
		return nil, common.NewInternalError(fmt.Errorf("find user: %w", err))
	}

	ok, err := s.hasher.Verify(ctx, req.Password, user.PasswordHash)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredential) {
			s.log.Warn(ctx, "stored password hash rejected", "user_id", user.ID)
			return nil, common.NewAuthenticationError(msgInvalidCredentials)
		}
		return nil, common.NewInternalError(fmt.Errorf("verify password: %w", err))
	}
	if !ok {
		return nil, common.NewAuthenticationError(msgInvalidCredentials)
	}

	var resp *models.AuthResponse
	err = s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		tokens := s.repomanager.RefreshTokens(tx)
		if err := tokens.DeleteAllForUser(ctx, user.ID); err != nil {
			return fmt.Errorf("revoke refresh tokens: %w", err)
		}
		resp, err = s.issueTokens(ctx, tokens, user)
		return err
	})
	if err != nil {
		return nil, common.AsAppError(err)
	}

	return resp, nil
}

// Refresh exchanges a refresh token for a new pair. The presented token is
// consumed; a second use fails.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*models.AuthResponse, error) {
	if refreshToken == "" {
		return nil, common.NewAuthenticationError(msgInvalidRefreshToken)
	}

	var resp *models.AuthResponse
	err := s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		tokens := s.repomanager.RefreshTokens(tx)

		rt, err := tokens.Consume(ctx, refreshToken)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.NewAuthenticationError(msgInvalidRefreshToken)
			}
			return fmt.Errorf("consume refresh token: %w", err)
		}

		user, err := s.repomanager.Users(tx).GetByID(ctx, rt.UserID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.NewNotFoundError(msgUserNotFound)
			}
			return fmt.Errorf("find user: %w", err)
		}

		resp, err = s.issueTokens(ctx, tokens, user)
		return err
	})
	if err != nil {
		return nil, common.AsAppError(err)
	}

	return resp, nil
}

// Logout revokes one refresh token. Unknown tokens are not an error.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.repomanager.RefreshTokens(s.tx.Conn()).Delete(ctx, refreshToken); err != nil {
		return common.NewInternalError(fmt.Errorf("delete refresh token: %w", err))
	}
	return nil
}

func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.repomanager.Users(s.tx.Conn()).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewNotFoundError(msgUserNotFound)
		}
		return nil, common.NewInternalError(fmt.Errorf("find user: %w", err))
	}
	return user, nil
}

// UpdateProfile changes the username and/or email of userID.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req models.UpdateProfileRequest) (*models.User, error) {
	var username, email *string
	if req.Username != nil {
		v := normalizeName(*req.Username)
		username = &v
	}
	if req.Email != nil {
		v := normalizeEmail(*req.Email)
		email = &v
	}
	if err := checkStruct(models.UpdateProfileRequest{Username: username, Email: email}, profileRules); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.tx.Conn())
	if _, err := s.GetProfile(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, repo, userID, username, email); err != nil {
		return nil, err
	}

	user, err := repo.Update(ctx, userID, username, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewNotFoundError(msgUserNotFound)
		}
		return nil, mapUserWriteError(err)
	}
	return user, nil
}

// CreateAdmin stores a user with the admin role. It fails with a conflict
// when the username or email is taken.
func (s *UserService) CreateAdmin(ctx context.Context, username, email, password string) (*models.User, error) {
	username, email, err := validateCredentials(username, email, password)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.tx.Conn())
	if err := s.ensureUnique(ctx, repo, uuid.Nil, &username, &email); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return nil, common.NewInternalError(fmt.Errorf("hash password: %w", err))
	}

	user, err := repo.Create(ctx, &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	})
	if err != nil {
		return nil, mapUserWriteError(err)
	}

	s.log.Info(ctx, "admin created", "user_id", user.ID)
	return user, nil
}

// ReapExpiredTokens deletes expired refresh tokens.
func (s *UserService) ReapExpiredTokens(ctx context.Context) (int64, error) {
	return s.repomanager.RefreshTokens(s.tx.Conn()).DeleteExpired(ctx)
}

func (s *UserService) issueTokens(ctx context.Context, tokens refreshtokens.Repository, user *models.User) (*models.AuthResponse, error) {
	access, err := s.tokens.IssueAccessToken(user.ID, user.Username, user.Role, s.now())
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	refresh := s.tokens.NewRefreshToken()
	if _, err := tokens.Create(ctx, user.ID, refresh, s.tokens.RefreshTTL()); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.NewConflictError("Refresh token collision, please retry")
		}
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &models.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    tokenTypeBearer,
		ExpiresIn:    int64(s.tokens.AccessTTL() / time.Second),
		User:         *user,
	}, nil
}

// ensureUnique checks the non-nil fields against users other than self,
// username first.
func (s *UserService) ensureUnique(ctx context.Context, repo users.Repository, self uuid.UUID, username, email *string) error {
	if username != nil {
		u, err := repo.GetByUsername(ctx, *username)
		switch {
		case err == nil && u.ID != self:
			return common.NewConflictError(msgUsernameExists)
		case err != nil && !errors.Is(err, common.ErrorNotFound):
			return common.NewInternalError(fmt.Errorf("find user by username: %w", err))
		}
	}
	if email != nil {
		u, err := repo.GetByEmail(ctx, *email)
		switch {
		case err == nil && u.ID != self:
			return common.NewConflictError(msgEmailExists)
		case err != nil && !errors.Is(err, common.ErrorNotFound):
			return common.NewInternalError(fmt.Errorf("find user by email: %w", err))
		}
	}
	return nil
}

// fallbackHash is a hash of a random password. It is kept once computed;
// a failed attempt is retried by the next caller. The caller's cancellation
// does not abort it.
func (s *UserService) fallbackHash(ctx context.Context) string {
	s.dummyMu.Lock()
	defer s.dummyMu.Unlock()

	if s.dummyHash != "" {
		return s.dummyHash
	}

	h, err := s.hasher.Hash(context.WithoutCancel(ctx), uuid.NewString())
	if err != nil {
		s.log.Warn(ctx, "fallback hash unavailable", "error", err)
		return ""
	}
	s.dummyHash = h
	return h
}

// validateCredentials returns the normalized username and email.
func validateCredentials(username, email, password string) (string, string, error) {
	req := models.RegisterRequest{
		Username: normalizeName(username),
		Email:    normalizeEmail(email),
		Password: password,
	}
	if err := checkStruct(req, registerRules); err != nil {
		return "", "", err
	}
	return req.Username, req.Email, nil
}

func mapUserWriteError(err error) error {
	switch {
	case errors.Is(err, users.ErrUsernameTaken):
		return common.NewConflictError(msgUsernameExists)
	case errors.Is(err, users.ErrEmailTaken):
		return common.NewConflictError(msgEmailExists)
	default:
		return common.NewInternalError(fmt.Errorf("save user: %w", err))
	}
}
