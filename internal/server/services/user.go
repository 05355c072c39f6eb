// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login and the caller's profile.
package services

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/dbx"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/dmitrijs2005/gophnotes/internal/server/auth"
	"github.com/dmitrijs2005/gophnotes/internal/server/config"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/repomanager"
)

// PasswordHasher hashes and verifies passwords. auth.BcryptHasher is the
// production implementation.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// UserService provides account operations:
// - Register: validate, create the user and mint a token
// - Login: verify credentials and mint a token
// - GetCurrentUser / UpdateCurrentUser: the caller's own profile
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	hasher                      PasswordHasher
	logger                      logging.Logger
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration

	dummyHashOnce sync.Once
	dummyHash     string
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, h PasswordHasher, l logging.Logger, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		hasher:                      h,
		logger:                      l.With("module", "user_service"),
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register validates the input, stores a new user and returns an access token.
// Checks run in order (email syntax, email availability, name, password) and
// only the first failure is reported.
func (s *UserService) Register(ctx context.Context, name, email, password string) (string, error) {
	if !isValidEmail(email) {
		return "", common.NewValidationError(msgInvalidEmail)
	}

	repo := s.repomanager.Users(s.db)

	// a failed lookup must not block sign-up; the unique index still guards the insert
	_, err := repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return "", duplicateEmailError()
	case !errors.Is(err, common.ErrorNotFound):
		s.logger.Warn(ctx, "email lookup failed during registration", "error", err)
	}

	if !hasMinLength(name, minNameLength) {
		return "", common.NewValidationError(msgShortName)
	}
	if !hasMinLength(password, minPasswordLength) {
		return "", common.NewValidationError(msgShortPassword)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error(ctx, "password hashing failed", "error", err)
		return "", common.ErrorInternal
	}

	user, err := repo.Create(ctx, &models.User{Name: name, Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorDuplicateEmail) {
			return "", duplicateEmailError()
		}
		s.logger.Error(ctx, "error creating user", "error", err)
		return "", common.ErrorInternal
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)

	return s.generateAccessToken(ctx, user.ID)
}

// Login verifies credentials and returns an access token. Unknown emails and
// wrong passwords produce the same error and cost the same bcrypt work.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	if !isValidEmail(email) {
		return "", common.NewValidationError(msgInvalidEmail)
	}
	if !isPresent(password) {
		return "", common.NewValidationError(msgBlankPassword)
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(password, s.getDummyHash())
			return "", wrongCredentialsError()
		}
		s.logger.Error(ctx, "error loading user", "error", err)
		return "", common.ErrorInternal
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", wrongCredentialsError()
	}

	return s.generateAccessToken(ctx, user.ID)
}

// GetCurrentUser returns the caller's profile.
func (s *UserService) GetCurrentUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.logger.Error(ctx, "error loading user", "user_id", userID, "error", err)
		return nil, common.ErrorInternal
	}
	return user, nil
}

// UpdateCurrentUser changes the caller's name and/or email. The availability
// check and the write share one transaction.
func (s *UserService) UpdateCurrentUser(ctx context.Context, userID string, upd models.UserUpdate) (*models.User, error) {
	if upd.Email != nil && !isValidEmail(*upd.Email) {
		return nil, common.NewValidationError(msgInvalidEmail)
	}
	if upd.Name != nil && !hasMinLength(*upd.Name, minNameLength) {
		return nil, common.NewValidationError(msgShortName)
	}
	if upd.IsEmpty() {
		return s.GetCurrentUser(ctx, userID)
	}

	user, err := dbx.InTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (*models.User, error) {
		repo := s.repomanager.Users(tx)

		if upd.Email != nil {
			existing, err := repo.GetUserByEmail(ctx, *upd.Email)
			if err == nil && existing.ID != userID {
				return nil, common.ErrorDuplicateEmail
			}
			if err != nil && !errors.Is(err, common.ErrorNotFound) {
				return nil, err
			}
		}

		return repo.Update(ctx, userID, upd)
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorDuplicateEmail):
			return nil, duplicateEmailError()
		case errors.Is(err, common.ErrorNotFound):
			return nil, common.ErrorNotFound
		default:
			s.logger.Error(ctx, "error updating user", "user_id", userID, "error", err)
			return nil, common.ErrorInternal
		}
	}

	return user, nil
}

// --- helpers below ---

func (s *UserService) generateAccessToken(ctx context.Context, userID string) (string, error) {
	token, err := auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		s.logger.Error(ctx, "error signing token", "error", err)
		return "", common.ErrorInternal
	}
	return token, nil
}

// getDummyHash returns a hash of a random password, computed once, so that
// logins for unknown emails still run a full bcrypt comparison.
func (s *UserService) getDummyHash() string {
	s.dummyHashOnce.Do(func() {
		buf := make([]byte, 16)
		_, _ = rand.Read(buf)
		if h, err := s.hasher.Hash(hex.EncodeToString(buf)); err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}
