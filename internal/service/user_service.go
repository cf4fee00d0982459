package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// UserService provides user-related operations.
type UserService interface {
	// ListAll returns every user.
	ListAll(ctx context.Context) ([]*domain.User, error)

	// FindByEmail returns the user with the given email, or nil when there is none.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpsertIfAbsent inserts user unless its email is already registered.
	// It returns the identifier of the stored user and whether it was created.
	// An existing user is never modified.
	UpsertIfAbsent(ctx context.Context, user *domain.User) (uuid.UUID, bool, error)

	// Remove deletes a user by identifier and returns the number of deleted records.
	Remove(ctx context.Context, id string) (int64, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	db        *sql.DB
	logger    *slog.Logger
}

// NewUserService creates a new UserService. When db is non-nil the
// check-then-insert of UpsertIfAbsent runs in a transaction.
func NewUserService(userStore store.UserStore, db *sql.DB, logger *slog.Logger) (UserService, error) {
	if userStore == nil {
		return nil, fmt.Errorf("user store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		db:        db,
		logger:    logger.With(slog.String("component", "user_service")),
	}, nil
}

// ListAll implements UserService.ListAll
func (s *UserServiceImpl) ListAll(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		s.log(ctx).Error("failed to list users", slog.String("error", err.Error()))
		return nil, mapStoreError(err)
	}
	return users, nil
}

// FindByEmail implements UserService.FindByEmail
func (s *UserServiceImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.log(ctx).Debug("user not found by email")
			return nil, nil
		}
		s.log(ctx).Error("failed to retrieve user by email", slog.String("error", err.Error()))
		return nil, mapStoreError(err)
	}
	return user, nil
}

// UpsertIfAbsent implements UserService.UpsertIfAbsent
func (s *UserServiceImpl) UpsertIfAbsent(ctx context.Context, user *domain.User) (uuid.UUID, bool, error) {
	log := s.log(ctx)

	if user == nil {
		return uuid.Nil, false, domain.NewValidationError("user", "is required", domain.ErrValidation)
	}
	user.ID = uuid.Nil
	if err := user.Validate(); err != nil {
		return uuid.Nil, false, err
	}

	var (
		id      uuid.UUID
		created bool
	)
	err := s.withUserStore(ctx, func(ctx context.Context, users store.UserStore) error {
		existing, err := users.GetByEmail(ctx, user.Email)
		switch {
		case err == nil:
			id = existing.ID
			return nil
		case !errors.Is(err, store.ErrUserNotFound):
			return err
		}

		if err := users.Create(ctx, user); err != nil {
			return err
		}
		id, created = user.ID, true
		return nil
	})

	if errors.Is(err, store.ErrEmailExists) {
		// Lost a race with a concurrent insert of the same email.
		existing, getErr := s.userStore.GetByEmail(ctx, user.Email)
		if getErr != nil {
			log.Error("failed to re-read user after duplicate insert", slog.String("error", getErr.Error()))
			return uuid.Nil, false, mapStoreError(getErr)
		}
		log.Debug("user inserted concurrently", slog.String("user_id", existing.ID.String()))
		return existing.ID, false, nil
	}
	if err != nil {
		log.Error("failed to upsert user", slog.String("error", err.Error()))
		return uuid.Nil, false, mapStoreError(err)
	}

	if created {
		log.Info("user created", slog.String("user_id", id.String()))
	} else {
		log.Debug("user already exists", slog.String("user_id", id.String()))
	}
	return id, created, nil
}

// Remove implements UserService.Remove
func (s *UserServiceImpl) Remove(ctx context.Context, id string) (int64, error) {
	userID, err := parseID(id)
	if err != nil {
		return 0, err
	}

	deleted, err := s.userStore.Delete(ctx, userID)
	if err != nil {
		s.log(ctx).Error("failed to delete user",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, mapStoreError(err)
	}
	return deleted, nil
}

// withUserStore runs fn with a transaction-bound store when a database
// handle is available, and with the plain store otherwise.
func (s *UserServiceImpl) withUserStore(
	ctx context.Context,
	fn func(ctx context.Context, users store.UserStore) error,
) error {
	if s.db == nil {
		return fn(ctx, s.userStore)
	}
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, s.userStore.WithTx(tx))
	})
}

func (s *UserServiceImpl) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}
