package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jwulff/glucowise-go/internal/auth"
	"github.com/jwulff/glucowise-go/internal/domain"
	"github.com/jwulff/glucowise-go/internal/storage"
)

// AddUser validates and stores a new user. Missing IDs, creation times and
// goals are filled in.
func (t *Tracker) AddUser(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = t.newID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = t.now()
	}
	if user.Goals == (domain.HealthGoals{}) {
		user.Goals = domain.DefaultGoals()
	}
	user.Email = normalizeEmail(user.Email)

	if err := domain.Validate(user); err != nil {
		return err
	}
	if err := t.saveUser(ctx, user); err != nil {
		return err
	}

	t.logger.Info("user added", zap.String("user_id", user.ID))
	return nil
}

// Register creates an account with a password.
func (t *Tracker) Register(ctx context.Context, user *domain.User, password string) error {
	if err := domain.ValidatePassword(password); err != nil {
		return err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return t.AddUser(ctx, user)
}

// Login returns the user with the given email if password matches.
func (t *Tracker) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := t.store.GetUserByEmail(ctx, normalizeEmail(email))
	if storage.IsNotFound(err) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return user, nil
}

// GetUser returns a user by ID.
func (t *Tracker) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := t.store.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// ListUsers returns every user.
func (t *Tracker) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := t.store.GetUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateUser replaces a user's profile and goals. The password hash and
// creation time cannot be changed this way.
func (t *Tracker) UpdateUser(ctx context.Context, user *domain.User) error {
	existing, err := t.GetUser(ctx, user.ID)
	if err != nil {
		return err
	}
	user.PasswordHash = existing.PasswordHash
	user.CreatedAt = existing.CreatedAt
	user.Email = normalizeEmail(user.Email)

	if err := domain.Validate(user); err != nil {
		return err
	}
	return t.saveUser(ctx, user)
}

// ChangePassword replaces a user's password after checking the old one.
func (t *Tracker) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := t.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := auth.CheckPassword(user.PasswordHash, oldPassword); err != nil {
		if errors.Is(err, auth.ErrMismatch) {
			return ErrInvalidCredentials
		}
		return err
	}
	if err := domain.ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := t.saveUser(ctx, user); err != nil {
		return err
	}

	t.logger.Info("password changed", zap.String("user_id", userID))
	return nil
}

func (t *Tracker) saveUser(ctx context.Context, user *domain.User) error {
	err := t.store.SaveUser(ctx, user)
	if storage.IsConflict(err) {
		return ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// requireUser fails with storage.ErrNotFound when userID is unknown.
func (t *Tracker) requireUser(ctx context.Context, userID string) (*domain.User, error) {
	return t.GetUser(ctx, userID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
