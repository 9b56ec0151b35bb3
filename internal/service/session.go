package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"TD_growth_tracker/internal/model"
	"TD_growth_tracker/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type SessionService struct {
	repo     UserRepository
	maxUsers int
	now      func() time.Time
}

func NewSessionService(repo UserRepository, maxUsers int) *SessionService {
	return &SessionService{
		repo:     repo,
		maxUsers: maxUsers,
		now:      time.Now,
	}
}

// Register creates a profile with zero coins and no activity history.
// It never logs the new user in; the caller goes back to the login menu.
func (s *SessionService) Register(ctx context.Context, id, password string) error {
	if id == "" || password == "" {
		return ErrEmptyCredentials
	}
	// The id is a whitespace-delimited token in the users file; an id
	// with embedded whitespace would corrupt its line and truncate the
	// load on the next start.
	if strings.IndexFunc(id, unicode.IsSpace) >= 0 {
		return ErrInvalidUserID
	}

	count, err := s.repo.UserCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count >= s.maxUsers {
		return ErrUserCapReached
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:                id,
		PasswordHash:      string(hash),
		Coins:             0,
		LastTruthDate:     model.DateNone,
		LastDareDate:      model.DateNone,
		DareAttemptsToday: 0,
	}

	err = s.repo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return ErrUserExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// Login resolves to the same error whether the id is unknown or the
// password is wrong.
func (s *SessionService) Login(ctx context.Context, id, password string) (*model.User, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *SessionService) Profile(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// ResetDailyStatus rolls the profile's eligibility windows over to today.
// A stale truth date clears to the sentinel; a stale dare date zeroes the
// attempt counter and stamps today as the dare date even though no dare
// has been attempted yet. The attempt-cap check relies on that stamp.
func (s *SessionService) ResetDailyStatus(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := localDate(s.now())
	changed := false

	if user.LastTruthDate != today && user.LastTruthDate != model.DateNone {
		user.LastTruthDate = model.DateNone
		changed = true
	}
	if user.LastDareDate != today {
		user.DareAttemptsToday = 0
		user.LastDareDate = today
		changed = true
	}

	if changed {
		if err := s.repo.UpdateUser(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}

	return user, nil
}
