package repository

import (
	"context"
	"fmt"
	"strconv"

	"TD_growth_tracker/internal/model"
	"TD_growth_tracker/pkg/logger"

	"go.uber.org/zap"
)

// Users file line: id passwordHash coins lastTruthDate lastDareDate dareAttemptsToday

func (s *Store) loadUsers() error {
	found, err := s.readLines(s.cfg.UsersFile, func(line string) bool {
		tokens, rest, ok := splitTokens(line, 6)
		if !ok || rest != "" {
			return false
		}
		coins, err := strconv.Atoi(tokens[2])
		if err != nil {
			return false
		}
		attempts, err := strconv.Atoi(tokens[5])
		if err != nil {
			return false
		}
		u := &model.User{
			ID:                tokens[0],
			PasswordHash:      tokens[1],
			Coins:             coins,
			LastTruthDate:     tokens[3],
			LastDareDate:      tokens[4],
			DareAttemptsToday: attempts,
		}
		if _, dup := s.users[u.ID]; dup {
			return false
		}
		s.users[u.ID] = u
		s.userOrder = append(s.userOrder, u.ID)
		return true
	})
	if err != nil {
		return err
	}
	if !found {
		logger.Logger().Info("users file missing, starting with no users",
			zap.String("file", s.cfg.UsersFile))
	}
	return nil
}

func (s *Store) saveUsers() error {
	lines := make([]string, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		u := s.users[id]
		lines = append(lines, fmt.Sprintf("%s %s %d %s %s %d",
			u.ID, u.PasswordHash, u.Coins, u.LastTruthDate, u.LastDareDate, u.DareAttemptsToday))
	}
	if err := s.writeLines(s.cfg.UsersFile, lines); err != nil {
		return err
	}
	logger.Logger().Info("saved users", zap.Int("count", len(lines)))
	return nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	if _, exists := s.users[user.ID]; exists {
		return ErrAlreadyExists
	}
	copied := *user
	s.users[user.ID] = &copied
	s.userOrder = append(s.userOrder, user.ID)
	return s.saveUsers()
}

func (s *Store) UpdateUser(ctx context.Context, user *model.User) error {
	if _, exists := s.users[user.ID]; !exists {
		return ErrNotFound
	}
	copied := *user
	s.users[user.ID] = &copied
	return s.saveUsers()
}

func (s *Store) ListUsers(ctx context.Context) ([]*model.User, error) {
	users := make([]*model.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		copied := *s.users[id]
		users = append(users, &copied)
	}
	return users, nil
}

func (s *Store) UserCount(ctx context.Context) (int, error) {
	return len(s.userOrder), nil
}
