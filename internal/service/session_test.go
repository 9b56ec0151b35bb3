package service

import (
	"context"
	"testing"
	"time"

	"TD_growth_tracker/internal/model"
	"TD_growth_tracker/internal/repository"
	"TD_growth_tracker/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func fixedNow() time.Time {
	return time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)
}

const fixedToday = "2024-03-15"

func TestSessionService_Register(t *testing.T) {
	tests := []struct {
		name          string
		id            string
		password      string
		mockSetup     func(repo *mocks.MockUserRepository)
		expectedError error
	}{
		{
			name:     "Successful registration",
			id:       "alice",
			password: "secret",
			mockSetup: func(repo *mocks.MockUserRepository) {
				repo.On("UserCount", mock.Anything).Return(0, nil)
				repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return u.ID == "alice" &&
						u.Coins == 0 &&
						u.LastTruthDate == model.DateNone &&
						u.LastDareDate == model.DateNone &&
						u.DareAttemptsToday == 0 &&
						bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret")) == nil
				})).Return(nil)
			},
		},
		{
			name:     "Duplicate id",
			id:       "alice",
			password: "secret",
			mockSetup: func(repo *mocks.MockUserRepository) {
				repo.On("UserCount", mock.Anything).Return(1, nil)
				repo.On("CreateUser", mock.Anything, mock.Anything).Return(repository.ErrAlreadyExists)
			},
			expectedError: ErrUserExists,
		},
		{
			name:     "Capacity reached",
			id:       "late",
			password: "secret",
			mockSetup: func(repo *mocks.MockUserRepository) {
				repo.On("UserCount", mock.Anything).Return(100, nil)
			},
			expectedError: ErrUserCapReached,
		},
		{
			name:          "Id with embedded space",
			id:            "a b",
			password:      "secret",
			mockSetup:     func(repo *mocks.MockUserRepository) {},
			expectedError: ErrInvalidUserID,
		},
		{
			name:          "Id with embedded tab",
			id:            "a\tb",
			password:      "secret",
			mockSetup:     func(repo *mocks.MockUserRepository) {},
			expectedError: ErrInvalidUserID,
		},
		{
			name:          "Empty id",
			id:            "",
			password:      "secret",
			mockSetup:     func(repo *mocks.MockUserRepository) {},
			expectedError: ErrEmptyCredentials,
		},
		{
			name:          "Empty password",
			id:            "alice",
			password:      "",
			mockSetup:     func(repo *mocks.MockUserRepository) {},
			expectedError: ErrEmptyCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockUserRepository{}
			tt.mockSetup(mockRepo)

			service := NewSessionService(mockRepo, 100)
			err := service.Register(context.Background(), tt.id, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestSessionService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &model.User{
		ID:            "alice",
		PasswordHash:  string(hash),
		Coins:         30,
		LastTruthDate: model.DateNone,
		LastDareDate:  model.DateNone,
	}

	tests := []struct {
		name          string
		id            string
		password      string
		mockSetup     func(repo *mocks.MockUserRepository)
		expectedError error
	}{
		{
			name:     "Successful login",
			id:       "alice",
			password: "secret",
			mockSetup: func(repo *mocks.MockUserRepository) {
				repo.On("GetUser", mock.Anything, "alice").Return(stored, nil)
			},
		},
		{
			name:     "Wrong password",
			id:       "alice",
			password: "wrong",
			mockSetup: func(repo *mocks.MockUserRepository) {
				repo.On("GetUser", mock.Anything, "alice").Return(stored, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "Unknown id",
			id:       "mallory",
			password: "secret",
			mockSetup: func(repo *mocks.MockUserRepository) {
				repo.On("GetUser", mock.Anything, "mallory").Return(nil, repository.ErrNotFound)
			},
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockUserRepository{}
			tt.mockSetup(mockRepo)

			service := NewSessionService(mockRepo, 100)
			user, err := service.Login(context.Background(), tt.id, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "alice", user.ID)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestSessionService_ResetDailyStatus(t *testing.T) {
	tests := []struct {
		name         string
		stored       model.User
		expectUpdate bool
		check        func(t *testing.T, u *model.User)
	}{
		{
			name: "Both dates already today",
			stored: model.User{
				ID: "alice", LastTruthDate: fixedToday, LastDareDate: fixedToday, DareAttemptsToday: 3,
			},
			expectUpdate: false,
			check: func(t *testing.T, u *model.User) {
				assert.Equal(t, fixedToday, u.LastTruthDate)
				assert.Equal(t, fixedToday, u.LastDareDate)
				assert.Equal(t, 3, u.DareAttemptsToday)
			},
		},
		{
			name: "Stale truth date clears to sentinel",
			stored: model.User{
				ID: "alice", LastTruthDate: "2024-03-14", LastDareDate: fixedToday, DareAttemptsToday: 1,
			},
			expectUpdate: true,
			check: func(t *testing.T, u *model.User) {
				assert.Equal(t, model.DateNone, u.LastTruthDate)
				assert.Equal(t, 1, u.DareAttemptsToday)
			},
		},
		{
			name: "Stale dare date zeroes attempts and stamps today",
			stored: model.User{
				ID: "alice", LastTruthDate: fixedToday, LastDareDate: "2024-03-14", DareAttemptsToday: 5,
			},
			expectUpdate: true,
			check: func(t *testing.T, u *model.User) {
				assert.Equal(t, 0, u.DareAttemptsToday)
				assert.Equal(t, fixedToday, u.LastDareDate)
			},
		},
		{
			name: "Fresh profile stamps dare date before any attempt",
			stored: model.User{
				ID: "alice", LastTruthDate: model.DateNone, LastDareDate: model.DateNone,
			},
			expectUpdate: true,
			check: func(t *testing.T, u *model.User) {
				assert.Equal(t, model.DateNone, u.LastTruthDate)
				assert.Equal(t, fixedToday, u.LastDareDate)
				assert.Equal(t, 0, u.DareAttemptsToday)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stored := tt.stored
			mockRepo := &mocks.MockUserRepository{}
			mockRepo.On("GetUser", mock.Anything, "alice").Return(&stored, nil)
			if tt.expectUpdate {
				mockRepo.On("UpdateUser", mock.Anything, mock.Anything).Return(nil)
			}

			service := NewSessionService(mockRepo, 100)
			service.now = fixedNow

			user, err := service.ResetDailyStatus(context.Background(), "alice")
			require.NoError(t, err)
			tt.check(t, user)
			mockRepo.AssertExpectations(t)
		})
	}
}
