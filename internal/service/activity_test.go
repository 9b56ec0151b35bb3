package service

import (
	"context"
	"testing"

	"TD_growth_tracker/internal/model"
	"TD_growth_tracker/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newActivityService(users UserRepository, records RecordRepository) *ActivityService {
	service := NewActivityService(users, records, 5, 10)
	service.now = fixedNow
	return service
}

func TestActivityService_SubmitTruth(t *testing.T) {
	stored := &model.User{ID: "alice", LastTruthDate: model.DateNone, LastDareDate: fixedToday}

	mockUsers := &mocks.MockUserRepository{}
	mockUsers.On("GetUser", mock.Anything, "alice").Return(stored, nil)
	mockUsers.On("UpdateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.ID == "alice" && u.LastTruthDate == fixedToday
	})).Return(nil)

	mockRecords := &mocks.MockRecordRepository{}
	mockRecords.On("AppendRecord", mock.Anything, mock.MatchedBy(func(r *model.ActivityRecord) bool {
		return r.UserID == "alice" &&
			r.Date == fixedToday &&
			r.Kind == model.KindTruth &&
			r.ContentID == 2 &&
			r.Response == "grateful for sunshine" &&
			r.CoinsEarned == 0
	})).Return(nil)

	service := newActivityService(mockUsers, mockRecords)
	prompt := &model.TruthPrompt{ID: 2, Question: "q"}
	err := service.SubmitTruth(context.Background(), "alice", prompt, "grateful for sunshine")

	require.NoError(t, err)
	mockUsers.AssertExpectations(t)
	mockRecords.AssertExpectations(t)
}

func TestActivityService_BeginDareRound(t *testing.T) {
	tests := []struct {
		name              string
		stored            model.User
		expectUpdate      bool
		expectedRemaining int
		expectedError     error
	}{
		{
			name:              "First attempt of a fresh day resets the counter",
			stored:            model.User{ID: "alice", LastDareDate: "2024-03-14", DareAttemptsToday: 5},
			expectUpdate:      true,
			expectedRemaining: 5,
		},
		{
			name:              "Mid-day round keeps the counter",
			stored:            model.User{ID: "alice", LastDareDate: fixedToday, DareAttemptsToday: 3},
			expectedRemaining: 2,
		},
		{
			name:          "Cap reached",
			stored:        model.User{ID: "alice", LastDareDate: fixedToday, DareAttemptsToday: 5},
			expectedError: ErrDareCapReached,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stored := tt.stored
			mockUsers := &mocks.MockUserRepository{}
			mockUsers.On("GetUser", mock.Anything, "alice").Return(&stored, nil)
			if tt.expectUpdate {
				mockUsers.On("UpdateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return u.DareAttemptsToday == 0 && u.LastDareDate == fixedToday
				})).Return(nil)
			}

			service := newActivityService(mockUsers, &mocks.MockRecordRepository{})
			remaining, err := service.BeginDareRound(context.Background(), "alice")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedRemaining, remaining)
			}
			mockUsers.AssertExpectations(t)
		})
	}
}

func TestActivityService_ResolveDare(t *testing.T) {
	challenge := &model.DareChallenge{ID: 101, Category: model.CategoryBody, Challenge: "Do 10 push-ups"}

	tests := []struct {
		name            string
		choice          int
		expectedOutcome string
		expectedCoins   int
	}{
		{
			name:            "Complete pays the reward",
			choice:          DareChoiceComplete,
			expectedOutcome: model.OutcomeComplete,
			expectedCoins:   10,
		},
		{
			name:            "Fail pays nothing",
			choice:          DareChoiceFail,
			expectedOutcome: model.OutcomeFail,
			expectedCoins:   0,
		},
		{
			name:            "Anything else is an invalid choice, attempt still consumed",
			choice:          9,
			expectedOutcome: model.OutcomeInvalid,
			expectedCoins:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stored := model.User{ID: "alice", Coins: 20, LastDareDate: fixedToday, DareAttemptsToday: 1}

			mockUsers := &mocks.MockUserRepository{}
			mockUsers.On("GetUser", mock.Anything, "alice").Return(&stored, nil)
			mockUsers.On("UpdateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
				return u.DareAttemptsToday == 2 && u.Coins == 20+tt.expectedCoins
			})).Return(nil)

			mockRecords := &mocks.MockRecordRepository{}
			mockRecords.On("AppendRecord", mock.Anything, mock.MatchedBy(func(r *model.ActivityRecord) bool {
				return r.UserID == "alice" &&
					r.Kind == model.KindDare &&
					r.ContentID == 101 &&
					r.Response == tt.expectedOutcome &&
					r.CoinsEarned == tt.expectedCoins
			})).Return(nil)

			service := newActivityService(mockUsers, mockRecords)
			result, err := service.ResolveDare(context.Background(), "alice", challenge, tt.choice)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedOutcome, result.Outcome)
			assert.Equal(t, tt.expectedCoins, result.CoinsEarned)
			assert.Equal(t, 3, result.Remaining)
			mockUsers.AssertExpectations(t)
			mockRecords.AssertExpectations(t)
		})
	}
}

// Five resolved dares exhaust the day; the sixth round is refused before
// a challenge or record exists.
func TestActivityService_DailyCapSequence(t *testing.T) {
	ctx := context.Background()
	stored := model.User{ID: "alice", LastDareDate: fixedToday, DareAttemptsToday: 0}
	challenge := &model.DareChallenge{ID: 101, Category: model.CategoryBody, Challenge: "c"}

	mockUsers := &mocks.MockUserRepository{}
	mockUsers.On("GetUser", mock.Anything, "alice").Return(&stored, nil)
	mockUsers.On("UpdateUser", mock.Anything, mock.Anything).Return(nil)

	mockRecords := &mocks.MockRecordRepository{}
	mockRecords.On("AppendRecord", mock.Anything, mock.Anything).Return(nil)

	service := newActivityService(mockUsers, mockRecords)

	for i := 0; i < 5; i++ {
		_, err := service.BeginDareRound(ctx, "alice")
		require.NoError(t, err)
		result, err := service.ResolveDare(ctx, "alice", challenge, DareChoiceFail)
		require.NoError(t, err)
		assert.Equal(t, 4-i, result.Remaining)
	}

	_, err := service.BeginDareRound(ctx, "alice")
	assert.ErrorIs(t, err, ErrDareCapReached)
	mockRecords.AssertNumberOfCalls(t, "AppendRecord", 5)
}
