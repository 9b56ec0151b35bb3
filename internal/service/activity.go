package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"TD_growth_tracker/internal/model"
	"TD_growth_tracker/internal/repository"
)

// Dare outcome menu choices.
const (
	DareChoiceComplete = 1
	DareChoiceFail     = 2
)

type ActivityService struct {
	users   UserRepository
	records RecordRepository
	dareCap int
	reward  int
	now     func() time.Time
}

func NewActivityService(users UserRepository, records RecordRepository, dareCap, reward int) *ActivityService {
	return &ActivityService{
		users:   users,
		records: records,
		dareCap: dareCap,
		reward:  reward,
		now:     time.Now,
	}
}

func (s *ActivityService) getUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// SubmitTruth records the answer and closes the truth window for today.
// The record is persisted before the profile so a crash in between loses
// the daily gate, not the answer.
func (s *ActivityService) SubmitTruth(ctx context.Context, userID string, prompt *model.TruthPrompt, answer string) error {
	today := localDate(s.now())

	record := &model.ActivityRecord{
		UserID:      userID,
		Date:        today,
		Kind:        model.KindTruth,
		ContentID:   prompt.ID,
		Response:    answer,
		CoinsEarned: 0,
	}
	if err := s.records.AppendRecord(ctx, record); err != nil {
		return fmt.Errorf("failed to append record: %w", err)
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	user.LastTruthDate = today
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

// BeginDareRound applies the dare-side daily reset and checks the cap.
// It returns how many attempts remain today.
func (s *ActivityService) BeginDareRound(ctx context.Context, userID string) (int, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	today := localDate(s.now())
	if user.LastDareDate != today {
		user.DareAttemptsToday = 0
		user.LastDareDate = today
		if err := s.users.UpdateUser(ctx, user); err != nil {
			return 0, fmt.Errorf("failed to update user: %w", err)
		}
	}

	if user.DareAttemptsToday >= s.dareCap {
		return 0, ErrDareCapReached
	}
	return s.dareCap - user.DareAttemptsToday, nil
}

type DareResult struct {
	Outcome     string
	CoinsEarned int
	Remaining   int
}

// ResolveDare consumes one attempt regardless of the choice. Choice 1
// completes the dare and pays the reward, 2 fails it, anything else is
// recorded as an invalid choice with no coins.
func (s *ActivityService) ResolveDare(ctx context.Context, userID string, challenge *model.DareChallenge, choice int) (*DareResult, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.DareAttemptsToday++

	outcome := model.OutcomeInvalid
	coins := 0
	switch choice {
	case DareChoiceComplete:
		outcome = model.OutcomeComplete
		coins = s.reward
		user.Coins += coins
	case DareChoiceFail:
		outcome = model.OutcomeFail
	}

	record := &model.ActivityRecord{
		UserID:      userID,
		Date:        localDate(s.now()),
		Kind:        model.KindDare,
		ContentID:   challenge.ID,
		Response:    outcome,
		CoinsEarned: coins,
	}
	if err := s.records.AppendRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to append record: %w", err)
	}
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &DareResult{
		Outcome:     outcome,
		CoinsEarned: coins,
		Remaining:   s.dareCap - user.DareAttemptsToday,
	}, nil
}
