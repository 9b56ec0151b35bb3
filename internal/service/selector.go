package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"TD_growth_tracker/internal/model"
)

type SelectorService struct {
	content ContentRepository
	rng     *rand.Rand
	now     func() time.Time
}

func NewSelectorService(content ContentRepository, rng *rand.Rand) *SelectorService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &SelectorService{
		content: content,
		rng:     rng,
		now:     time.Now,
	}
}

// DrawTruthPrompt picks a random prompt for the user's once-a-day truth.
// Every used flag is cleared before drawing, so the flag only guards
// against re-drawing a prompt within this one selection pass.
func (s *SelectorService) DrawTruthPrompt(ctx context.Context, user *model.User) (*model.TruthPrompt, error) {
	if user.LastTruthDate == localDate(s.now()) {
		return nil, ErrTruthAlreadyAnswered
	}

	prompts, err := s.content.TruthPrompts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get truth prompts: %w", err)
	}
	if len(prompts) == 0 {
		return nil, ErrNoPrompts
	}

	for _, p := range prompts {
		p.Used = false
	}

	for {
		p := prompts[s.rng.Intn(len(prompts))]
		if !p.Used {
			p.Used = true
			return p, nil
		}
	}
}

// DrawDareChallenge picks uniformly among the challenges of one category,
// so the odds do not depend on how the other categories are populated.
func (s *SelectorService) DrawDareChallenge(ctx context.Context, category model.Category) (*model.DareChallenge, error) {
	challenges, err := s.content.DareChallenges(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get dare challenges: %w", err)
	}

	var matches []*model.DareChallenge
	for _, c := range challenges {
		if c.Category == category {
			matches = append(matches, c)
		}
	}
	if len(matches) == 0 {
		return nil, ErrNoChallenges
	}

	return matches[s.rng.Intn(len(matches))], nil
}
