package repository

import (
	"context"
	"strconv"

	"TD_growth_tracker/internal/model"
	"TD_growth_tracker/pkg/logger"

	"go.uber.org/zap"
)

// Truth prompts ship with the binary so the game is playable before
// anyone writes a content file.
func seedTruthPrompts() []*model.TruthPrompt {
	return []*model.TruthPrompt{
		{ID: 1, Question: "What are you most grateful for today?"},
		{ID: 2, Question: "What recent experience do you feel has helped you grow?"},
		{ID: 3, Question: "If today's mood were a color, what color would it be?"},
	}
}

func seedDareChallenges() []*model.DareChallenge {
	return []*model.DareChallenge{
		{ID: 101, Category: model.CategoryBody, Challenge: "Do 10 push-ups"},
		{ID: 102, Category: model.CategoryLearning, Challenge: "Memorize 5 new vocabulary words"},
		{ID: 103, Category: model.CategoryEmotional, Challenge: "Look in the mirror and give yourself one compliment"},
	}
}

// Prompt file line: id followed by the question text.
func (s *Store) loadTruthPrompts() error {
	found, err := s.readLines(s.cfg.PromptsFile, func(line string) bool {
		tokens, rest, ok := splitTokens(line, 1)
		if !ok || rest == "" {
			return false
		}
		id, err := strconv.Atoi(tokens[0])
		if err != nil {
			return false
		}
		s.prompts = append(s.prompts, &model.TruthPrompt{ID: id, Question: rest})
		return true
	})
	if err != nil {
		return err
	}
	if !found {
		logger.Logger().Info("prompts file missing, using built-in prompts",
			zap.String("file", s.cfg.PromptsFile))
		s.prompts = seedTruthPrompts()
	}
	return nil
}

// Challenge file line: id category followed by the challenge text.
func (s *Store) loadDareChallenges() error {
	found, err := s.readLines(s.cfg.ChallengesFile, func(line string) bool {
		tokens, rest, ok := splitTokens(line, 2)
		if !ok || rest == "" {
			return false
		}
		id, err := strconv.Atoi(tokens[0])
		if err != nil {
			return false
		}
		s.challenges = append(s.challenges, &model.DareChallenge{
			ID:        id,
			Category:  model.Category(tokens[1]),
			Challenge: rest,
		})
		return true
	})
	if err != nil {
		return err
	}
	if !found {
		logger.Logger().Info("challenges file missing, using built-in challenges",
			zap.String("file", s.cfg.ChallengesFile))
		s.challenges = seedDareChallenges()
	}
	return nil
}

// TruthPrompts returns the live prompt set. The Used flag is transient
// selection state owned by the selector; it is never persisted.
func (s *Store) TruthPrompts(ctx context.Context) ([]*model.TruthPrompt, error) {
	return s.prompts, nil
}

func (s *Store) DareChallenges(ctx context.Context) ([]*model.DareChallenge, error) {
	return s.challenges, nil
}
