package service

import (
	"context"
	"fmt"
	"sort"

	"TD_growth_tracker/internal/model"
)

const (
	unknownQuestion  = "unknown question"
	unknownChallenge = "unknown challenge"
	unknownCategory  = "N/A"
)

type HistoryEntry struct {
	Date        string
	Kind        model.ActivityKind
	Category    string
	Content     string
	Response    string
	CoinsEarned int
}

type RankedUser struct {
	Rank  int
	ID    string
	Coins int
}

type Ranking struct {
	Top  []RankedUser
	Self RankedUser
}

type ReportService struct {
	users   UserRepository
	content ContentRepository
	records RecordRepository
}

func NewReportService(users UserRepository, content ContentRepository, records RecordRepository) *ReportService {
	return &ReportService{
		users:   users,
		content: content,
		records: records,
	}
}

// History returns the user's activity in date order with content ids
// resolved to text. Records whose id no longer resolves (content files
// edited out-of-band) fall back to placeholder text.
func (s *ReportService) History(ctx context.Context, userID string) ([]HistoryEntry, error) {
	records, err := s.records.RecordsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get records: %w", err)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date < records[j].Date
	})

	prompts, err := s.content.TruthPrompts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get truth prompts: %w", err)
	}
	questionByID := make(map[int]string, len(prompts))
	for _, p := range prompts {
		questionByID[p.ID] = p.Question
	}

	challenges, err := s.content.DareChallenges(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get dare challenges: %w", err)
	}
	challengeByID := make(map[int]*model.DareChallenge, len(challenges))
	for _, c := range challenges {
		challengeByID[c.ID] = c
	}

	entries := make([]HistoryEntry, 0, len(records))
	for _, r := range records {
		entry := HistoryEntry{
			Date:        r.Date,
			Kind:        r.Kind,
			Response:    r.Response,
			CoinsEarned: r.CoinsEarned,
		}
		switch r.Kind {
		case model.KindTruth:
			entry.Content = unknownQuestion
			if q, ok := questionByID[r.ContentID]; ok {
				entry.Content = q
			}
		case model.KindDare:
			entry.Content = unknownChallenge
			entry.Category = unknownCategory
			if c, ok := challengeByID[r.ContentID]; ok {
				entry.Content = c.Challenge
				entry.Category = string(c.Category)
			}
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// CoinRanking sorts a copy of the user collection by coins descending and
// reports the top three plus the asking user's own rank. The sort is
// stable, so users tied on coins keep their registration order.
func (s *ReportService) CoinRanking(ctx context.Context, userID string) (*Ranking, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	sort.SliceStable(users, func(i, j int) bool {
		return users[i].Coins > users[j].Coins
	})

	topN := 3
	if len(users) < topN {
		topN = len(users)
	}

	ranking := &Ranking{Top: make([]RankedUser, 0, topN)}
	for i := 0; i < topN; i++ {
		ranking.Top = append(ranking.Top, RankedUser{
			Rank:  i + 1,
			ID:    users[i].ID,
			Coins: users[i].Coins,
		})
	}

	for i, u := range users {
		if u.ID == userID {
			ranking.Self = RankedUser{Rank: i + 1, ID: u.ID, Coins: u.Coins}
			return ranking, nil
		}
	}
	return nil, ErrUserNotFound
}
