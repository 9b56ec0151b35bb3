package repository

import (
	"context"
	"fmt"
	"strconv"

	"TD_growth_tracker/internal/model"
	"TD_growth_tracker/pkg/logger"

	"go.uber.org/zap"
)

// Record file line: userId date type contentId coinsEarned followed by
// the response text (truth answer or dare outcome label).

func (s *Store) loadRecords() error {
	found, err := s.readLines(s.cfg.RecordsFile, func(line string) bool {
		tokens, rest, ok := splitTokens(line, 5)
		if !ok {
			return false
		}
		kind, err := strconv.Atoi(tokens[2])
		if err != nil || (kind != int(model.KindTruth) && kind != int(model.KindDare)) {
			return false
		}
		contentID, err := strconv.Atoi(tokens[3])
		if err != nil {
			return false
		}
		coins, err := strconv.Atoi(tokens[4])
		if err != nil {
			return false
		}
		s.records = append(s.records, &model.ActivityRecord{
			UserID:      tokens[0],
			Date:        tokens[1],
			Kind:        model.ActivityKind(kind),
			ContentID:   contentID,
			Response:    rest,
			CoinsEarned: coins,
		})
		return true
	})
	if err != nil {
		return err
	}
	if !found {
		logger.Logger().Info("records file missing, starting with no records",
			zap.String("file", s.cfg.RecordsFile))
	}
	return nil
}

func (s *Store) saveRecords() error {
	lines := make([]string, 0, len(s.records))
	for _, r := range s.records {
		lines = append(lines, fmt.Sprintf("%s %s %d %d %d %s",
			r.UserID, r.Date, int(r.Kind), r.ContentID, r.CoinsEarned, r.Response))
	}
	if err := s.writeLines(s.cfg.RecordsFile, lines); err != nil {
		return err
	}
	logger.Logger().Info("saved records", zap.Int("count", len(lines)))
	return nil
}

func (s *Store) AppendRecord(ctx context.Context, record *model.ActivityRecord) error {
	copied := *record
	s.records = append(s.records, &copied)
	return s.saveRecords()
}

func (s *Store) RecordsByUser(ctx context.Context, userID string) ([]*model.ActivityRecord, error) {
	var out []*model.ActivityRecord
	for _, r := range s.records {
		if r.UserID == userID {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}
