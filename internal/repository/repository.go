package repository

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"TD_growth_tracker/internal/model"
	"TD_growth_tracker/pkg/logger"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

type Config struct {
	Dir            string `yaml:"dir"`
	UsersFile      string `yaml:"usersFile"`
	PromptsFile    string `yaml:"promptsFile"`
	ChallengesFile string `yaml:"challengesFile"`
	RecordsFile    string `yaml:"recordsFile"`
}

// Store holds the authoritative in-memory collections. Every mutation
// goes through the Store and rewrites the backing file before returning,
// so the files always mirror memory. A single active session is assumed;
// two processes sharing one data dir would overwrite each other's saves.
type Store struct {
	cfg Config

	users     map[string]*model.User
	userOrder []string

	prompts    []*model.TruthPrompt
	challenges []*model.DareChallenge
	records    []*model.ActivityRecord
}

func New(cfg Config) (*Store, error) {
	s := &Store{
		cfg:   cfg,
		users: make(map[string]*model.User),
	}

	if err := s.loadUsers(); err != nil {
		return nil, errors.Wrap(err, "failed to load users")
	}
	if err := s.loadTruthPrompts(); err != nil {
		return nil, errors.Wrap(err, "failed to load truth prompts")
	}
	if err := s.loadDareChallenges(); err != nil {
		return nil, errors.Wrap(err, "failed to load dare challenges")
	}
	if err := s.loadRecords(); err != nil {
		return nil, errors.Wrap(err, "failed to load activity records")
	}

	logger.Logger().Info("store opened",
		zap.String("dir", cfg.Dir),
		zap.Int("users", len(s.userOrder)),
		zap.Int("prompts", len(s.prompts)),
		zap.Int("challenges", len(s.challenges)),
		zap.Int("records", len(s.records)))

	return s, nil
}

// Counts reports collection sizes for the startup banner.
func (s *Store) Counts() (users, prompts, challenges, records int) {
	return len(s.userOrder), len(s.prompts), len(s.challenges), len(s.records)
}

func (s *Store) path(name string) string {
	return filepath.Join(s.cfg.Dir, name)
}

// readLines feeds each non-blank line of the file to parse in order.
// A parse failure stops the load of that collection at that point; the
// lines read so far are kept. A missing file yields ok=false and no error.
func (s *Store) readLines(name string, parse func(line string) bool) (bool, error) {
	f, err := os.Open(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "failed to open %s", name)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !parse(line) {
			logger.Logger().Warn("malformed line, stopping load",
				zap.String("file", name),
				zap.Int("line", lineNo))
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return false, errors.Wrapf(err, "failed to read %s", name)
	}
	return true, nil
}

func (s *Store) writeLines(name string, lines []string) error {
	data := strings.Join(lines, "\n")
	if len(lines) > 0 {
		data += "\n"
	}
	if err := os.WriteFile(s.path(name), []byte(data), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", name)
	}
	return nil
}

// splitTokens pulls n whitespace-delimited tokens off the front of line
// and returns whatever follows them (free text, may be empty).
func splitTokens(line string, n int) ([]string, string, bool) {
	rest := line
	tokens := make([]string, 0, n)
	for i := 0; i < n; i++ {
		rest = strings.TrimSpace(rest)
		if rest == "" {
			return nil, "", false
		}
		tok, tail, _ := strings.Cut(rest, " ")
		tokens = append(tokens, tok)
		rest = tail
	}
	return tokens, strings.TrimSpace(rest), true
}
