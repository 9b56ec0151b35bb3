package service

import (
	"context"
	"errors"
	"time"

	"TD_growth_tracker/internal/model"
)

var (
	ErrInvalidCredentials   = errors.New("invalid id or password")
	ErrEmptyCredentials     = errors.New("id and password must not be empty")
	ErrInvalidUserID        = errors.New("user id must not contain whitespace")
	ErrUserExists           = errors.New("user id already exists")
	ErrUserCapReached       = errors.New("user capacity reached")
	ErrUserNotFound         = errors.New("user not found")
	ErrTruthAlreadyAnswered = errors.New("truth already answered today")
	ErrNoPrompts            = errors.New("no truth prompts available")
	ErrNoChallenges         = errors.New("no challenges in this category")
	ErrDareCapReached       = errors.New("daily dare attempts exhausted")
)

const dateLayout = "2006-01-02"

// localDate renders t as the local calendar day every date field and
// record uses.
func localDate(t time.Time) string {
	return t.Format(dateLayout)
}

type Service struct {
	*SessionService
	*SelectorService
	*ActivityService
	*ReportService
}

func NewService(session *SessionService, selector *SelectorService, activity *ActivityService, report *ReportService) *Service {
	return &Service{
		SessionService:  session,
		SelectorService: selector,
		ActivityService: activity,
		ReportService:   report,
	}
}

type UserRepository interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
	UpdateUser(ctx context.Context, user *model.User) error
	ListUsers(ctx context.Context) ([]*model.User, error)
	UserCount(ctx context.Context) (int, error)
}

type ContentRepository interface {
	TruthPrompts(ctx context.Context) ([]*model.TruthPrompt, error)
	DareChallenges(ctx context.Context) ([]*model.DareChallenge, error)
}

type RecordRepository interface {
	AppendRecord(ctx context.Context, record *model.ActivityRecord) error
	RecordsByUser(ctx context.Context, userID string) ([]*model.ActivityRecord, error)
}
