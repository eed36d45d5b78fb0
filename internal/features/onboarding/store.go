package onboarding

import "context"

// Mode is a modal conversation state outside the survey, e.g. waiting
// for a free-form support question.
type Mode string

const ModeAwaitingQuestion Mode = "awaiting_question"

// Store keeps per-conversation state keyed by telegram id. A missing
// session or mode is returned as the zero value, not an error; losing
// state only means the user restarts the survey.
type Store interface {
	GetSession(ctx context.Context, userID int64) (*Session, error)
	SaveSession(ctx context.Context, userID int64, session *Session) error
	DeleteSession(ctx context.Context, userID int64) error

	GetMode(ctx context.Context, userID int64) (Mode, error)
	SetMode(ctx context.Context, userID int64, mode Mode) error
	ClearMode(ctx context.Context, userID int64) error
}
