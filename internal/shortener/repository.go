package shortener

import (
	"context"

	"github.com/google/uuid"
)

// CodeChecker reports whether a code is already taken.
type CodeChecker interface {
	Exists(ctx context.Context, code Code) (bool, error)
}

// Repository persists short links and their click events.
//
// Insert must be an insert-if-absent: when the code is already stored it
// returns ErrCodeConflict and leaves the existing link untouched.
// IncrementClicks must apply a relative update so concurrent visits are
// never lost.
type Repository interface {
	CodeChecker

	Insert(ctx context.Context, link *ShortLink) error
	GetByCode(ctx context.Context, code Code) (*ShortLink, error)
	GetOwned(ctx context.Context, code Code, owner uuid.UUID) (*ShortLink, error)
	ListByOwner(ctx context.Context, owner uuid.UUID) ([]ShortLink, error)
	IncrementClicks(ctx context.Context, code Code) error
	InsertClick(ctx context.Context, click *ClickEvent) error
	ListClicks(ctx context.Context, code Code) ([]ClickEvent, error)
}
