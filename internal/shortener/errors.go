package shortener

import "errors"

var (
	// ErrNotFound is returned by repositories when no link matches.
	ErrNotFound = errors.New("no stored link for code")

	// ErrInvalidExpiry rejects expiry text that does not parse or lies in the past.
	ErrInvalidExpiry = errors.New("expiration date must be in the future")
	// ErrInvalidDestination rejects destinations that are not absolute http(s) URLs.
	ErrInvalidDestination = errors.New("destination must be an absolute http or https url")
	// ErrCodeConflict means the requested or generated code is already taken.
	ErrCodeConflict = errors.New("short code already exists")
	// ErrGenerationExhausted means every generation attempt collided.
	ErrGenerationExhausted = errors.New("could not generate a unique short code")
	// ErrLinkNotFound is returned when a redirect targets an unknown code.
	ErrLinkNotFound = errors.New("short link not found")
	// ErrLinkExpired is returned when a redirect targets an expired link.
	ErrLinkExpired = errors.New("short link has expired")
	// ErrNotFoundOrForbidden hides whether a link is missing or owned by someone else.
	ErrNotFoundOrForbidden = errors.New("short link not found or access denied")
	// ErrPersistence wraps failures of the backing store.
	ErrPersistence = errors.New("persistence failure")
)
