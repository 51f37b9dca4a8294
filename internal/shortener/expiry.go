package shortener

import (
	"fmt"
	"strings"
	"time"
)

// Location is the fixed civil time zone (West Africa Time, UTC+1, no DST)
// used for every expiry parse and comparison.
var Location = time.FixedZone("WAT", 60*60)

const (
	expiryDateTimeLayout = "02/01/2006 15:04"
	expiryDateLayout     = "02/01/2006"
)

// Clock returns the current instant.
type Clock func() time.Time

// ParseExpiry reads "dd/mm/yyyy hh:mm" or, failing that, "dd/mm/yyyy" in
// Location. Text matching neither layout is rejected with ErrInvalidExpiry.
func ParseExpiry(text string) (time.Time, error) {
	text = strings.TrimSpace(text)

	if t, err := time.ParseInLocation(expiryDateTimeLayout, text, Location); err == nil {
		return t, nil
	}

	t, err := time.ParseInLocation(expiryDateLayout, text, Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not dd/mm/yyyy or dd/mm/yyyy hh:mm", ErrInvalidExpiry, text)
	}

	return t, nil
}

// IsExpired reports whether expiresAt lies strictly before now.
func IsExpired(expiresAt *time.Time, now time.Time) bool {
	if expiresAt == nil {
		return false
	}

	return expiresAt.Before(now.In(Location))
}
