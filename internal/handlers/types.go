package handlers

import "time"

// CreateLinkRequest is the request body for creating a short link.
type CreateLinkRequest struct {
	Body struct {
		ShortCode   string `doc:"Custom short code of 4 to 10 letters or digits, generated when omitted or empty" example:"abc123" json:"shortCode,omitempty" pattern:"^([a-zA-Z0-9]{4,10})?$"`
		OriginalURL string `doc:"The URL to redirect to"                      example:"https://example.com" json:"originalUrl"              maxLength:"2048" minLength:"1"`
		ExpiresAt   string `doc:"Expiry as dd/mm/yyyy or dd/mm/yyyy hh:mm (UTC+1)" example:"31/12/2030 18:00" json:"expiresAtString,omitempty"`
	}
}

// CreateLinkResponse is the response for a created short link.
type CreateLinkResponse struct {
	Location string `doc:"The short URL" header:"Location"`
	Body     struct {
		Message   string `json:"message"`
		ShortURL  string `doc:"The full short URL" example:"http://localhost:8888/abc123" json:"shortUrl"`
		ShortCode string `doc:"The short code"     example:"abc123"                       json:"shortCode"`
	}
}

// LinkView is a short link as returned to its owner.
type LinkView struct {
	ShortCode   string     `json:"shortCode"`
	OriginalURL string     `json:"originalUrl"`
	ShortURL    string     `json:"shortUrl"`
	ExpiresAt   *time.Time `json:"expiresAt"   nullable:"true"`
	ClickCount  int64      `json:"clickCount"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ListLinksResponse lists the caller's links, newest first.
type ListLinksResponse struct {
	Body struct {
		Message string     `json:"message"`
		Results []LinkView `json:"results"`
		Count   int        `json:"count"`
	}
}

// StatsRequest selects the link to report on.
type StatsRequest struct {
	Code string `doc:"The short code" example:"abc123" path:"code"`
}

// ClickView is one recorded visit.
type ClickView struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	IPAddress string    `json:"ipAddress"`
	UserAgent string    `json:"userAgent"`
	Referer   string    `json:"referer"`
}

// StatsResponse is a link with its click history, newest first.
type StatsResponse struct {
	Body struct {
		LinkView

		Clicks []ClickView `json:"clicks"`
	}
}

// RedirectRequest is the request for redirecting a short code.
type RedirectRequest struct {
	Code string `doc:"The short code" example:"abc123" path:"code"`
}

// RedirectResponse is a permanent redirect to the destination.
type RedirectResponse struct {
	Status   int
	Location string `header:"Location"`
}

// RegisterRequest is the request body for opening an account.
type RegisterRequest struct {
	Body struct {
		FirstName   string `json:"firstName"             maxLength:"100" minLength:"1"`
		LastName    string `json:"lastName"              maxLength:"100" minLength:"1"`
		Email       string `format:"email"               json:"email"     maxLength:"255"`
		Password    string `json:"password"              maxLength:"72"  minLength:"6"`
		Address     string `json:"address,omitempty"     maxLength:"255"`
		PhoneNumber string `json:"phoneNumber,omitempty" maxLength:"32"`
	}
}

// RegisterResponse is returned for a new account.
type RegisterResponse struct {
	Body struct {
		Message string `json:"message"`
		UserID  string `json:"userId"`
	}
}

// LoginRequest is the request body for signing in.
type LoginRequest struct {
	Body struct {
		Email    string `format:"email"  json:"email"`
		Password string `json:"password" minLength:"1"`
	}
}

// UserView is a user without credentials.
type UserView struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	PhoneNumber string    `json:"phoneNumber"`
	CreatedAt   time.Time `json:"createdAt"`
}

// LoginResponse carries the session token.
type LoginResponse struct {
	Body struct {
		Message string   `json:"message"`
		Token   string   `json:"token"`
		User    UserView `json:"user"`
	}
}

// ProfileResponse is the caller's own account.
type ProfileResponse struct {
	Body struct {
		Message string   `json:"message"`
		Results UserView `json:"results"`
	}
}
