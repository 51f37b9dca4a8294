package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// SecurityScheme is the huma security scheme name for bearer tokens.
const SecurityScheme = "bearer"

var bearer = []map[string][]string{{SecurityScheme: {}}}

// RegisterRoutes registers the link and account routes.
func RegisterRoutes(api huma.API, links *LinkHandler, accounts *UserHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-link",
		Method:        http.MethodPost,
		Path:          "/shorten",
		Summary:       "Create short link",
		Description:   "Creates a short link with an optional custom code and expiry.",
		Tags:          []string{"Links"},
		DefaultStatus: http.StatusCreated,
		Security:      bearer,
	}, links.CreateLink)

	huma.Register(api, huma.Operation{
		OperationID: "list-my-links",
		Method:      http.MethodGet,
		Path:        "/my-urls",
		Summary:     "List my short links",
		Description: "Lists the caller's short links, newest first.",
		Tags:        []string{"Links"},
		Security:    bearer,
	}, links.ListMyLinks)

	huma.Register(api, huma.Operation{
		OperationID: "link-stats",
		Method:      http.MethodGet,
		Path:        "/shorten/{code}/stats",
		Summary:     "Short link statistics",
		Description: "Returns the link and its click history. Only the owner may read it.",
		Tags:        []string{"Links"},
		Security:    bearer,
	}, links.LinkStats)

	huma.Register(api, huma.Operation{
		OperationID:   "register",
		Method:        http.MethodPost,
		Path:          "/auth/register",
		Summary:       "Register",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusCreated,
	}, accounts.Register)

	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/auth/login",
		Summary:     "Log in",
		Tags:        []string{"Auth"},
	}, accounts.Login)

	huma.Register(api, huma.Operation{
		OperationID: "profile",
		Method:      http.MethodGet,
		Path:        "/user/profile",
		Summary:     "Current user profile",
		Tags:        []string{"Users"},
		Security:    bearer,
	}, accounts.Profile)

	huma.Register(api, huma.Operation{
		OperationID: "redirect",
		Method:      http.MethodGet,
		Path:        "/{code}",
		Summary:     "Redirect to destination",
		Description: "Permanently redirects to the link's destination and records the visit.",
		Tags:        []string{"Links"},
	}, links.Redirect)
}
