// Package model provides domain models and data transfer objects for the user module.
package model

// Account is a GitHub account reference as it appears inside webhook
// payloads (pull request author, merge actor, commit author). Every field
// except the numeric id is optional; push-event commit authors carry no
// numeric id at all, only a username.
type Account struct {
	ID         int64  `json:"id"`
	Login      string `json:"login"`
	NodeID     string `json:"node_id"`
	AvatarURL  string `json:"avatar_url"`
	GravatarID string `json:"gravatar_id"`
	URL        string `json:"url"`
	HTMLURL    string `json:"html_url"`
	Type       string `json:"type"`
	SiteAdmin  bool   `json:"site_admin"`

	// Push-event commit author fields.
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// EffectiveLogin returns the login for the account, falling back to the
// push-event username and name fields when login is absent.
func (a Account) EffectiveLogin() string {
	if a.Login != "" {
		return a.Login
	}
	if a.Username != "" {
		return a.Username
	}
	return a.Name
}

// UsersResponse represents the response for the user listing endpoint.
type UsersResponse struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
}

// UserDetailResponse represents the response for the single user endpoint.
type UserDetailResponse struct {
	User         User  `json:"user"`
	PullRequests int64 `json:"pull_requests"`
	Commits      int64 `json:"commits"`
}
