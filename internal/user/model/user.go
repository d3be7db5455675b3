package model

import (
	"time"
)

// User represents a GitHub account seen in a webhook event.
// Matches the users table schema. Profile fields are captured at
// first sight and never refreshed afterwards.
type User struct {
	ID         int64     `gorm:"primaryKey;column:id"                                             json:"id"`
	GithubID   int64     `gorm:"column:github_id;type:bigint;not null;index:idx_users_github_id"  json:"github_id"`
	Login      string    `gorm:"column:login;type:varchar(255);index:idx_users_login"             json:"login"`
	NodeID     string    `gorm:"column:node_id;type:varchar(255)"                                 json:"node_id,omitempty"`
	AvatarURL  string    `gorm:"column:avatar_url;type:varchar(512)"                              json:"avatar_url,omitempty"`
	GravatarID string    `gorm:"column:gravatar_id;type:varchar(255)"                             json:"gravatar_id,omitempty"`
	URL        string    `gorm:"column:url;type:varchar(512)"                                     json:"url,omitempty"`
	HTMLURL    string    `gorm:"column:html_url;type:varchar(512)"                                json:"html_url,omitempty"`
	Type       string    `gorm:"column:type;type:varchar(64)"                                     json:"type,omitempty"`
	SiteAdmin  bool      `gorm:"column:site_admin;type:boolean;not null;default:false"            json:"site_admin"`
	CreatedAt  time.Time `gorm:"column:created_at;not null"                                       json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null"                                       json:"-"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}
