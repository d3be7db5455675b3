// Package model provides domain models for the pullrequest module.
package model

import (
	"time"

	userModel "github.com/minhtri0795/github-dashboard-server/internal/user/model"
)

// Pull request lifecycle states.
const (
	StateOpen   = "open"
	StateClosed = "closed"
)

// PullRequest is the mutable pull request aggregate. Its natural key is
// (pr_number, repo_full_name): pull request numbers are only unique within
// a repository. The postgres schema enforces at most one row per natural
// key; duplicate rows from older data are collapsed by CleanupDuplicates.
type PullRequest struct {
	ID       int64  `gorm:"primaryKey;column:id"                                  json:"id"`
	PRNumber int    `gorm:"column:pr_number;type:int;not null;index:idx_prs_natural_key,priority:1" json:"pr_number"`
	NodeID   string `gorm:"column:node_id;type:varchar(255)"                      json:"node_id,omitempty"`
	Title    string `gorm:"column:title;type:varchar(512);not null"               json:"title"`
	State    string `gorm:"column:state;type:varchar(16);not null;index:idx_prs_state" json:"state"`
	Locked   bool   `gorm:"column:locked;type:boolean;not null;default:false"     json:"locked"`

	AuthorID   int64  `gorm:"column:author_id;type:bigint;not null;index:idx_prs_author" json:"author_id"`
	MergedByID *int64 `gorm:"column:merged_by_id;type:bigint"                            json:"merged_by_id,omitempty"`

	Body     string `gorm:"column:body;type:text"               json:"body,omitempty"`
	URL      string `gorm:"column:url;type:varchar(512)"        json:"url,omitempty"`
	HTMLURL  string `gorm:"column:html_url;type:varchar(512)"   json:"html_url,omitempty"`
	DiffURL  string `gorm:"column:diff_url;type:varchar(512)"   json:"diff_url,omitempty"`
	PatchURL string `gorm:"column:patch_url;type:varchar(512)"  json:"patch_url,omitempty"`
	IssueURL string `gorm:"column:issue_url;type:varchar(512)"  json:"issue_url,omitempty"`

	// Repository snapshot, denormalized at write time.
	RepoID       int64  `gorm:"column:repo_id;type:bigint"                                               json:"repo_id"`
	RepoNodeID   string `gorm:"column:repo_node_id;type:varchar(255)"                                    json:"repo_node_id,omitempty"`
	RepoName     string `gorm:"column:repo_name;type:varchar(255)"                                       json:"repo_name"`
	RepoFullName string `gorm:"column:repo_full_name;type:varchar(512);not null;index:idx_prs_natural_key,priority:2" json:"repo_full_name"`
	RepoPrivate  bool   `gorm:"column:repo_private;type:boolean;not null;default:false"                  json:"repo_private"`

	// Head and base ref snapshots.
	HeadLabel string `gorm:"column:head_label;type:varchar(512)" json:"head_label,omitempty"`
	HeadRef   string `gorm:"column:head_ref;type:varchar(255)"   json:"head_ref"`
	HeadSHA   string `gorm:"column:head_sha;type:varchar(255)"   json:"head_sha"`
	BaseLabel string `gorm:"column:base_label;type:varchar(512)" json:"base_label,omitempty"`
	BaseRef   string `gorm:"column:base_ref;type:varchar(255)"   json:"base_ref"`
	BaseSHA   string `gorm:"column:base_sha;type:varchar(255)"   json:"base_sha"`

	MergeCommitSHA string  `gorm:"column:merge_commit_sha;type:varchar(255)"          json:"merge_commit_sha,omitempty"`
	Merged         bool    `gorm:"column:merged;type:boolean;not null;default:false"  json:"merged"`
	Mergeable      *bool   `gorm:"column:mergeable;type:boolean"                      json:"mergeable,omitempty"`
	Rebaseable     *bool   `gorm:"column:rebaseable;type:boolean"                     json:"rebaseable,omitempty"`
	MergeableState string  `gorm:"column:mergeable_state;type:varchar(64)"            json:"mergeable_state,omitempty"`

	// Lifecycle timestamps come from the payload verbatim, so gorm's
	// automatic timestamp tracking is disabled for them.
	CreatedAt time.Time  `gorm:"column:created_at;not null;autoCreateTime:false" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;not null;autoUpdateTime:false" json:"updated_at"`
	ClosedAt  *time.Time `gorm:"column:closed_at"                                json:"closed_at,omitempty"`
	MergedAt  *time.Time `gorm:"column:merged_at"                                json:"merged_at,omitempty"`

	// Author is the joined user row, loaded only by read queries.
	Author *userModel.User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// TableName specifies the table name for GORM.
func (PullRequest) TableName() string {
	return "pull_requests"
}
