// Package model provides domain models for the commit module.
package model

import (
	"time"
)

// Commit represents a stored commit record. Records are append-only:
// nothing updates or deletes a commit once written. Synthetic records
// created from pull request events share the same shape as real push
// commits, so duplicate shas are tolerated by design.
type Commit struct {
	ID       int64  `gorm:"primaryKey;column:id"                                          json:"id"`
	SHA      string `gorm:"column:sha;type:varchar(255);not null;index:idx_commits_sha"   json:"sha"`
	NodeID   string `gorm:"column:node_id;type:varchar(255)"                              json:"node_id,omitempty"`
	AuthorID int64  `gorm:"column:author_id;type:bigint;not null;index:idx_commits_author" json:"author_id"`
	Message  string `gorm:"column:message;type:text"                                      json:"message"`
	URL      string `gorm:"column:url;type:varchar(512)"                                  json:"url,omitempty"`
	HTMLURL  string `gorm:"column:html_url;type:varchar(512)"                             json:"html_url,omitempty"`

	// Repository snapshot, denormalized at write time.
	RepoID       int64  `gorm:"column:repo_id;type:bigint"                                            json:"repo_id"`
	RepoNodeID   string `gorm:"column:repo_node_id;type:varchar(255)"                                 json:"repo_node_id,omitempty"`
	RepoName     string `gorm:"column:repo_name;type:varchar(255)"                                    json:"repo_name"`
	RepoFullName string `gorm:"column:repo_full_name;type:varchar(512);index:idx_commits_repo_full_name" json:"repo_full_name"`
	RepoPrivate  bool   `gorm:"column:repo_private;type:boolean;not null;default:false"               json:"repo_private"`

	Branch string `gorm:"column:branch;type:varchar(255);index:idx_commits_branch" json:"branch"`

	// File-change summary.
	AddedCount    int `gorm:"column:added_count;type:int;not null;default:0"    json:"added_count"`
	RemovedCount  int `gorm:"column:removed_count;type:int;not null;default:0"  json:"removed_count"`
	ModifiedCount int `gorm:"column:modified_count;type:int;not null;default:0" json:"modified_count"`

	// Stats triple.
	Total     int `gorm:"column:total;type:int;not null;default:0"     json:"total"`
	Additions int `gorm:"column:additions;type:int;not null;default:0" json:"additions"`
	Deletions int `gorm:"column:deletions;type:int;not null;default:0" json:"deletions"`

	CommittedAt time.Time `gorm:"column:committed_at;not null;index:idx_commits_committed_at" json:"committed_at"`
	CreatedAt   time.Time `gorm:"column:created_at;not null"                                  json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Commit) TableName() string {
	return "commits"
}
