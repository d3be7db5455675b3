// Package model provides data transfer objects for the statistics module.
package model

import (
	"time"

	commitModel "github.com/minhtri0795/github-dashboard-server/internal/commit/model"
	prModel "github.com/minhtri0795/github-dashboard-server/internal/pullrequest/model"
)

// PullRequestsResponse lists stored pull requests, newest first.
type PullRequestsResponse struct {
	PullRequests []prModel.PullRequest `json:"pull_requests"`
	Total        int                   `json:"total"`
}

// PRSummary holds overall pull request counts.
type PRSummary struct {
	TotalPRs       int64 `gorm:"column:total_prs"        json:"totalPRs"`
	TotalOpenPRs   int64 `gorm:"column:total_open_prs"   json:"totalOpenPRs"`
	TotalClosedPRs int64 `gorm:"column:total_closed_prs" json:"totalClosedPRs"`
	TotalMergedPRs int64 `gorm:"column:total_merged_prs" json:"totalMergedPRs"`
}

// AuthorPRStats holds per-author pull request counts.
type AuthorPRStats struct {
	AuthorID  int64  `gorm:"column:author_id"  json:"author_id"`
	GithubID  int64  `gorm:"column:github_id"  json:"github_id"`
	Login     string `gorm:"column:login"      json:"login"`
	TotalPRs  int64  `gorm:"column:total_prs"  json:"totalPRs"`
	MergedPRs int64  `gorm:"column:merged_prs" json:"mergedPRs"`
	ClosedPRs int64  `gorm:"column:closed_prs" json:"closedPRs"`
}

// PRStatisticsResponse is the response of the statistics endpoint.
type PRStatisticsResponse struct {
	Summary     PRSummary       `json:"summary"`
	PRsByAuthor []AuthorPRStats `json:"prsByAuthor"`
}

// RepositoryPRStats holds per-repository pull request counts.
type RepositoryPRStats struct {
	RepoFullName string `gorm:"column:repo_full_name" json:"repository"`
	TotalPRs     int64  `gorm:"column:total_prs"      json:"totalPRs"`
	OpenPRs      int64  `gorm:"column:open_prs"       json:"openPRs"`
	ClosedPRs    int64  `gorm:"column:closed_prs"     json:"closedPRs"`
	MergedPRs    int64  `gorm:"column:merged_prs"     json:"mergedPRs"`
}

// RepositoryPRGroup is a windowed set of pull requests for one repository.
type RepositoryPRGroup struct {
	RepoFullName string                `json:"repository"`
	TotalPRs     int                   `json:"totalPRs"`
	MergedPRs    int                   `json:"mergedPRs,omitempty"`
	PullRequests []prModel.PullRequest `json:"pullRequests"`
}

// WindowedPRsResponse is the response of the open-prs and closed-prs endpoints.
type WindowedPRsResponse struct {
	Total        int64               `json:"total"`
	StartDate    time.Time           `json:"startDate"`
	EndDate      time.Time           `json:"endDate"`
	Repositories []RepositoryPRGroup `json:"repositories"`
}

// RepositoryCommitGroup is a windowed set of commits for one repository.
type RepositoryCommitGroup struct {
	RepoFullName   string               `json:"repository"`
	TotalCommits   int                  `json:"totalCommits"`
	TotalAdditions int                  `json:"totalAdditions"`
	TotalDeletions int                  `json:"totalDeletions"`
	Commits        []commitModel.Commit `json:"commits"`
}

// WindowedCommitsResponse is the response of the commits endpoint.
type WindowedCommitsResponse struct {
	TotalCommits int64                   `json:"totalCommits"`
	StartDate    time.Time               `json:"startDate"`
	EndDate      time.Time               `json:"endDate"`
	Repositories []RepositoryCommitGroup `json:"repositories"`
}

// CommitSummary holds overall commit counts.
type CommitSummary struct {
	TotalCommits int64 `gorm:"column:total_commits" json:"totalCommits"`
	TotalAuthors int64 `gorm:"column:total_authors" json:"totalAuthors"`
}

// AuthorCommitStats holds per-author commit aggregates.
type AuthorCommitStats struct {
	AuthorID       int64  `gorm:"column:author_id"       json:"author_id"`
	GithubID       int64  `gorm:"column:github_id"       json:"github_id"`
	Login          string `gorm:"column:login"           json:"login"`
	TotalCommits   int64  `gorm:"column:total_commits"   json:"totalCommits"`
	TotalAdditions int64  `gorm:"column:total_additions" json:"totalAdditions"`
	TotalDeletions int64  `gorm:"column:total_deletions" json:"totalDeletions"`
}

// RepositoryCommitStats holds per-repository commit aggregates.
type RepositoryCommitStats struct {
	RepoFullName   string `gorm:"column:repo_full_name"  json:"repository"`
	TotalCommits   int64  `gorm:"column:total_commits"   json:"totalCommits"`
	TotalAdditions int64  `gorm:"column:total_additions" json:"totalAdditions"`
	TotalDeletions int64  `gorm:"column:total_deletions" json:"totalDeletions"`
	Branches       int64  `gorm:"column:branches"        json:"branches"`
}

// CommitStatisticsResponse is the response of the commit-statistics endpoint.
type CommitStatisticsResponse struct {
	Summary             CommitSummary           `json:"summary"`
	CommitsByAuthor     []AuthorCommitStats     `json:"commitsByAuthor"`
	CommitsByRepository []RepositoryCommitStats `json:"commitsByRepository"`
}

// SelfMergedPR is one closed and merged pull request whose author and
// merge actor share the same external account id.
type SelfMergedPR struct {
	PRNumber     int        `gorm:"column:pr_number"      json:"prNumber"`
	Title        string     `gorm:"column:title"          json:"title"`
	HTMLURL      string     `gorm:"column:html_url"       json:"html_url"`
	RepoFullName string     `gorm:"column:repo_full_name" json:"repository"`
	CreatedAt    time.Time  `gorm:"column:created_at"     json:"created_at"`
	MergedAt     *time.Time `gorm:"column:merged_at"      json:"merged_at,omitempty"`
	GithubID     int64      `gorm:"column:github_id"      json:"github_id"`
	Login        string     `gorm:"column:login"          json:"login"`
}

// SelfMergedByUser groups self-merged pull requests per user.
type SelfMergedByUser struct {
	GithubID        int64          `json:"github_id"`
	Login           string         `json:"login"`
	TotalSelfMerges int            `json:"totalSelfMerges"`
	PullRequests    []SelfMergedPR `json:"pullRequests"`
}

// SelfMergedByRepository groups self-merge counts per repository.
type SelfMergedByRepository struct {
	RepoFullName    string `json:"repository"`
	TotalSelfMerges int    `json:"totalSelfMerges"`
}

// SelfMergedSummary holds overall self-merge counts.
type SelfMergedSummary struct {
	TotalSelfMergedPRs int64 `json:"totalSelfMergedPRs"`
	UniqueUsers        int   `json:"uniqueUsers"`
}

// SelfMergedResponse is the response of the self-merged-prs endpoint.
type SelfMergedResponse struct {
	Summary         SelfMergedSummary        `json:"summary"`
	UserStats       []SelfMergedByUser       `json:"userStats"`
	RepositoryStats []SelfMergedByRepository `json:"repositoryStats"`
}
