// Package model provides webhook payload types and event classification
// for the GitHub webhook ingestion endpoint.
package model

import (
	"time"

	userModel "github.com/minhtri0795/github-dashboard-server/internal/user/model"
)

// Event is the inbound webhook body. GitHub delivers one JSON document per
// event; a push event carries a top-level commits array, a pull request
// event carries an action plus an embedded pull_request object. All nested
// fields are optional at the JSON level and validated in Validate.
type Event struct {
	Action      string            `json:"action"`
	PullRequest *PullRequest      `json:"pull_request"`
	Repository  *Repository       `json:"repository"`
	After       string            `json:"after"`
	Ref         string            `json:"ref"`
	Commits     []PushCommit      `json:"commits"`
	Sender      *userModel.Account `json:"sender"`
}

// PullRequest is the embedded pull request object of a pull request event.
type PullRequest struct {
	Number         int                `json:"number"`
	NodeID         string             `json:"node_id"`
	Title          string             `json:"title"`
	State          string             `json:"state"`
	Locked         bool               `json:"locked"`
	User           *userModel.Account `json:"user"`
	MergedBy       *userModel.Account `json:"merged_by"`
	Body           string             `json:"body"`
	URL            string             `json:"url"`
	HTMLURL        string             `json:"html_url"`
	DiffURL        string             `json:"diff_url"`
	PatchURL       string             `json:"patch_url"`
	IssueURL       string             `json:"issue_url"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	ClosedAt       *time.Time         `json:"closed_at"`
	MergedAt       *time.Time         `json:"merged_at"`
	MergeCommitSHA string             `json:"merge_commit_sha"`
	Merged         bool               `json:"merged"`
	Mergeable      *bool              `json:"mergeable"`
	Rebaseable     *bool              `json:"rebaseable"`
	MergeableState string             `json:"mergeable_state"`
	Head           GitRef             `json:"head"`
	Base           GitRef             `json:"base"`
	Commits        int                `json:"commits"`
	Additions      int                `json:"additions"`
	Deletions      int                `json:"deletions"`
	ChangedFiles   int                `json:"changed_files"`
}

// GitRef is a branch reference snapshot (head or base).
type GitRef struct {
	Label string `json:"label"`
	Ref   string `json:"ref"`
	SHA   string `json:"sha"`
}

// Repository is the repository object attached to every event.
type Repository struct {
	ID       int64  `json:"id"`
	NodeID   string `json:"node_id"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Private  bool   `json:"private"`
	URL      string `json:"url"`
	HTMLURL  string `json:"html_url"`
}

// PushCommit is one entry of a push event's commits array.
type PushCommit struct {
	ID        string            `json:"id"`
	NodeID    string            `json:"node_id"`
	Message   string            `json:"message"`
	URL       string            `json:"url"`
	Timestamp time.Time         `json:"timestamp"`
	Author    userModel.Account `json:"author"`
	Added     []string          `json:"added"`
	Removed   []string          `json:"removed"`
	Modified  []string          `json:"modified"`
}

// Kind classifies an event body.
type Kind int

const (
	// KindPullRequest is a pull request lifecycle event.
	KindPullRequest Kind = iota
	// KindPush is a branch push carrying real commits.
	KindPush
)

// Kind classifies the event. Any payload with a commits array is a push
// event, even an empty one; everything else is treated as a pull request
// event and validated as such.
func (e *Event) Kind() Kind {
	if e.Commits != nil {
		return KindPush
	}
	return KindPullRequest
}

// Validate rejects payloads the ingestion path cannot act on. Push events
// need no validation beyond classification; a pull request event must carry
// both the pull_request and repository objects.
func (e *Event) Validate() error {
	if e == nil {
		return ErrEmptyPayload
	}
	if e.Kind() == KindPush {
		return nil
	}
	if e.PullRequest == nil {
		return ErrMissingPullRequest
	}
	if e.Repository == nil {
		return ErrMissingRepository
	}
	return nil
}

// Branch returns the push target branch name derived from the ref.
func (e *Event) Branch() string {
	const prefix = "refs/heads/"
	if len(e.Ref) > len(prefix) && e.Ref[:len(prefix)] == prefix {
		return e.Ref[len(prefix):]
	}
	return e.Ref
}

// HeadSHA returns the sha of the new head commit for a synchronize event,
// preferring the top-level after field over the embedded head snapshot.
func (e *Event) HeadSHA() string {
	if e.After != "" {
		return e.After
	}
	if e.PullRequest != nil {
		return e.PullRequest.Head.SHA
	}
	return ""
}
