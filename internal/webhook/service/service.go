// Package service provides the webhook reconciler: it applies inbound
// GitHub events to the pull request, commit, and user stores.
package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	commitModel "github.com/minhtri0795/github-dashboard-server/internal/commit/model"
	commitService "github.com/minhtri0795/github-dashboard-server/internal/commit/service"
	"github.com/minhtri0795/github-dashboard-server/internal/notifier"
	prModel "github.com/minhtri0795/github-dashboard-server/internal/pullrequest/model"
	prRepository "github.com/minhtri0795/github-dashboard-server/internal/pullrequest/repository"
	userModel "github.com/minhtri0795/github-dashboard-server/internal/user/model"
	"github.com/minhtri0795/github-dashboard-server/internal/webhook/model"
)

// Registry resolves account references to stored users.
type Registry interface {
	Resolve(ctx context.Context, account userModel.Account) (*userModel.User, error)
}

// Result describes what an event produced.
type Result struct {
	Kind        string                `json:"kind"`
	PullRequest *prModel.PullRequest  `json:"pull_request,omitempty"`
	Commits     []commitModel.Commit  `json:"commits,omitempty"`
}

// Service reconciles inbound webhook events against the stores.
type Service interface {
	// HandleEvent validates and applies one webhook delivery.
	HandleEvent(ctx context.Context, event *model.Event) (*Result, error)
}

type service struct {
	prs      prRepository.Repository
	registry Registry
	recorder commitService.Service
	sink     notifier.Notifier
	logger   *zap.SugaredLogger
}

// New creates a new webhook reconciler instance.
func New(
	prs prRepository.Repository,
	registry Registry,
	recorder commitService.Service,
	sink notifier.Notifier,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		prs:      prs,
		registry: registry,
		recorder: recorder,
		sink:     sink,
		logger:   logger,
	}
}

// HandleEvent validates and applies one webhook delivery.
func (s *service) HandleEvent(ctx context.Context, event *model.Event) (*Result, error) {
	if event == nil {
		return nil, model.ErrEmptyPayload
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}

	if event.Kind() == model.KindPush {
		commits, err := s.recorder.RecordPush(ctx, event)
		if err != nil {
			return nil, err
		}
		return &Result{Kind: "push", Commits: commits}, nil
	}

	return s.handlePullRequestEvent(ctx, event)
}

// handlePullRequestEvent applies a pull request lifecycle event. The
// transition is keyed on the parsed action and the current stored state
// for the natural key (absent, open, or closed).
func (s *service) handlePullRequestEvent(ctx context.Context, event *model.Event) (*Result, error) {
	pr := event.PullRequest
	if pr.User == nil {
		return nil, model.ErrMissingAuthor
	}

	author, err := s.registry.Resolve(ctx, *pr.User)
	if err != nil {
		return nil, fmt.Errorf("resolve pull request author: %w", err)
	}

	var mergedBy *userModel.User
	if pr.Merged && pr.MergedBy != nil {
		mergedBy, err = s.registry.Resolve(ctx, *pr.MergedBy)
		if err != nil {
			return nil, fmt.Errorf("resolve merge actor: %w", err)
		}
	}

	action := model.ParseAction(event.Action)
	switch action {
	case model.ActionOpened:
		return s.applyOpened(ctx, event, author, mergedBy)
	case model.ActionClosed:
		return s.applyClosed(ctx, event, author, mergedBy)
	case model.ActionSynchronize:
		return s.applySynchronize(ctx, event, author, mergedBy)
	case model.ActionReopened:
		// Accepted but not handled: closed is terminal here.
		s.logger.Warnw("reopened action received but not handled",
			"pr_number", pr.Number, "repo", event.Repository.FullName)
		return &Result{Kind: "pull_request"}, nil
	default:
		s.logger.Warnw("unhandled pull request action",
			"action", event.Action, "pr_number", pr.Number, "repo", event.Repository.FullName)
		return &Result{Kind: "pull_request"}, nil
	}
}

// applyOpened creates the record in the open state. A record already
// present for the natural key is returned untouched: a repeated opened
// delivery (or a retry that raced a concurrent insert) must not produce a
// second record or a second round of side effects.
func (s *service) applyOpened(
	ctx context.Context,
	event *model.Event,
	author, mergedBy *userModel.User,
) (*Result, error) {
	pr := event.PullRequest
	repo := event.Repository

	existing, err := s.prs.GetByNaturalKey(ctx, pr.Number, repo.FullName)
	if err != nil && !errors.Is(err, prModel.ErrPullRequestNotFound) {
		return nil, err
	}
	if existing != nil {
		s.logger.Warnw("opened event for already known pull request",
			"pr_number", pr.Number, "repo", repo.FullName)
		return &Result{Kind: "pull_request", PullRequest: existing}, nil
	}

	record := buildRecord(event, author, mergedBy)
	if err := s.prs.Create(ctx, record); err != nil {
		if errors.Is(err, prModel.ErrPullRequestExists) {
			// Lost a race against a concurrent delivery of the same event.
			return s.returnExisting(ctx, pr.Number, repo.FullName)
		}
		return nil, err
	}

	var commits []commitModel.Commit
	if pr.Commits > 0 {
		commits, err = s.recorder.SynthesizeOpened(ctx, pr, repo, author)
		if err != nil {
			return nil, err
		}
	}

	if notifyErr := s.sink.PROpened(ctx, event); notifyErr != nil {
		s.logger.Warnw("opened notification failed", "pr_number", pr.Number, "error", notifyErr)
	}

	return &Result{Kind: "pull_request", PullRequest: record, Commits: commits}, nil
}

// applyClosed transitions the record to closed. A close event for a pull
// request never seen as opened is a data-integrity signal, not an error:
// the record is created directly in the closed state with a logged warning.
func (s *service) applyClosed(
	ctx context.Context,
	event *model.Event,
	author, mergedBy *userModel.User,
) (*Result, error) {
	pr := event.PullRequest
	repo := event.Repository
	record := buildRecord(event, author, mergedBy)

	existing, err := s.prs.GetByNaturalKey(ctx, pr.Number, repo.FullName)
	if err != nil {
		if !errors.Is(err, prModel.ErrPullRequestNotFound) {
			return nil, err
		}
		s.logger.Warnw("received close event for unknown pull request",
			"pr_number", pr.Number, "repo", repo.FullName)
		if createErr := s.prs.Create(ctx, record); createErr != nil {
			return nil, createErr
		}
		return &Result{Kind: "pull_request", PullRequest: record}, nil
	}

	record.ID = existing.ID
	if err := s.prs.Update(ctx, record); err != nil {
		return nil, err
	}

	// Sent for every close, merged or not.
	if notifyErr := s.sink.PRClosed(ctx, event); notifyErr != nil {
		s.logger.Warnw("closed notification failed", "pr_number", pr.Number, "error", notifyErr)
	}

	return &Result{Kind: "pull_request", PullRequest: record}, nil
}

// applySynchronize records exactly one synthetic commit for the new head,
// then refreshes the stored record from the embedded pull request body if
// one exists. A synchronize for an unknown pull request only records the
// commit; it never creates a record and never notifies.
func (s *service) applySynchronize(
	ctx context.Context,
	event *model.Event,
	author, mergedBy *userModel.User,
) (*Result, error) {
	pr := event.PullRequest
	repo := event.Repository

	commit, err := s.recorder.RecordSynchronize(ctx, event, author)
	if err != nil {
		return nil, err
	}

	existing, err := s.prs.GetByNaturalKey(ctx, pr.Number, repo.FullName)
	if err != nil {
		if !errors.Is(err, prModel.ErrPullRequestNotFound) {
			return nil, err
		}
		return &Result{Kind: "pull_request", Commits: []commitModel.Commit{*commit}}, nil
	}

	record := buildRecord(event, author, mergedBy)
	record.ID = existing.ID
	if err := s.prs.Update(ctx, record); err != nil {
		return nil, err
	}

	return &Result{
		Kind:        "pull_request",
		PullRequest: record,
		Commits:     []commitModel.Commit{*commit},
	}, nil
}

// returnExisting re-reads the record after losing a create race.
func (s *service) returnExisting(ctx context.Context, prNumber int, repoFullName string) (*Result, error) {
	existing, err := s.prs.GetByNaturalKey(ctx, prNumber, repoFullName)
	if err != nil {
		return nil, err
	}
	return &Result{Kind: "pull_request", PullRequest: existing}, nil
}

// buildRecord maps the payload onto a storable record. The stored state is
// the pull request's own state field, not the webhook action.
func buildRecord(event *model.Event, author, mergedBy *userModel.User) *prModel.PullRequest {
	pr := event.PullRequest
	repo := event.Repository

	record := &prModel.PullRequest{
		PRNumber:       pr.Number,
		NodeID:         pr.NodeID,
		Title:          pr.Title,
		State:          pr.State,
		Locked:         pr.Locked,
		AuthorID:       author.ID,
		Body:           pr.Body,
		URL:            pr.URL,
		HTMLURL:        pr.HTMLURL,
		DiffURL:        pr.DiffURL,
		PatchURL:       pr.PatchURL,
		IssueURL:       pr.IssueURL,
		RepoID:         repo.ID,
		RepoNodeID:     repo.NodeID,
		RepoName:       repo.Name,
		RepoFullName:   repo.FullName,
		RepoPrivate:    repo.Private,
		HeadLabel:      pr.Head.Label,
		HeadRef:        pr.Head.Ref,
		HeadSHA:        pr.Head.SHA,
		BaseLabel:      pr.Base.Label,
		BaseRef:        pr.Base.Ref,
		BaseSHA:        pr.Base.SHA,
		MergeCommitSHA: pr.MergeCommitSHA,
		Merged:         pr.Merged,
		Mergeable:      pr.Mergeable,
		Rebaseable:     pr.Rebaseable,
		MergeableState: pr.MergeableState,
		CreatedAt:      pr.CreatedAt,
		UpdatedAt:      pr.UpdatedAt,
		ClosedAt:       pr.ClosedAt,
		MergedAt:       pr.MergedAt,
	}

	if mergedBy != nil {
		record.MergedByID = &mergedBy.ID
	}

	return record
}
