// Package service provides the commit recorder: it converts raw webhook
// commit data into stored commit records.
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/minhtri0795/github-dashboard-server/internal/commit/model"
	"github.com/minhtri0795/github-dashboard-server/internal/commit/repository"
	userModel "github.com/minhtri0795/github-dashboard-server/internal/user/model"
	webhookModel "github.com/minhtri0795/github-dashboard-server/internal/webhook/model"
)

// Registry resolves account references to stored users.
type Registry interface {
	Resolve(ctx context.Context, account userModel.Account) (*userModel.User, error)
}

// Service defines the interface for commit recording operations.
//
// Inserts within a batch are sequential and there is no rollback: a failure
// mid-batch leaves the earlier records persisted and propagates to the
// caller, which treats it as fatal for the whole event.
type Service interface {
	// RecordPush stores one commit record per entry of a push event.
	RecordPush(ctx context.Context, event *webhookModel.Event) ([]model.Commit, error)

	// SynthesizeOpened creates placeholder commit records for a freshly
	// opened pull request, which reports only a commit count.
	SynthesizeOpened(
		ctx context.Context,
		pr *webhookModel.PullRequest,
		repo *webhookModel.Repository,
		author *userModel.User,
	) ([]model.Commit, error)

	// RecordSynchronize creates exactly one synthetic record for the new
	// head commit of a synchronize event. Repeated synchronize events
	// accumulate one record each; nothing deduplicates them.
	RecordSynchronize(
		ctx context.Context,
		event *webhookModel.Event,
		author *userModel.User,
	) (*model.Commit, error)
}

type service struct {
	repo     repository.Repository
	registry Registry
	logger   *zap.SugaredLogger
	now      func() time.Time
}

// New creates a new commit recorder instance.
func New(repo repository.Repository, registry Registry, logger *zap.SugaredLogger) Service {
	return &service{
		repo:     repo,
		registry: registry,
		logger:   logger,
		now:      time.Now,
	}
}

// RecordPush stores one commit record per entry of a push event.
func (s *service) RecordPush(ctx context.Context, event *webhookModel.Event) ([]model.Commit, error) {
	branch := event.Branch()
	saved := make([]model.Commit, 0, len(event.Commits))

	for _, pc := range event.Commits {
		author, err := s.registry.Resolve(ctx, pc.Author)
		if err != nil {
			return saved, fmt.Errorf("resolve commit author %q: %w", pc.Author.EffectiveLogin(), err)
		}

		commit := model.Commit{
			SHA:           pc.ID,
			NodeID:        pc.NodeID,
			AuthorID:      author.ID,
			Message:       pc.Message,
			URL:           pc.URL,
			Branch:        branch,
			AddedCount:    len(pc.Added),
			RemovedCount:  len(pc.Removed),
			ModifiedCount: len(pc.Modified),
			Total:         len(pc.Added) + len(pc.Removed) + len(pc.Modified),
			Additions:     len(pc.Added),
			Deletions:     len(pc.Removed),
			CommittedAt:   pc.Timestamp,
		}
		applyRepoSnapshot(&commit, event.Repository)
		if event.Repository != nil {
			commit.HTMLURL = fmt.Sprintf("%s/commit/%s", event.Repository.HTMLURL, pc.ID)
		}

		if err := s.repo.Create(ctx, &commit); err != nil {
			return saved, err
		}
		saved = append(saved, commit)
	}

	s.logger.Infow("push commits recorded", "branch", branch, "count", len(saved))
	return saved, nil
}

// SynthesizeOpened creates placeholder commit records for an opened pull
// request. The payload reports only a commit count, so the records are
// synthesized: all authored by the opener, shas derived from the head sha
// with the last record carrying the real head sha verbatim, timestamps
// staggered backward in one-minute steps so the last record is the most
// recent, and the reported additions/deletions divided evenly across the
// count (integer floor).
func (s *service) SynthesizeOpened(
	ctx context.Context,
	pr *webhookModel.PullRequest,
	repo *webhookModel.Repository,
	author *userModel.User,
) ([]model.Commit, error) {
	count := pr.Commits
	if count <= 0 {
		return []model.Commit{}, nil
	}

	additions := pr.Additions / count
	deletions := pr.Deletions / count
	now := s.now()

	saved := make([]model.Commit, 0, count)
	for i := 0; i < count; i++ {
		sha := pr.Head.SHA
		if i < count-1 {
			sha = fmt.Sprintf("%s-%d", pr.Head.SHA, i)
		}

		commit := model.Commit{
			SHA:         sha,
			NodeID:      pr.NodeID,
			AuthorID:    author.ID,
			Message:     fmt.Sprintf("Commit %d of %d on PR #%d: %s", i+1, count, pr.Number, pr.Title),
			Branch:      pr.Head.Ref,
			Total:       additions + deletions,
			Additions:   additions,
			Deletions:   deletions,
			CommittedAt: now.Add(-time.Duration(count-1-i) * time.Minute),
		}
		applyRepoSnapshot(&commit, repo)
		if repo != nil {
			commit.URL = fmt.Sprintf("%s/commits/%s", repo.URL, sha)
			commit.HTMLURL = fmt.Sprintf("%s/commit/%s", repo.HTMLURL, sha)
		}

		if err := s.repo.Create(ctx, &commit); err != nil {
			return saved, err
		}
		saved = append(saved, commit)
	}

	s.logger.Infow("opened commits synthesized",
		"pr_number", pr.Number, "count", count, "head_sha", pr.Head.SHA)
	return saved, nil
}

// RecordSynchronize creates exactly one synthetic record for the new head commit.
func (s *service) RecordSynchronize(
	ctx context.Context,
	event *webhookModel.Event,
	author *userModel.User,
) (*model.Commit, error) {
	pr := event.PullRequest
	sha := event.HeadSHA()

	commit := model.Commit{
		SHA:         sha,
		NodeID:      pr.Head.SHA,
		AuthorID:    author.ID,
		Message:     fmt.Sprintf("New commit on PR #%d: %s", pr.Number, pr.Title),
		Branch:      pr.Head.Ref,
		Total:       1,
		Additions:   0,
		Deletions:   0,
		CommittedAt: s.now(),
	}
	applyRepoSnapshot(&commit, event.Repository)
	if event.Repository != nil {
		commit.URL = fmt.Sprintf("%s/commits/%s", event.Repository.URL, sha)
		commit.HTMLURL = fmt.Sprintf("%s/commit/%s", event.Repository.HTMLURL, sha)
	}

	if err := s.repo.Create(ctx, &commit); err != nil {
		return nil, err
	}

	s.logger.Infow("synchronize commit recorded", "pr_number", pr.Number, "sha", sha)
	return &commit, nil
}

func applyRepoSnapshot(commit *model.Commit, repo *webhookModel.Repository) {
	if repo == nil {
		return
	}
	commit.RepoID = repo.ID
	commit.RepoNodeID = repo.NodeID
	commit.RepoName = repo.Name
	commit.RepoFullName = repo.FullName
	commit.RepoPrivate = repo.Private
}
