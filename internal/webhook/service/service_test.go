package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	commitModel "github.com/minhtri0795/github-dashboard-server/internal/commit/model"
	commitRepository "github.com/minhtri0795/github-dashboard-server/internal/commit/repository"
	commitService "github.com/minhtri0795/github-dashboard-server/internal/commit/service"
	prModel "github.com/minhtri0795/github-dashboard-server/internal/pullrequest/model"
	prRepository "github.com/minhtri0795/github-dashboard-server/internal/pullrequest/repository"
	userModel "github.com/minhtri0795/github-dashboard-server/internal/user/model"
	userRepository "github.com/minhtri0795/github-dashboard-server/internal/user/repository"
	userService "github.com/minhtri0795/github-dashboard-server/internal/user/service"
	"github.com/minhtri0795/github-dashboard-server/internal/webhook/model"
)

// recordingNotifier captures notification calls and optionally fails them.
type recordingNotifier struct {
	opened int
	closed int
	fail   bool
}

func (n *recordingNotifier) PROpened(context.Context, *model.Event) error {
	n.opened++
	if n.fail {
		return errors.New("webhook destination unreachable")
	}
	return nil
}

func (n *recordingNotifier) PRClosed(context.Context, *model.Event) error {
	n.closed++
	if n.fail {
		return errors.New("webhook destination unreachable")
	}
	return nil
}

type fixture struct {
	svc  Service
	db   *gorm.DB
	sink *recordingNotifier
}

func setup(t *testing.T) *fixture {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&userModel.User{}, &commitModel.Commit{}, &prModel.PullRequest{}))

	log := zap.NewNop().Sugar()
	users := userService.New(userRepository.New(db, log), log)
	recorder := commitService.New(commitRepository.New(db, log), users, log)
	prs := prRepository.New(db, log)
	sink := &recordingNotifier{}

	return &fixture{
		svc:  New(prs, users, recorder, sink, log),
		db:   db,
		sink: sink,
	}
}

func openedEvent() *model.Event {
	created := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	return &model.Event{
		Action: "opened",
		PullRequest: &model.PullRequest{
			Number: 9,
			Title:  "Add login page",
			State:  "open",
			User:   &userModel.Account{ID: 42, Login: "alice"},
			Head:   model.GitRef{Ref: "feature/login", SHA: "abc"},
			Base:   model.GitRef{Ref: "main", SHA: "000"},
			Commits:   3,
			Additions: 120,
			Deletions: 30,
			CreatedAt: created,
			UpdatedAt: created,
		},
		Repository: &model.Repository{
			ID: 501, Name: "api", FullName: "acme/api",
			URL:     "https://api.github.com/repos/acme/api",
			HTMLURL: "https://github.com/acme/api",
		},
	}
}

func closedEvent(merged bool, mergedBy *userModel.Account) *model.Event {
	event := openedEvent()
	closedAt := time.Date(2025, 5, 2, 16, 0, 0, 0, time.UTC)
	event.Action = "closed"
	event.PullRequest.State = "closed"
	event.PullRequest.UpdatedAt = closedAt
	event.PullRequest.ClosedAt = &closedAt
	event.PullRequest.Merged = merged
	event.PullRequest.MergedBy = mergedBy
	if merged {
		event.PullRequest.MergedAt = &closedAt
	}
	return event
}

func TestHandleEvent_Validation(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	t.Run("nil event", func(t *testing.T) {
		_, err := f.svc.HandleEvent(ctx, nil)
		assert.ErrorIs(t, err, model.ErrEmptyPayload)
	})

	t.Run("missing pull_request", func(t *testing.T) {
		_, err := f.svc.HandleEvent(ctx, &model.Event{
			Action:     "opened",
			Repository: &model.Repository{FullName: "acme/api"},
		})
		assert.ErrorIs(t, err, model.ErrMissingPullRequest)
	})

	t.Run("missing repository", func(t *testing.T) {
		_, err := f.svc.HandleEvent(ctx, &model.Event{
			Action:      "opened",
			PullRequest: &model.PullRequest{Number: 1, User: &userModel.Account{ID: 1}},
		})
		assert.ErrorIs(t, err, model.ErrMissingRepository)
	})

	t.Run("missing author", func(t *testing.T) {
		event := openedEvent()
		event.PullRequest.User = nil
		_, err := f.svc.HandleEvent(ctx, event)
		assert.ErrorIs(t, err, model.ErrMissingAuthor)
	})
}

func TestHandleEvent_Opened(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the record and synthesizes commits", func(t *testing.T) {
		f := setup(t)

		result, err := f.svc.HandleEvent(ctx, openedEvent())
		require.NoError(t, err)
		require.NotNil(t, result.PullRequest)

		assert.Equal(t, "open", result.PullRequest.State)
		assert.False(t, result.PullRequest.Merged)

		require.Len(t, result.Commits, 3)
		assert.Equal(t, "abc-0", result.Commits[0].SHA)
		assert.Equal(t, "abc-1", result.Commits[1].SHA)
		assert.Equal(t, "abc", result.Commits[2].SHA)
		assert.Equal(t, 40, result.Commits[0].Additions)
		assert.Equal(t, 10, result.Commits[0].Deletions)

		// The opener exists as a user.
		var user userModel.User
		require.NoError(t, f.db.Where("github_id = ?", 42).First(&user).Error)
		assert.Equal(t, "alice", user.Login)

		assert.Equal(t, 1, f.sink.opened)
	})

	t.Run("repeated opened is idempotent", func(t *testing.T) {
		f := setup(t)

		first, err := f.svc.HandleEvent(ctx, openedEvent())
		require.NoError(t, err)
		second, err := f.svc.HandleEvent(ctx, openedEvent())
		require.NoError(t, err)

		assert.Equal(t, first.PullRequest.ID, second.PullRequest.ID)
		assert.Empty(t, second.Commits)

		var prCount int64
		require.NoError(t, f.db.Model(&prModel.PullRequest{}).Count(&prCount).Error)
		assert.Equal(t, int64(1), prCount)

		// No second round of synthetic commits or notifications.
		var commitCount int64
		require.NoError(t, f.db.Model(&commitModel.Commit{}).Count(&commitCount).Error)
		assert.Equal(t, int64(3), commitCount)
		assert.Equal(t, 1, f.sink.opened)
	})

	t.Run("zero commit count synthesizes nothing", func(t *testing.T) {
		f := setup(t)

		event := openedEvent()
		event.PullRequest.Commits = 0
		result, err := f.svc.HandleEvent(ctx, event)
		require.NoError(t, err)
		assert.Empty(t, result.Commits)
	})
}

func TestHandleEvent_Closed(t *testing.T) {
	ctx := context.Background()

	t.Run("closes the existing record in place", func(t *testing.T) {
		f := setup(t)

		opened, err := f.svc.HandleEvent(ctx, openedEvent())
		require.NoError(t, err)

		closed, err := f.svc.HandleEvent(ctx, closedEvent(true, &userModel.Account{ID: 43, Login: "bob"}))
		require.NoError(t, err)

		assert.Equal(t, opened.PullRequest.ID, closed.PullRequest.ID)
		assert.Equal(t, "closed", closed.PullRequest.State)
		assert.True(t, closed.PullRequest.Merged)
		require.NotNil(t, closed.PullRequest.MergedByID)

		var prCount int64
		require.NoError(t, f.db.Model(&prModel.PullRequest{}).Count(&prCount).Error)
		assert.Equal(t, int64(1), prCount)
		assert.Equal(t, 1, f.sink.closed)
	})

	t.Run("self merge links author and merger to the same user", func(t *testing.T) {
		f := setup(t)

		_, err := f.svc.HandleEvent(ctx, openedEvent())
		require.NoError(t, err)

		closed, err := f.svc.HandleEvent(ctx, closedEvent(true, &userModel.Account{ID: 42, Login: "alice"}))
		require.NoError(t, err)

		require.NotNil(t, closed.PullRequest.MergedByID)
		assert.Equal(t, closed.PullRequest.AuthorID, *closed.PullRequest.MergedByID)
	})

	t.Run("close without merge stores no merge actor", func(t *testing.T) {
		f := setup(t)

		_, err := f.svc.HandleEvent(ctx, openedEvent())
		require.NoError(t, err)

		closed, err := f.svc.HandleEvent(ctx, closedEvent(false, nil))
		require.NoError(t, err)

		assert.False(t, closed.PullRequest.Merged)
		assert.Nil(t, closed.PullRequest.MergedByID)
		assert.Equal(t, 1, f.sink.closed)
	})

	t.Run("close for an unknown pull request creates it closed", func(t *testing.T) {
		f := setup(t)

		result, err := f.svc.HandleEvent(ctx, closedEvent(true, &userModel.Account{ID: 43, Login: "bob"}))
		require.NoError(t, err)

		assert.Equal(t, "closed", result.PullRequest.State)
		assert.True(t, result.PullRequest.Merged)

		var prCount int64
		require.NoError(t, f.db.Model(&prModel.PullRequest{}).Count(&prCount).Error)
		assert.Equal(t, int64(1), prCount)
	})
}

func TestHandleEvent_Synchronize(t *testing.T) {
	ctx := context.Background()

	syncEvent := func() *model.Event {
		event := openedEvent()
		event.Action = "synchronize"
		event.After = "newhead"
		event.PullRequest.Head.SHA = "newhead"
		event.PullRequest.UpdatedAt = time.Date(2025, 5, 1, 14, 0, 0, 0, time.UTC)
		return event
	}

	t.Run("records one commit and refreshes the record", func(t *testing.T) {
		f := setup(t)

		_, err := f.svc.HandleEvent(ctx, openedEvent())
		require.NoError(t, err)

		result, err := f.svc.HandleEvent(ctx, syncEvent())
		require.NoError(t, err)

		require.Len(t, result.Commits, 1)
		assert.Equal(t, "newhead", result.Commits[0].SHA)

		require.NotNil(t, result.PullRequest)
		assert.Equal(t, "newhead", result.PullRequest.HeadSHA)
	})

	t.Run("unknown pull request records the commit only", func(t *testing.T) {
		f := setup(t)

		result, err := f.svc.HandleEvent(ctx, syncEvent())
		require.NoError(t, err)

		require.Len(t, result.Commits, 1)
		assert.Nil(t, result.PullRequest)

		var prCount int64
		require.NoError(t, f.db.Model(&prModel.PullRequest{}).Count(&prCount).Error)
		assert.Zero(t, prCount)
	})

	t.Run("repeated synchronize accumulates commits", func(t *testing.T) {
		f := setup(t)

		_, err := f.svc.HandleEvent(ctx, openedEvent())
		require.NoError(t, err)
		_, err = f.svc.HandleEvent(ctx, syncEvent())
		require.NoError(t, err)
		_, err = f.svc.HandleEvent(ctx, syncEvent())
		require.NoError(t, err)

		var count int64
		require.NoError(t, f.db.Model(&commitModel.Commit{}).
			Where("sha = ?", "newhead").Count(&count).Error)
		assert.Equal(t, int64(2), count)
	})
}

func TestHandleEvent_IgnoredActions(t *testing.T) {
	ctx := context.Background()

	for _, action := range []string{"reopened", "labeled", "review_requested"} {
		t.Run(action+" is a no-op", func(t *testing.T) {
			f := setup(t)

			event := openedEvent()
			event.Action = action
			result, err := f.svc.HandleEvent(ctx, event)
			require.NoError(t, err)
			assert.Nil(t, result.PullRequest)
			assert.Empty(t, result.Commits)

			var prCount int64
			require.NoError(t, f.db.Model(&prModel.PullRequest{}).Count(&prCount).Error)
			assert.Zero(t, prCount)
		})
	}
}

func TestHandleEvent_Push(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	event := &model.Event{
		Ref: "refs/heads/main",
		Repository: &model.Repository{
			ID: 501, Name: "api", FullName: "acme/api",
			HTMLURL: "https://github.com/acme/api",
		},
		Commits: []model.PushCommit{
			{
				ID:        "aaa111",
				Message:   "Direct fix",
				Timestamp: time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC),
				Author:    userModel.Account{Username: "alice"},
				Modified:  []string{"main.go"},
			},
		},
	}

	result, err := f.svc.HandleEvent(ctx, event)
	require.NoError(t, err)

	assert.Equal(t, "push", result.Kind)
	require.Len(t, result.Commits, 1)
	assert.Equal(t, "main", result.Commits[0].Branch)
	assert.Nil(t, result.PullRequest)
}

func TestHandleEvent_NotificationFailureIsIsolated(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.sink.fail = true

	result, err := f.svc.HandleEvent(ctx, openedEvent())
	require.NoError(t, err)
	require.NotNil(t, result.PullRequest)

	closed, err := f.svc.HandleEvent(ctx, closedEvent(true, &userModel.Account{ID: 43, Login: "bob"}))
	require.NoError(t, err)
	assert.Equal(t, "closed", closed.PullRequest.State)

	// Both notifications were attempted exactly once, neither retried.
	assert.Equal(t, 1, f.sink.opened)
	assert.Equal(t, 1, f.sink.closed)
}
