// Package main provides a development data seeder. It replays a fixed set
// of webhook events through the same reconciliation path the server uses,
// so the seeded rows are shaped exactly like production data.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	commitRepository "github.com/minhtri0795/github-dashboard-server/internal/commit/repository"
	commitService "github.com/minhtri0795/github-dashboard-server/internal/commit/service"
	"github.com/minhtri0795/github-dashboard-server/internal/database/database"
	"github.com/minhtri0795/github-dashboard-server/internal/database/migrate"
	"github.com/minhtri0795/github-dashboard-server/internal/notifier"
	prRepository "github.com/minhtri0795/github-dashboard-server/internal/pullrequest/repository"
	userModel "github.com/minhtri0795/github-dashboard-server/internal/user/model"
	userRepository "github.com/minhtri0795/github-dashboard-server/internal/user/repository"
	userService "github.com/minhtri0795/github-dashboard-server/internal/user/service"
	webhookModel "github.com/minhtri0795/github-dashboard-server/internal/webhook/model"
	webhookService "github.com/minhtri0795/github-dashboard-server/internal/webhook/service"
	"github.com/minhtri0795/github-dashboard-server/pkg/logger"
)

func main() {
	appLogger, err := logger.New()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		_ = appLogger.Sync()
	}()

	db, err := database.New()
	if err != nil {
		appLogger.Fatalw("failed to connect to database", "error", err)
	}
	defer func() {
		_ = database.Close(db)
	}()

	if err := migrate.Migrate(db); err != nil {
		appLogger.Fatalw("failed to run migrations", "error", err)
	}

	users := userService.New(userRepository.New(db, appLogger), appLogger)
	recorder := commitService.New(commitRepository.New(db, appLogger), users, appLogger)
	prs := prRepository.New(db, appLogger)
	engine := webhookService.New(prs, users, recorder, notifier.NewNop(), appLogger)

	ctx := context.Background()
	for i, event := range sampleEvents() {
		if _, err := engine.HandleEvent(ctx, event); err != nil {
			appLogger.Fatalw("failed to apply seed event", "index", i, "error", err)
		}
	}

	appLogger.Infow("seed data applied", "events", len(sampleEvents()))
}

// sampleEvents builds two merged pull requests, one open pull request, and
// a direct push, across two repositories and three users.
func sampleEvents() []*webhookModel.Event {
	now := time.Now().UTC().Truncate(time.Second)
	alice := userModel.Account{ID: 9001, Login: "alice", AvatarURL: "https://avatars.example.com/alice.png", Type: "User"}
	bob := userModel.Account{ID: 9002, Login: "bob", AvatarURL: "https://avatars.example.com/bob.png", Type: "User"}
	carol := userModel.Account{ID: 9003, Login: "carol", AvatarURL: "https://avatars.example.com/carol.png", Type: "User"}

	dashboard := &webhookModel.Repository{
		ID: 501, Name: "dashboard", FullName: "acme/dashboard",
		HTMLURL: "https://github.com/acme/dashboard",
	}
	api := &webhookModel.Repository{
		ID: 502, Name: "api", FullName: "acme/api",
		HTMLURL: "https://github.com/acme/api",
	}

	var events []*webhookModel.Event

	// PR #1 on acme/dashboard: opened by alice, merged by bob.
	pr1 := &webhookModel.PullRequest{
		Number: 1, Title: "Add login page", State: "open",
		User:      &alice,
		CreatedAt: now.Add(-72 * time.Hour), UpdatedAt: now.Add(-72 * time.Hour),
		Head:    webhookModel.GitRef{Ref: "feature/login", SHA: "a1b2c3d4"},
		Base:    webhookModel.GitRef{Ref: "main", SHA: "00000001"},
		Commits: 3, Additions: 120, Deletions: 30,
	}
	events = append(events, &webhookModel.Event{Action: "opened", PullRequest: pr1, Repository: dashboard})

	mergedAt := now.Add(-48 * time.Hour)
	pr1Closed := *pr1
	pr1Closed.State = "closed"
	pr1Closed.Merged = true
	pr1Closed.MergedBy = &bob
	pr1Closed.UpdatedAt = mergedAt
	pr1Closed.ClosedAt = &mergedAt
	pr1Closed.MergedAt = &mergedAt
	pr1Closed.MergeCommitSHA = "m1m1m1m1"
	events = append(events, &webhookModel.Event{Action: "closed", PullRequest: &pr1Closed, Repository: dashboard})

	// PR #7 on acme/api: opened and self-merged by bob.
	pr7 := &webhookModel.PullRequest{
		Number: 7, Title: "Fix rate limiting", State: "open",
		User:      &bob,
		CreatedAt: now.Add(-36 * time.Hour), UpdatedAt: now.Add(-36 * time.Hour),
		Head:    webhookModel.GitRef{Ref: "fix/rate-limit", SHA: "b5c6d7e8"},
		Base:    webhookModel.GitRef{Ref: "main", SHA: "00000002"},
		Commits: 1, Additions: 18, Deletions: 4,
	}
	events = append(events, &webhookModel.Event{Action: "opened", PullRequest: pr7, Repository: api})

	selfMergedAt := now.Add(-30 * time.Hour)
	pr7Closed := *pr7
	pr7Closed.State = "closed"
	pr7Closed.Merged = true
	pr7Closed.MergedBy = &bob
	pr7Closed.UpdatedAt = selfMergedAt
	pr7Closed.ClosedAt = &selfMergedAt
	pr7Closed.MergedAt = &selfMergedAt
	events = append(events, &webhookModel.Event{Action: "closed", PullRequest: &pr7Closed, Repository: api})

	// PR #2 on acme/dashboard: opened by carol, still open, one synchronize.
	pr2 := &webhookModel.PullRequest{
		Number: 2, Title: "Dark mode support", State: "open",
		User:      &carol,
		CreatedAt: now.Add(-12 * time.Hour), UpdatedAt: now.Add(-12 * time.Hour),
		Head:    webhookModel.GitRef{Ref: "feature/dark-mode", SHA: "c9d0e1f2"},
		Base:    webhookModel.GitRef{Ref: "main", SHA: "00000001"},
		Commits: 2, Additions: 64, Deletions: 12,
	}
	events = append(events, &webhookModel.Event{Action: "opened", PullRequest: pr2, Repository: dashboard})

	pr2Sync := *pr2
	pr2Sync.UpdatedAt = now.Add(-6 * time.Hour)
	events = append(events, &webhookModel.Event{
		Action: "synchronize", PullRequest: &pr2Sync, Repository: dashboard,
		After: "d3e4f5a6",
	})

	// Direct push to acme/api main by alice.
	events = append(events, &webhookModel.Event{
		Ref:        "refs/heads/main",
		Repository: api,
		Commits: []webhookModel.PushCommit{
			{
				ID:        "e7f8a9b0",
				Message:   "Bump dependency versions",
				Timestamp: now.Add(-3 * time.Hour),
				Author:    userModel.Account{Login: "alice", Name: "Alice Example", Email: "alice@example.com"},
				Added:     []string{},
				Removed:   []string{},
				Modified:  []string{"go.mod", "go.sum"},
			},
			{
				ID:        "f1a2b3c4",
				Message:   fmt.Sprintf("Release notes for %s", now.Format("2006-01-02")),
				Timestamp: now.Add(-2 * time.Hour),
				Author:    userModel.Account{Login: "alice", Name: "Alice Example", Email: "alice@example.com"},
				Added:     []string{"CHANGELOG.md"},
				Removed:   []string{},
				Modified:  []string{},
			},
		},
	})

	return events
}
