// Package service provides business logic layer for the statistics module.
package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	prModel "github.com/minhtri0795/github-dashboard-server/internal/pullrequest/model"
	"github.com/minhtri0795/github-dashboard-server/internal/statistics/model"
	"github.com/minhtri0795/github-dashboard-server/internal/statistics/repository"
	"github.com/minhtri0795/github-dashboard-server/internal/timewindow"
)

// Service defines the interface for statistics business logic operations.
type Service interface {
	// GetAllPullRequests returns all stored pull requests, newest first.
	GetAllPullRequests(ctx context.Context) (*model.PullRequestsResponse, error)

	// GetPRStatistics returns overall and per-author pull request counts.
	GetPRStatistics(ctx context.Context) (*model.PRStatisticsResponse, error)

	// GetPRsByRepository returns per-repository pull request counts.
	GetPRsByRepository(ctx context.Context) ([]model.RepositoryPRStats, error)

	// GetOpenPRs returns open pull requests within the window, grouped by repository.
	GetOpenPRs(ctx context.Context, start, end *time.Time) (*model.WindowedPRsResponse, error)

	// GetClosedPRs returns closed pull requests within the window, grouped by repository.
	GetClosedPRs(ctx context.Context, start, end *time.Time) (*model.WindowedPRsResponse, error)

	// GetCommitsByDate returns commits within the window, grouped by repository.
	GetCommitsByDate(ctx context.Context, start, end *time.Time) (*model.WindowedCommitsResponse, error)

	// GetCommitStatistics returns overall, per-author, and per-repository commit aggregates.
	GetCommitStatistics(ctx context.Context) (*model.CommitStatisticsResponse, error)

	// GetSelfMergedPRs returns self-merged pull requests within the window.
	GetSelfMergedPRs(ctx context.Context, start, end *time.Time) (*model.SelfMergedResponse, error)
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new statistics service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{repo: repo, logger: logger}
}

// GetAllPullRequests returns all stored pull requests, newest first.
func (s *service) GetAllPullRequests(ctx context.Context) (*model.PullRequestsResponse, error) {
	prs, err := s.repo.ListPullRequests(ctx)
	if err != nil {
		s.logger.Errorw("GetAllPullRequests failed", "error", err)
		return nil, err
	}

	return &model.PullRequestsResponse{
		PullRequests: prs,
		Total:        len(prs),
	}, nil
}

// GetPRStatistics returns overall and per-author pull request counts.
func (s *service) GetPRStatistics(ctx context.Context) (*model.PRStatisticsResponse, error) {
	summary, err := s.repo.GetPRSummary(ctx)
	if err != nil {
		s.logger.Errorw("GetPRStatistics summary failed", "error", err)
		return nil, err
	}

	byAuthor, err := s.repo.GetPRsByAuthor(ctx)
	if err != nil {
		s.logger.Errorw("GetPRStatistics by-author failed", "error", err)
		return nil, err
	}

	return &model.PRStatisticsResponse{
		Summary:     *summary,
		PRsByAuthor: byAuthor,
	}, nil
}

// GetPRsByRepository returns per-repository pull request counts.
func (s *service) GetPRsByRepository(ctx context.Context) ([]model.RepositoryPRStats, error) {
	stats, err := s.repo.GetPRsByRepository(ctx)
	if err != nil {
		s.logger.Errorw("GetPRsByRepository failed", "error", err)
		return nil, err
	}
	return stats, nil
}

// GetOpenPRs returns open pull requests within the window, grouped by repository.
func (s *service) GetOpenPRs(ctx context.Context, start, end *time.Time) (*model.WindowedPRsResponse, error) {
	return s.windowedPRs(ctx, prModel.StateOpen, start, end)
}

// GetClosedPRs returns closed pull requests within the window, grouped by repository.
func (s *service) GetClosedPRs(ctx context.Context, start, end *time.Time) (*model.WindowedPRsResponse, error) {
	return s.windowedPRs(ctx, prModel.StateClosed, start, end)
}

func (s *service) windowedPRs(
	ctx context.Context,
	state string,
	start, end *time.Time,
) (*model.WindowedPRsResponse, error) {
	from, to := timewindow.Resolve(start, end)

	prs, err := s.repo.ListPRsByState(ctx, state, from, to)
	if err != nil {
		s.logger.Errorw("windowed pull request query failed", "state", state, "error", err)
		return nil, err
	}

	groups := make(map[string]*model.RepositoryPRGroup)
	for _, pr := range prs {
		group, ok := groups[pr.RepoFullName]
		if !ok {
			group = &model.RepositoryPRGroup{RepoFullName: pr.RepoFullName}
			groups[pr.RepoFullName] = group
		}
		group.TotalPRs++
		if pr.Merged {
			group.MergedPRs++
		}
		group.PullRequests = append(group.PullRequests, pr)
	}

	repositories := make([]model.RepositoryPRGroup, 0, len(groups))
	for _, group := range groups {
		repositories = append(repositories, *group)
	}
	sort.Slice(repositories, func(i, j int) bool {
		if repositories[i].TotalPRs != repositories[j].TotalPRs {
			return repositories[i].TotalPRs > repositories[j].TotalPRs
		}
		return repositories[i].RepoFullName < repositories[j].RepoFullName
	})

	return &model.WindowedPRsResponse{
		Total:        int64(len(prs)),
		StartDate:    from,
		EndDate:      to,
		Repositories: repositories,
	}, nil
}

// GetCommitsByDate returns commits within the window, grouped by repository.
func (s *service) GetCommitsByDate(
	ctx context.Context,
	start, end *time.Time,
) (*model.WindowedCommitsResponse, error) {
	from, to := timewindow.Resolve(start, end)

	commits, err := s.repo.ListCommits(ctx, from, to)
	if err != nil {
		s.logger.Errorw("GetCommitsByDate failed", "error", err)
		return nil, err
	}

	groups := make(map[string]*model.RepositoryCommitGroup)
	for _, commit := range commits {
		group, ok := groups[commit.RepoFullName]
		if !ok {
			group = &model.RepositoryCommitGroup{RepoFullName: commit.RepoFullName}
			groups[commit.RepoFullName] = group
		}
		group.TotalCommits++
		group.TotalAdditions += commit.Additions
		group.TotalDeletions += commit.Deletions
		group.Commits = append(group.Commits, commit)
	}

	repositories := make([]model.RepositoryCommitGroup, 0, len(groups))
	for _, group := range groups {
		repositories = append(repositories, *group)
	}
	sort.Slice(repositories, func(i, j int) bool {
		if repositories[i].TotalCommits != repositories[j].TotalCommits {
			return repositories[i].TotalCommits > repositories[j].TotalCommits
		}
		return repositories[i].RepoFullName < repositories[j].RepoFullName
	})

	return &model.WindowedCommitsResponse{
		TotalCommits: int64(len(commits)),
		StartDate:    from,
		EndDate:      to,
		Repositories: repositories,
	}, nil
}

// GetCommitStatistics returns overall, per-author, and per-repository commit aggregates.
func (s *service) GetCommitStatistics(ctx context.Context) (*model.CommitStatisticsResponse, error) {
	summary, err := s.repo.GetCommitSummary(ctx)
	if err != nil {
		s.logger.Errorw("GetCommitStatistics summary failed", "error", err)
		return nil, err
	}

	byAuthor, err := s.repo.GetCommitsByAuthor(ctx)
	if err != nil {
		s.logger.Errorw("GetCommitStatistics by-author failed", "error", err)
		return nil, err
	}

	byRepository, err := s.repo.GetCommitsByRepository(ctx)
	if err != nil {
		s.logger.Errorw("GetCommitStatistics by-repository failed", "error", err)
		return nil, err
	}

	return &model.CommitStatisticsResponse{
		Summary:             *summary,
		CommitsByAuthor:     byAuthor,
		CommitsByRepository: byRepository,
	}, nil
}

// GetSelfMergedPRs returns self-merged pull requests within the window.
func (s *service) GetSelfMergedPRs(
	ctx context.Context,
	start, end *time.Time,
) (*model.SelfMergedResponse, error) {
	from, to := timewindow.Resolve(start, end)

	prs, err := s.repo.ListSelfMerged(ctx, from, to)
	if err != nil {
		s.logger.Errorw("GetSelfMergedPRs failed", "error", err)
		return nil, err
	}

	userGroups := make(map[int64]*model.SelfMergedByUser)
	repoCounts := make(map[string]int)
	for _, pr := range prs {
		group, ok := userGroups[pr.GithubID]
		if !ok {
			group = &model.SelfMergedByUser{GithubID: pr.GithubID, Login: pr.Login}
			userGroups[pr.GithubID] = group
		}
		group.TotalSelfMerges++
		group.PullRequests = append(group.PullRequests, pr)
		repoCounts[pr.RepoFullName]++
	}

	userStats := make([]model.SelfMergedByUser, 0, len(userGroups))
	for _, group := range userGroups {
		userStats = append(userStats, *group)
	}
	sort.Slice(userStats, func(i, j int) bool {
		if userStats[i].TotalSelfMerges != userStats[j].TotalSelfMerges {
			return userStats[i].TotalSelfMerges > userStats[j].TotalSelfMerges
		}
		return userStats[i].Login < userStats[j].Login
	})

	repositoryStats := make([]model.SelfMergedByRepository, 0, len(repoCounts))
	for repo, count := range repoCounts {
		repositoryStats = append(repositoryStats, model.SelfMergedByRepository{
			RepoFullName:    repo,
			TotalSelfMerges: count,
		})
	}
	sort.Slice(repositoryStats, func(i, j int) bool {
		if repositoryStats[i].TotalSelfMerges != repositoryStats[j].TotalSelfMerges {
			return repositoryStats[i].TotalSelfMerges > repositoryStats[j].TotalSelfMerges
		}
		return repositoryStats[i].RepoFullName < repositoryStats[j].RepoFullName
	})

	return &model.SelfMergedResponse{
		Summary: model.SelfMergedSummary{
			TotalSelfMergedPRs: int64(len(prs)),
			UniqueUsers:        len(userStats),
		},
		UserStats:       userStats,
		RepositoryStats: repositoryStats,
	}, nil
}
