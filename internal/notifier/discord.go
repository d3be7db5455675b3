package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	webhookModel "github.com/minhtri0795/github-dashboard-server/internal/webhook/model"
)

// Embed colors for the two message variants.
const (
	openedColor = 16761622
	closedColor = 6697980
)

// Discord delivers pull request notifications to a Discord webhook.
type Discord struct {
	url    string
	client *http.Client
	logger *zap.SugaredLogger
}

// NewDiscord creates a Discord notifier posting to the given webhook URL.
func NewDiscord(url string, logger *zap.SugaredLogger) *Discord {
	return &Discord{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

type discordMessage struct {
	Username  string         `json:"username"`
	AvatarURL string         `json:"avatar_url,omitempty"`
	Content   string         `json:"content"`
	Embeds    []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Author      *discordAuthor `json:"author,omitempty"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	URL         string         `json:"url"`
	Color       int            `json:"color"`
	Fields      []discordField `json:"fields,omitempty"`
}

type discordAuthor struct {
	Name    string `json:"name"`
	URL     string `json:"url,omitempty"`
	IconURL string `json:"icon_url,omitempty"`
}

type discordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// PROpened announces a newly opened pull request.
func (d *Discord) PROpened(ctx context.Context, event *webhookModel.Event) error {
	pr := event.PullRequest

	msg := discordMessage{
		Username: "PR!",
		Content:  fmt.Sprintf("📢 **%s** has new PR!", repoDisplayName(event)),
		Embeds: []discordEmbed{
			{
				Title: fmt.Sprintf("PR #%d: %s", pr.Number, pr.Title),
				URL:   pr.HTMLURL,
				Color: openedColor,
			},
		},
	}
	if pr.User != nil {
		msg.AvatarURL = pr.User.AvatarURL
		msg.Embeds[0].Author = &discordAuthor{
			Name:    pr.User.Login,
			URL:     pr.User.HTMLURL,
			IconURL: pr.User.AvatarURL,
		}
		msg.Embeds[0].Fields = []discordField{
			{Name: "Open by", Value: pr.User.Login, Inline: true},
		}
	}

	return d.post(ctx, msg)
}

// PRClosed announces a closed pull request.
func (d *Discord) PRClosed(ctx context.Context, event *webhookModel.Event) error {
	pr := event.PullRequest

	msg := discordMessage{
		Username: "MERGED!",
		Content:  fmt.Sprintf("📢 PR **%s** has merged!", repoDisplayName(event)),
		Embeds: []discordEmbed{
			{
				Title: fmt.Sprintf("PR #%d: %s", pr.Number, pr.Title),
				URL:   pr.HTMLURL,
				Color: closedColor,
			},
		},
	}
	if pr.User != nil {
		msg.AvatarURL = pr.User.AvatarURL
		msg.Embeds[0].Fields = append(msg.Embeds[0].Fields,
			discordField{Name: "Open by", Value: pr.User.Login, Inline: true})
	}
	if pr.MergedBy != nil {
		msg.Embeds[0].Author = &discordAuthor{
			Name:    pr.MergedBy.Login,
			URL:     pr.MergedBy.HTMLURL,
			IconURL: pr.MergedBy.AvatarURL,
		}
		msg.Embeds[0].Description = fmt.Sprintf("[%s](%s) merged this PR",
			pr.MergedBy.Login, pr.MergedBy.HTMLURL)
		msg.Embeds[0].Fields = append(msg.Embeds[0].Fields,
			discordField{Name: "Closed by", Value: pr.MergedBy.Login, Inline: true})
	}

	return d.post(ctx, msg)
}

// post delivers one message to the configured webhook.
func (d *Discord) post(ctx context.Context, msg discordMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal discord message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver discord notification: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("discord webhook returned status %d", resp.StatusCode)
	}

	d.logger.Debugw("discord notification delivered", "status", resp.StatusCode)
	return nil
}

func repoDisplayName(event *webhookModel.Event) string {
	if event.Repository != nil {
		return strings.ToUpper(event.Repository.Name)
	}
	return "UNKNOWN"
}
