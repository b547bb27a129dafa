package notifications

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"github.com/leapscholar/leappulse/internal/config"
	"github.com/leapscholar/leappulse/internal/models"
)

// Service sends critical-mention digests via the configured channels:
// a Teams incoming webhook and/or SMTP email.
type Service struct {
	config *config.Config
	client *resty.Client
}

var _ Notifier = (*Service)(nil)

// TeamsMessage is the MessageCard payload Teams webhooks expect.
type TeamsMessage struct {
	Type     string         `json:"@type"`
	Context  string         `json:"@context"`
	Title    string         `json:"title"`
	Text     string         `json:"text"`
	Sections []TeamsSection `json:"sections,omitempty"`
}

type TeamsSection struct {
	ActivityTitle string      `json:"activityTitle,omitempty"`
	ActivityText  string      `json:"activityText,omitempty"`
	Facts         []TeamsFact `json:"facts,omitempty"`
	Markdown      bool        `json:"markdown,omitempty"`
}

type TeamsFact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewService creates a notification service. Returns nil when no channel
// is configured so callers can skip alerting entirely.
func NewService(cfg *config.Config) *Service {
	if cfg.TeamsWebhookURL == "" && cfg.NotificationEmail == "" {
		return nil
	}
	return &Service{
		config: cfg,
		client: resty.New().SetTimeout(30 * time.Second),
	}
}

// SendCriticalAlert delivers a digest of critical mentions through every
// configured channel. Channel failures are collected, not short-circuited.
func (s *Service) SendCriticalAlert(brandName string, mentions []models.Mention) error {
	if len(mentions) == 0 {
		return nil
	}

	var errors []string

	if s.config.TeamsWebhookURL != "" {
		if err := s.sendToTeams(brandName, mentions); err != nil {
			logrus.Errorf("Failed to send Teams alert: %v", err)
			errors = append(errors, fmt.Sprintf("Teams: %v", err))
		} else {
			logrus.Info("Successfully sent critical alert to Teams")
		}
	}

	if s.config.NotificationEmail != "" {
		if err := s.sendEmail(brandName, mentions); err != nil {
			logrus.Errorf("Failed to send email alert: %v", err)
			errors = append(errors, fmt.Sprintf("Email: %v", err))
		} else {
			logrus.Info("Successfully sent critical alert via email")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("notification errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

func (s *Service) sendToTeams(brandName string, mentions []models.Mention) error {
	message := buildTeamsMessage(brandName, mentions)

	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(message).
		Post(s.config.TeamsWebhookURL)

	if err != nil {
		return fmt.Errorf("failed to send Teams message: %w", err)
	}

	if resp.StatusCode() != 200 {
		return fmt.Errorf("Teams webhook returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return nil
}

func buildTeamsMessage(brandName string, mentions []models.Mention) *TeamsMessage {
	message := &TeamsMessage{
		Type:    "MessageCard",
		Context: "https://schema.org/extensions",
		Title:   fmt.Sprintf("Critical %s Mentions Alert", brandName),
		Text:    fmt.Sprintf("Found %d critical mentions requiring immediate attention", len(mentions)),
	}

	for i, m := range mentions {
		if i >= 10 {
			break
		}
		message.Sections = append(message.Sections, TeamsSection{
			ActivityTitle: fmt.Sprintf("%s — %s", m.Platform, m.Author),
			ActivityText:  m.Content,
			Facts: []TeamsFact{
				{Name: "Sentiment", Value: fmt.Sprintf("%.3f", m.SentimentScore)},
				{Name: "Engagement", Value: fmt.Sprintf("%d", m.Engagement())},
				{Name: "URL", Value: m.SourceURL},
			},
			Markdown: true,
		})
	}

	return message
}

func (s *Service) sendEmail(brandName string, mentions []models.Mention) error {
	message := gomail.NewMessage()
	message.SetHeader("From", s.config.SMTPUsername)
	message.SetHeader("To", s.config.NotificationEmail)
	message.SetHeader("Subject", fmt.Sprintf("[%s] %d critical mentions detected", brandName, len(mentions)))
	message.SetBody("text/html", buildEmailBody(brandName, mentions))

	dialer := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)

	if err := dialer.DialAndSend(message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func buildEmailBody(brandName string, mentions []models.Mention) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<h2>Critical mentions of %s</h2>", brandName)
	fmt.Fprintf(&b, "<p>%d mentions were classified as critical in the latest cycle.</p><ul>", len(mentions))
	for _, m := range mentions {
		fmt.Fprintf(&b, "<li><strong>%s</strong> (%s, sentiment %.3f): %s — <a href=%q>source</a></li>",
			m.Author, m.Platform, m.SentimentScore, m.Content, m.SourceURL)
	}
	b.WriteString("</ul>")

	return b.String()
}
