// Package mailer delivers transactional email through a provider-side template.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/4GeeksAcademy/Place-Between-Daniel/config"
	"github.com/4GeeksAcademy/Place-Between-Daniel/utils"
	"go.uber.org/zap"
)

var ErrNoTemplate = errors.New("transactional template id not configured")

// Message is one transactional send keyed by a provider template id.
type Message struct {
	TemplateID string
	Email      string
	Variables  map[string]string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type Templates struct {
	Welcome  string
	Verify   string
	Reset    string
	Reminder string
}

// Mailer maps domain notifications to templates and records delivery metrics.
type Mailer struct {
	sender    Sender
	templates Templates
	timeout   time.Duration
}

func New(sender Sender, templates Templates, timeout time.Duration) *Mailer {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Mailer{sender: sender, templates: templates, timeout: timeout}
}

// FromConfig picks the provider: SES when MAIL_PROVIDER=ses, Loops when an API
// key is present, otherwise a sender that only logs.
func FromConfig(ctx context.Context, cfg config.MailConfig) (*Mailer, error) {
	templates := Templates{
		Welcome:  cfg.WelcomeTemplate,
		Verify:   cfg.VerifyTemplate,
		Reset:    cfg.ResetTemplate,
		Reminder: cfg.ReminderTemplate,
	}

	var sender Sender
	switch {
	case cfg.Provider == "ses":
		s, err := NewSESSender(ctx, cfg.AWSRegion, cfg.SESSender)
		if err != nil {
			return nil, err
		}
		sender = s
	case cfg.LoopsAPIKey != "":
		sender = NewLoopsSender(cfg.LoopsBaseURL, cfg.LoopsAPIKey, cfg.Timeout)
	default:
		utils.Logger.Warn("mailer_disabled", zap.String("reason", "LOOPS_API_KEY not set"))
		sender = LogSender{}
	}
	return New(sender, templates, cfg.Timeout), nil
}

func (m *Mailer) SendWelcome(ctx context.Context, email, username, loginURL string) error {
	return m.send(ctx, "welcome", m.templates.Welcome, email, map[string]string{
		"first_name": username,
		"url_login":  loginURL,
	})
}

func (m *Mailer) SendVerification(ctx context.Context, email, username, verifyURL string) error {
	return m.send(ctx, "verify", m.templates.Verify, email, map[string]string{
		"username":   username,
		"url_verify": verifyURL,
	})
}

func (m *Mailer) SendPasswordReset(ctx context.Context, email, resetURL string) error {
	return m.send(ctx, "password_reset", m.templates.Reset, email, map[string]string{
		"reset": resetURL,
	})
}

func (m *Mailer) SendReminder(ctx context.Context, email, username, reminderType, appURL string) error {
	return m.send(ctx, "reminder", m.templates.Reminder, email, map[string]string{
		"username":      username,
		"reminder_type": reminderType,
		"url_app":       appURL,
	})
}

func (m *Mailer) send(ctx context.Context, name, templateID, email string, vars map[string]string) error {
	if templateID == "" {
		utils.EmailCount.WithLabelValues(name, "skipped").Inc()
		return fmt.Errorf("%s: %w", name, ErrNoTemplate)
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	err := m.sender.Send(ctx, Message{TemplateID: templateID, Email: email, Variables: vars})
	if err != nil {
		utils.EmailCount.WithLabelValues(name, "failed").Inc()
		return fmt.Errorf("send %s email: %w", name, err)
	}
	utils.EmailCount.WithLabelValues(name, "sent").Inc()
	utils.Logger.Info("email_sent", zap.String("template", name), zap.String("email", email))
	return nil
}

// LogSender drops messages after logging them; used when no provider is configured.
type LogSender struct{}

func (LogSender) Send(_ context.Context, msg Message) error {
	utils.Logger.Info("email_not_delivered",
		zap.String("template_id", msg.TemplateID),
		zap.String("email", msg.Email))
	return nil
}
