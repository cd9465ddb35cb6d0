package services

import (
	"context"
	"time"

	"github.com/4GeeksAcademy/Place-Between-Daniel/config"
	"gorm.io/gorm"
)

// Notifier is the outbound transactional email surface; *mailer.Mailer implements it.
type Notifier interface {
	SendWelcome(ctx context.Context, email, username, loginURL string) error
	SendVerification(ctx context.Context, email, username, verifyURL string) error
	SendPasswordReset(ctx context.Context, email, resetURL string) error
	SendReminder(ctx context.Context, email, username, reminderType, appURL string) error
}

type Service struct {
	DB       *gorm.DB
	Mailer   Notifier
	Config   *config.Config
	Now      func() time.Time
	CacheTTL time.Duration
}

func New(db *gorm.DB, mailer Notifier, cfg *config.Config) *Service {
	return &Service{
		DB:       db,
		Mailer:   mailer,
		Config:   cfg,
		Now:      time.Now,
		CacheTTL: cfg.MirrorCacheTTL,
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) jwtSecret() []byte {
	return []byte(s.Config.Auth.JWTSecret)
}
