package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/4GeeksAcademy/Place-Between-Daniel/models"
	"github.com/4GeeksAcademy/Place-Between-Daniel/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Email    string
	Username string
	Password string
	Timezone string
}

type LoginResult struct {
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        *models.User `json:"user"`
}

type ProfileInput struct {
	Username       *string
	Timezone       *string
	DayStartTime   *string
	NightStartTime *string
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates the account and sends the welcome and verification mails on
// a best-effort basis.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := normalizeEmail(in.Email)
	username := strings.TrimSpace(in.Username)
	tz := strings.TrimSpace(in.Timezone)
	if tz == "" {
		tz = "UTC"
	}
	if email == "" || username == "" || in.Password == "" {
		return nil, invalid("email, username and password are required")
	}
	if !utils.ValidTimezone(tz) {
		return nil, invalid("invalid timezone %q", tz)
	}

	db := s.DB.WithContext(ctx)
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return nil, conflict("email already registered")
	}
	if err := db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if count > 0 {
		return nil, conflict("username already registered")
	}

	hash, err := utils.HashPassword(in.Password, s.Config.Auth.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:          email,
		Username:       username,
		PasswordHash:   hash,
		Timezone:       tz,
		DayStartTime:   "06:00",
		NightStartTime: "19:00",
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict("email or username already registered")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	utils.Logger.Info("user_registered", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	s.sendOnboarding(ctx, &user)
	return &user, nil
}

func (s *Service) sendOnboarding(ctx context.Context, user *models.User) {
	if err := s.Mailer.SendWelcome(ctx, user.Email, user.Username, s.Config.FrontendLink("login")); err != nil {
		utils.Logger.Warn("welcome_email_failed", zap.Uint("user_id", user.ID), zap.Error(err))
	} else {
		now := s.now().UTC()
		user.WelcomeEmailSentAt = &now
		if err := s.DB.WithContext(ctx).Model(user).UpdateColumn("welcome_email_sent_at", now).Error; err != nil {
			utils.Logger.Warn("welcome_email_stamp_failed", zap.Uint("user_id", user.ID), zap.Error(err))
		}
	}

	token, _, err := utils.GenerateToken(s.jwtSecret(), user.ID, utils.PurposeVerify, s.Config.Auth.VerifyTTL)
	if err != nil {
		utils.Logger.Warn("verify_token_failed", zap.Uint("user_id", user.ID), zap.Error(err))
		return
	}
	link := s.Config.FrontendLink("verify-email?token=" + url.QueryEscape(token))
	if err := s.Mailer.SendVerification(ctx, user.Email, user.Username, link); err != nil {
		utils.Logger.Warn("verify_email_failed", zap.Uint("user_id", user.ID), zap.Error(err))
	}
}

// Login checks credentials and issues an access token, long-lived when remember is set.
func (s *Service) Login(ctx context.Context, email, password string, remember bool) (*LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, invalid("email and password are required")
	}

	db := s.DB.WithContext(ctx)
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, unauthorized("invalid credentials")
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, unauthorized("invalid credentials")
	}

	now := s.now().UTC()
	if err := db.Model(&user).UpdateColumn("last_login_at", now).Error; err != nil {
		return nil, fmt.Errorf("update last login: %w", err)
	}
	user.LastLoginAt = &now

	ttl := s.Config.Auth.AccessTTL
	if remember {
		ttl = s.Config.Auth.RememberTTL
	}
	token, expiresAt, err := utils.GenerateToken(s.jwtSecret(), user.ID, utils.PurposeAccess, ttl)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	utils.Logger.Info("user_logged_in", zap.Uint("user_id", user.ID), zap.Bool("remember_me", remember))
	return &LoginResult{AccessToken: token, ExpiresAt: expiresAt, User: &user}, nil
}

// ForgotPassword mails a short-lived reset link. Delivery errors are only logged.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return invalid("email is required")
	}

	var user models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("user")
		}
		return fmt.Errorf("load user: %w", err)
	}

	token, _, err := utils.GenerateToken(s.jwtSecret(), user.ID, utils.PurposeReset, s.Config.Auth.ResetTTL)
	if err != nil {
		return fmt.Errorf("issue reset token: %w", err)
	}
	link := s.Config.FrontendLink("reset-password?token=" + url.QueryEscape(token))
	if err := s.Mailer.SendPasswordReset(ctx, user.Email, link); err != nil {
		utils.Logger.Warn("reset_email_failed", zap.Uint("user_id", user.ID), zap.Error(err))
	}
	return nil
}

// ResetPassword sets a new password. The reset token must belong to the
// account that owns email.
func (s *Service) ResetPassword(ctx context.Context, token, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return invalid("email and password are required")
	}
	claims, err := utils.ParseToken(s.jwtSecret(), token, utils.PurposeReset)
	if err != nil {
		return unauthorized("invalid or expired reset token")
	}

	db := s.DB.WithContext(ctx)
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return unauthorized("reset token does not match this account")
		}
		return fmt.Errorf("load user: %w", err)
	}
	if user.ID != claims.UserID {
		return unauthorized("reset token does not match this account")
	}

	hash, err := utils.HashPassword(password, s.Config.Auth.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := db.Model(&user).UpdateColumn("password_hash", hash).Error; err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	utils.Logger.Info("password_reset", zap.Uint("user_id", user.ID))
	return nil
}

func (s *Service) VerifyEmail(ctx context.Context, token string) (*models.User, error) {
	claims, err := utils.ParseToken(s.jwtSecret(), token, utils.PurposeVerify)
	if err != nil {
		return nil, unauthorized("invalid or expired verification token")
	}

	db := s.DB.WithContext(ctx)
	user, err := s.loadUser(db, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user.IsEmailVerified {
		return user, nil
	}

	now := s.now().UTC()
	if err := db.Model(user).Updates(map[string]interface{}{
		"is_email_verified": true,
		"email_verified_at": now,
	}).Error; err != nil {
		return nil, fmt.Errorf("verify email: %w", err)
	}
	user.IsEmailVerified = true
	user.EmailVerifiedAt = &now
	return user, nil
}

func (s *Service) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	return s.loadUser(s.DB.WithContext(ctx), userID)
}

func (s *Service) UpdateProfile(ctx context.Context, userID uint, in ProfileInput) (*models.User, error) {
	db := s.DB.WithContext(ctx)
	user, err := s.loadUser(db, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Username != nil {
		name := strings.TrimSpace(*in.Username)
		if name == "" {
			return nil, invalid("username cannot be empty")
		}
		if name != user.Username {
			var count int64
			if err := db.Model(&models.User{}).Where("username = ? AND id <> ?", name, user.ID).
				Count(&count).Error; err != nil {
				return nil, fmt.Errorf("check username: %w", err)
			}
			if count > 0 {
				return nil, conflict("username already registered")
			}
			updates["username"] = name
		}
	}
	if in.Timezone != nil {
		if !utils.ValidTimezone(*in.Timezone) {
			return nil, invalid("invalid timezone %q", *in.Timezone)
		}
		updates["timezone"] = *in.Timezone
	}
	if in.DayStartTime != nil {
		if _, err := utils.ParseClock(*in.DayStartTime); err != nil {
			return nil, invalid("day_start_time must be HH:MM")
		}
		updates["day_start_time"] = *in.DayStartTime
	}
	if in.NightStartTime != nil {
		if _, err := utils.ParseClock(*in.NightStartTime); err != nil {
			return nil, invalid("night_start_time must be HH:MM")
		}
		updates["night_start_time"] = *in.NightStartTime
	}
	if in.DayStartTime != nil || in.NightStartTime != nil {
		day, night := user.DayStartTime, user.NightStartTime
		if in.DayStartTime != nil {
			day = *in.DayStartTime
		}
		if in.NightStartTime != nil {
			night = *in.NightStartTime
		}
		if day == night {
			return nil, invalid("day_start_time and night_start_time must differ")
		}
	}
	if len(updates) == 0 {
		return user, nil
	}

	if err := db.Model(user).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict("username already registered")
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	s.invalidate(ctx, user.ID)
	return s.loadUser(db, user.ID)
}
