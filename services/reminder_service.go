package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/4GeeksAcademy/Place-Between-Daniel/models"
	"github.com/4GeeksAcademy/Place-Between-Daniel/utils"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const daysDaily = "daily"

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

type ReminderInput struct {
	UserID               uint
	ReminderType         string
	Mode                 string
	LocalTime            string
	InactiveAfterMinutes int
	DaysOfWeek           string
}

// parseDays accepts "daily" or a comma separated list like "mon,wed,fri".
func parseDays(raw string) (map[time.Weekday]bool, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" || raw == daysDaily {
		return nil, nil
	}
	days := map[time.Weekday]bool{}
	for _, part := range strings.Split(raw, ",") {
		wd, ok := weekdayNames[strings.TrimSpace(part)]
		if !ok {
			return nil, fmt.Errorf("unknown day %q", part)
		}
		days[wd] = true
	}
	return days, nil
}

func dayAllowed(raw string, wd time.Weekday) bool {
	days, err := parseDays(raw)
	if err != nil {
		return false
	}
	return days == nil || days[wd]
}

// DueReminders picks the reminders that should fire at now. Each reminder must
// carry its User.
func DueReminders(now time.Time, reminders []models.Reminder) []models.Reminder {
	var due []models.Reminder
	for _, r := range reminders {
		if !r.IsActive {
			continue
		}
		loc := utils.LoadLocation(r.User.Timezone)
		local := now.In(loc)
		if !dayAllowed(r.DaysOfWeek, local.Weekday()) {
			continue
		}

		switch r.Mode {
		case models.ReminderFixed:
			if r.LocalTime == nil {
				continue
			}
			at, err := utils.ParseClock(*r.LocalTime)
			if err != nil || at != utils.MinuteOfDay(local) {
				continue
			}
			if r.LastSentAt != nil && utils.CalendarDate(r.LastSentAt.In(loc)).Equal(utils.CalendarDate(local)) {
				continue
			}
			due = append(due, r)

		case models.ReminderInactivity:
			if r.InactiveAfterMinutes == nil || *r.InactiveAfterMinutes <= 0 {
				continue
			}
			last := r.User.CreatedAt
			if r.User.LastActivityAt != nil {
				last = *r.User.LastActivityAt
			}
			if now.Sub(last) < time.Duration(*r.InactiveAfterMinutes)*time.Minute {
				continue
			}
			if r.LastSentAt != nil && !r.LastSentAt.Before(last) {
				continue
			}
			due = append(due, r)
		}
	}
	return due
}

func (s *Service) ListReminders(ctx context.Context, userID uint) ([]models.Reminder, error) {
	var reminders []models.Reminder
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).
		Order("id ASC").Find(&reminders).Error; err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	return reminders, nil
}

func (s *Service) CreateReminder(ctx context.Context, in ReminderInput) (*models.Reminder, error) {
	rt := models.ReminderType(in.ReminderType)
	if !rt.Valid() {
		return nil, invalid("unknown reminder_type %q", in.ReminderType)
	}
	days := strings.ToLower(strings.TrimSpace(in.DaysOfWeek))
	if days == "" {
		days = daysDaily
	}
	if _, err := parseDays(days); err != nil {
		return nil, invalid("days_of_week: %v", err)
	}

	reminder := models.Reminder{
		UserID:       in.UserID,
		ReminderType: rt,
		Mode:         models.ReminderMode(in.Mode),
		DaysOfWeek:   days,
		IsActive:     true,
	}
	switch reminder.Mode {
	case models.ReminderFixed:
		if _, err := utils.ParseClock(in.LocalTime); err != nil {
			return nil, invalid("local_time must be HH:MM for fixed reminders")
		}
		lt := in.LocalTime
		reminder.LocalTime = &lt
	case models.ReminderInactivity:
		if in.InactiveAfterMinutes <= 0 {
			return nil, invalid("inactive_after_minutes must be > 0 for inactivity reminders")
		}
		mins := in.InactiveAfterMinutes
		reminder.InactiveAfterMinutes = &mins
	default:
		return nil, invalid("mode must be 'fixed' or 'inactivity'")
	}

	if err := s.DB.WithContext(ctx).Create(&reminder).Error; err != nil {
		return nil, fmt.Errorf("create reminder: %w", err)
	}
	return &reminder, nil
}

func (s *Service) DeleteReminder(ctx context.Context, userID, reminderID uint) error {
	res := s.DB.WithContext(ctx).Where("id = ? AND user_id = ?", reminderID, userID).
		Delete(&models.Reminder{})
	if res.Error != nil {
		return fmt.Errorf("delete reminder: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("reminder")
	}
	return nil
}

// DispatchReminders sends every due reminder through a bounded worker pool and
// returns how many were delivered.
func (s *Service) DispatchReminders(ctx context.Context) (int, error) {
	var reminders []models.Reminder
	if err := s.DB.WithContext(ctx).Preload("User").
		Where("is_active = ?", true).
		Find(&reminders).Error; err != nil {
		return 0, fmt.Errorf("load reminders: %w", err)
	}

	now := s.now()
	due := DueReminders(now, reminders)
	if len(due) == 0 {
		return 0, nil
	}

	workers := s.Config.ReminderWorkers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(due) {
		workers = len(due)
	}

	jobs := make(chan models.Reminder, len(due))
	results := make(chan error, len(due))
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go s.reminderWorker(ctx, i, now, jobs, results, &wg)
	}
	for _, r := range due {
		jobs <- r
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	sent, failed := 0, 0
	var errs []error
	for err := range results {
		if err != nil {
			failed++
			errs = append(errs, err)
		} else {
			sent++
		}
	}

	utils.Logger.Info("reminders_processed",
		zap.Int("due", len(due)),
		zap.Int("sent", sent),
		zap.Int("errors", failed),
		zap.Int("workers", workers),
	)
	return sent, errors.Join(errs...)
}

func (s *Service) reminderWorker(ctx context.Context, id int, now time.Time, jobs <-chan models.Reminder, results chan<- error, wg *sync.WaitGroup) {
	defer wg.Done()

	for r := range jobs {
		err := s.Mailer.SendReminder(ctx, r.User.Email, r.User.Username, string(r.ReminderType), s.Config.FrontendLink(""))
		if err != nil {
			utils.Logger.Warn("reminder_send_failed",
				zap.Int("worker_id", id),
				zap.Uint("reminder_id", r.ID),
				zap.Error(err),
			)
			results <- fmt.Errorf("reminder %d: %w", r.ID, err)
			continue
		}

		if err := s.DB.WithContext(ctx).Model(&models.Reminder{}).Where("id = ?", r.ID).
			UpdateColumn("last_sent_at", now.UTC()).Error; err != nil {
			results <- fmt.Errorf("stamp reminder %d: %w", r.ID, err)
			continue
		}

		utils.RemindersSent.WithLabelValues(string(r.ReminderType)).Inc()
		utils.Logger.Info("reminder_sent",
			zap.Int("worker_id", id),
			zap.Uint("user_id", r.UserID),
			zap.String("type", string(r.ReminderType)),
		)
		results <- nil
	}
}

// StartReminderScheduler runs DispatchReminders on the configured cron spec
// until ctx is cancelled.
func (s *Service) StartReminderScheduler(ctx context.Context) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(s.Config.ReminderCron, func() {
		runCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()
		if _, err := s.DispatchReminders(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			utils.Logger.Error("reminder_dispatch_failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule reminders %q: %w", s.Config.ReminderCron, err)
	}
	c.Start()

	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
	}()
	return c, nil
}
