package models

import "time"

type ReminderType string

const (
	ReminderWelcome       ReminderType = "welcome"
	ReminderGoalDaily     ReminderType = "goal_daily"
	ReminderActivityDaily ReminderType = "activity_daily"
	ReminderInactiveNudge ReminderType = "inactive_nudge"
	ReminderDaySession    ReminderType = "day_session"
	ReminderNightSession  ReminderType = "night_session"
)

func (t ReminderType) Valid() bool {
	switch t {
	case ReminderWelcome, ReminderGoalDaily, ReminderActivityDaily,
		ReminderInactiveNudge, ReminderDaySession, ReminderNightSession:
		return true
	}
	return false
}

type ReminderMode string

const (
	ReminderFixed      ReminderMode = "fixed"
	ReminderInactivity ReminderMode = "inactivity"
)

// Reminder fires either at a fixed user-local time or after a period without activity.
type Reminder struct {
	ID                   uint         `gorm:"primaryKey" json:"id"`
	UserID               uint         `gorm:"not null;index:ix_reminders_user;index:ix_reminders_user_type_active,priority:1" json:"user_id"`
	User                 User         `gorm:"foreignKey:UserID" json:"-"`
	ReminderType         ReminderType `gorm:"size:20;not null;index:ix_reminders_user_type_active,priority:2" json:"reminder_type"`
	Mode                 ReminderMode `gorm:"size:12;not null" json:"mode"`
	LocalTime            *string      `gorm:"size:5" json:"local_time"`
	InactiveAfterMinutes *int         `json:"inactive_after_minutes"`
	DaysOfWeek           string       `gorm:"size:40;not null;default:daily" json:"days_of_week"`
	LastSentAt           *time.Time   `json:"last_sent_at"`
	IsActive             bool         `gorm:"not null;default:true;index:ix_reminders_user_type_active,priority:3" json:"is_active"`
}
