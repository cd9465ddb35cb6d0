package models

import "time"

const DateLayout = "2006-01-02"

type SessionType string

const (
	SessionDay   SessionType = "day"
	SessionNight SessionType = "night"
)

func (t SessionType) Valid() bool {
	return t == SessionDay || t == SessionNight
}

type ActivityType string

const (
	ActivityDay   ActivityType = "day"
	ActivityNight ActivityType = "night"
	ActivityBoth  ActivityType = "both"
)

func (t ActivityType) Valid() bool {
	return t == ActivityDay || t == ActivityNight || t == ActivityBoth
}

// Matches reports whether an activity of this type may be listed for a session type.
func (t ActivityType) Matches(s SessionType) bool {
	return t == ActivityBoth || string(t) == string(s)
}

type User struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	Email              string     `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash       string     `gorm:"size:255;not null" json:"-"`
	Username           string     `gorm:"size:80;uniqueIndex;not null" json:"username"`
	Timezone           string     `gorm:"size:64;not null;default:UTC" json:"timezone"`
	DayStartTime       string     `gorm:"size:5;not null;default:'06:00'" json:"day_start_time"`
	NightStartTime     string     `gorm:"size:5;not null;default:'19:00'" json:"night_start_time"`
	IsEmailVerified    bool       `gorm:"not null;default:false" json:"is_email_verified"`
	EmailVerifiedAt    *time.Time `json:"email_verified_at"`
	CreatedAt          time.Time  `gorm:"autoCreateTime" json:"created_at"`
	LastLoginAt        *time.Time `json:"last_login_at"`
	LastActivityAt     *time.Time `json:"last_activity_at"`
	WelcomeEmailSentAt *time.Time `json:"-"`

	Sessions  []DailySession `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Goals     []Goal         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Reminders []Reminder     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// DailySession is a user's day or night window for one calendar date.
type DailySession struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	UserID       uint        `gorm:"not null;uniqueIndex:uq_session_user_date_type,priority:1;index:ix_daily_sessions_user_date,priority:1" json:"user_id"`
	SessionDate  time.Time   `gorm:"type:date;not null;uniqueIndex:uq_session_user_date_type,priority:2;index:ix_daily_sessions_user_date,priority:2" json:"-"`
	SessionType  SessionType `gorm:"size:10;not null;uniqueIndex:uq_session_user_date_type,priority:3" json:"session_type"`
	PointsEarned int         `gorm:"not null;default:0;check:ck_session_points_nonneg,points_earned >= 0" json:"points_earned"`
	IsActive     bool        `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time   `gorm:"autoCreateTime" json:"created_at"`

	EmotionCheckins     []EmotionCheckin     `gorm:"foreignKey:DailySessionID;constraint:OnDelete:CASCADE" json:"-"`
	ActivityCompletions []ActivityCompletion `gorm:"foreignKey:DailySessionID;constraint:OnDelete:CASCADE" json:"-"`
	SessionGoals        []DailySessionGoal   `gorm:"foreignKey:DailySessionID;constraint:OnDelete:CASCADE" json:"-"`
}

func (s DailySession) DateKey() string {
	return s.SessionDate.Format(DateLayout)
}

type ActivityCategory struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:80;uniqueIndex;not null" json:"name"`
	Description string     `gorm:"size:255" json:"description"`
	Activities  []Activity `gorm:"foreignKey:CategoryID" json:"-"`
}

type Activity struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	ExternalID   string           `gorm:"size:120;uniqueIndex;not null" json:"external_id"`
	CategoryID   uint             `gorm:"not null;index:ix_activities_category" json:"category_id"`
	Category     ActivityCategory `gorm:"foreignKey:CategoryID" json:"-"`
	Name         string           `gorm:"size:120;not null" json:"name"`
	Description  string           `gorm:"size:255" json:"description"`
	ActivityType ActivityType     `gorm:"size:10;not null;default:both" json:"activity_type"`
	IsActive     bool             `gorm:"not null;default:true" json:"is_active"`
}

// ActivityCompletion is unique per (session, activity); that constraint is what
// keeps scoring idempotent.
type ActivityCompletion struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	DailySessionID uint      `gorm:"not null;uniqueIndex:uq_session_activity,priority:1;index:ix_activity_completions_session" json:"daily_session_id"`
	ActivityID     uint      `gorm:"not null;uniqueIndex:uq_session_activity,priority:2;index:ix_activity_completions_activity" json:"activity_id"`
	PointsAwarded  int       `gorm:"not null;default:0;check:ck_activity_points,points_awarded IN (0, 5, 10, 20)" json:"points_awarded"`
	CompletedAt    time.Time `gorm:"not null" json:"completed_at"`
}

type Emotion struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:80;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"size:255" json:"description"`
	Value       *int      `json:"value"`
	URLMusic    string    `gorm:"size:500" json:"url_music"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"-"`
}

type EmotionCheckin struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	DailySessionID uint      `gorm:"not null;index:ix_emotion_checkins_session" json:"daily_session_id"`
	EmotionID      uint      `gorm:"not null;index:ix_emotion_checkins_emotion" json:"emotion_id"`
	Emotion        Emotion   `gorm:"foreignKey:EmotionID" json:"-"`
	Intensity      *int      `gorm:"check:ck_emotion_checkin_intensity_range,intensity >= 1 AND intensity <= 10" json:"intensity"`
	Note           string    `gorm:"size:300" json:"note"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
}
