package models

import "time"

type GoalSize string

const (
	GoalSmall  GoalSize = "small"
	GoalMedium GoalSize = "medium"
	GoalLarge  GoalSize = "large"
)

func (s GoalSize) Valid() bool {
	return s == GoalSmall || s == GoalMedium || s == GoalLarge
}

type SessionGoalStatus string

const (
	SessionGoalActive  SessionGoalStatus = "active"
	SessionGoalDone    SessionGoalStatus = "done"
	SessionGoalSkipped SessionGoalStatus = "skipped"
)

type Goal struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"not null;index:ix_goals_user" json:"user_id"`
	Title        string     `gorm:"size:120;not null" json:"title"`
	Description  string     `gorm:"size:255" json:"description"`
	Size         GoalSize   `gorm:"size:10;not null" json:"size"`
	TargetValue  int        `gorm:"not null;check:ck_goal_target_nonneg,target_value >= 0" json:"target_value"`
	CurrentValue int        `gorm:"not null;default:0;check:ck_goal_current_nonneg,current_value >= 0" json:"current_value"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	CompletedAt  *time.Time `json:"completed_at"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`

	SessionLinks    []DailySessionGoal `gorm:"foreignKey:GoalID;constraint:OnDelete:CASCADE" json:"-"`
	ProgressEntries []GoalProgress     `gorm:"foreignKey:GoalID;constraint:OnDelete:CASCADE" json:"-"`
}

type DailySessionGoal struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	DailySessionID uint              `gorm:"not null;uniqueIndex:uq_session_goal,priority:1;index:ix_session_goals_session" json:"daily_session_id"`
	GoalID         uint              `gorm:"not null;uniqueIndex:uq_session_goal,priority:2;index:ix_session_goals_goal" json:"goal_id"`
	Status         SessionGoalStatus `gorm:"size:10;not null;default:active" json:"status"`
	Note           string            `gorm:"size:300" json:"note"`
	CreatedAt      time.Time         `gorm:"autoCreateTime" json:"created_at"`
}

type GoalProgress struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	GoalID         uint          `gorm:"not null;index:ix_goal_progress_goal" json:"goal_id"`
	DailySessionID *uint         `gorm:"index:ix_goal_progress_session" json:"daily_session_id"`
	DailySession   *DailySession `gorm:"foreignKey:DailySessionID;constraint:OnDelete:SET NULL" json:"-"`
	DeltaValue     int           `gorm:"not null" json:"delta_value"`
	Note           string        `gorm:"size:300" json:"note"`
	CreatedAt      time.Time     `gorm:"autoCreateTime" json:"created_at"`
}
