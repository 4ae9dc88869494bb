package rdb

import "time"

// RunRecord is the RDB persistence model for a recorded run.
// Table name: runs
type RunRecord struct {
	ID         string    `gorm:"primaryKey;type:text;not null"`
	Workflow   string    `gorm:"type:text;not null"`
	Realm      string    `gorm:"type:text;not null"`
	ClientID   string    `gorm:"type:text"`
	UserEmail  string    `gorm:"type:text"`
	TenantID   string    `gorm:"type:text"`
	OK         bool      `gorm:"not null"`
	StartedAt  time.Time `gorm:"not null"`
	FinishedAt time.Time `gorm:"not null"`
	Steps      string    `gorm:"type:text"` // JSON encoded []model.RunStep
}

func (RunRecord) TableName() string { return "runs" }
