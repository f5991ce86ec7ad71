package models

import (
	"time"
)

// SubmissionLog is one audited submission attempt. Identifier is masked and
// no other contact data is stored.
type SubmissionLog struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	SessionID     string    `gorm:"type:varchar(64);index" json:"session_id"`
	Mode          string    `gorm:"type:varchar(20)" json:"mode"`
	Channels      string    `gorm:"type:varchar(100)" json:"channels"` // Comma separated
	InterestCount int       `json:"interest_count"`
	Identifier    string    `gorm:"type:varchar(255)" json:"identifier"`
	Success       bool      `gorm:"index" json:"success"`
	Status        int       `json:"status"`
	Message       string    `gorm:"type:text" json:"message"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (SubmissionLog) TableName() string {
	return "submission_logs"
}
