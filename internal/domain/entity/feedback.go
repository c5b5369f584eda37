package entity

import "time"

// Feedback is a patient rating, optionally tied to an appointment. The
// reference is weak: the appointment may be deleted independently and
// feedback rows are never mutated after insert.
type Feedback struct {
	ID            int       `gorm:"primaryKey;autoIncrement" json:"id"`
	AppointmentID *int      `gorm:"index" json:"appointment_id"`
	Rating        int       `gorm:"not null" json:"rating"`
	Comment       string    `gorm:"type:text" json:"comment"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Feedback) TableName() string {
	return "feedback"
}
