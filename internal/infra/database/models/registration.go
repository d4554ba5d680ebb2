package models

import "time"

// Registration is the persisted row for one submission. Fields holds
// the submitted attributes as a serialized JSON object, so arbitrary
// attribute sets survive without schema changes.
type Registration struct {
	ID               int    `gorm:"primaryKey"`
	Fields           string `gorm:"type:jsonb"`
	RegistrationDate time.Time
}
