package models

import (
	"time"
)

// Lead is a prospective-customer contact captured by the landing page form.
// ID and CreatedAt are assigned by the storage backend, never by the client.
type Lead struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string    `json:"name" gorm:"size:200;not null"`
	BusinessName string    `json:"businessName" gorm:"size:200;not null"`
	Email        string    `json:"email" gorm:"size:254;not null;index"`
	Whatsapp     *string   `json:"whatsapp" gorm:"size:32"`
	Industry     string    `json:"industry" gorm:"size:100;not null"`
	Branches     int       `json:"branches" gorm:"not null;default:1"`
	Comment      *string   `json:"comment" gorm:"size:2000"`
	CreatedAt    time.Time `json:"createdAt" gorm:"not null;autoCreateTime"`
}

// TableName returns the table name for Lead
func (Lead) TableName() string {
	return "leads"
}
