package models

import "time"

// Contact is a single contact-form submission retained by the store.
type Contact struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	Email     string    `gorm:"type:text;not null" json:"email"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false" json:"createdAt"`
}

// TableName pins the table name independent of GORM pluralisation rules.
func (Contact) TableName() string {
	return "contacts"
}
