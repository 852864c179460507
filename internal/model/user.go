package model

import "time"

// User is a single record in the users table.
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey" example:"33"`
	Name        string    `json:"name" gorm:"size:255;not null" example:"Samwel"`
	Email       string    `json:"email" gorm:"uniqueIndex;size:255;not null" example:"samwel@gmail.com"`
	Designation string    `json:"designation" gorm:"size:255;not null" example:"s.j.Fumbi"`
	CreatedAt   time.Time `json:"createdAt" gorm:"column:createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"column:updatedAt"`
}

// TableName pins the table name regardless of naming strategy.
func (User) TableName() string {
	return "users"
}
