package models

import "gorm.io/gorm"

type Driver struct {
	gorm.Model
	Name        string   `json:"name" gorm:"not null"`
	Phone       string   `json:"phone"`
	CNHNumber   string   `json:"cnhNumber" gorm:"column:cnh_number"`
	CNHCategory string   `json:"cnhCategory" gorm:"column:cnh_category"`
	CNHExpiry   string   `json:"cnhExpiry" gorm:"column:cnh_expiry"` // YYYY-MM-DD
	DailyRate   *float64 `json:"dailyRate"`
	Active      bool     `json:"active" gorm:"default:true"`
}
