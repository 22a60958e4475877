package models

import "gorm.io/gorm"

// Prancha is a flatbed trailer coupled to a truck for oversized cargo.
type Prancha struct {
	gorm.Model
	Plate        string   `json:"plate" gorm:"unique;not null"`
	PranchaType  string   `json:"type" gorm:"column:prancha_type"`
	CapacityTons *float64 `json:"capacityTons"`
	Active       bool     `json:"active" gorm:"default:true"`
}
