package models

import "gorm.io/gorm"

type Truck struct {
	gorm.Model
	Plate      string   `json:"plate" gorm:"unique;not null"`
	Brand      string   `json:"brand"`
	TruckModel string   `json:"model" gorm:"column:truck_model"`
	Year       int      `json:"year"`
	Chassis    string   `json:"chassis"`
	CurrentKm  *float64 `json:"currentKm"`
	Active     bool     `json:"active" gorm:"default:true"`

	Documents []Document `json:"documents,omitempty" gorm:"foreignKey:TruckID"`
}
