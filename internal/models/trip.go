package models

import "gorm.io/gorm"

// Trip is the stored trip row. Distance, duration, total cost and status are
// derived on every read by pkg/utils and merged into responses; they are
// never persisted here.
type Trip struct {
	gorm.Model
	Date      string `json:"date" gorm:"not null"` // YYYY-MM-DD
	EndDate   string `json:"endDate"`              // YYYY-MM-DD, empty = same day
	StartTime string `json:"startTime"`            // HH:MM
	EndTime   string `json:"endTime"`              // HH:MM

	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Notes       string `json:"notes"`

	KmStart *float64 `json:"kmStart"`
	KmEnd   *float64 `json:"kmEnd"`

	FuelLiters      *float64 `json:"fuelLiters"`
	FuelPrice       *float64 `json:"fuelPrice"`
	OtherCosts      *float64 `json:"otherCosts"`
	MaintenanceCost *float64 `json:"maintenanceCost"`
	DriverDaily     *float64 `json:"driverDaily"`

	DriverID  uint     `json:"driverId" gorm:"not null"`
	Driver    Driver   `json:"driver,omitempty"`
	TruckID   uint     `json:"truckId" gorm:"not null"`
	Truck     Truck    `json:"truck,omitempty"`
	PranchaID *uint    `json:"pranchaId"`
	Prancha   *Prancha `json:"prancha,omitempty"`
}
