package handlers

import (
	"strings"

	"github.com/dmcampos/frota-backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TruckInput struct {
	Plate     string   `json:"plate" binding:"required"`
	Brand     string   `json:"brand"`
	Model     string   `json:"model"`
	Year      int      `json:"year"`
	Chassis   string   `json:"chassis"`
	CurrentKm *float64 `json:"currentKm"`
	Active    *bool    `json:"active"`
}

func GetTrucks(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var trucks []models.Truck
		query := db.Order("plate ASC")
		if c.Query("active") == "true" {
			query = query.Where("active = ?", true)
		}
		if err := query.Find(&trucks).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch trucks"})
			return
		}

		c.JSON(200, gin.H{"trucks": trucks})
	}
}

func GetTruck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var truck models.Truck
		if err := db.Preload("Documents").First(&truck, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Truck not found"})
			return
		}

		c.JSON(200, truck)
	}
}

func CreateTruck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input TruckInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		truck := models.Truck{
			Plate:      strings.ToUpper(strings.TrimSpace(input.Plate)),
			Brand:      input.Brand,
			TruckModel: input.Model,
			Year:       input.Year,
			Chassis:    strings.ToUpper(strings.TrimSpace(input.Chassis)),
			CurrentKm:  input.CurrentKm,
			Active:     true,
		}
		if input.Active != nil {
			truck.Active = *input.Active
		}

		if err := db.Create(&truck).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create truck: " + err.Error()})
			return
		}

		c.JSON(201, truck)
	}
}

func UpdateTruck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var truck models.Truck
		if err := db.First(&truck, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Truck not found"})
			return
		}

		var input TruckInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		truck.Plate = strings.ToUpper(strings.TrimSpace(input.Plate))
		truck.Brand = input.Brand
		truck.TruckModel = input.Model
		truck.Year = input.Year
		truck.Chassis = strings.ToUpper(strings.TrimSpace(input.Chassis))
		truck.CurrentKm = input.CurrentKm
		if input.Active != nil {
			truck.Active = *input.Active
		}

		if err := db.Save(&truck).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update truck"})
			return
		}

		c.JSON(200, truck)
	}
}

func DeleteTruck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var truck models.Truck
		if err := db.First(&truck, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Truck not found"})
			return
		}

		var tripCount int64
		db.Model(&models.Trip{}).Where("truck_id = ?", truck.ID).Count(&tripCount)
		if tripCount > 0 {
			c.JSON(400, gin.H{"error": "Truck has trips and cannot be deleted"})
			return
		}

		if err := db.Delete(&truck).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to delete truck"})
			return
		}

		c.JSON(200, gin.H{"message": "Truck deleted successfully"})
	}
}
