package handlers

import (
	"time"

	"github.com/dmcampos/frota-backend/internal/models"
	"github.com/dmcampos/frota-backend/pkg/docparse"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DriverInput struct {
	Name        string   `json:"name" binding:"required"`
	Phone       string   `json:"phone"`
	CNHNumber   string   `json:"cnhNumber"`
	CNHCategory string   `json:"cnhCategory"`
	CNHExpiry   string   `json:"cnhExpiry"`
	DailyRate   *float64 `json:"dailyRate"`
	Active      *bool    `json:"active"`
}

func GetDrivers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var drivers []models.Driver
		query := db.Order("name ASC")
		if c.Query("active") == "true" {
			query = query.Where("active = ?", true)
		}
		if err := query.Find(&drivers).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch drivers"})
			return
		}

		// Attach CNH expiry status so the fleet screen can flag licenses the
		// same way it flags documents.
		today := time.Now()
		response := make([]gin.H, 0, len(drivers))
		for _, driver := range drivers {
			classification := docparse.Classify(driver.CNHExpiry, today)
			response = append(response, gin.H{
				"driver":    driver,
				"cnhStatus": classification,
			})
		}

		c.JSON(200, gin.H{"drivers": response})
	}
}

func GetDriver(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var driver models.Driver
		if err := db.First(&driver, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Driver not found"})
			return
		}

		c.JSON(200, gin.H{
			"driver":    driver,
			"cnhStatus": docparse.Classify(driver.CNHExpiry, time.Now()),
		})
	}
}

func CreateDriver(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input DriverInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		driver := models.Driver{
			Name:        input.Name,
			Phone:       input.Phone,
			CNHNumber:   input.CNHNumber,
			CNHCategory: input.CNHCategory,
			CNHExpiry:   input.CNHExpiry,
			DailyRate:   input.DailyRate,
			Active:      true,
		}
		if input.Active != nil {
			driver.Active = *input.Active
		}

		if err := db.Create(&driver).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create driver"})
			return
		}

		c.JSON(201, driver)
	}
}

func UpdateDriver(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var driver models.Driver
		if err := db.First(&driver, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Driver not found"})
			return
		}

		var input DriverInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		driver.Name = input.Name
		driver.Phone = input.Phone
		driver.CNHNumber = input.CNHNumber
		driver.CNHCategory = input.CNHCategory
		driver.CNHExpiry = input.CNHExpiry
		driver.DailyRate = input.DailyRate
		if input.Active != nil {
			driver.Active = *input.Active
		}

		if err := db.Save(&driver).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update driver"})
			return
		}

		c.JSON(200, driver)
	}
}

func DeleteDriver(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var driver models.Driver
		if err := db.First(&driver, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Driver not found"})
			return
		}

		var tripCount int64
		db.Model(&models.Trip{}).Where("driver_id = ?", driver.ID).Count(&tripCount)
		if tripCount > 0 {
			c.JSON(400, gin.H{"error": "Driver has trips and cannot be deleted"})
			return
		}

		if err := db.Delete(&driver).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to delete driver"})
			return
		}

		c.JSON(200, gin.H{"message": "Driver deleted successfully"})
	}
}
