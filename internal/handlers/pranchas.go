package handlers

import (
	"strings"

	"github.com/dmcampos/frota-backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PranchaInput struct {
	Plate        string   `json:"plate" binding:"required"`
	Type         string   `json:"type"`
	CapacityTons *float64 `json:"capacityTons"`
	Active       *bool    `json:"active"`
}

func GetPranchas(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var pranchas []models.Prancha
		query := db.Order("plate ASC")
		if c.Query("active") == "true" {
			query = query.Where("active = ?", true)
		}
		if err := query.Find(&pranchas).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch pranchas"})
			return
		}

		c.JSON(200, gin.H{"pranchas": pranchas})
	}
}

func GetPrancha(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var prancha models.Prancha
		if err := db.First(&prancha, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Prancha not found"})
			return
		}

		c.JSON(200, prancha)
	}
}

func CreatePrancha(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input PranchaInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		prancha := models.Prancha{
			Plate:        strings.ToUpper(strings.TrimSpace(input.Plate)),
			PranchaType:  input.Type,
			CapacityTons: input.CapacityTons,
			Active:       true,
		}
		if input.Active != nil {
			prancha.Active = *input.Active
		}

		if err := db.Create(&prancha).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create prancha: " + err.Error()})
			return
		}

		c.JSON(201, prancha)
	}
}

func UpdatePrancha(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var prancha models.Prancha
		if err := db.First(&prancha, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Prancha not found"})
			return
		}

		var input PranchaInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		prancha.Plate = strings.ToUpper(strings.TrimSpace(input.Plate))
		prancha.PranchaType = input.Type
		prancha.CapacityTons = input.CapacityTons
		if input.Active != nil {
			prancha.Active = *input.Active
		}

		if err := db.Save(&prancha).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update prancha"})
			return
		}

		c.JSON(200, prancha)
	}
}

func DeletePrancha(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var prancha models.Prancha
		if err := db.First(&prancha, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Prancha not found"})
			return
		}

		var tripCount int64
		db.Model(&models.Trip{}).Where("prancha_id = ?", prancha.ID).Count(&tripCount)
		if tripCount > 0 {
			c.JSON(400, gin.H{"error": "Prancha has trips and cannot be deleted"})
			return
		}

		if err := db.Delete(&prancha).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to delete prancha"})
			return
		}

		c.JSON(200, gin.H{"message": "Prancha deleted successfully"})
	}
}
