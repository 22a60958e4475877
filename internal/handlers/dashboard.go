package handlers

import (
	"context"
	"time"

	"github.com/dmcampos/frota-backend/internal/models"
	"github.com/dmcampos/frota-backend/internal/services"
	"github.com/dmcampos/frota-backend/pkg/docparse"
	"github.com/dmcampos/frota-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetDashboardSummary aggregates the month's trips and the fleet's document
// situation into one payload. The aggregate is cached in Redis with a short
// TTL and invalidated on every trip or document write.
func GetDashboardSummary(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		month := c.DefaultQuery("month", time.Now().Format("2006-01"))
		ctx := context.Background()

		if cached, err := services.GetDashboardSummary(ctx, month); err == nil {
			c.Data(200, "application/json", cached)
			return
		}

		var trips []models.Trip
		if err := db.Where("date LIKE ?", month+"%").Find(&trips).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch trips"})
			return
		}

		var totalKm, totalCost, totalHours float64
		var finished, inProgress, planned int
		for _, trip := range trips {
			metrics := TripMetricsFor(trip)
			totalKm += metrics.DistanceTraveled
			totalCost += metrics.TotalCost
			totalHours += metrics.DurationHours
			switch metrics.Status {
			case utils.TripStatusFinished:
				finished++
			case utils.TripStatusInProgress:
				inProgress++
			default:
				planned++
			}
		}

		var docs []models.Document
		if err := db.Where("expiry_date <> ''").Find(&docs).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch documents"})
			return
		}

		today := time.Now()
		var expired, expiring int
		for _, doc := range docs {
			switch docparse.Classify(doc.ExpiryDate, today).Status {
			case docparse.ExpiryExpired:
				expired++
			case docparse.ExpiryExpiring:
				expiring++
			}
		}

		var truckCount, driverCount int64
		db.Model(&models.Truck{}).Where("active = ?", true).Count(&truckCount)
		db.Model(&models.Driver{}).Where("active = ?", true).Count(&driverCount)

		summary := gin.H{
			"month": month,
			"trips": gin.H{
				"total":      len(trips),
				"finished":   finished,
				"inProgress": inProgress,
				"planned":    planned,
				"totalKm":    totalKm,
				"totalCost":  totalCost,
				"totalHours": totalHours,
			},
			"documents": gin.H{
				"expired":  expired,
				"expiring": expiring,
			},
			"fleet": gin.H{
				"activeTrucks":  truckCount,
				"activeDrivers": driverCount,
			},
		}

		services.SetDashboardSummary(ctx, month, summary)

		c.JSON(200, summary)
	}
}
