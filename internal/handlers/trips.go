package handlers

import (
	"context"
	"strconv"

	"github.com/dmcampos/frota-backend/internal/models"
	"github.com/dmcampos/frota-backend/internal/services"
	"github.com/dmcampos/frota-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TripInput struct {
	Date      string `json:"date" binding:"required"`
	EndDate   string `json:"endDate"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`

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

	DriverID  uint  `json:"driverId" binding:"required"`
	TruckID   uint  `json:"truckId" binding:"required"`
	PranchaID *uint `json:"pranchaId"`
}

// TripMetricsFor derives the display fields for one trip. Every read path
// (list, detail, exports, dashboard) goes through this one function so the
// derived values can never drift between consumers.
func TripMetricsFor(trip models.Trip) utils.TripMetrics {
	defaultStatus := utils.TripStatusPlanned
	if trip.StartTime != "" || trip.KmStart != nil {
		defaultStatus = utils.TripStatusInProgress
	}

	return utils.ComputeTripMetrics(utils.TripInput{
		Date:            trip.Date,
		StartTime:       trip.StartTime,
		EndTime:         trip.EndTime,
		EndDate:         trip.EndDate,
		KmStart:         trip.KmStart,
		KmEnd:           trip.KmEnd,
		FuelLiters:      trip.FuelLiters,
		FuelPrice:       trip.FuelPrice,
		OtherCosts:      trip.OtherCosts,
		MaintenanceCost: trip.MaintenanceCost,
		DriverDaily:     trip.DriverDaily,
		DefaultStatus:   defaultStatus,
	})
}

func tripResponse(trip models.Trip) gin.H {
	return gin.H{
		"trip":    trip,
		"metrics": TripMetricsFor(trip),
	}
}

func GetTrips(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		pageStr := c.DefaultQuery("page", "1")
		limitStr := c.DefaultQuery("limit", "20")

		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			page = 1
		}

		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > 100 {
			limit = 20
		}

		offset := (page - 1) * limit

		query := db.Preload("Driver").Preload("Truck").Preload("Prancha")
		countQuery := db.Model(&models.Trip{})

		// month filter: YYYY-MM prefix on the trip date
		if month := c.Query("month"); month != "" {
			query = query.Where("date LIKE ?", month+"%")
			countQuery = countQuery.Where("date LIKE ?", month+"%")
		}
		if driverID := c.Query("driverId"); driverID != "" {
			query = query.Where("driver_id = ?", driverID)
			countQuery = countQuery.Where("driver_id = ?", driverID)
		}
		if truckID := c.Query("truckId"); truckID != "" {
			query = query.Where("truck_id = ?", truckID)
			countQuery = countQuery.Where("truck_id = ?", truckID)
		}

		var trips []models.Trip
		if err := query.
			Order("date DESC, created_at DESC").
			Offset(offset).
			Limit(limit).
			Find(&trips).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch trips"})
			return
		}

		var total int64
		countQuery.Count(&total)

		response := make([]gin.H, 0, len(trips))
		for _, trip := range trips {
			response = append(response, tripResponse(trip))
		}

		c.JSON(200, gin.H{
			"trips": response,
			"pagination": gin.H{
				"page":       page,
				"limit":      limit,
				"total":      total,
				"totalPages": (total + int64(limit) - 1) / int64(limit),
			},
		})
	}
}

func GetTrip(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var trip models.Trip
		if err := db.Preload("Driver").Preload("Truck").Preload("Prancha").
			First(&trip, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Trip not found"})
			return
		}

		c.JSON(200, tripResponse(trip))
	}
}

func CreateTrip(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input TripInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var driver models.Driver
		if err := db.First(&driver, input.DriverID).Error; err != nil {
			c.JSON(400, gin.H{"error": "Invalid driver ID"})
			return
		}
		var truck models.Truck
		if err := db.First(&truck, input.TruckID).Error; err != nil {
			c.JSON(400, gin.H{"error": "Invalid truck ID"})
			return
		}
		if input.PranchaID != nil {
			var prancha models.Prancha
			if err := db.First(&prancha, *input.PranchaID).Error; err != nil {
				c.JSON(400, gin.H{"error": "Invalid prancha ID"})
				return
			}
		}

		// The driver's configured daily rate fills in when the caller did not
		// state one explicitly.
		driverDaily := input.DriverDaily
		if driverDaily == nil {
			driverDaily = driver.DailyRate
		}

		trip := models.Trip{
			Date:            input.Date,
			EndDate:         input.EndDate,
			StartTime:       input.StartTime,
			EndTime:         input.EndTime,
			Origin:          input.Origin,
			Destination:     input.Destination,
			Notes:           input.Notes,
			KmStart:         input.KmStart,
			KmEnd:           input.KmEnd,
			FuelLiters:      input.FuelLiters,
			FuelPrice:       input.FuelPrice,
			OtherCosts:      input.OtherCosts,
			MaintenanceCost: input.MaintenanceCost,
			DriverDaily:     driverDaily,
			DriverID:        input.DriverID,
			TruckID:         input.TruckID,
			PranchaID:       input.PranchaID,
		}

		if err := db.Create(&trip).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create trip"})
			return
		}

		services.InvalidateDashboard(context.Background())

		db.Preload("Driver").Preload("Truck").Preload("Prancha").First(&trip, trip.ID)
		c.JSON(201, tripResponse(trip))
	}
}

func UpdateTrip(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var trip models.Trip
		if err := db.First(&trip, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Trip not found"})
			return
		}

		var input TripInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		trip.Date = input.Date
		trip.EndDate = input.EndDate
		trip.StartTime = input.StartTime
		trip.EndTime = input.EndTime
		trip.Origin = input.Origin
		trip.Destination = input.Destination
		trip.Notes = input.Notes
		trip.KmStart = input.KmStart
		trip.KmEnd = input.KmEnd
		trip.FuelLiters = input.FuelLiters
		trip.FuelPrice = input.FuelPrice
		trip.OtherCosts = input.OtherCosts
		trip.MaintenanceCost = input.MaintenanceCost
		trip.DriverDaily = input.DriverDaily
		trip.DriverID = input.DriverID
		trip.TruckID = input.TruckID
		trip.PranchaID = input.PranchaID

		if err := db.Save(&trip).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update trip"})
			return
		}

		services.InvalidateDashboard(context.Background())

		db.Preload("Driver").Preload("Truck").Preload("Prancha").First(&trip, trip.ID)
		c.JSON(200, tripResponse(trip))
	}
}

func DeleteTrip(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var trip models.Trip
		if err := db.First(&trip, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Trip not found"})
			return
		}

		if err := db.Delete(&trip).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to delete trip"})
			return
		}

		services.InvalidateDashboard(context.Background())

		c.JSON(200, gin.H{"message": "Trip deleted successfully"})
	}
}

// FinishTrip records the end of a trip: end time, final odometer reading and
// any late cost entries. The truck's current km advances to the final
// reading, and connected operators get a trip_finished event.
func FinishTrip(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var trip models.Trip
		if err := db.Preload("Driver").Preload("Truck").
			First(&trip, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Trip not found"})
			return
		}

		var input struct {
			EndTime         string   `json:"endTime" binding:"required"`
			EndDate         string   `json:"endDate"`
			KmEnd           *float64 `json:"kmEnd" binding:"required"`
			FuelLiters      *float64 `json:"fuelLiters"`
			FuelPrice       *float64 `json:"fuelPrice"`
			OtherCosts      *float64 `json:"otherCosts"`
			MaintenanceCost *float64 `json:"maintenanceCost"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if trip.EndTime != "" && trip.KmEnd != nil {
			c.JSON(400, gin.H{"error": "Trip already finished"})
			return
		}

		trip.EndTime = input.EndTime
		if input.EndDate != "" {
			trip.EndDate = input.EndDate
		}
		trip.KmEnd = input.KmEnd
		if input.FuelLiters != nil {
			trip.FuelLiters = input.FuelLiters
		}
		if input.FuelPrice != nil {
			trip.FuelPrice = input.FuelPrice
		}
		if input.OtherCosts != nil {
			trip.OtherCosts = input.OtherCosts
		}
		if input.MaintenanceCost != nil {
			trip.MaintenanceCost = input.MaintenanceCost
		}

		tx := db.Begin()
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
			}
		}()

		if err := tx.Save(&trip).Error; err != nil {
			tx.Rollback()
			c.JSON(500, gin.H{"error": "Failed to finish trip"})
			return
		}

		// Advance the truck odometer to the final reading
		if trip.KmEnd != nil {
			var truck models.Truck
			if err := tx.First(&truck, trip.TruckID).Error; err == nil {
				if truck.CurrentKm == nil || *trip.KmEnd > *truck.CurrentKm {
					truck.CurrentKm = trip.KmEnd
					if err := tx.Save(&truck).Error; err != nil {
						tx.Rollback()
						c.JSON(500, gin.H{"error": "Failed to update truck odometer"})
						return
					}
				}
			}
		}

		if err := tx.Commit().Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to complete transaction"})
			return
		}

		services.InvalidateDashboard(context.Background())

		metrics := TripMetricsFor(trip)
		hub.SendTripFinished(services.TripFinished{
			TripID:           trip.ID,
			TruckPlate:       trip.Truck.Plate,
			DriverName:       trip.Driver.Name,
			DistanceTraveled: metrics.DistanceTraveled,
			TotalCost:        metrics.TotalCost,
		})

		c.JSON(200, gin.H{
			"message": "Trip finished successfully",
			"trip":    trip,
			"metrics": metrics,
		})
	}
}
