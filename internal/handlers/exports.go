package handlers

import (
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/dmcampos/frota-backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"gorm.io/gorm"
)

func exportTrips(db *gorm.DB, c *gin.Context) ([]models.Trip, error) {
	query := db.Preload("Driver").Preload("Truck").Preload("Prancha").
		Order("date ASC, created_at ASC")
	if month := c.Query("month"); month != "" {
		query = query.Where("date LIKE ?", month+"%")
	}
	if driverID := c.Query("driverId"); driverID != "" {
		query = query.Where("driver_id = ?", driverID)
	}
	if truckID := c.Query("truckId"); truckID != "" {
		query = query.Where("truck_id = ?", truckID)
	}

	var trips []models.Trip
	err := query.Find(&trips).Error
	return trips, err
}

// ExportTripsCSV streams the filtered trips as a flat CSV, one row per trip,
// derived metrics included.
func ExportTripsCSV(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		trips, err := exportTrips(db, c)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch trips"})
			return
		}

		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", `attachment; filename="viagens.csv"`)

		w := csv.NewWriter(c.Writer)
		w.Write([]string{
			"date", "end_date", "start_time", "end_time",
			"driver", "truck", "prancha", "origin", "destination",
			"km_start", "km_end", "distance_km", "duration_hours",
			"fuel_liters", "fuel_price", "other_costs", "maintenance_cost",
			"driver_daily", "total_cost", "status",
		})

		for _, trip := range trips {
			metrics := TripMetricsFor(trip)
			pranchaPlate := ""
			if trip.Prancha != nil {
				pranchaPlate = trip.Prancha.Plate
			}
			w.Write([]string{
				trip.Date, trip.EndDate, trip.StartTime, trip.EndTime,
				trip.Driver.Name, trip.Truck.Plate, pranchaPlate,
				trip.Origin, trip.Destination,
				formatFloat(trip.KmStart), formatFloat(trip.KmEnd),
				strconv.FormatFloat(metrics.DistanceTraveled, 'f', 2, 64),
				strconv.FormatFloat(metrics.DurationHours, 'f', 2, 64),
				formatFloat(trip.FuelLiters), formatFloat(trip.FuelPrice),
				formatFloat(trip.OtherCosts), formatFloat(trip.MaintenanceCost),
				formatFloat(trip.DriverDaily),
				strconv.FormatFloat(metrics.TotalCost, 'f', 2, 64),
				string(metrics.Status),
			})
		}

		w.Flush()
	}
}

// ExportTripsPDF renders the filtered trips as a landscape A4 report.
func ExportTripsPDF(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		trips, err := exportTrips(db, c)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch trips"})
			return
		}

		pdf := gofpdf.New("L", "mm", "A4", "")
		tr := pdf.UnicodeTranslatorFromDescriptor("")
		pdf.AddPage()

		pdf.SetFont("Arial", "B", 14)
		title := "Relatório de Viagens"
		if month := c.Query("month"); month != "" {
			title = fmt.Sprintf("%s - %s", title, month)
		}
		pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
		pdf.Ln(2)

		headers := []string{"Data", "Motorista", "Caminhão", "Origem", "Destino", "Km", "Horas", "Custo (R$)", "Status"}
		widths := []float64{22, 40, 28, 38, 38, 20, 18, 28, 28}

		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for i, header := range headers {
			pdf.CellFormat(widths[i], 7, tr(header), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 8)
		var totalKm, totalCost float64
		for _, trip := range trips {
			metrics := TripMetricsFor(trip)
			totalKm += metrics.DistanceTraveled
			totalCost += metrics.TotalCost

			row := []string{
				trip.Date,
				trip.Driver.Name,
				trip.Truck.Plate,
				trip.Origin,
				trip.Destination,
				strconv.FormatFloat(metrics.DistanceTraveled, 'f', 0, 64),
				strconv.FormatFloat(metrics.DurationHours, 'f', 1, 64),
				strconv.FormatFloat(metrics.TotalCost, 'f', 2, 64),
				string(metrics.Status),
			}
			for i, cell := range row {
				pdf.CellFormat(widths[i], 6, tr(cell), "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}

		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(widths[0]+widths[1]+widths[2]+widths[3]+widths[4], 7, tr("Total"), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 7, strconv.FormatFloat(totalKm, 'f', 0, 64), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[6], 7, "", "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[7], 7, strconv.FormatFloat(totalCost, 'f', 2, 64), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[8], 7, "", "1", 1, "L", false, 0, "")

		c.Header("Content-Type", "application/pdf")
		c.Header("Content-Disposition", `attachment; filename="viagens.pdf"`)
		if err := pdf.Output(c.Writer); err != nil {
			c.JSON(500, gin.H{"error": "Failed to render PDF"})
			return
		}
	}
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
