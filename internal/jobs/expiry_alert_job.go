package jobs

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dmcampos/frota-backend/internal/models"
	"github.com/dmcampos/frota-backend/internal/services"
	"github.com/dmcampos/frota-backend/pkg/docparse"
	"github.com/dmcampos/frota-backend/pkg/utils"
	"gorm.io/gorm"
)

// ExpiryAlertJob periodically scans the fleet's documents and driver CNHs,
// pushes websocket alerts for anything expired or inside the 30-day window,
// and mails a digest to the configured operators.
type ExpiryAlertJob struct {
	db     *gorm.DB
	hub    *services.Hub
	ticker *time.Ticker
	done   chan bool
}

func NewExpiryAlertJob(db *gorm.DB, hub *services.Hub, interval time.Duration) *ExpiryAlertJob {
	return &ExpiryAlertJob{
		db:     db,
		hub:    hub,
		ticker: time.NewTicker(interval),
		done:   make(chan bool),
	}
}

// Start begins the scan loop. The first scan runs immediately.
func (j *ExpiryAlertJob) Start() {
	log.Println("Expiry alert job started")

	go func() {
		j.scan()

		for {
			select {
			case <-j.ticker.C:
				j.scan()
			case <-j.done:
				log.Println("Expiry alert job stopped")
				return
			}
		}
	}()
}

func (j *ExpiryAlertJob) Stop() {
	j.ticker.Stop()
	j.done <- true
}

func (j *ExpiryAlertJob) scan() {
	today := time.Now()

	var docs []models.Document
	if err := j.db.Where("expiry_date <> ''").Find(&docs).Error; err != nil {
		log.Printf("Expiry scan failed: %v", err)
		return
	}

	plates := j.truckPlates()

	var digest []utils.ExpiryDigestItem
	for _, doc := range docs {
		classification := docparse.Classify(doc.ExpiryDate, today)
		if classification.Status != docparse.ExpiryExpired && classification.Status != docparse.ExpiryExpiring {
			continue
		}

		j.hub.SendDocumentExpiring(services.DocumentExpiring{
			DocumentID:    doc.ID,
			TruckID:       doc.TruckID,
			Type:          string(doc.Type),
			Filename:      doc.Filename,
			ExpiryDate:    doc.ExpiryDate,
			Status:        string(classification.Status),
			DaysRemaining: classification.DaysRemaining,
		})

		digest = append(digest, utils.ExpiryDigestItem{
			TruckPlate:    plates[doc.TruckID],
			DocumentType:  string(doc.Type),
			Filename:      doc.Filename,
			ExpiryDate:    doc.ExpiryDate,
			Status:        string(classification.Status),
			DaysRemaining: classification.DaysRemaining,
		})
	}

	digest = append(digest, j.scanDriverCNHs(today)...)

	services.SetExpiringDocuments(context.Background(), digest)

	if len(digest) == 0 {
		return
	}

	recipients := alertRecipients()
	if len(recipients) == 0 {
		return
	}
	if err := utils.SendExpiryDigestEmail(recipients, digest); err != nil {
		log.Printf("Failed to send expiry digest: %v", err)
	}
}

// scanDriverCNHs folds expiring driver licenses into the same digest.
func (j *ExpiryAlertJob) scanDriverCNHs(today time.Time) []utils.ExpiryDigestItem {
	var drivers []models.Driver
	if err := j.db.Where("active = ? AND cnh_expiry <> ''", true).Find(&drivers).Error; err != nil {
		log.Printf("CNH expiry scan failed: %v", err)
		return nil
	}

	var items []utils.ExpiryDigestItem
	for _, driver := range drivers {
		classification := docparse.Classify(driver.CNHExpiry, today)
		if classification.Status != docparse.ExpiryExpired && classification.Status != docparse.ExpiryExpiring {
			continue
		}
		items = append(items, utils.ExpiryDigestItem{
			DocumentType:  "cnh",
			Filename:      driver.Name,
			ExpiryDate:    driver.CNHExpiry,
			Status:        string(classification.Status),
			DaysRemaining: classification.DaysRemaining,
		})
	}
	return items
}

func (j *ExpiryAlertJob) truckPlates() map[uint]string {
	var trucks []models.Truck
	plates := make(map[uint]string)
	if err := j.db.Find(&trucks).Error; err != nil {
		log.Printf("Failed to load trucks for digest: %v", err)
		return plates
	}
	for _, truck := range trucks {
		plates[truck.ID] = truck.Plate
	}
	return plates
}

func alertRecipients() []string {
	raw := os.Getenv("ALERT_EMAILS")
	if raw == "" {
		return nil
	}
	var recipients []string
	for _, addr := range strings.Split(raw, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			recipients = append(recipients, addr)
		}
	}
	return recipients
}
