package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/dmcampos/frota-backend/internal/models"
	"github.com/dmcampos/frota-backend/internal/services"
	"github.com/dmcampos/frota-backend/pkg/docparse"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var validDocumentTypes = map[models.DocumentType]bool{
	models.DocumentTypeDocumento: true,
	models.DocumentTypeTacografo: true,
	models.DocumentTypeSeguro:    true,
	models.DocumentTypeInspecao:  true,
}

func documentResponse(doc models.Document, today time.Time) gin.H {
	return gin.H{
		"document": doc,
		"url":      services.GetDocumentURL(doc.StorageKey),
		"expiry":   docparse.Classify(doc.ExpiryDate, today),
	}
}

// UploadDocument receives a document file plus its already-extracted text
// (PDF parsing happens upstream) and infers the expiry date when the caller
// did not supply one. A user-entered expiry date is authoritative and skips
// inference entirely.
func UploadDocument(db *gorm.DB, extractor *services.ExtractionClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		var truck models.Truck
		if err := db.First(&truck, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Truck not found"})
			return
		}

		docType := models.DocumentType(c.PostForm("type"))
		if !validDocumentTypes[docType] {
			c.JSON(400, gin.H{"error": "Invalid document type"})
			return
		}

		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(400, gin.H{"error": "Document file is required"})
			return
		}

		key, err := services.UploadDocument(file, "documents")
		if err != nil {
			c.JSON(500, gin.H{
				"error":   "Failed to store document",
				"details": err.Error(),
			})
			return
		}

		now := time.Now()
		doc := models.Document{
			TruckID:    truck.ID,
			Type:       docType,
			Filename:   file.Filename,
			Mime:       file.Header.Get("Content-Type"),
			Size:       file.Size,
			StorageKey: key,
			UploadedAt: now,
		}

		var stages []docparse.StageResult
		if expiry := strings.TrimSpace(c.PostForm("expiry_date")); expiry != "" {
			// User-supplied date wins; no inference runs.
			doc.ExpiryDate = expiry
			doc.ExpirySource = "user"
		} else {
			opts := docparse.InferOptions{}
			if extractor != nil {
				opts.Extractor = extractor
			}
			inferred := docparse.InferExpiry(docparse.InferInput{
				Text:       c.PostForm("document_text"),
				Filename:   file.Filename,
				Type:       docparse.DocumentType(docType),
				UploadedAt: now,
			}, opts)

			doc.ExpiryDate = inferred.ExpiryDate
			if inferred.ExpiryDate != "" {
				doc.ExpirySource = "inferred"
			}
			doc.Plate = inferred.Plate
			doc.Chassis = inferred.Chassis
			doc.Year = inferred.Year
			stages = inferred.Stages
		}

		if err := db.Create(&doc).Error; err != nil {
			services.DeleteDocument(key)
			c.JSON(500, gin.H{"error": "Failed to create document"})
			return
		}

		services.InvalidateDashboard(context.Background())

		c.JSON(201, gin.H{
			"document": doc,
			"url":      services.GetDocumentURL(doc.StorageKey),
			"expiry":   docparse.Classify(doc.ExpiryDate, now),
			"stages":   stages,
		})
	}
}

func GetTruckDocuments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var truck models.Truck
		if err := db.First(&truck, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Truck not found"})
			return
		}

		var docs []models.Document
		if err := db.Where("truck_id = ?", truck.ID).
			Order("uploaded_at DESC").
			Find(&docs).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch documents"})
			return
		}

		today := time.Now()
		response := make([]gin.H, 0, len(docs))
		for _, doc := range docs {
			response = append(response, documentResponse(doc, today))
		}

		c.JSON(200, gin.H{"documents": response})
	}
}

// GetExpiringDocuments lists every document that is expired or inside the
// 30-day window, most urgent first.
func GetExpiringDocuments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var docs []models.Document
		if err := db.Where("expiry_date <> ''").
			Order("expiry_date ASC").
			Find(&docs).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch documents"})
			return
		}

		today := time.Now()
		response := make([]gin.H, 0)
		for _, doc := range docs {
			classification := docparse.Classify(doc.ExpiryDate, today)
			if classification.Status == docparse.ExpiryExpired || classification.Status == docparse.ExpiryExpiring {
				response = append(response, documentResponse(doc, today))
			}
		}

		c.JSON(200, gin.H{"documents": response})
	}
}

// GetExpiryAlerts serves the alert job's latest snapshot. Unlike the expiring
// listing it also carries driver CNH entries, and it reads straight from Redis
// without touching the database.
func GetExpiryAlerts() gin.HandlerFunc {
	return func(c *gin.Context) {
		snapshot, err := services.GetExpiringDocuments(context.Background())
		if err != nil {
			// No scan has completed yet
			c.JSON(200, gin.H{"alerts": []gin.H{}})
			return
		}

		c.JSON(200, gin.H{"alerts": snapshot})
	}
}

// UpdateDocumentExpiry sets the expiry date explicitly. The new value is
// authoritative: the system never re-infers once a date is set.
func UpdateDocumentExpiry(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var doc models.Document
		if err := db.First(&doc, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Document not found"})
			return
		}

		var input struct {
			ExpiryDate string `json:"expiryDate" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if _, err := time.Parse("2006-01-02", input.ExpiryDate); err != nil {
			c.JSON(400, gin.H{"error": "Expiry date must be YYYY-MM-DD"})
			return
		}

		doc.ExpiryDate = input.ExpiryDate
		doc.ExpirySource = "user"
		if err := db.Save(&doc).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update document"})
			return
		}

		services.InvalidateDashboard(context.Background())

		c.JSON(200, documentResponse(doc, time.Now()))
	}
}

// DeleteDocument removes both the database row and the stored file.
func DeleteDocument(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var doc models.Document
		if err := db.First(&doc, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Document not found"})
			return
		}

		if err := db.Delete(&doc).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to delete document"})
			return
		}

		if err := services.DeleteDocument(doc.StorageKey); err != nil {
			// Row is gone; an orphaned file is logged by the storage layer
			// but does not fail the request.
			c.JSON(200, gin.H{"message": "Document deleted, file removal pending"})
			return
		}

		services.InvalidateDashboard(context.Background())

		c.JSON(200, gin.H{"message": "Document deleted successfully"})
	}
}
