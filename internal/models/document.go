package models

import (
	"time"

	"gorm.io/gorm"
)

type DocumentType string

const (
	DocumentTypeDocumento DocumentType = "documento"
	DocumentTypeTacografo DocumentType = "tacografo_certificado"
	DocumentTypeSeguro    DocumentType = "seguro"
	DocumentTypeInspecao  DocumentType = "inspecao"
)

// Document is one uploaded file attached to a truck. ExpiryDate is either
// user-entered (authoritative) or inferred once at upload time; it is never
// re-inferred afterwards.
type Document struct {
	gorm.Model
	TruckID    uint         `json:"truckId" gorm:"not null;index"`
	Type       DocumentType `json:"type" gorm:"type:varchar(32);not null"`
	Filename   string       `json:"filename" gorm:"not null"`
	Mime       string       `json:"mime"`
	Size       int64        `json:"size"`
	StorageKey string       `json:"-" gorm:"column:storage_key;not null"`
	UploadedAt time.Time    `json:"uploadedAt"`

	ExpiryDate   string `json:"expiryDate"`   // YYYY-MM-DD, empty = unknown
	ExpirySource string `json:"expirySource"` // "user" or "inferred"

	// Identifiers extracted from the document text at upload time.
	Plate   string `json:"plate,omitempty"`
	Chassis string `json:"chassis,omitempty"`
	Year    string `json:"year,omitempty"`
}
