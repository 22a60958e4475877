package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/dmcampos/frota-backend/pkg/docparse"
)

// ExtractionClient calls the optional external text-extraction service used
// as the first stage of the document date-inference cascade. A nil client
// means the stage is disabled; errors here are never fatal for an upload —
// the cascade just falls through to the local patterns.
type ExtractionClient struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewExtractionClient builds a client from EXTRACTION_API_URL and
// EXTRACTION_API_KEY. Returns nil when no endpoint is configured, which the
// cascade reports as the "disabled" stage reason.
func NewExtractionClient() *ExtractionClient {
	endpoint := os.Getenv("EXTRACTION_API_URL")
	if endpoint == "" {
		return nil
	}

	return &ExtractionClient{
		endpoint: endpoint,
		apiKey:   os.Getenv("EXTRACTION_API_KEY"),
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// Extract sends the document text and parses the structured response. One
// request, no retries: a timeout or bad payload surfaces as an error and the
// caller moves on to the next cascade stage.
func (e *ExtractionClient) Extract(text string) (docparse.ExtractedFields, error) {
	payload, err := json.Marshal(map[string]string{"document_text": text})
	if err != nil {
		return docparse.ExtractedFields{}, err
	}

	req, err := http.NewRequest(http.MethodPost, e.endpoint, bytes.NewReader(payload))
	if err != nil {
		return docparse.ExtractedFields{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return docparse.ExtractedFields{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return docparse.ExtractedFields{}, fmt.Errorf("extraction service returned status %d", resp.StatusCode)
	}

	var fields docparse.ExtractedFields
	if err := json.NewDecoder(resp.Body).Decode(&fields); err != nil {
		return docparse.ExtractedFields{}, err
	}

	return fields, nil
}
