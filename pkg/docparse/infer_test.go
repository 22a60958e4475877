package docparse

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExtractor struct {
	fields ExtractedFields
	err    error
}

func (s *stubExtractor) Extract(text string) (ExtractedFields, error) {
	return s.fields, s.err
}

func stageByName(t *testing.T, result InferResult, name string) StageResult {
	t.Helper()
	for _, stage := range result.Stages {
		if stage.Stage == name {
			return stage
		}
	}
	t.Fatalf("stage %q not recorded", name)
	return StageResult{}
}

func TestInferExpiryExternalExtractionWins(t *testing.T) {
	extractor := &stubExtractor{fields: ExtractedFields{
		ExpiryDate: "15/03/2025",
		Plate:      "XYZ9876",
	}}

	result := InferExpiry(InferInput{
		Text: "Documento válido até 01/01/2030",
	}, InferOptions{Extractor: extractor})

	assert.Equal(t, "2025-03-15", result.ExpiryDate)
	assert.Equal(t, "XYZ9876", result.Plate)

	first := stageByName(t, result, "external_extraction")
	assert.Equal(t, ReasonHit, first.Reason)
	assert.Equal(t, "2025-03-15", first.Value)

	// Winning stage short-circuits the cascade
	assert.Len(t, result.Stages, 1)
}

func TestInferExpiryExtractorErrorFallsThrough(t *testing.T) {
	extractor := &stubExtractor{err: errors.New("service unavailable")}

	result := InferExpiry(InferInput{
		Text: "Apólice válida até 15/03/2025",
	}, InferOptions{Extractor: extractor})

	assert.Equal(t, "2025-03-15", result.ExpiryDate)
	assert.Equal(t, ReasonError, stageByName(t, result, "external_extraction").Reason)
	assert.Equal(t, ReasonHit, stageByName(t, result, "validity_phrase").Reason)
}

func TestInferExpiryExtractorDisabled(t *testing.T) {
	result := InferExpiry(InferInput{
		Text: "válido até 15/03/2025",
	}, InferOptions{})

	assert.Equal(t, "2025-03-15", result.ExpiryDate)
	assert.Equal(t, ReasonDisabled, stageByName(t, result, "external_extraction").Reason)
}

func TestInferExpiryValidityPhraseBeatsGenericDate(t *testing.T) {
	// The text carries both an earlier loose date and an explicit validity
	// phrase; the phrase must win even though the loose date appears first.
	result := InferExpiry(InferInput{
		Text: "Emitido em 10/01/2024. Válido até 15/03/2025.",
	}, InferOptions{})

	assert.Equal(t, "2025-03-15", result.ExpiryDate)
	assert.Equal(t, ReasonHit, stageByName(t, result, "validity_phrase").Reason)
}

func TestInferExpiryGenericDateFromFilename(t *testing.T) {
	result := InferExpiry(InferInput{
		Text:     "Comprovante de seguro sem datas no corpo",
		Filename: "seguro-2025-08-01.pdf",
	}, InferOptions{})

	assert.Equal(t, "2025-08-01", result.ExpiryDate)
	assert.Equal(t, ReasonHit, stageByName(t, result, "generic_date").Reason)
}

func TestInferExpiryGenericDateFilenameBeforeText(t *testing.T) {
	result := InferExpiry(InferInput{
		Text:     "renovado em 01/01/2024",
		Filename: "inspecao-2025-08-01.pdf",
	}, InferOptions{})

	assert.Equal(t, "2025-08-01", result.ExpiryDate)
}

func TestInferExpiryDocumentoFiscalYearFallback(t *testing.T) {
	// Licensing documents expire on October 31 of the year after the fiscal
	// reference year.
	result := InferExpiry(InferInput{
		Text: "CRLV Exercício 2024",
		Type: DocTypeDocumento,
	}, InferOptions{})

	assert.Equal(t, "2025-10-31", result.ExpiryDate)
	assert.Equal(t, ReasonHit, stageByName(t, result, "type_fallback").Reason)
}

func TestInferExpiryTacografoFromIssueDate(t *testing.T) {
	// A date written in the text would be picked up by the generic stage
	// first, so the issue-date path only triggers when the extractor found
	// the issue date and the text itself carries no dates.
	extractor := &stubExtractor{fields: ExtractedFields{IssueDate: "10/02/2024"}}

	result := InferExpiry(InferInput{
		Text: "Certificado de aferição de tacógrafo",
		Type: DocTypeTacografo,
	}, InferOptions{Extractor: extractor})

	assert.Equal(t, "2025-02-10", result.ExpiryDate)
	assert.Equal(t, "2024-02-10", result.IssueDate)
	assert.Equal(t, ReasonHit, stageByName(t, result, "type_fallback").Reason)
}

func TestInferExpiryTacografoFromUploadTime(t *testing.T) {
	uploaded := time.Date(2024, 5, 20, 14, 0, 0, 0, time.UTC)

	result := InferExpiry(InferInput{
		Text:       "Certificado de aferição sem datas",
		Type:       DocTypeTacografo,
		UploadedAt: uploaded,
	}, InferOptions{})

	assert.Equal(t, "2025-05-20", result.ExpiryDate)
}

func TestInferExpiryNothingFound(t *testing.T) {
	result := InferExpiry(InferInput{
		Text: "Documento do caminhão",
		Type: DocTypeSeguro,
	}, InferOptions{})

	assert.Empty(t, result.ExpiryDate)
	require.Len(t, result.Stages, 4)
	for _, stage := range result.Stages[1:] {
		assert.Equal(t, ReasonMiss, stage.Reason, stage.Stage)
	}
}

func TestInferExpiryIdentifiersAlwaysExtracted(t *testing.T) {
	result := InferExpiry(InferInput{
		Text: "Placa ABC-1234, chassi 9BWZZZ377VT004251, válido até 15/03/2025",
	}, InferOptions{})

	assert.Equal(t, "ABC1234", result.Plate)
	assert.Equal(t, "9BWZZZ377VT004251", result.Chassis)
	assert.Equal(t, "2025-03-15", result.ExpiryDate)
}

func TestInferExpiryIdempotent(t *testing.T) {
	in := InferInput{
		Text: "Apólice válida até 15/03/2025, placa ABC1234",
		Type: DocTypeSeguro,
	}

	first := InferExpiry(in, InferOptions{})
	second := InferExpiry(in, InferOptions{})
	assert.Equal(t, first, second)
}
