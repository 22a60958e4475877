package docparse

import "time"

// DocumentType identifies the kind of fleet document being parsed.
type DocumentType string

const (
	DocTypeDocumento DocumentType = "documento"
	DocTypeTacografo DocumentType = "tacografo_certificado"
	DocTypeSeguro    DocumentType = "seguro"
	DocTypeInspecao  DocumentType = "inspecao"
)

// StageReason distinguishes why a cascade stage produced no value, so callers
// and tests can tell "no pattern matched" from "service was unreachable".
type StageReason string

const (
	ReasonHit      StageReason = "hit"
	ReasonMiss     StageReason = "miss"
	ReasonError    StageReason = "error"
	ReasonDisabled StageReason = "disabled"
)

// StageResult records the outcome of one cascade stage.
type StageResult struct {
	Stage  string      `json:"stage"`
	Value  string      `json:"value,omitempty"`
	Reason StageReason `json:"reason"`
}

// ExtractedFields is the structured response of the external text-extraction
// service. Dates may arrive as YYYY-MM-DD or DD/MM/YYYY.
type ExtractedFields struct {
	Plate      string `json:"plate"`
	Chassis    string `json:"chassis"`
	Year       string `json:"year"`
	DocType    string `json:"doc_type"`
	IssueDate  string `json:"issue_date"`
	ExpiryDate string `json:"expiry_date"`
}

// Extractor is the optional external text-extraction service. A nil Extractor
// means the stage is disabled (no credentials configured).
type Extractor interface {
	Extract(text string) (ExtractedFields, error)
}

// InferInput carries the document text plus the contextual hints the cascade
// uses for its fallback rules.
type InferInput struct {
	Text       string
	Filename   string
	Type       DocumentType
	UploadedAt time.Time
}

// InferOptions configures the cascade explicitly instead of reading ambient
// state, so tests can exercise both the enabled and disabled branches.
type InferOptions struct {
	Extractor Extractor
}

// InferResult is the full outcome of the cascade: the inferred dates, any
// vehicle identifiers found along the way, and a per-stage trace.
type InferResult struct {
	ExpiryDate string        `json:"expiryDate,omitempty"`
	IssueDate  string        `json:"issueDate,omitempty"`
	Plate      string        `json:"plate,omitempty"`
	Chassis    string        `json:"chassis,omitempty"`
	Year       string        `json:"year,omitempty"`
	Stages     []StageResult `json:"stages"`
}

// InferExpiry determines a document's expiry date through an ordered cascade:
// external extraction, validity phrases, generic dates in filename or text,
// then type-specific fallbacks. The first stage to yield a real calendar date
// wins. The function is total: a stage that fails is recorded and skipped,
// never fatal.
func InferExpiry(in InferInput, opts InferOptions) InferResult {
	var result InferResult

	// Local extractors always run; they fill the vehicle identifiers even when
	// a later stage decides the expiry date.
	result.Plate = ExtractPlate(in.Text)
	result.Chassis = ExtractChassis(in.Text)
	result.Year = ExtractYear(in.Text)
	result.IssueDate = ExtractIssueDate(in.Text)

	// Stage 1: external extraction service.
	if opts.Extractor == nil {
		result.Stages = append(result.Stages, StageResult{Stage: "external_extraction", Reason: ReasonDisabled})
	} else {
		fields, err := opts.Extractor.Extract(in.Text)
		switch {
		case err != nil:
			result.Stages = append(result.Stages, StageResult{Stage: "external_extraction", Reason: ReasonError})
		default:
			if fields.Plate != "" {
				result.Plate = fields.Plate
			}
			if fields.Chassis != "" {
				result.Chassis = fields.Chassis
			}
			if fields.Year != "" {
				result.Year = fields.Year
			}
			if issue := normalizeDateString(fields.IssueDate); issue != "" {
				result.IssueDate = issue
			}
			if expiry := normalizeDateString(fields.ExpiryDate); expiry != "" {
				result.ExpiryDate = expiry
				result.Stages = append(result.Stages, StageResult{Stage: "external_extraction", Value: expiry, Reason: ReasonHit})
				return result
			}
			result.Stages = append(result.Stages, StageResult{Stage: "external_extraction", Reason: ReasonMiss})
		}
	}

	// Stage 2: explicit validity phrases ("valido ate 15/03/2025").
	if expiry := extractValidityDate(in.Text); expiry != "" {
		result.ExpiryDate = expiry
		result.Stages = append(result.Stages, StageResult{Stage: "validity_phrase", Value: expiry, Reason: ReasonHit})
		return result
	}
	result.Stages = append(result.Stages, StageResult{Stage: "validity_phrase", Reason: ReasonMiss})

	// Stage 3: any date-looking token in the filename or the text.
	if expiry := extractGenericDate(in.Filename); expiry != "" {
		result.ExpiryDate = expiry
		result.Stages = append(result.Stages, StageResult{Stage: "generic_date", Value: expiry, Reason: ReasonHit})
		return result
	}
	if expiry := extractGenericDate(in.Text); expiry != "" {
		result.ExpiryDate = expiry
		result.Stages = append(result.Stages, StageResult{Stage: "generic_date", Value: expiry, Reason: ReasonHit})
		return result
	}
	result.Stages = append(result.Stages, StageResult{Stage: "generic_date", Reason: ReasonMiss})

	// Stage 4: type-specific fallback rules.
	if expiry := typeFallback(in, result.IssueDate); expiry != "" {
		result.ExpiryDate = expiry
		result.Stages = append(result.Stages, StageResult{Stage: "type_fallback", Value: expiry, Reason: ReasonHit})
		return result
	}
	result.Stages = append(result.Stages, StageResult{Stage: "type_fallback", Reason: ReasonMiss})

	return result
}

// typeFallback applies the document-type rules when no date was found in the
// text itself:
//   - licensing documents expire on October 31 of the year after the fiscal
//     reference year;
//   - tachograph certificates are valid for one year from issuance, or from
//     upload when no issue date is known.
func typeFallback(in InferInput, issueDate string) string {
	switch in.Type {
	case DocTypeDocumento:
		year := extractFiscalYear(in.Text)
		if year == 0 {
			return ""
		}
		d, ok := makeDate(year+1, 10, 31)
		if !ok {
			return ""
		}
		return d.Format("2006-01-02")

	case DocTypeTacografo:
		if issue, ok := parseISODate(issueDate); ok {
			return issue.AddDate(1, 0, 0).Format("2006-01-02")
		}
		if in.UploadedAt.IsZero() {
			return ""
		}
		return in.UploadedAt.AddDate(1, 0, 0).Format("2006-01-02")
	}

	return ""
}
