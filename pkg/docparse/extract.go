package docparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Patterns run against Normalize()d text, so they only need to cover
// lowercase, accent-free forms.
var (
	// Legacy plates (ABC1234, with or without hyphen) and Mercosul plates (ABC1D23).
	platePattern = regexp.MustCompile(`\b([a-z]{3}-?\d{4}|[a-z]{3}\d[a-z]\d{2})\b`)

	// 17-character VIN, excluding I, O and Q per the standard.
	chassisPattern = regexp.MustCompile(`\b[a-hj-npr-z0-9]{17}\b`)

	yearPattern       = regexp.MustCompile(`\b(20\d{2})\b`)
	fiscalYearPattern = regexp.MustCompile(`exercicio\s*(?:de\s*)?(20\d{2})`)

	// day/month/year with /, -, ., en dash or em dash as separators.
	dmyPattern = regexp.MustCompile(`(\d{1,2})\s*[/.\-–—]\s*(\d{1,2})\s*[/.\-–—]\s*(\d{4})`)
	isoPattern = regexp.MustCompile(`(\d{4})[/.\-–—](\d{1,2})[/.\-–—](\d{1,2})`)

	longDatePattern = regexp.MustCompile(`(\d{1,2})\s+de\s+(janeiro|fevereiro|marco|abril|maio|junho|julho|agosto|setembro|outubro|novembro|dezembro)\s+de\s+(\d{4})`)

	issueDatePattern = regexp.MustCompile(`(?:emitid[oa]\s+em|data\s+de\s+emissao|emissao)[:\s]*(\d{1,2})\s*[/.\-–—]\s*(\d{1,2})\s*[/.\-–—]\s*(\d{4})`)

	// Validity phrases in priority order. Each is anchored to a nearby
	// day/month/year date; the first phrase that yields a real calendar
	// date wins.
	validityPatterns = []*regexp.Regexp{
		regexp.MustCompile(`valid[oa]\s+ate[:\s]*[^0-9]{0,10}(\d{1,2})\s*[/.\-–—]\s*(\d{1,2})\s*[/.\-–—]\s*(\d{4})`),
		regexp.MustCompile(`data\s+de\s+validade[:\s]*[^0-9]{0,10}(\d{1,2})\s*[/.\-–—]\s*(\d{1,2})\s*[/.\-–—]\s*(\d{4})`),
		regexp.MustCompile(`validade[:\s]*[^0-9]{0,10}(\d{1,2})\s*[/.\-–—]\s*(\d{1,2})\s*[/.\-–—]\s*(\d{4})`),
		regexp.MustCompile(`vencimento[:\s]*[^0-9]{0,10}(\d{1,2})\s*[/.\-–—]\s*(\d{1,2})\s*[/.\-–—]\s*(\d{4})`),
		regexp.MustCompile(`vence\s+em[:\s]*[^0-9]{0,10}(\d{1,2})\s*[/.\-–—]\s*(\d{1,2})\s*[/.\-–—]\s*(\d{4})`),
	}

	monthNames = map[string]int{
		"janeiro": 1, "fevereiro": 2, "marco": 3, "abril": 4,
		"maio": 5, "junho": 6, "julho": 7, "agosto": 8,
		"setembro": 9, "outubro": 10, "novembro": 11, "dezembro": 12,
	}
)

// ExtractPlate returns the first vehicle plate found in the text, uppercased
// and without the legacy hyphen, or "" when none matches.
func ExtractPlate(text string) string {
	m := platePattern.FindString(Normalize(text))
	if m == "" {
		return ""
	}
	return strings.ToUpper(strings.ReplaceAll(m, "-", ""))
}

// ExtractChassis returns the first VIN-shaped token in the text, uppercased,
// or "" when none matches.
func ExtractChassis(text string) string {
	m := chassisPattern.FindString(Normalize(text))
	if m == "" {
		return ""
	}
	return strings.ToUpper(m)
}

// ExtractYear returns the first bare 20xx token in the text, or "".
func ExtractYear(text string) string {
	m := yearPattern.FindStringSubmatch(Normalize(text))
	if m == nil {
		return ""
	}
	return m[1]
}

// ExtractIssueDate looks for an "emitido em <date>" style phrase and returns
// the date as YYYY-MM-DD, or "" when absent or not a real calendar date.
func ExtractIssueDate(text string) string {
	m := issueDatePattern.FindStringSubmatch(Normalize(text))
	if m == nil {
		return ""
	}
	return formatDMY(m[1], m[2], m[3])
}

// extractFiscalYear returns the licensing reference year: a 4-digit year near
// the word "exercicio" when present, otherwise the first bare 20xx token.
func extractFiscalYear(text string) int {
	normalized := Normalize(text)
	if m := fiscalYearPattern.FindStringSubmatch(normalized); m != nil {
		y, _ := strconv.Atoi(m[1])
		return y
	}
	if m := yearPattern.FindStringSubmatch(normalized); m != nil {
		y, _ := strconv.Atoi(m[1])
		return y
	}
	return 0
}

// extractValidityDate runs the ordered validity-phrase patterns and returns
// the first one that parses to a real calendar date, as YYYY-MM-DD.
func extractValidityDate(text string) string {
	normalized := Normalize(text)
	for _, p := range validityPatterns {
		m := p.FindStringSubmatch(normalized)
		if m == nil {
			continue
		}
		if date := formatDMY(m[1], m[2], m[3]); date != "" {
			return date
		}
	}
	return ""
}

// extractGenericDate finds any date-looking token: ISO first (a filename like
// relatorio-2025-03-15.pdf), then day/month/year, then the spelled-out
// "15 de marco de 2025" form.
func extractGenericDate(text string) string {
	normalized := Normalize(text)

	if m := isoPattern.FindStringSubmatch(normalized); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if d, ok := makeDate(year, month, day); ok {
			return d.Format("2006-01-02")
		}
	}

	if m := dmyPattern.FindStringSubmatch(normalized); m != nil {
		if date := formatDMY(m[1], m[2], m[3]); date != "" {
			return date
		}
	}

	if m := longDatePattern.FindStringSubmatch(normalized); m != nil {
		day, _ := strconv.Atoi(m[1])
		month := monthNames[m[2]]
		year, _ := strconv.Atoi(m[3])
		if d, ok := makeDate(year, month, day); ok {
			return d.Format("2006-01-02")
		}
	}

	return ""
}

// formatDMY converts captured day/month/year strings into YYYY-MM-DD,
// returning "" when the numbers do not form a real calendar date (the regex
// alone lets 31/02 through; the calendar check rejects it).
func formatDMY(dayStr, monthStr, yearStr string) string {
	day, _ := strconv.Atoi(dayStr)
	month, _ := strconv.Atoi(monthStr)
	year, _ := strconv.Atoi(yearStr)
	d, ok := makeDate(year, month, day)
	if !ok {
		return ""
	}
	return d.Format("2006-01-02")
}

// makeDate builds a UTC midnight date and confirms the components survived:
// time.Date normalizes overflow (Feb 31 becomes Mar 2/3), so a changed
// component means the input was not a real date.
func makeDate(year, month, day int) (time.Time, bool) {
	if year < 1900 || year > 2200 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

// parseISODate parses a YYYY-MM-DD string with the same calendar validation
// as makeDate.
func parseISODate(s string) (time.Time, bool) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// normalizeDateString accepts either YYYY-MM-DD or DD/MM/YYYY (as returned by
// the external extraction service) and converts it to YYYY-MM-DD, or "" when
// it is not a real date.
func normalizeDateString(s string) string {
	if d, ok := parseISODate(s); ok {
		return d.Format("2006-01-02")
	}
	if m := dmyPattern.FindStringSubmatch(s); m != nil {
		return formatDMY(m[1], m[2], m[3])
	}
	return ""
}
