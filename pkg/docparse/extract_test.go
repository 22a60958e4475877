package docparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "valido ate 15/03/2025", Normalize("Válido até 15/03/2025"))
	assert.Equal(t, "emissao", Normalize("EMISSÃO"))
	assert.Equal(t, "exercicio 2024", Normalize("Exercício 2024"))
}

func TestExtractPlate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"legacy with hyphen", "Veículo placa ABC-1234 registrado", "ABC1234"},
		{"legacy without hyphen", "placa abc1234", "ABC1234"},
		{"mercosul", "Placa: BRA2E19", "BRA2E19"},
		{"no plate", "documento sem identificação", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractPlate(tt.text))
		})
	}
}

func TestExtractChassis(t *testing.T) {
	assert.Equal(t, "9BWZZZ377VT004251", ExtractChassis("Chassi: 9BWZZZ377VT004251"))
	// VINs never contain I, O or Q
	assert.Equal(t, "", ExtractChassis("Chassi: 9BWZZZ377VTI04251"))
	assert.Equal(t, "", ExtractChassis("sem chassi"))
}

func TestExtractYear(t *testing.T) {
	assert.Equal(t, "2024", ExtractYear("Exercício de 2024"))
	assert.Equal(t, "", ExtractYear("ano de 1998"))
	assert.Equal(t, "", ExtractYear(""))
}

func TestExtractIssueDate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"emitido em", "Certificado emitido em 10/02/2024", "2024-02-10"},
		{"emitida em", "Apólice emitida em 01/01/2024", "2024-01-01"},
		{"data de emissao", "Data de emissão: 05/12/2023", "2023-12-05"},
		{"not a real date", "emitido em 31/02/2024", ""},
		{"absent", "sem data", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractIssueDate(tt.text))
		})
	}
}

func TestExtractValidityDate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"valido ate", "Este documento é válido até 15/03/2025", "2025-03-15"},
		{"valida ate", "Apólice válida até 01/08/2025", "2025-08-01"},
		{"data de validade", "Data de validade: 20/06/2025", "2025-06-20"},
		{"vencimento", "Vencimento 30/09/2024", "2024-09-30"},
		{"vence em", "vence em 12/12/2024", "2024-12-12"},
		{"dotted separators", "Validade: 15.03.2025", "2025-03-15"},
		{"impossible date rejected", "válido até 31/02/2025", ""},
		{"no phrase", "emitido em 15/03/2025", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractValidityDate(tt.text))
		})
	}
}

func TestExtractGenericDate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"iso in filename", "seguro-2025-03-15.pdf", "2025-03-15"},
		{"dmy in text", "renovado dia 15/03/2025 em diante", "2025-03-15"},
		{"long form", "15 de março de 2025", "2025-03-15"},
		{"iso beats dmy", "2025-03-15 e também 01/01/2024", "2025-03-15"},
		{"nothing", "documento do caminhão", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractGenericDate(tt.text))
		})
	}
}

func TestExtractFiscalYear(t *testing.T) {
	assert.Equal(t, 2024, extractFiscalYear("CRLV exercício 2024"))
	assert.Equal(t, 2023, extractFiscalYear("exercício de 2023"))
	// Bare year is the fallback when "exercicio" never appears
	assert.Equal(t, 2025, extractFiscalYear("licenciamento 2025"))
	assert.Equal(t, 0, extractFiscalYear("sem ano"))
}

func TestMakeDate(t *testing.T) {
	_, ok := makeDate(2024, 2, 29)
	assert.True(t, ok)

	_, ok = makeDate(2023, 2, 29)
	assert.False(t, ok)

	_, ok = makeDate(2024, 13, 1)
	assert.False(t, ok)

	_, ok = makeDate(1800, 1, 1)
	assert.False(t, ok)
}

func TestNormalizeDateString(t *testing.T) {
	assert.Equal(t, "2025-03-15", normalizeDateString("2025-03-15"))
	assert.Equal(t, "2025-03-15", normalizeDateString("15/03/2025"))
	assert.Equal(t, "", normalizeDateString("31/02/2025"))
	assert.Equal(t, "", normalizeDateString("amanhã"))
}
