package rentafija

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const bondResponseTest = "Aquí está la lista de bonos extraída del PDF:\n" +
	"```json\n" +
	`[
  {
    "encabezado": "TÍTULOS PÚBLICOS NACIONALES",
    "tipo": "BONTE, BONAR Y BONOS DE CONSOLIDACIÓN",
    "categoria": "Títulos emitidos en Pesos a tasa fija",
    "bono": "BONTE OCT-2026 16,50%",
    "codigo": "TO26",
    "vencimiento": "17-Oct-26",
    "tir_anual": "44.85%"
  },
  {
    "encabezado": null,
    "tipo": null,
    "categoria": null,
    "bono": "BONTE FEB-2027",
    "codigo": "TB27",
    "vencimiento": "28-Feb-27",
    "tir_anual": "***"
  },
  {
    "encabezado": null,
    "tipo": null,
    "categoria": "Títulos ajustados por CER",
    "bono": "BONCER DIC-2026",
    "codigo": "TX26",
    "vencimiento": "31-Dic-26",
    "tir_anual": "-3.39%"
  }
]` + "\n```\nEspero que te sea útil."

func TestParseBonds(t *testing.T) {
	bonds, err := ParseBonds(bondResponseTest)
	require.NoError(t, err)
	require.Len(t, bonds, 3)

	first := bonds[0]
	require.NotNil(t, first.Header)
	require.Equal(t, "TÍTULOS PÚBLICOS NACIONALES", *first.Header)
	require.NotNil(t, first.Code)
	require.Equal(t, "TO26", *first.Code)
	require.NotNil(t, first.Maturity)
	require.Equal(t, time.Date(2026, time.October, 17, 0, 0, 0, 0, time.UTC), *first.Maturity)
	require.NotNil(t, first.AnnualYield)
	require.Equal(t, 44.85, *first.AnnualYield)

	// grouping markers are sticky across following records
	second := bonds[1]
	require.NotNil(t, second.Header)
	require.Equal(t, "TÍTULOS PÚBLICOS NACIONALES", *second.Header)
	require.NotNil(t, second.Type)
	require.Equal(t, "BONTE, BONAR Y BONOS DE CONSOLIDACIÓN", *second.Type)
	require.NotNil(t, second.Category)
	require.Equal(t, "Títulos emitidos en Pesos a tasa fija", *second.Category)
	// placeholder yields resolve to null
	require.Nil(t, second.AnnualYield)

	// a new category marker resets the carry, the rest stays inherited
	third := bonds[2]
	require.NotNil(t, third.Category)
	require.Equal(t, "Títulos ajustados por CER", *third.Category)
	require.NotNil(t, third.Type)
	require.Equal(t, "BONTE, BONAR Y BONOS DE CONSOLIDACIÓN", *third.Type)
	// spanish month abbreviation doesn't parse as a date, resolves to null
	require.Nil(t, third.Maturity)
	require.NotNil(t, third.AnnualYield)
	require.Equal(t, -3.39, *third.AnnualYield)
}

func TestParseBondsNoFencedBlock(t *testing.T) {
	_, err := ParseBonds("No pude procesar el documento.")
	require.ErrorIs(t, err, ErrNoStructuredContent)
}

func TestParseBondsMalformedJson(t *testing.T) {
	_, err := ParseBonds("```json\n[{\"bono\": }]\n```")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNoStructuredContent)
}

func TestParseBondsFirstBlockWins(t *testing.T) {
	response := "```json\n[{\"bono\": \"A\"}]\n```\nsegundo bloque:\n```json\n[{\"bono\": \"B\"}]\n```"
	bonds, err := ParseBonds(response)
	require.NoError(t, err)
	require.Len(t, bonds, 1)
	require.NotNil(t, bonds[0].Name)
	require.Equal(t, "A", *bonds[0].Name)
}

func TestParseBondsNonStringValues(t *testing.T) {
	// numeric tir_anual and null vencimiento resolve to null, not errors
	response := "```json\n[{\"bono\": \"X\", \"vencimiento\": null, \"tir_anual\": 12.5}]\n```"
	bonds, err := ParseBonds(response)
	require.NoError(t, err)
	require.Len(t, bonds, 1)
	require.Nil(t, bonds[0].Maturity)
	require.Nil(t, bonds[0].AnnualYield)
}
