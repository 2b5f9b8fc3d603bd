package rentafija

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"commander-backend/lib/moneyfmt"
)

var ErrNoStructuredContent = errors.New("No se encontró el JSON en la respuesta.")

var fencedJson = regexp.MustCompile("(?s)```json(.*?)```")

// the wire shape the model is instructed to produce. values of the wrong
// type are tolerated and resolve to null, matching the upstream contract
// where only well formed strings are converted.
type rawBond struct {
	Encabezado  *string `json:"encabezado"`
	Tipo        *string `json:"tipo"`
	Categoria   *string `json:"categoria"`
	Bono        *string `json:"bono"`
	Codigo      *string `json:"codigo"`
	Vencimiento any     `json:"vencimiento"`
	TirAnual    any     `json:"tir_anual"`
}

func stringOrNil(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

func cleanField(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// ParseBonds locates the first fenced json block in the model's free
// text response and decodes it into bond records. A missing block or
// unparseable json fails the whole attempt, there is no partial-record
// tolerance.
func ParseBonds(response string) ([]Bond, error) {
	groups := fencedJson.FindStringSubmatch(response)
	if len(groups) < 2 {
		return nil, ErrNoStructuredContent
	}

	var raw []rawBond
	err := json.Unmarshal([]byte(groups[1]), &raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode structured response: %w", err)
	}

	// fold the sticky grouping fields forward: a record without its own
	// marker inherits the last seen header/type/category
	var currentHeader, currentType, currentCategory *string

	bonds := make([]Bond, 0, len(raw))
	for _, r := range raw {
		if v := cleanField(r.Encabezado); v != nil {
			currentHeader = v
		}
		if v := cleanField(r.Tipo); v != nil {
			currentType = v
		}
		if v := cleanField(r.Categoria); v != nil {
			currentCategory = v
		}

		bond := Bond{
			Header:   currentHeader,
			Type:     currentType,
			Category: currentCategory,
			Name:     cleanField(r.Bono),
			Code:     cleanField(r.Codigo),
		}
		if s := stringOrNil(r.Vencimiento); s != nil {
			bond.Maturity = moneyfmt.ParseMaturityDate(*s)
		}
		if s := stringOrNil(r.TirAnual); s != nil {
			bond.AnnualYield = moneyfmt.ParsePercentage(*s)
		}
		bonds = append(bonds, bond)
	}

	return bonds, nil
}
