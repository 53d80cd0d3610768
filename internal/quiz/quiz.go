// Package quiz ranks catalog products against a rider's stated preferences
// and explains each ranking with short human-readable reasons.
package quiz

import (
	"github.com/powderline/snowgear-backend/internal/catalog"
)

type QuizCategory string

const (
	QuizCategoryAll      QuizCategory = "all"
	QuizCategoryBoard    QuizCategory = "board"
	QuizCategoryBoots    QuizCategory = "boots"
	QuizCategoryBindings QuizCategory = "bindings"
)

type Ability string

const (
	AbilityBeginner     Ability = "beginner"
	AbilityIntermediate Ability = "intermediate"
	AbilityAdvanced     Ability = "advanced"
)

type Terrain string

const (
	TerrainGroomers    Terrain = "groomers"
	TerrainPark        Terrain = "park"
	TerrainPowder      Terrain = "powder"
	TerrainAllMountain Terrain = "all_mountain"
)

type FlexPref string

const (
	FlexSoft   FlexPref = "soft"
	FlexMedium FlexPref = "medium"
	FlexStiff  FlexPref = "stiff"
)

// Answers is the rider's quiz input. Ephemeral: it lives for one
// recommendation request and is never persisted.
type Answers struct {
	Category         QuizCategory `json:"category"`
	Ability          Ability      `json:"ability"`
	Terrain          Terrain      `json:"terrain"`
	Flex             FlexPref     `json:"flex"`
	BudgetMaxDollars float64      `json:"budgetMaxDollars"`
}

// Attrs is the typed view of a product's free-form attribute bag. The named
// fields are the ones scoring looks at; everything else the feed supplied
// lands in Extra. A missing or non-coercible field stays absent, never zero.
type Attrs struct {
	Flex    *float64       `json:"flex,omitempty"`
	Profile string         `json:"profile,omitempty"`
	Shape   string         `json:"shape,omitempty"`
	Extra   map[string]any `json:"-"`
}

// Candidate is a product joined with its attribute bag, ready for scoring.
type Candidate struct {
	catalog.Product
	Attrs Attrs `json:"attrs"`
}

// Scored is a candidate plus its computed score and the ordered reason list.
// Recomputed per request; negative totals are legal and meaningful.
type Scored struct {
	Candidate
	Score int      `json:"score"`
	Why   []string `json:"why"`
}

// ParseAttrs builds the typed attribute view from a decoded JSON bag.
// Values of the wrong JSON type (string flex, even "6"; numeric
// profile/shape) are treated as absent for their term rather than failing
// the candidate.
func ParseAttrs(raw map[string]any) Attrs {
	a := Attrs{}
	for k, v := range raw {
		switch k {
		case "flex":
			if f, ok := numericValue(v); ok {
				a.Flex = &f
			}
		case "profile":
			if s, ok := v.(string); ok {
				a.Profile = s
			}
		case "shape":
			if s, ok := v.(string); ok {
				a.Shape = s
			}
		default:
			if a.Extra == nil {
				a.Extra = make(map[string]any)
			}
			a.Extra[k] = v
		}
	}
	return a
}
