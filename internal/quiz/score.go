package quiz

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/powderline/snowgear-backend/internal/catalog"
)

// scoreRule contributes an independent score delta plus zero or more reason
// strings. Rules are evaluated in list order, which is exactly the order
// reasons accumulate in Scored.Why.
type scoreRule func(a Answers, c Candidate) (int, []string)

var scoreRules = []scoreRule{
	budgetRule,
	categoryRule,
	flexRule,
	abilityRule,
	terrainRule,
}

// ScoreOne computes the deterministic, additive score for one candidate.
// Pure: no I/O, no dependence on the rest of the pool.
func ScoreOne(a Answers, c Candidate) (int, []string) {
	score := 0
	why := make([]string, 0, 4)
	for _, rule := range scoreRules {
		delta, reasons := rule(a, c)
		score += delta
		why = append(why, reasons...)
	}
	return score, why
}

// budgetRule rewards listings within budget, shaves points off over-budget
// ones (roughly one per $50 over, floored at 5 and capped at 25), and treats
// an unlisted price as mildly favorable rather than disqualifying.
func budgetRule(a Answers, c Candidate) (int, []string) {
	cents, ok := c.EffectivePriceCents()
	if !ok {
		return 5, []string{"Price not listed"}
	}
	budgetCents := int(math.Round(a.BudgetMaxDollars * 100))
	if cents <= budgetCents {
		return 25, []string{"Within your budget"}
	}
	over := cents - budgetCents
	penalty := clampInt(int(math.Round(float64(over)/5000)), 5, 25)
	return -penalty, []string{"Over budget"}
}

func categoryRule(a Answers, c Candidate) (int, []string) {
	if a.Category == QuizCategoryAll || catalog.Category(a.Category) == c.Category {
		return 10, nil
	}
	return 0, nil
}

// flexTarget maps a flex preference onto the feed's 1-10-ish numeric scale.
func flexTarget(pref FlexPref) float64 {
	switch pref {
	case FlexSoft:
		return 3
	case FlexMedium:
		return 6
	default:
		return 8
	}
}

func flexRule(a Answers, c Candidate) (int, []string) {
	if c.Attrs.Flex == nil {
		return 6, []string{"Flex not listed (still considering)"}
	}
	diff := math.Abs(*c.Attrs.Flex - flexTarget(a.Flex))
	delta := int(math.Round(clampFloat(20-diff*5, 0, 20)))
	return delta, []string{"Flex close to your preference (" + string(a.Flex) + ")"}
}

// abilityRule nudges soft boards toward beginners and stiff ones toward
// advanced riders; the bias reason is only worth surfacing on boards.
func abilityRule(a Answers, c Candidate) (int, []string) {
	flex := c.Attrs.Flex
	switch a.Ability {
	case AbilityBeginner:
		delta := 0
		if flex != nil && *flex <= 5 {
			delta = 8
		}
		if c.Category == catalog.CategoryBoard {
			return delta, []string{"Beginner-friendly bias"}
		}
		return delta, nil
	case AbilityAdvanced:
		delta := 0
		if flex != nil && *flex >= 7 {
			delta = 8
		}
		if c.Category == catalog.CategoryBoard {
			return delta, []string{"Advanced rider bias"}
		}
		return delta, nil
	default:
		return 4, nil
	}
}

// terrainRule matches free-form shape/profile strings case-insensitively.
// Unrecognized terrain values take the all-mountain fallback; the other
// branches may legitimately contribute no reasons at all.
func terrainRule(a Answers, c Candidate) (int, []string) {
	profile := strings.ToLower(c.Attrs.Profile)
	shape := strings.ToLower(c.Attrs.Shape)
	flex := c.Attrs.Flex

	delta := 0
	var reasons []string
	switch a.Terrain {
	case TerrainPowder:
		if strings.Contains(shape, "directional") {
			delta += 8
			reasons = append(reasons, "Directional bias for powder")
		}
		if strings.Contains(profile, "rocker") {
			delta += 6
			reasons = append(reasons, "Rocker bias for float")
		}
	case TerrainPark:
		if strings.Contains(shape, "twin") {
			delta += 8
			reasons = append(reasons, "Twin-ish bias for park")
		}
		if flex != nil && *flex <= 6 {
			delta += 4
		}
	case TerrainGroomers:
		if strings.Contains(profile, "camber") {
			delta += 8
			reasons = append(reasons, "Camber bias for edge hold")
		}
		if flex != nil && *flex >= 6 {
			delta += 4
		}
	default:
		delta += 5
		reasons = append(reasons, "All-mountain friendly scoring")
	}
	return delta, reasons
}

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func clampFloat(n, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, n))
}

// numericValue accepts only the number representations JSON decoding can
// produce. A string holding digits is still a string: it reads as absent,
// same as any other wrong type.
func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
