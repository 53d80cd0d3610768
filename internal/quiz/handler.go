package quiz

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/powderline/snowgear-backend/internal/catalog"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/recommendations", h.getRecommendations)
}

func (h *Handler) getRecommendations(c *fiber.Ctx) error {
	answers, err := answersFromQuery(c)
	if err != nil {
		return catalog.RespondError(c, err)
	}
	scored, err := h.service.Recommend(answers)
	if err != nil {
		return catalog.RespondError(c, err)
	}
	return c.JSON(scored)
}

// answersFromQuery validates the quiz parameters. Category, ability and flex
// are closed enums; terrain is accepted as-is because the scorer's
// all-mountain branch absorbs unrecognized values. Budget is decimal dollars.
func answersFromQuery(c *fiber.Ctx) (Answers, error) {
	a := Answers{}

	switch cat := QuizCategory(c.Query("cat", "all")); cat {
	case QuizCategoryAll, QuizCategoryBoard, QuizCategoryBoots, QuizCategoryBindings:
		a.Category = cat
	default:
		return Answers{}, catalog.NewInvalidFilter("unknown category: " + string(cat))
	}

	switch ability := Ability(c.Query("ability")); ability {
	case AbilityBeginner, AbilityIntermediate, AbilityAdvanced:
		a.Ability = ability
	default:
		return Answers{}, catalog.NewInvalidFilter("ability must be beginner, intermediate or advanced")
	}

	switch flex := FlexPref(c.Query("flex")); flex {
	case FlexSoft, FlexMedium, FlexStiff:
		a.Flex = flex
	default:
		return Answers{}, catalog.NewInvalidFilter("flex must be soft, medium or stiff")
	}

	terrain := c.Query("terrain")
	if terrain == "" {
		terrain = string(TerrainAllMountain)
	}
	a.Terrain = Terrain(terrain)

	budget, err := strconv.ParseFloat(c.Query("budget"), 64)
	if err != nil || budget <= 0 {
		return Answers{}, catalog.NewInvalidFilter("budget must be a positive number of dollars")
	}
	a.BudgetMaxDollars = budget

	return a, nil
}
