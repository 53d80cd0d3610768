package brand

import (
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
	app.Get("/api/v1/brands", h.getBrands)
}

func (h *Handler) getBrands(c *fiber.Ctx) error {
	var category *catalog.Category
	if cat := c.Query("cat"); cat != "" && cat != "all" {
		pc, ok := catalog.ParseRouteCategory(cat)
		if !ok {
			return catalog.RespondError(c, catalog.NewInvalidFilter("unknown category: "+cat))
		}
		category = &pc
	}

	brands, err := h.service.List(category)
	if err != nil {
		return catalog.RespondError(c, err)
	}
	return c.JSON(brands)
}
