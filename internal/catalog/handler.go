package catalog

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products", h.getProducts)
	// register /saved before /:id to avoid route param collision
	app.Get("/api/v1/products/saved", h.getSavedProducts)
	app.Get("/api/v1/products/:id", h.getProduct)
}

// routeCategories maps URL category values to product categories. The plural
// "boards" comes from the frontend route names; "all" means no predicate.
var routeCategories = map[string]Category{
	"board":    CategoryBoard,
	"boards":   CategoryBoard,
	"boots":    CategoryBoots,
	"bindings": CategoryBindings,
}

// ParseRouteCategory resolves a `cat` query value, accepting the frontend's
// route aliases. Every query surface taking `cat` goes through this so the
// accepted values stay in one place.
func ParseRouteCategory(s string) (Category, bool) {
	c, ok := routeCategories[s]
	return c, ok
}

func (h *Handler) getProducts(c *fiber.Ctx) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return RespondError(c, err)
	}
	products, err := h.service.Query(f)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(products)
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	p, err := h.service.GetByID(c.Params("id"))
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(p)
}

// getSavedProducts resolves a comma-separated id list kept client-side
// (saved deals) into full product rows.
func (h *Handler) getSavedProducts(c *fiber.Ctx) error {
	ids := make([]string, 0)
	for _, id := range strings.Split(c.Query("ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	products, err := h.service.ListByIDs(ids)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(products)
}

// filterFromQuery converts caller-facing query parameters into a Filter.
// min/max arrive as decimal dollars and become integer cents here, rounded
// to the nearest cent.
func filterFromQuery(c *fiber.Ctx) (Filter, error) {
	f := Filter{Sort: SortBestDeal}

	if cat := c.Query("cat"); cat != "" && cat != "all" {
		pc, ok := ParseRouteCategory(cat)
		if !ok {
			return Filter{}, NewInvalidFilter("unknown category: " + cat)
		}
		f.Category = &pc
	}
	if brand := c.Query("brand"); brand != "" {
		f.Brand = &brand
	}
	if q := c.Query("q"); q != "" {
		f.Query = &q
	}

	min, err := dollarsToCents(c.Query("min"))
	if err != nil {
		return Filter{}, err
	}
	f.MinPriceCents = min

	max, err := dollarsToCents(c.Query("max"))
	if err != nil {
		return Filter{}, err
	}
	f.MaxPriceCents = max

	switch sort := SortKey(c.Query("sort")); sort {
	case "":
		// keep best_deal default
	case SortBestDeal, SortPriceAsc, SortPriceDesc, SortNewest:
		f.Sort = sort
	default:
		// unrecognized sort values fall through to the ascending price order
		f.Sort = SortPriceAsc
	}

	if l := c.Query("limit"); l != "" {
		v, err := strconv.Atoi(l)
		if err != nil {
			return Filter{}, NewInvalidFilter("limit must be an integer")
		}
		f.Limit = v
	}
	return f, nil
}

func dollarsToCents(raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, NewInvalidFilter("price bound must be a number, got " + raw)
	}
	cents := int(math.Round(v * 100))
	return &cents, nil
}

// RespondError maps structured errors to status codes: invalid input is the
// caller's to fix (400), store failures are retryable (503). Shared by the
// brand, quiz and outbound handlers, which surface the same error kinds.
func RespondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
	case IsInvalidFilter(err):
		var e *Error
		errors.As(err, &e)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": string(e.Kind), "message": e.Message})
	case IsStoreUnavailable(err):
		var e *Error
		errors.As(err, &e)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": string(e.Kind), "message": e.Message})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
