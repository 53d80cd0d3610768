package outbound

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/powderline/snowgear-backend/internal/catalog"
)

const sessionCookie = "sb_session"

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/out/:id", h.redirect)
}

func (h *Handler) redirect(c *fiber.Ctx) error {
	id := c.Params("id")

	target, err := h.service.Resolve(id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
		}
		return catalog.RespondError(c, err)
	}

	sessionID := c.Cookies(sessionCookie)
	if sessionID == "" {
		sessionID = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     sessionCookie,
			Value:    sessionID,
			Path:     "/",
			MaxAge:   int((30 * 24 * time.Hour).Seconds()),
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}

	// best-effort click log; the redirect proceeds either way
	_ = h.service.LogClick(ClickEvent{
		SessionID:    sessionID,
		ProductID:    target.ProductID,
		MerchantID:   target.MerchantID,
		ReferrerPath: c.Get(fiber.HeaderReferer),
		UserAgent:    c.Get(fiber.HeaderUserAgent),
	})

	dest := target.Destination()
	if dest == "" {
		// nothing to link out to; fall back to the product detail page
		return c.Redirect("/gear/"+target.ProductID, fiber.StatusFound)
	}
	return c.Redirect(dest, fiber.StatusFound)
}
