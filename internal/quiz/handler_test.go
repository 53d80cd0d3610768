package quiz

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newTestApp(seed []Candidate) *fiber.App {
	app := fiber.New()
	h := NewHandler(NewService(NewInMemoryRepository(seed)))
	h.RegisterPublicRoutes(app)
	return app
}

func TestGetRecommendations(t *testing.T) {
	app := newTestApp(seedCandidates())

	req := httptest.NewRequest("GET", "/api/v1/recommendations?cat=board&ability=intermediate&terrain=groomers&flex=medium&budget=500", nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != 200 {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}
	body, _ := io.ReadAll(res.Body)
	str := string(body)
	if !strings.Contains(str, `"score"`) || !strings.Contains(str, `"why"`) {
		t.Fatalf("scored payload missing score/why: %s", str)
	}
	if !strings.Contains(str, "Within your budget") {
		t.Fatalf("expected budget reason in payload: %s", str)
	}
	if strings.Contains(str, `"c3"`) {
		t.Fatalf("boots leaked into a board-only quiz: %s", str)
	}
}

func TestGetRecommendationsValidation(t *testing.T) {
	app := newTestApp(seedCandidates())

	cases := []string{
		"/api/v1/recommendations?cat=skis&ability=beginner&flex=soft&budget=300",
		"/api/v1/recommendations?ability=expert&flex=soft&budget=300",
		"/api/v1/recommendations?ability=beginner&flex=floppy&budget=300",
		"/api/v1/recommendations?ability=beginner&flex=soft&budget=0",
		"/api/v1/recommendations?ability=beginner&flex=soft&budget=lots",
		"/api/v1/recommendations?ability=beginner&flex=soft",
	}
	for _, url := range cases {
		req := httptest.NewRequest("GET", url, nil)
		res, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: request failed: %v", url, err)
		}
		if res.StatusCode != fiber.StatusBadRequest {
			t.Fatalf("%s: expected 400 got %d", url, res.StatusCode)
		}
	}
}

func TestGetRecommendationsLenientTerrain(t *testing.T) {
	app := newTestApp(seedCandidates())

	// unknown terrain values score through the all-mountain fallback rather
	// than failing the request
	req := httptest.NewRequest("GET", "/api/v1/recommendations?ability=beginner&terrain=backcountry&flex=soft&budget=400", nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != 200 {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}
	body, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(body), "All-mountain friendly scoring") {
		t.Fatalf("expected all-mountain fallback reasons: %s", body)
	}
}
