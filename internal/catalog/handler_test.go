package catalog

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newTestApp(seed []Product) *fiber.App {
	app := fiber.New()
	h := NewHandler(NewService(NewInMemoryRepository(seed)))
	h.RegisterPublicRoutes(app)
	return app
}

func TestGetProductsDollarBoundsConvertToCents(t *testing.T) {
	app := newTestApp(seedProducts())

	// min=350 dollars -> 35000 cents: only p1 (sale 42000) qualifies
	req := httptest.NewRequest("GET", "/api/v1/products?min=350", nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != 200 {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}
	body, _ := io.ReadAll(res.Body)
	str := string(body)
	if !strings.Contains(str, `"p1"`) {
		t.Fatalf("expected p1 in response: %s", str)
	}
	if strings.Contains(str, `"p2"`) || strings.Contains(str, `"p4"`) {
		t.Fatalf("bound leaked products: %s", str)
	}
}

func TestGetProductsRejectsBadInput(t *testing.T) {
	app := newTestApp(seedProducts())

	cases := []string{
		"/api/v1/products?min=abc",
		"/api/v1/products?max=-5",
		"/api/v1/products?min=500&max=100",
		"/api/v1/products?cat=skis",
		"/api/v1/products?limit=many",
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
		body, _ := io.ReadAll(res.Body)
		if !strings.Contains(string(body), "invalid_filter") {
			t.Fatalf("%s: expected invalid_filter error kind: %s", url, body)
		}
	}
}

func TestGetProductsRouteCategoryAliases(t *testing.T) {
	app := newTestApp(seedProducts())

	// the frontend routes use the plural form
	for _, url := range []string{"/api/v1/products?cat=board", "/api/v1/products?cat=boards"} {
		req := httptest.NewRequest("GET", url, nil)
		res, err := app.Test(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		body, _ := io.ReadAll(res.Body)
		str := string(body)
		if !strings.Contains(str, `"p1"`) || !strings.Contains(str, `"p2"`) || strings.Contains(str, `"p3"`) {
			t.Fatalf("%s: category filter wrong: %s", url, str)
		}
	}

	// cat=all means no predicate, not a sentinel category value
	req := httptest.NewRequest("GET", "/api/v1/products?cat=all", nil)
	res, _ := app.Test(req)
	body, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(body), `"p3"`) {
		t.Fatalf("cat=all must include every category: %s", body)
	}
}

func TestGetProductByID(t *testing.T) {
	app := newTestApp(seedProducts())

	req := httptest.NewRequest("GET", "/api/v1/products/p3", nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != 200 {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}
	body, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(body), "Freeride Boots") {
		t.Fatalf("unexpected body: %s", body)
	}

	req = httptest.NewRequest("GET", "/api/v1/products/nope", nil)
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 got %d", res.StatusCode)
	}
}

func TestGetSavedProducts(t *testing.T) {
	app := newTestApp(seedProducts())

	req := httptest.NewRequest("GET", "/api/v1/products/saved?ids=p1,%20p3,,", nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != 200 {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}
	body, _ := io.ReadAll(res.Body)
	str := string(body)
	if !strings.Contains(str, `"p1"`) || !strings.Contains(str, `"p3"`) {
		t.Fatalf("saved ids missing from response: %s", str)
	}
	if strings.Contains(str, `"p2"`) {
		t.Fatalf("unrequested product leaked: %s", str)
	}
}
