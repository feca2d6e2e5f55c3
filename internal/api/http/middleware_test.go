package http

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/fixpoint-labs/repair-shop-service/pkg/util"
)

func TestRequestTimeoutReachesHandlers(t *testing.T) {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), nil, 5*time.Second)

	var hadDeadline bool
	app.Get("/deadline-check", func(c *fiber.Ctx) error {
		// handlers hand c.UserContext() to services, so the deadline must
		// be visible there
		_, hadDeadline = c.UserContext().Deadline()
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/deadline-check", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !hadDeadline {
		t.Error("handler context carries no deadline")
	}
}

func TestRequestTimeoutDisabled(t *testing.T) {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), nil, 0)

	var hadDeadline bool
	app.Get("/deadline-check", func(c *fiber.Ctx) error {
		_, hadDeadline = c.UserContext().Deadline()
		return c.SendStatus(fiber.StatusOK)
	})

	if _, err := app.Test(httptest.NewRequest("GET", "/deadline-check", nil)); err != nil {
		t.Fatalf("request: %v", err)
	}
	if hadDeadline {
		t.Error("deadline set although the timeout is disabled")
	}
}

func TestErrorMiddlewareRendersDomainError(t *testing.T) {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), nil, 0)

	app.Get("/missing", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("ticket", map[string]any{"id": "t-1"})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "NOT_FOUND") {
		t.Errorf("body = %s, want NOT_FOUND error envelope", body)
	}
}
