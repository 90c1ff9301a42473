package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/five82/atlas/internal/api"
)

// Handler serves the profile service routes.
type Handler struct {
	Store  *Store
	Logger *zap.Logger
}

// New builds the fiber app with every /api route registered.
func New(db *gorm.DB, logger *zap.Logger) *fiber.App {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{Store: &Store{DB: db}, Logger: logger}

	app := fiber.New(fiber.Config{
		AppName:               "atlas",
		DisableStartupMessage: true,
		ErrorHandler:          h.errorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Header: "X-Request-ID"}))
	app.Use(h.accessLog)

	app.Post(api.PathSaveCountry, h.SaveCountry)
	app.Post(api.PathUpdateCount, h.UpdateCountryCount)
	app.Get(api.PathSavedCountries, h.GetSavedCountries)
	app.Get(api.PathNewestUser, h.GetNewestUser)
	app.Post(api.PathAddUser, h.AddUser)
	return app
}

// Run serves on listen until ctx is cancelled.
func Run(ctx context.Context, listen string, db *gorm.DB, logger *zap.Logger) error {
	app := New(db, logger)
	go func() {
		<-ctx.Done()
		_ = app.ShutdownWithTimeout(5 * time.Second)
	}()
	if logger != nil {
		logger.Info("profile service listening", zap.String("listen", listen))
	}
	return app.Listen(listen)
}

func (h *Handler) accessLog(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	h.Logger.Debug("request",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", c.Response().StatusCode()),
		zap.Any("request_id", c.Locals("requestid")),
		zap.Duration("elapsed", time.Since(start)))
	return err
}

// errorHandler renders every failure as {"error": ...}.
func (h *Handler) errorHandler(c *fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	}
	if status >= http.StatusInternalServerError {
		h.Logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func countryName(c *fiber.Ctx) (string, error) {
	var input struct {
		CountryName string `json:"country_name"`
	}
	if err := c.BodyParser(&input); err != nil {
		return "", fiber.NewError(http.StatusBadRequest, "Invalid input")
	}
	name := strings.TrimSpace(input.CountryName)
	if name == "" {
		return "", fiber.NewError(http.StatusBadRequest, "country_name is required")
	}
	return name, nil
}

// SaveCountry handles POST /api/save-one-country.
func (h *Handler) SaveCountry(c *fiber.Ctx) error {
	name, err := countryName(c)
	if err != nil {
		return err
	}
	if err := h.Store.SaveCountry(name); err != nil {
		return err
	}
	return c.SendString("Success! Country saved.")
}

// UpdateCountryCount handles POST /api/update-one-country-count.
func (h *Handler) UpdateCountryCount(c *fiber.Ctx) error {
	name, err := countryName(c)
	if err != nil {
		return err
	}
	count, err := h.Store.IncrementCount(name)
	if err != nil {
		return err
	}
	return c.JSON(api.ViewCount{Count: count})
}

// GetSavedCountries handles GET /api/get-all-saved-countries.
func (h *Handler) GetSavedCountries(c *fiber.Ctx) error {
	rows, err := h.Store.SavedCountries()
	if err != nil {
		return err
	}
	out := make([]api.SavedCountry, 0, len(rows))
	for _, row := range rows {
		out = append(out, api.SavedCountry{CountryName: row.CountryName})
	}
	return c.JSON(out)
}

// GetNewestUser handles GET /api/get-newest-user.
func (h *Handler) GetNewestUser(c *fiber.Ctx) error {
	rows, err := h.Store.NewestUsers()
	if err != nil {
		return err
	}
	out := make([]api.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, api.User{Name: row.Name, CountryName: row.CountryName, Email: row.Email, Bio: row.Bio})
	}
	return c.JSON(out)
}

// AddUser handles POST /api/add-one-user.
func (h *Handler) AddUser(c *fiber.Ctx) error {
	var input api.User
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(http.StatusBadRequest, "Invalid input")
	}
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.CountryName) == "" {
		return fiber.NewError(http.StatusBadRequest, "name, email and country_name are required")
	}
	user := User{
		Name:        strings.TrimSpace(input.Name),
		CountryName: strings.TrimSpace(input.CountryName),
		Email:       strings.TrimSpace(input.Email),
		Bio:         input.Bio,
	}
	if err := h.Store.AddUser(&user); err != nil {
		return err
	}
	return c.SendString("Success! User added.")
}
