package rest

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/patrickmn/go-cache"

	"github.com/mitaka/regintake/internal/domain"
	"github.com/mitaka/regintake/internal/usecase"
)

const (
	registrationsCacheKey = "registrations"
	csvDownloadName       = "registrations.csv"
)

type Handler struct {
	registration *usecase.RegistrationUsecase
	export       *usecase.ExportUsecase
	csvPath      string
	cache        *cache.Cache
}

func NewHandler(
	registration *usecase.RegistrationUsecase,
	export *usecase.ExportUsecase,
	csvPath string,
) *Handler {
	return &Handler{
		registration: registration,
		export:       export,
		csvPath:      csvPath,
		cache:        cache.New(10*time.Second, time.Minute),
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/register", h.handleRegister)
	e.GET("/admin/registrations", h.handleListRegistrations)
	e.GET("/admin/export-csv", h.handleExportCSV)
}

func (h *Handler) handleRegister(c echo.Context) error {
	ctx := c.Request().Context()

	var fields map[string]string
	err := c.Bind(&fields)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	reg, err := h.registration.Register(ctx, fields)
	if err != nil {
		slog.Error("registration append failed",
			slog.String("error", err.Error()),
			slog.String("module", "rest"),
		)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	h.cache.Delete(registrationsCacheKey)

	// The record is durable at this point; export freshness never
	// decides the response. Refresh logs its own failures.
	_ = h.export.Refresh(ctx)

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Registration successful",
		"id":      reg.ID,
	})
}

func (h *Handler) handleListRegistrations(c echo.Context) error {
	ctx := c.Request().Context()

	if cached, ok := h.cache.Get(registrationsCacheKey); ok {
		return c.JSON(http.StatusOK, cached.(domain.Collection))
	}

	regs, err := h.registration.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	h.cache.Set(registrationsCacheKey, regs, cache.DefaultExpiration)

	return c.JSON(http.StatusOK, regs)
}

func (h *Handler) handleExportCSV(c echo.Context) error {
	if _, err := os.Stat(h.csvPath); err != nil {
		notFound := domain.NotFoundError{Resource: "export"}
		return c.JSON(http.StatusNotFound, echo.Map{"error": notFound.Error()})
	}
	return c.Attachment(h.csvPath, csvDownloadName)
}
