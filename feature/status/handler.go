package status

import (
	"steam-ledger/core/logger"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for the sync runner.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the status routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/status", h.HandleStatus)
	app.Get("/events", h.HandleEvents)
	app.Post("/sync", h.HandleSync)
}

// HandleStatus reports the runner state.
// @Summary Sync Status
// @Description Returns whether a pass is running, a summary of the last pass and the row count of every table.
// @Tags sync
// @Produce json
// @Success 200 {object} Status
// @Router /status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	return c.JSON(h.service.Status(c.Context()))
}

// HandleEvents lists the events of the last pass.
// @Summary Last Pass Events
// @Description Returns the release date changes and releases noticed by the last pass, in emission order.
// @Tags sync
// @Produce json
// @Success 200 {array} models.SyncEvent
// @Router /events [get]
func (h *Handler) HandleEvents(c *fiber.Ctx) error {
	return c.JSON(h.service.Events())
}

// HandleSync starts a pass in the background.
// @Summary Start Sync
// @Description Starts a full sync pass in the background. Fails with 409 while a pass is running.
// @Tags sync
// @Produce json
// @Success 202 {object} map[string]string "Started"
// @Failure 409 {object} map[string]string "Busy"
// @Router /sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if !h.service.Trigger() {
		l.Warn("Sync requested while a pass is running")
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": ErrBusy.Error()})
	}

	l.Info("Sync pass triggered")
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "started"})
}
