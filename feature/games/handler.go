package games

import (
	"context"

	"steam-ledger/core/logger"
	"steam-ledger/feature/games/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Reader is the store surface the handlers read.
type Reader interface {
	Details(ctx context.Context, id models.GameId) (*models.GameDetails, error)
	LatestPlaytime(ctx context.Context, id models.GameId) (*models.PlaytimeRecord, error)
	ReleaseUpdates(ctx context.Context, id models.GameId) ([]models.ReleaseUpdateLogEntry, error)
	OwnedIDs(ctx context.Context) ([]models.GameId, error)
	Wishlist(ctx context.Context) ([]models.WishlistedGame, error)
	IgnoredIDs(ctx context.Context) ([]models.GameId, error)
	BlacklistedIDs(ctx context.Context, threshold int) ([]models.GameId, error)
}

// GameView is everything stored about one game.
type GameView struct {
	AppID          models.GameId                  `json:"app_id"`
	Details        *models.GameDetails            `json:"details,omitempty"`
	LatestPlaytime *models.PlaytimeRecord         `json:"latest_playtime,omitempty"`
	ReleaseUpdates []models.ReleaseUpdateLogEntry `json:"release_updates"`
}

// Handler handles HTTP requests for the stored ledger.
type Handler struct {
	reader    Reader
	threshold int
	logger    *zap.Logger
}

// NewHandler creates a handler. threshold is the blacklist failure count.
func NewHandler(reader Reader, threshold int, logger *zap.Logger) *Handler {
	return &Handler{reader: reader, threshold: threshold, logger: logger}
}

// RegisterRoutes registers the ledger routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/games/:id", h.HandleGame)
	app.Get("/owned", h.HandleOwned)
	app.Get("/wishlist", h.HandleWishlist)
	app.Get("/ignored", h.HandleIgnored)
	app.Get("/blacklist", h.HandleBlacklist)
}

func (h *Handler) storeError(c *fiber.Ctx, err error) error {
	logger.WithRayID(h.logger, c).Error("Store read failed", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

// HandleGame returns what is stored about one game.
// @Summary Game
// @Description Returns the stored details, the latest playtime row and the release date history of a game.
// @Tags games
// @Produce json
// @Param id path int true "App id"
// @Success 200 {object} GameView
// @Failure 400 {object} map[string]string "Invalid id"
// @Failure 404 {object} map[string]string "Unknown game"
// @Router /games/{id} [get]
func (h *Handler) HandleGame(c *fiber.Ctx) error {
	id, err := models.ParseGameId(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ctx := c.Context()
	view := GameView{AppID: id}
	if view.Details, err = h.reader.Details(ctx, id); err != nil {
		return h.storeError(c, err)
	}
	if view.LatestPlaytime, err = h.reader.LatestPlaytime(ctx, id); err != nil {
		return h.storeError(c, err)
	}
	if view.ReleaseUpdates, err = h.reader.ReleaseUpdates(ctx, id); err != nil {
		return h.storeError(c, err)
	}

	if view.Details == nil && view.LatestPlaytime == nil && len(view.ReleaseUpdates) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "nothing stored for game " + id.String()})
	}
	if view.ReleaseUpdates == nil {
		view.ReleaseUpdates = []models.ReleaseUpdateLogEntry{}
	}
	return c.JSON(view)
}

// HandleOwned lists the owned app ids.
// @Summary Owned Games
// @Tags games
// @Produce json
// @Success 200 {array} int
// @Router /owned [get]
func (h *Handler) HandleOwned(c *fiber.Ctx) error {
	return h.ids(c, h.reader.OwnedIDs)
}

// HandleWishlist lists the stored wishlist.
// @Summary Wishlist
// @Description Returns every wishlist row. Rows with a deleted date are no longer wishlisted.
// @Tags games
// @Produce json
// @Success 200 {array} models.WishlistedGame
// @Router /wishlist [get]
func (h *Handler) HandleWishlist(c *fiber.Ctx) error {
	rows, err := h.reader.Wishlist(c.Context())
	if err != nil {
		return h.storeError(c, err)
	}
	if rows == nil {
		rows = []models.WishlistedGame{}
	}
	return c.JSON(rows)
}

// HandleIgnored lists the ignored app ids.
// @Summary Ignored Games
// @Tags games
// @Produce json
// @Success 200 {array} int
// @Router /ignored [get]
func (h *Handler) HandleIgnored(c *fiber.Ctx) error {
	return h.ids(c, h.reader.IgnoredIDs)
}

// HandleBlacklist lists the app ids no longer looked up.
// @Summary Blacklisted Games
// @Tags games
// @Produce json
// @Success 200 {array} int
// @Router /blacklist [get]
func (h *Handler) HandleBlacklist(c *fiber.Ctx) error {
	return h.ids(c, func(ctx context.Context) ([]models.GameId, error) {
		return h.reader.BlacklistedIDs(ctx, h.threshold)
	})
}

func (h *Handler) ids(c *fiber.Ctx, list func(context.Context) ([]models.GameId, error)) error {
	ids, err := list(c.Context())
	if err != nil {
		return h.storeError(c, err)
	}
	if ids == nil {
		ids = []models.GameId{}
	}
	return c.JSON(ids)
}
