package api

import (
	"context"
	"time"

	"github.com/bilgisen/ytfeed/internal/logger"
	"github.com/bilgisen/ytfeed/internal/media"
	"github.com/bilgisen/ytfeed/internal/middleware"
	"github.com/bilgisen/ytfeed/internal/models"
	"github.com/gofiber/fiber/v2"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Shared caches may serve listings for an hour and revalidate for two more.
const sharedCacheControl = "s-maxage=3600, stale-while-revalidate=7200"

// Aggregator produces the aggregated video envelope.
type Aggregator interface {
	Aggregate(ctx context.Context) (*models.VideosResponse, error)
}

// Appearances serves the classified consumer views.
type Appearances interface {
	List(ctx context.Context, q media.Query) media.Listing
	ClearCache(ctx context.Context) error
}

type Handlers struct {
	aggregator  Aggregator
	appearances Appearances
}

func NewHandlers(aggregator Aggregator, appearances Appearances) *Handlers {
	return &Handlers{
		aggregator:  aggregator,
		appearances: appearances,
	}
}

// HealthCheck handles GET /api/health
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": Version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// GetVideos handles /api/youtube. Only GET runs the pipeline; every failure
// is reported through the JSON envelope.
func (h *Handlers) GetVideos(c *fiber.Ctx) (err error) {
	c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
	c.Set(fiber.HeaderAccessControlAllowMethods, fiber.MethodGet)
	c.Set(fiber.HeaderCacheControl, sharedCacheControl)

	if c.Method() != fiber.MethodGet {
		return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{
			"error": "Method not allowed",
		})
	}

	log := logger.Get()
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Video aggregation panicked")
			err = c.Status(fiber.StatusInternalServerError).JSON(models.NewErrorResponse("Failed to fetch videos"))
		}
	}()

	resp, aggErr := h.aggregator.Aggregate(c.UserContext())
	if aggErr != nil {
		log.Error().Err(aggErr).Msg("Error fetching YouTube videos")
		return c.Status(fiber.StatusInternalServerError).JSON(models.NewErrorResponse("Failed to fetch videos"))
	}

	return c.JSON(resp)
}

// GetAppearances handles GET /api/appearances
func (h *Handlers) GetAppearances(c *fiber.Ctx) error {
	q, _ := c.Locals(middleware.QueryParamsKey).(*media.Query)
	if q == nil {
		q = &media.Query{}
	}

	c.Set(fiber.HeaderCacheControl, sharedCacheControl)
	return c.JSON(h.appearances.List(c.UserContext(), *q))
}

// ClearCache handles DELETE /api/admin/cache
func (h *Handlers) ClearCache(c *fiber.Ctx) error {
	if err := h.appearances.ClearCache(c.UserContext()); err != nil {
		logger.Get().Error().Err(err).Msg("Error clearing snapshot cache")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to clear cache",
		})
	}

	return c.JSON(fiber.Map{
		"status":  "cleared",
		"message": "Snapshot cache cleared",
	})
}
