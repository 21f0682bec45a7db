package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/propertyflow/propertyflow/internal/services"
	"github.com/propertyflow/propertyflow/internal/utils"
	"gorm.io/gorm"
)

// StatsHandler handles portfolio statistics routes
type StatsHandler struct {
	DB *gorm.DB
}

// PortfolioSummary handles GET /api/dashboard/stats
// @Summary Portfolio summary statistics
// @Description Counts, occupancy, and rent totals across the whole portfolio
// @Tags Stats
// @Produce json
// @Success 200 {object} services.PortfolioStats
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /dashboard/stats [get]
func (h *StatsHandler) PortfolioSummary(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	stats, err := services.PortfolioSummary(h.DB, uid)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "portfolioSummary")
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}
