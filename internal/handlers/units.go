package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/propertyflow/propertyflow/internal/models"
	"github.com/propertyflow/propertyflow/internal/services"
	"github.com/propertyflow/propertyflow/internal/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UnitHandler handles unit routes
type UnitHandler struct {
	DB *gorm.DB
}

// UnitRequest is the create/update request body for a unit.
type UnitRequest struct {
	PropertyID string              `json:"property_id"`
	UnitName   string              `json:"unit_name" validate:"required"`
	RentPrice  decimal.NullDecimal `json:"rent_price"`
	TenantName string              `json:"tenant_name"`
	UnitNotes  string              `json:"unit_notes"`
}

func (r *UnitRequest) toModel() *models.Unit {
	return &models.Unit{
		PropertyID: r.PropertyID,
		UnitName:   r.UnitName,
		RentPrice:  r.RentPrice,
		TenantName: r.TenantName,
		UnitNotes:  r.UnitNotes,
	}
}

// ListUnits handles GET /api/properties/:id/units
// @Summary List units of a property
// @Tags Units
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {array} models.Unit
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /properties/{id}/units [get]
func (h *UnitHandler) ListUnits(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	units, err := services.ListUnits(h.DB, c.Params("id"), uid)
	if err != nil {
		if err == services.ErrNotFound {
			return utils.NotFoundResponse(c, fmt.Sprintf("Property '%s' not found", c.Params("id")))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listUnits")
	}
	return c.Status(fiber.StatusOK).JSON(units)
}

// GetUnit handles GET /api/units/:id
// @Summary Get a unit
// @Tags Units
// @Produce json
// @Param id path string true "Unit ID"
// @Success 200 {object} models.Unit
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /units/{id} [get]
func (h *UnitHandler) GetUnit(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	unit, err := services.GetUnit(h.DB, c.Params("id"), uid)
	if err != nil {
		if err == services.ErrNotFound {
			return utils.NotFoundResponse(c, fmt.Sprintf("Unit '%s' not found", c.Params("id")))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getUnit")
	}
	return c.Status(fiber.StatusOK).JSON(unit)
}

// CreateUnit handles POST /api/properties/:id/units
// @Summary Create a unit under a property
// @Tags Units
// @Accept json
// @Produce json
// @Param id path string true "Property ID"
// @Param body body UnitRequest true "Unit"
// @Success 201 {object} models.Unit
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /properties/{id}/units [post]
func (h *UnitHandler) CreateUnit(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req UnitRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	unit := req.toModel()
	unit.PropertyID = c.Params("id")
	if err := services.CreateUnit(h.DB, uid, unit); err != nil {
		if err == services.ErrNotFound {
			return utils.NotFoundResponse(c, fmt.Sprintf("Property '%s' not found", c.Params("id")))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "createUnit")
	}
	return c.Status(fiber.StatusCreated).JSON(unit)
}

// UpdateUnit handles PUT /api/units/:id
// @Summary Update a unit
// @Tags Units
// @Accept json
// @Produce json
// @Param id path string true "Unit ID"
// @Param body body UnitRequest true "Unit"
// @Success 200 {object} models.Unit
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /units/{id} [put]
func (h *UnitHandler) UpdateUnit(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req UnitRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	unit, err := services.UpdateUnit(h.DB, c.Params("id"), uid, req.toModel())
	if err != nil {
		if err == services.ErrNotFound {
			return utils.NotFoundResponse(c, fmt.Sprintf("Unit '%s' not found", c.Params("id")))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateUnit")
	}
	return c.Status(fiber.StatusOK).JSON(unit)
}

// DeleteUnit handles DELETE /api/units/:id
// @Summary Delete a unit and its rent history
// @Tags Units
// @Produce json
// @Param id path string true "Unit ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /units/{id} [delete]
func (h *UnitHandler) DeleteUnit(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	if err := services.DeleteUnit(h.DB, c.Params("id"), uid); err != nil {
		if err == services.ErrNotFound {
			return utils.NotFoundResponse(c, fmt.Sprintf("Unit '%s' not found", c.Params("id")))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "deleteUnit")
	}
	return utils.MutationSuccessResponse(c, 1)
}
