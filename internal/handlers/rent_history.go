package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/propertyflow/propertyflow/internal/models"
	"github.com/propertyflow/propertyflow/internal/services"
	"github.com/propertyflow/propertyflow/internal/utils"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RentHistoryHandler handles monthly rent history routes
type RentHistoryHandler struct {
	DB *gorm.DB
}

// RentRecordRequest is the upsert request body for a rent record.
type RentRecordRequest struct {
	Year     int                 `json:"year" validate:"required"`
	Month    int                 `json:"month" validate:"required,min=1,max=12"`
	RentDate *datatypes.Date     `json:"rent_date"`
	Amount   decimal.NullDecimal `json:"amount"`
	Method   string              `json:"method"`
	Notes    string              `json:"notes"`
}

// ListRentHistory handles GET /api/units/:id/rent-history
// @Summary List rent history of a unit
// @Tags RentHistory
// @Produce json
// @Param id path string true "Unit ID"
// @Success 200 {array} models.MonthlyRentRecord
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /units/{id}/rent-history [get]
func (h *RentHistoryHandler) ListRentHistory(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	records, err := services.ListRentHistory(h.DB, c.Params("id"), uid)
	if err != nil {
		if err == services.ErrNotFound {
			return utils.NotFoundResponse(c, fmt.Sprintf("Unit '%s' not found", c.Params("id")))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listRentHistory")
	}
	return c.Status(fiber.StatusOK).JSON(records)
}

// UpsertRentRecord handles POST /api/units/:id/rent-history
// @Summary Record rent for a month
// @Description Creates a rent record, or replaces the existing record for the same unit, year, and month
// @Tags RentHistory
// @Accept json
// @Produce json
// @Param id path string true "Unit ID"
// @Param body body RentRecordRequest true "Rent record"
// @Success 200 {object} models.MonthlyRentRecord
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /units/{id}/rent-history [post]
func (h *RentHistoryHandler) UpsertRentRecord(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req RentRecordRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	record := &models.MonthlyRentRecord{
		UnitID:   c.Params("id"),
		Year:     req.Year,
		Month:    req.Month,
		RentDate: req.RentDate,
		Amount:   req.Amount,
		Method:   req.Method,
		Notes:    req.Notes,
	}
	if err := services.UpsertRentRecord(h.DB, uid, record); err != nil {
		if err == services.ErrNotFound {
			return utils.NotFoundResponse(c, fmt.Sprintf("Unit '%s' not found", c.Params("id")))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "upsertRentRecord")
	}
	return c.Status(fiber.StatusOK).JSON(record)
}

// RentRecordUpdateRequest edits the payment fields of an existing rent
// record. Year and month are not editable.
type RentRecordUpdateRequest struct {
	RentDate *datatypes.Date     `json:"rent_date"`
	Amount   decimal.NullDecimal `json:"amount"`
	Method   string              `json:"method"`
	Notes    string              `json:"notes"`
}

// UpdateRentRecord handles PUT /api/rent-history/:id
// @Summary Update a rent record
// @Description Edits the date, amount, method, and notes of an existing rent record
// @Tags RentHistory
// @Accept json
// @Produce json
// @Param id path string true "Rent record ID"
// @Param body body RentRecordUpdateRequest true "Rent record fields"
// @Success 200 {object} models.MonthlyRentRecord
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /rent-history/{id} [put]
func (h *RentHistoryHandler) UpdateRentRecord(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req RentRecordUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	record, err := services.UpdateRentRecord(h.DB, c.Params("id"), uid, &models.MonthlyRentRecord{
		RentDate: req.RentDate,
		Amount:   req.Amount,
		Method:   req.Method,
		Notes:    req.Notes,
	})
	if err != nil {
		if err == services.ErrNotFound {
			return utils.NotFoundResponse(c, fmt.Sprintf("Rent record '%s' not found", c.Params("id")))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateRentRecord")
	}
	return c.Status(fiber.StatusOK).JSON(record)
}

// DeleteRentRecord handles DELETE /api/rent-history/:id
// @Summary Delete a rent record
// @Tags RentHistory
// @Produce json
// @Param id path string true "Rent record ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /rent-history/{id} [delete]
func (h *RentHistoryHandler) DeleteRentRecord(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	if err := services.DeleteRentRecord(h.DB, c.Params("id"), uid); err != nil {
		if err == services.ErrNotFound {
			return utils.NotFoundResponse(c, fmt.Sprintf("Rent record '%s' not found", c.Params("id")))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "deleteRentRecord")
	}
	return utils.MutationSuccessResponse(c, 1)
}
