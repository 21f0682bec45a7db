package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/propertyflow/propertyflow/internal/csvio"
	"github.com/propertyflow/propertyflow/internal/services"
	"github.com/propertyflow/propertyflow/internal/utils"
	"gorm.io/gorm"
)

// TransferHandler handles CSV import and export routes
type TransferHandler struct {
	DB *gorm.DB
}

// ImportRequest carries the raw CSV text to validate or import.
type ImportRequest struct {
	CSV string `json:"csv" validate:"required"`
}

// ValidateImport handles POST /api/import/validate
// @Summary Validate a CSV file
// @Description Parses and validates CSV text without writing anything
// @Tags Transfer
// @Accept json
// @Produce json
// @Param body body ImportRequest true "CSV payload"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /import/validate [post]
func (h *TransferHandler) ValidateImport(c *fiber.Ctx) error {
	if _, err := userID(c); err != nil {
		return err
	}

	var req ImportRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	validRows, errs, err := services.ValidateImport(req.CSV)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "validateImport")
	}
	if errs == nil {
		errs = []string{}
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"validRows": validRows,
		"errors":    errs,
	})
}

// RunImport handles POST /api/import
// @Summary Import a CSV file
// @Description Validates CSV text and reconciles it into properties, units, and rent history. A file with any validation error is rejected whole.
// @Tags Transfer
// @Accept json
// @Produce json
// @Param body body ImportRequest true "CSV payload"
// @Success 200 {object} csvio.Summary
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /import [post]
func (h *TransferHandler) RunImport(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req ImportRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	summary, err := services.RunImport(h.DB, uid, req.CSV)
	if err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  fiber.StatusBadRequest,
				"message": vErr.Error(),
				"errors":  vErr.Errors,
				"ok":      false,
			})
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "runImport")
	}
	return c.Status(fiber.StatusOK).JSON(summary)
}

// ExportProperties handles GET /api/export/properties
// @Summary Export the full portfolio as CSV
// @Tags Transfer
// @Produce text/csv
// @Success 200 {string} string
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /export/properties [get]
func (h *TransferHandler) ExportProperties(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	out, err := services.ExportProperties(h.DB, uid)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "exportProperties")
	}
	return sendCSV(c, "properties_full.csv", out)
}

// ExportPropertiesUnits handles GET /api/export/properties-units
// @Summary Export properties and units as CSV
// @Tags Transfer
// @Produce text/csv
// @Success 200 {string} string
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /export/properties-units [get]
func (h *TransferHandler) ExportPropertiesUnits(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	out, err := services.ExportPropertiesUnits(h.DB, uid)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "exportPropertiesUnits")
	}
	return sendCSV(c, "properties_units.csv", out)
}

// ExportRentHistory handles GET /api/export/rent-history
// @Summary Export rent history as CSV
// @Tags Transfer
// @Produce text/csv
// @Success 200 {string} string
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /export/rent-history [get]
func (h *TransferHandler) ExportRentHistory(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	out, err := services.ExportRentHistory(h.DB, uid)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "exportRentHistory")
	}
	return sendCSV(c, "rent_history.csv", out)
}

// ImportTemplate handles GET /api/templates/import
// @Summary Download the property import CSV template
// @Tags Transfer
// @Produce text/csv
// @Success 200 {string} string
// @Router /templates/import [get]
func (h *TransferHandler) ImportTemplate(c *fiber.Ctx) error {
	return sendCSV(c, "import_template.csv", csvio.ImportTemplate())
}

// RentHistoryTemplate handles GET /api/templates/rent-history
// @Summary Download the rent history CSV template
// @Tags Transfer
// @Produce text/csv
// @Success 200 {string} string
// @Router /templates/rent-history [get]
func (h *TransferHandler) RentHistoryTemplate(c *fiber.Ctx) error {
	return sendCSV(c, "rent_history_template.csv", csvio.RentHistoryTemplate())
}

func sendCSV(c *fiber.Ctx, filename, body string) error {
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.SendString(body)
}
