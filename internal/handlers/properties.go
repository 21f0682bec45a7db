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

// PropertyHandler handles property routes
type PropertyHandler struct {
	DB *gorm.DB
}

// PropertyRequest is the create/update request body for a property.
type PropertyRequest struct {
	PropertyName       string              `json:"property_name" validate:"required"`
	FullAddress        string              `json:"full_address" validate:"required"`
	City               string              `json:"city"`
	State              string              `json:"state"`
	Zip                string              `json:"zip"`
	PropertyType       string              `json:"property_type"`
	SquareFootage      *int                `json:"square_footage"`
	AcquisitionPrice   decimal.NullDecimal `json:"acquisition_price"`
	AcquisitionDate    *datatypes.Date     `json:"acquisition_date"`
	Notes              string              `json:"notes"`
	ExternalID         string              `json:"external_id"`
	StreetViewImageURL string              `json:"street_view_image_url"`
}

func (r *PropertyRequest) toModel() *models.Property {
	return &models.Property{
		PropertyName:       r.PropertyName,
		FullAddress:        r.FullAddress,
		City:               r.City,
		State:              r.State,
		Zip:                r.Zip,
		PropertyType:       r.PropertyType,
		SquareFootage:      r.SquareFootage,
		AcquisitionPrice:   r.AcquisitionPrice,
		AcquisitionDate:    r.AcquisitionDate,
		Notes:              r.Notes,
		ExternalID:         r.ExternalID,
		StreetViewImageURL: r.StreetViewImageURL,
	}
}

// ListProperties handles GET /api/properties
// @Summary List properties
// @Description List every property with nested units and rent history
// @Tags Properties
// @Produce json
// @Success 200 {array} models.Property
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /properties [get]
func (h *PropertyHandler) ListProperties(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	properties, err := services.ListProperties(h.DB, uid)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listProperties")
	}
	return c.Status(fiber.StatusOK).JSON(properties)
}

// GetProperty handles GET /api/properties/:id
// @Summary Get a property
// @Description Get one property with nested units and rent history
// @Tags Properties
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} models.Property
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /properties/{id} [get]
func (h *PropertyHandler) GetProperty(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	property, err := services.GetProperty(h.DB, c.Params("id"), uid)
	if err != nil {
		if err == services.ErrNotFound {
			return utils.NotFoundResponse(c, fmt.Sprintf("Property '%s' not found", c.Params("id")))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getProperty")
	}
	return c.Status(fiber.StatusOK).JSON(property)
}

// CreateProperty handles POST /api/properties
// @Summary Create a property
// @Tags Properties
// @Accept json
// @Produce json
// @Param body body PropertyRequest true "Property"
// @Success 201 {object} models.Property
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /properties [post]
func (h *PropertyHandler) CreateProperty(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req PropertyRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	property := req.toModel()
	property.UserID = uid
	if err := services.CreateProperty(h.DB, property); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "createProperty")
	}
	return c.Status(fiber.StatusCreated).JSON(property)
}

// UpdateProperty handles PUT /api/properties/:id
// @Summary Update a property
// @Tags Properties
// @Accept json
// @Produce json
// @Param id path string true "Property ID"
// @Param body body PropertyRequest true "Property"
// @Success 200 {object} models.Property
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /properties/{id} [put]
func (h *PropertyHandler) UpdateProperty(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req PropertyRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	property, err := services.UpdateProperty(h.DB, c.Params("id"), uid, req.toModel())
	if err != nil {
		if err == services.ErrNotFound {
			return utils.NotFoundResponse(c, fmt.Sprintf("Property '%s' not found", c.Params("id")))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateProperty")
	}
	return c.Status(fiber.StatusOK).JSON(property)
}

// DeleteProperty handles DELETE /api/properties/:id
// @Summary Delete a property
// @Description Delete a property and all of its units and rent history
// @Tags Properties
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /properties/{id} [delete]
func (h *PropertyHandler) DeleteProperty(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	if err := services.DeleteProperty(h.DB, c.Params("id"), uid); err != nil {
		if err == services.ErrNotFound {
			return utils.NotFoundResponse(c, fmt.Sprintf("Property '%s' not found", c.Params("id")))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "deleteProperty")
	}
	return utils.MutationSuccessResponse(c, 1)
}
