package services

import (
	"github.com/propertyflow/propertyflow/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PortfolioStats is a snapshot of the user's portfolio.
type PortfolioStats struct {
	TotalProperties  int64           `json:"totalProperties"`
	TotalUnits       int64           `json:"totalUnits"`
	OccupiedUnits    int64           `json:"occupiedUnits"`
	VacantUnits      int64           `json:"vacantUnits"`
	OccupancyRate    float64         `json:"occupancyRate"`
	TotalMonthlyRent decimal.Decimal `json:"totalMonthlyRent"`
	AverageRent      decimal.Decimal `json:"averageRent"`
}

// PortfolioSummary aggregates counts and rent totals across every
// property the user owns. Occupancy counts units with a tenant name;
// rent totals sum the listed rent price of occupied units.
func PortfolioSummary(db *gorm.DB, userID string) (*PortfolioStats, error) {
	stats := &PortfolioStats{}

	err := db.Model(&models.Property{}).
		Where("user_id = ?", userID).
		Count(&stats.TotalProperties).Error
	if err != nil {
		return nil, err
	}

	var units []models.Unit
	err = db.
		Joins("JOIN properties ON properties.id = units.property_id").
		Where("properties.user_id = ?", userID).
		Find(&units).Error
	if err != nil {
		return nil, err
	}

	stats.TotalUnits = int64(len(units))
	rented := int64(0)
	for _, unit := range units {
		if !unit.Occupied() {
			continue
		}
		stats.OccupiedUnits++
		if unit.RentPrice.Valid {
			stats.TotalMonthlyRent = stats.TotalMonthlyRent.Add(unit.RentPrice.Decimal)
			rented++
		}
	}
	stats.VacantUnits = stats.TotalUnits - stats.OccupiedUnits
	if stats.TotalUnits > 0 {
		stats.OccupancyRate = float64(stats.OccupiedUnits) / float64(stats.TotalUnits)
	}
	if rented > 0 {
		stats.AverageRent = stats.TotalMonthlyRent.Div(decimal.NewFromInt(rented)).Round(2)
	}
	return stats, nil
}
