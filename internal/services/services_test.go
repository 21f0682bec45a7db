package services_test

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/propertyflow/propertyflow/internal/models"
	"github.com/propertyflow/propertyflow/internal/services"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const testUser = "00000000-0000-0000-0000-000000000001"

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Property{},
		&models.Unit{},
		&models.MonthlyRentRecord{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func createTestProperty(t *testing.T, db *gorm.DB, userID, name, address string) *models.Property {
	t.Helper()
	prop := &models.Property{
		UserID:       userID,
		PropertyName: name,
		FullAddress:  address,
		City:         "Brooklyn",
		State:        "NY",
		PropertyType: "Multi-family",
	}
	if err := services.CreateProperty(db, prop); err != nil {
		t.Fatalf("Failed to create property: %v", err)
	}
	return prop
}

func TestPropertyCRUD(t *testing.T) {
	db := setupTestDB(t)
	prop := createTestProperty(t, db, testUser, "Building A", "1 Main St")

	if prop.ID == "" {
		t.Fatal("Expected a generated property id")
	}

	fetched, err := services.GetProperty(db, prop.ID, testUser)
	if err != nil {
		t.Fatalf("Failed to get property: %v", err)
	}
	if fetched.PropertyName != "Building A" {
		t.Errorf("Expected property name 'Building A', got %q", fetched.PropertyName)
	}

	updated, err := services.UpdateProperty(db, prop.ID, testUser, &models.Property{
		PropertyName: "Building A Renamed",
		FullAddress:  "1 Main St",
		PropertyType: "Condo",
	})
	if err != nil {
		t.Fatalf("Failed to update property: %v", err)
	}
	if updated.PropertyName != "Building A Renamed" || updated.PropertyType != "Condo" {
		t.Errorf("Update did not apply: %+v", updated)
	}

	if err := services.DeleteProperty(db, prop.ID, testUser); err != nil {
		t.Fatalf("Failed to delete property: %v", err)
	}
	if _, err := services.GetProperty(db, prop.ID, testUser); err != services.ErrNotFound {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestPropertyUserScoping(t *testing.T) {
	db := setupTestDB(t)
	prop := createTestProperty(t, db, testUser, "Building A", "1 Main St")

	otherUser := "00000000-0000-0000-0000-000000000002"
	if _, err := services.GetProperty(db, prop.ID, otherUser); err != services.ErrNotFound {
		t.Errorf("Expected ErrNotFound for foreign user, got %v", err)
	}
	if err := services.DeleteProperty(db, prop.ID, otherUser); err != services.ErrNotFound {
		t.Errorf("Expected ErrNotFound deleting as foreign user, got %v", err)
	}

	list, err := services.ListProperties(db, otherUser)
	if err != nil {
		t.Fatalf("Failed to list properties: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("Expected empty list for foreign user, got %d", len(list))
	}
}

func TestUnitLifecycle(t *testing.T) {
	db := setupTestDB(t)
	prop := createTestProperty(t, db, testUser, "Building A", "1 Main St")

	unit := &models.Unit{
		PropertyID: prop.ID,
		UnitName:   "1A",
		RentPrice:  decimal.NullDecimal{Decimal: decimal.RequireFromString("2100"), Valid: true},
		TenantName: "Jane Doe",
	}
	if err := services.CreateUnit(db, testUser, unit); err != nil {
		t.Fatalf("Failed to create unit: %v", err)
	}

	fetched, err := services.GetUnit(db, unit.ID, testUser)
	if err != nil {
		t.Fatalf("Failed to get unit: %v", err)
	}
	if !fetched.Occupied() {
		t.Error("Expected unit with tenant to be occupied")
	}

	updated, err := services.UpdateUnit(db, unit.ID, testUser, &models.Unit{
		UnitName:   "1A",
		TenantName: "",
	})
	if err != nil {
		t.Fatalf("Failed to update unit: %v", err)
	}
	if updated.Occupied() {
		t.Error("Expected blank tenant to mean vacant")
	}

	if err := services.DeleteUnit(db, unit.ID, testUser); err != nil {
		t.Fatalf("Failed to delete unit: %v", err)
	}
	if _, err := services.GetUnit(db, unit.ID, testUser); err != services.ErrNotFound {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestPropertyDeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	prop := createTestProperty(t, db, testUser, "Building A", "1 Main St")

	unit := &models.Unit{PropertyID: prop.ID, UnitName: "1A"}
	if err := services.CreateUnit(db, testUser, unit); err != nil {
		t.Fatalf("Failed to create unit: %v", err)
	}
	record := &models.MonthlyRentRecord{
		UnitID: unit.ID, Year: 2024, Month: 1,
		Amount: decimal.NullDecimal{Decimal: decimal.RequireFromString("2100"), Valid: true},
	}
	if err := services.UpsertRentRecord(db, testUser, record); err != nil {
		t.Fatalf("Failed to upsert rent record: %v", err)
	}

	if err := services.DeleteProperty(db, prop.ID, testUser); err != nil {
		t.Fatalf("Failed to delete property: %v", err)
	}

	var unitCount, rentCount int64
	db.Model(&models.Unit{}).Count(&unitCount)
	db.Model(&models.MonthlyRentRecord{}).Count(&rentCount)
	if unitCount != 0 || rentCount != 0 {
		t.Errorf("Expected cascade to remove children, got %d units and %d rent records", unitCount, rentCount)
	}
}

func TestRentRecordUpsertConverges(t *testing.T) {
	db := setupTestDB(t)
	prop := createTestProperty(t, db, testUser, "Building A", "1 Main St")
	unit := &models.Unit{PropertyID: prop.ID, UnitName: "1A"}
	if err := services.CreateUnit(db, testUser, unit); err != nil {
		t.Fatalf("Failed to create unit: %v", err)
	}

	first := &models.MonthlyRentRecord{
		UnitID: unit.ID, Year: 2024, Month: 3,
		Amount: decimal.NullDecimal{Decimal: decimal.RequireFromString("1500"), Valid: true},
	}
	if err := services.UpsertRentRecord(db, testUser, first); err != nil {
		t.Fatalf("Failed to upsert rent record: %v", err)
	}
	if first.Method != models.PaymentMethodImport {
		t.Errorf("Expected default payment method, got %q", first.Method)
	}

	second := &models.MonthlyRentRecord{
		UnitID: unit.ID, Year: 2024, Month: 3,
		Amount: decimal.NullDecimal{Decimal: decimal.RequireFromString("1650"), Valid: true},
		Method: "Check",
	}
	if err := services.UpsertRentRecord(db, testUser, second); err != nil {
		t.Fatalf("Failed to upsert conflicting rent record: %v", err)
	}

	records, err := services.ListRentHistory(db, unit.ID, testUser)
	if err != nil {
		t.Fatalf("Failed to list rent history: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected exactly one record per (unit, year, month), got %d", len(records))
	}
	if records[0].Amount.Decimal.String() != "1650" {
		t.Errorf("Expected last writer's amount 1650, got %s", records[0].Amount.Decimal.String())
	}
	if records[0].Method != "Check" {
		t.Errorf("Expected last writer's method, got %q", records[0].Method)
	}
}

func TestUpdateRentRecordByID(t *testing.T) {
	db := setupTestDB(t)
	prop := createTestProperty(t, db, testUser, "Building A", "1 Main St")
	unit := &models.Unit{PropertyID: prop.ID, UnitName: "1A"}
	if err := services.CreateUnit(db, testUser, unit); err != nil {
		t.Fatalf("Failed to create unit: %v", err)
	}

	record := &models.MonthlyRentRecord{
		UnitID: unit.ID, Year: 2024, Month: 5,
		Amount: decimal.NullDecimal{Decimal: decimal.RequireFromString("1500"), Valid: true},
	}
	if err := services.UpsertRentRecord(db, testUser, record); err != nil {
		t.Fatalf("Failed to upsert rent record: %v", err)
	}

	updated, err := services.UpdateRentRecord(db, record.ID, testUser, &models.MonthlyRentRecord{
		Amount: decimal.NullDecimal{Decimal: decimal.RequireFromString("1725"), Valid: true},
		Method: "Zelle",
		Notes:  "late fee waived",
	})
	if err != nil {
		t.Fatalf("Failed to update rent record: %v", err)
	}
	if updated.Amount.Decimal.String() != "1725" || updated.Method != "Zelle" {
		t.Errorf("Unexpected record after update: %+v", updated)
	}
	if updated.Year != 2024 || updated.Month != 5 {
		t.Errorf("Update must not change the record's month, got %d-%d", updated.Year, updated.Month)
	}

	if _, err := services.UpdateRentRecord(db, record.ID, "someone-else", &models.MonthlyRentRecord{}); err != services.ErrNotFound {
		t.Errorf("Expected ErrNotFound for another user's record, got %v", err)
	}
	if _, err := services.UpdateRentRecord(db, "missing", testUser, &models.MonthlyRentRecord{}); err != services.ErrNotFound {
		t.Errorf("Expected ErrNotFound for missing id, got %v", err)
	}
}

func TestPortfolioSummary(t *testing.T) {
	db := setupTestDB(t)
	prop := createTestProperty(t, db, testUser, "Building A", "1 Main St")

	units := []*models.Unit{
		{PropertyID: prop.ID, UnitName: "1A", TenantName: "Jane Doe",
			RentPrice: decimal.NullDecimal{Decimal: decimal.RequireFromString("2000"), Valid: true}},
		{PropertyID: prop.ID, UnitName: "2B", TenantName: "John Roe",
			RentPrice: decimal.NullDecimal{Decimal: decimal.RequireFromString("1000"), Valid: true}},
		{PropertyID: prop.ID, UnitName: "3C"},
	}
	for _, u := range units {
		if err := services.CreateUnit(db, testUser, u); err != nil {
			t.Fatalf("Failed to create unit: %v", err)
		}
	}

	stats, err := services.PortfolioSummary(db, testUser)
	if err != nil {
		t.Fatalf("Failed to compute stats: %v", err)
	}
	if stats.TotalProperties != 1 || stats.TotalUnits != 3 {
		t.Errorf("Unexpected counts: %+v", stats)
	}
	if stats.OccupiedUnits != 2 || stats.VacantUnits != 1 {
		t.Errorf("Unexpected occupancy: %+v", stats)
	}
	if stats.TotalMonthlyRent.String() != "3000" {
		t.Errorf("Expected total rent 3000, got %s", stats.TotalMonthlyRent.String())
	}
	if stats.AverageRent.String() != "1500" {
		t.Errorf("Expected average rent 1500, got %s", stats.AverageRent.String())
	}
}
