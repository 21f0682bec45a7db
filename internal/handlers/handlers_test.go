package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/propertyflow/propertyflow/internal/config"
	"github.com/propertyflow/propertyflow/internal/handlers"
	"github.com/propertyflow/propertyflow/internal/middleware"
	"github.com/propertyflow/propertyflow/internal/models"
	"github.com/propertyflow/propertyflow/internal/services"
	"github.com/propertyflow/propertyflow/internal/types"
	"gorm.io/gorm"
)

const testUser = "00000000-0000-0000-0000-000000000001"

func testConfig() *config.Config {
	return &config.Config{
		AppPassword:     "open-sesame",
		SessionSecret:   "test-secret-key",
		SessionTTLHours: 1,
		MasterUserID:    testUser,
		MasterUserEmail: "owner@example.com",
	}
}

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

// setupApp wires the full route surface against a test database.
func setupApp(t *testing.T) (*fiber.App, *gorm.DB, *config.Config) {
	db := setupTestDB(t)
	cfg := testConfig()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*types.CustomError); ok {
				code = e.Code
			}
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"status":  code,
				"message": err.Error(),
				"ok":      false,
			})
		},
	})

	authHandler := &handlers.AuthHandler{Cfg: cfg}
	propertyHandler := &handlers.PropertyHandler{DB: db}
	unitHandler := &handlers.UnitHandler{DB: db}
	rentHandler := &handlers.RentHistoryHandler{DB: db}
	transferHandler := &handlers.TransferHandler{DB: db}
	statsHandler := &handlers.StatsHandler{DB: db}

	api := app.Group("/api")
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/logout", authHandler.Logout)
	api.Get("/auth/session", middleware.AuthUser(cfg), authHandler.Session)

	authed := api.Group("", middleware.AuthUser(cfg))
	authed.Get("/properties", propertyHandler.ListProperties)
	authed.Post("/properties", propertyHandler.CreateProperty)
	authed.Get("/properties/:id", propertyHandler.GetProperty)
	authed.Put("/properties/:id", propertyHandler.UpdateProperty)
	authed.Delete("/properties/:id", propertyHandler.DeleteProperty)
	authed.Get("/properties/:id/units", unitHandler.ListUnits)
	authed.Post("/properties/:id/units", unitHandler.CreateUnit)
	authed.Get("/units/:id", unitHandler.GetUnit)
	authed.Put("/units/:id", unitHandler.UpdateUnit)
	authed.Delete("/units/:id", unitHandler.DeleteUnit)
	authed.Get("/units/:id/rent-history", rentHandler.ListRentHistory)
	authed.Post("/units/:id/rent-history", rentHandler.UpsertRentRecord)
	authed.Put("/rent-history/:id", rentHandler.UpdateRentRecord)
	authed.Delete("/rent-history/:id", rentHandler.DeleteRentRecord)
	authed.Post("/import/validate", transferHandler.ValidateImport)
	authed.Post("/import", transferHandler.RunImport)
	authed.Get("/export/properties", transferHandler.ExportProperties)
	authed.Get("/templates/import", transferHandler.ImportTemplate)
	authed.Get("/dashboard/stats", statsHandler.PortfolioSummary)

	return app, db, cfg
}

func sessionCookie(t *testing.T, cfg *config.Config) *http.Cookie {
	t.Helper()
	token, _, err := services.IssueSession(cfg)
	if err != nil {
		t.Fatalf("Failed to issue session: %v", err)
	}
	return &http.Cookie{Name: services.SessionCookieName, Value: token}
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, cookie *http.Cookie) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req, int(5*time.Second/time.Millisecond))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}

func TestLoginIssuesCookie(t *testing.T) {
	app, _, _ := setupApp(t)

	resp := doJSON(t, app, "POST", "/api/auth/login", map[string]string{"password": "open-sesame"}, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var found bool
	for _, c := range resp.Cookies() {
		if c.Name == services.SessionCookieName && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("Expected a session cookie on successful login")
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	app, _, _ := setupApp(t)

	resp := doJSON(t, app, "POST", "/api/auth/login", map[string]string{"password": "nope"}, nil)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", resp.StatusCode)
	}
}

func TestRoutesRequireSession(t *testing.T) {
	app, _, _ := setupApp(t)

	resp := doJSON(t, app, "GET", "/api/properties", nil, nil)
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("Expected 403 without cookie, got %d", resp.StatusCode)
	}

	bad := &http.Cookie{Name: services.SessionCookieName, Value: "tampered"}
	resp = doJSON(t, app, "GET", "/api/properties", nil, bad)
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("Expected 403 with invalid cookie, got %d", resp.StatusCode)
	}
}

func TestPropertyCRUDOverHTTP(t *testing.T) {
	app, _, cfg := setupApp(t)
	cookie := sessionCookie(t, cfg)

	resp := doJSON(t, app, "POST", "/api/properties", map[string]interface{}{
		"property_name": "Building A",
		"full_address":  "1 Main St, Brooklyn, NY 11212",
		"city":          "Brooklyn",
		"state":         "NY",
		"property_type": "Multi-family",
	}, cookie)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}
	var created models.Property
	decodeBody(t, resp, &created)
	if created.ID == "" || created.UserID != testUser {
		t.Fatalf("Unexpected created property: %+v", created)
	}

	resp = doJSON(t, app, "GET", "/api/properties/"+created.ID, nil, cookie)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, "PUT", "/api/properties/"+created.ID, map[string]interface{}{
		"property_name": "Building A Renamed",
		"full_address":  "1 Main St, Brooklyn, NY 11212",
	}, cookie)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var updated models.Property
	decodeBody(t, resp, &updated)
	if updated.PropertyName != "Building A Renamed" {
		t.Errorf("Update did not apply: %+v", updated)
	}

	resp = doJSON(t, app, "DELETE", "/api/properties/"+created.ID, nil, cookie)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, "GET", "/api/properties/"+created.ID, nil, cookie)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", resp.StatusCode)
	}
}

func TestCreatePropertyValidatesBody(t *testing.T) {
	app, _, cfg := setupApp(t)
	cookie := sessionCookie(t, cfg)

	resp := doJSON(t, app, "POST", "/api/properties", map[string]interface{}{
		"city": "Brooklyn",
	}, cookie)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("Expected 400 for missing required fields, got %d", resp.StatusCode)
	}
}

func TestUnitAndRentHistoryOverHTTP(t *testing.T) {
	app, _, cfg := setupApp(t)
	cookie := sessionCookie(t, cfg)

	resp := doJSON(t, app, "POST", "/api/properties", map[string]interface{}{
		"property_name": "Building A",
		"full_address":  "1 Main St",
	}, cookie)
	var prop models.Property
	decodeBody(t, resp, &prop)

	resp = doJSON(t, app, "POST", "/api/properties/"+prop.ID+"/units", map[string]interface{}{
		"unit_name":   "1A",
		"tenant_name": "Jane Doe",
	}, cookie)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}
	var unit models.Unit
	decodeBody(t, resp, &unit)

	resp = doJSON(t, app, "POST", "/api/units/"+unit.ID+"/rent-history", map[string]interface{}{
		"year":   2024,
		"month":  1,
		"amount": "1500",
	}, cookie)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	// same month again replaces rather than duplicates
	resp = doJSON(t, app, "POST", "/api/units/"+unit.ID+"/rent-history", map[string]interface{}{
		"year":   2024,
		"month":  1,
		"amount": "1650",
	}, cookie)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, "GET", "/api/units/"+unit.ID+"/rent-history", nil, cookie)
	var records []models.MonthlyRentRecord
	decodeBody(t, resp, &records)
	if len(records) != 1 {
		t.Fatalf("Expected one record after re-post, got %d", len(records))
	}
	if records[0].Amount.Decimal.String() != "1650" {
		t.Errorf("Expected replaced amount, got %s", records[0].Amount.Decimal.String())
	}

	// edit the record in place by id
	resp = doJSON(t, app, "PUT", "/api/rent-history/"+records[0].ID, map[string]interface{}{
		"amount": "1700",
		"method": "Check",
	}, cookie)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var updated models.MonthlyRentRecord
	decodeBody(t, resp, &updated)
	if updated.Amount.Decimal.String() != "1700" || updated.Method != "Check" {
		t.Errorf("Unexpected record after update: %+v", updated)
	}
	if updated.Year != 2024 || updated.Month != 1 {
		t.Errorf("Update must not move the record, got %d-%d", updated.Year, updated.Month)
	}
}

func TestRentRecordRejectsMonthOutOfRange(t *testing.T) {
	app, _, cfg := setupApp(t)
	cookie := sessionCookie(t, cfg)

	resp := doJSON(t, app, "POST", "/api/properties", map[string]interface{}{
		"property_name": "Building A",
		"full_address":  "1 Main St",
	}, cookie)
	var prop models.Property
	decodeBody(t, resp, &prop)

	resp = doJSON(t, app, "POST", "/api/properties/"+prop.ID+"/units", map[string]interface{}{
		"unit_name": "1A",
	}, cookie)
	var unit models.Unit
	decodeBody(t, resp, &unit)

	resp = doJSON(t, app, "POST", "/api/units/"+unit.ID+"/rent-history", map[string]interface{}{
		"year":   2024,
		"month":  13,
		"amount": "1500",
	}, cookie)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("Expected 400 for month 13, got %d", resp.StatusCode)
	}
}

func TestImportAndStatsOverHTTP(t *testing.T) {
	app, _, cfg := setupApp(t)
	cookie := sessionCookie(t, cfg)

	csvText := "Property Id,Address,Unit,Rent,Primary Tenant Name\n" +
		"p-1,\"1 Main St, Brooklyn, NY 11212\",1A,1500,Jane Doe\n" +
		"p-1,\"1 Main St, Brooklyn, NY 11212\",2B,1200,\n"

	resp := doJSON(t, app, "POST", "/api/import", map[string]string{"csv": csvText}, cookie)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var summary struct {
		PropertiesCreated int      `json:"propertiesCreated"`
		UnitsCreated      int      `json:"unitsCreated"`
		Errors            []string `json:"errors"`
	}
	decodeBody(t, resp, &summary)
	if summary.PropertiesCreated != 1 || summary.UnitsCreated != 2 || len(summary.Errors) != 0 {
		t.Errorf("Unexpected import summary: %+v", summary)
	}

	resp = doJSON(t, app, "GET", "/api/dashboard/stats", nil, cookie)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var stats struct {
		TotalProperties int     `json:"totalProperties"`
		TotalUnits      int     `json:"totalUnits"`
		OccupiedUnits   int     `json:"occupiedUnits"`
		OccupancyRate   float64 `json:"occupancyRate"`
	}
	decodeBody(t, resp, &stats)
	if stats.TotalProperties != 1 || stats.TotalUnits != 2 || stats.OccupiedUnits != 1 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestImportRejectsInvalidFile(t *testing.T) {
	app, _, cfg := setupApp(t)
	cookie := sessionCookie(t, cfg)

	csvText := "Property Id,Address,Unit,Bed\n" +
		"p-1,\"1 Main St, Brooklyn, NY 11212\",1A,2\n" +
		"p-2,\"2 Main St, Brooklyn, NY 11212\",1B,bad\n"

	resp := doJSON(t, app, "POST", "/api/import", map[string]string{"csv": csvText}, cookie)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("Expected 400 for a file with validation errors, got %d", resp.StatusCode)
	}
	var body struct {
		Errors []string `json:"errors"`
	}
	decodeBody(t, resp, &body)
	if len(body.Errors) != 1 || !strings.Contains(body.Errors[0], "Row 3") {
		t.Errorf("Expected the row 3 validation error, got %v", body.Errors)
	}

	// nothing from the valid row may land either
	resp = doJSON(t, app, "GET", "/api/properties", nil, cookie)
	var props []models.Property
	decodeBody(t, resp, &props)
	if len(props) != 0 {
		t.Errorf("Rejected import must not write, found %d properties", len(props))
	}
}

func TestExportReturnsCSVAttachment(t *testing.T) {
	app, _, cfg := setupApp(t)
	cookie := sessionCookie(t, cfg)

	resp := doJSON(t, app, "GET", "/api/export/properties", nil, cookie)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/csv; charset=utf-8" {
		t.Errorf("Unexpected content type %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); cd == "" {
		t.Error("Expected a Content-Disposition header")
	}
}

func TestImportTemplateDownload(t *testing.T) {
	app, _, cfg := setupApp(t)
	cookie := sessionCookie(t, cfg)

	resp := doJSON(t, app, "GET", "/api/templates/import", nil, cookie)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}
	if !bytes.Contains(body, []byte("Property Id,Address,Unit")) {
		t.Error("Template missing expected header")
	}
}
