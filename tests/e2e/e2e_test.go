package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"barbershop/internal/database"
	"barbershop/internal/domain"
	"barbershop/internal/middleware"
	"barbershop/internal/modules/auth"
	"barbershop/internal/modules/directory"
	"barbershop/internal/modules/live"
	"barbershop/internal/modules/revenue"
	"barbershop/internal/modules/schedule"
	jwtsvc "barbershop/internal/pkg/jwt"
	"barbershop/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Booking day far in the future so the past-date check never trips.
const testDate = "2030-05-20"

type E2ETestSuite struct {
	router *gin.Engine
	db     *gorm.DB
	hub    *live.Hub
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")

	// every pooled connection would get its own :memory: database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&domain.Client{},
		&domain.Staff{},
		&domain.Service{},
		&domain.Appointment{},
		&domain.User{},
	))

	clientRepo := repository.NewClientRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	userRepo := repository.NewUserRepository(db)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)
	hub := live.NewHub()

	authHandler := auth.NewHandler(auth.NewService(userRepo, jwtService))
	directoryHandler := directory.NewHandler(directory.NewService(clientRepo, staffRepo, serviceRepo))
	scheduleHandler := schedule.NewHandler(schedule.NewService(appointmentRepo, clientRepo, staffRepo, serviceRepo, hub))
	revenueHandler := revenue.NewHandler(revenue.NewService(appointmentRepo))
	liveHandler := live.NewHandler(hub)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	authHandler.RegisterRoutes(v1)

	protected := v1.Group("/")
	protected.Use(middleware.Auth(jwtService))
	{
		directoryHandler.RegisterRoutes(protected)
		scheduleHandler.RegisterRoutes(protected)
		revenueHandler.RegisterRoutes(protected)
		liveHandler.RegisterRoutes(protected)
	}

	t.Cleanup(hub.Close)

	return &E2ETestSuite{router: r, db: db, hub: hub}
}

func (s *E2ETestSuite) makeRequest(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	t.Helper()
	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp),
		"unparseable response, status=%d body=%s", w.Code, w.Body.String())
	return &resp
}

func (s *E2ETestSuite) registerAndLogin(t *testing.T, username, password string) string {
	t.Helper()

	w := s.makeRequest("POST", "/api/v1/auth/register", map[string]interface{}{
		"username": username,
		"password": password,
		"role":     "owner",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, "register failed: %s", w.Body.String())

	w = s.makeRequest("POST", "/api/v1/auth/login", map[string]interface{}{
		"username": username,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())

	resp := parseResponse(t, w)
	token, _ := resp.Data["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func idFrom(t *testing.T, resp *TestResponse, key string) int64 {
	t.Helper()
	obj, ok := resp.Data[key].(map[string]interface{})
	require.True(t, ok, "no %q object in response data", key)
	idVal, ok := obj["id"].(float64)
	require.True(t, ok, "%q object has no id", key)
	return int64(idVal)
}

// seedDirectory creates one staff member, one service and one client
// through the API and returns their ids.
func (s *E2ETestSuite) seedDirectory(t *testing.T, token string, price float64) (staffID, serviceID, clientID int64) {
	t.Helper()

	w := s.makeRequest("POST", "/api/v1/staff", map[string]interface{}{
		"name":      "Carlos Silva",
		"specialty": "Barbeiro",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	staffID = idFrom(t, parseResponse(t, w), "staff")

	w = s.makeRequest("POST", "/api/v1/services", map[string]interface{}{
		"name":  "Corte Masculino",
		"price": price,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	serviceID = idFrom(t, parseResponse(t, w), "service")

	w = s.makeRequest("POST", "/api/v1/clients", map[string]interface{}{
		"name":  "Pedro Santos",
		"phone": "+55 11 9876-5432",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	clientID = idFrom(t, parseResponse(t, w), "client")

	return staffID, serviceID, clientID
}

func (s *E2ETestSuite) book(t *testing.T, token string, clientID, staffID, serviceID int64, date, slot string) *httptest.ResponseRecorder {
	t.Helper()
	return s.makeRequest("POST", "/api/v1/appointments", map[string]interface{}{
		"client_id":  clientID,
		"staff_id":   staffID,
		"service_id": serviceID,
		"date":       date,
		"time":       slot,
	}, token)
}

func TestAuthFlow(t *testing.T) {
	suite := setupTestSuite(t)

	t.Run("register and login", func(t *testing.T) {
		token := suite.registerAndLogin(t, "dono", "senha123")
		assert.NotEmpty(t, token)
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/register", map[string]interface{}{
			"username": "dono",
			"password": "outrasenha",
		}, "")
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "USERNAME_TAKEN", parseResponse(t, w).Error.Code)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/login", map[string]interface{}{
			"username": "dono",
			"password": "errada",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "INVALID_CREDENTIALS", parseResponse(t, w).Error.Code)
	})

	t.Run("protected routes require a token", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/clients", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "UNAUTHORIZED", parseResponse(t, w).Error.Code)
	})
}

func TestBookingFlow(t *testing.T) {
	suite := setupTestSuite(t)
	token := suite.registerAndLogin(t, "recepcao", "senha123")
	staffID, serviceID, clientID := suite.seedDirectory(t, token, 40.00)

	slotsPath := fmt.Sprintf("/api/v1/schedule/slots?staff_id=%d&date=%s", staffID, testDate)

	t.Run("empty day offers the full grid", func(t *testing.T) {
		w := suite.makeRequest("GET", slotsPath, nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		slots := resp.Data["slots"].([]interface{})
		assert.Len(t, slots, 23)
		assert.Equal(t, "08:00", slots[0])
		assert.Equal(t, "19:00", slots[len(slots)-1])
	})

	var appointmentID int64
	t.Run("book a slot", func(t *testing.T) {
		w := suite.book(t, token, clientID, staffID, serviceID, testDate, "09:00")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		appointmentID = idFrom(t, parseResponse(t, w), "appointment")
	})

	t.Run("booked slot disappears from the grid", func(t *testing.T) {
		w := suite.makeRequest("GET", slotsPath, nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		slots := parseResponse(t, w).Data["slots"].([]interface{})
		assert.Len(t, slots, 22)
		assert.NotContains(t, slots, "09:00")
	})

	t.Run("double booking is rejected with a conflict", func(t *testing.T) {
		w := suite.book(t, token, clientID, staffID, serviceID, testDate, "09:00")
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "SLOT_TAKEN", parseResponse(t, w).Error.Code)
	})

	t.Run("same slot for another barber is fine", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/staff", map[string]interface{}{
			"name": "João Pereira",
		}, token)
		require.Equal(t, http.StatusCreated, w.Code)
		otherStaff := idFrom(t, parseResponse(t, w), "staff")

		w = suite.book(t, token, clientID, otherStaff, serviceID, testDate, "09:00")
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("unknown reference is rejected", func(t *testing.T) {
		w := suite.book(t, token, 9999, staffID, serviceID, testDate, "10:00")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "UNKNOWN_REFERENCE", parseResponse(t, w).Error.Code)
	})

	t.Run("missing field is rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/appointments", map[string]interface{}{
			"client_id": clientID,
			"staff_id":  staffID,
			"date":      testDate,
			"time":      "10:00",
		}, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "MISSING_FIELD", parseResponse(t, w).Error.Code)
	})

	t.Run("off-grid time is rejected", func(t *testing.T) {
		w := suite.book(t, token, clientID, staffID, serviceID, testDate, "09:15")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", parseResponse(t, w).Error.Code)
	})

	t.Run("past date is rejected", func(t *testing.T) {
		w := suite.book(t, token, clientID, staffID, serviceID, "2020-01-01", "10:00")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("reschedule moves the appointment", func(t *testing.T) {
		w := suite.makeRequest("PATCH", fmt.Sprintf("/api/v1/appointments/%d", appointmentID), map[string]interface{}{
			"date": testDate,
			"time": "11:30",
		}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		slots := fetchSlots(t, suite, token, slotsPath)
		assert.Contains(t, slots, "09:00", "old slot is released")
		assert.NotContains(t, slots, "11:30", "new slot is held")
	})

	t.Run("reschedule onto an occupied slot conflicts", func(t *testing.T) {
		// occupy 14:00 with a second appointment first
		w := suite.book(t, token, clientID, staffID, serviceID, testDate, "14:00")
		require.Equal(t, http.StatusCreated, w.Code)

		w = suite.makeRequest("PATCH", fmt.Sprintf("/api/v1/appointments/%d", appointmentID), map[string]interface{}{
			"date": testDate,
			"time": "14:00",
		}, token)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "SLOT_TAKEN", parseResponse(t, w).Error.Code)
	})

	t.Run("cancel releases the slot", func(t *testing.T) {
		w := suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/appointments/%d", appointmentID), nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		slots := fetchSlots(t, suite, token, slotsPath)
		assert.Contains(t, slots, "11:30")

		w = suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/appointments/%d", appointmentID), nil, token)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("agenda lists the day", func(t *testing.T) {
		w := suite.makeRequest("GET", fmt.Sprintf("/api/v1/schedule/agenda?date=%s", testDate), nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		entries := parseResponse(t, w).Data["appointments"].([]interface{})
		assert.NotEmpty(t, entries)
	})
}

func fetchSlots(t *testing.T, suite *E2ETestSuite, token, slotsPath string) []string {
	t.Helper()
	w := suite.makeRequest("GET", slotsPath, nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	raw := parseResponse(t, w).Data["slots"].([]interface{})
	slots := make([]string, 0, len(raw))
	for _, s := range raw {
		slots = append(slots, s.(string))
	}
	return slots
}

func TestRevenueFlow(t *testing.T) {
	suite := setupTestSuite(t)
	token := suite.registerAndLogin(t, "dono", "senha123")
	staffID, serviceID, clientID := suite.seedDirectory(t, token, 40.00)

	// second barber with a pricier service
	w := suite.makeRequest("POST", "/api/v1/staff", map[string]interface{}{"name": "Marcos Lima"}, token)
	require.Equal(t, http.StatusCreated, w.Code)
	staffB := idFrom(t, parseResponse(t, w), "staff")

	w = suite.makeRequest("POST", "/api/v1/services", map[string]interface{}{"name": "Corte + Barba", "price": 60.00}, token)
	require.Equal(t, http.StatusCreated, w.Code)
	comboID := idFrom(t, parseResponse(t, w), "service")

	// 3 visits for staff A at 40, 1 visit for staff B at 60
	for _, slot := range []string{"08:00", "09:00", "10:00"} {
		w := suite.book(t, token, clientID, staffID, serviceID, testDate, slot)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
	w = suite.book(t, token, clientID, staffB, comboID, testDate, "08:00")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	t.Run("total revenue", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/revenue/total", nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 180.0, parseResponse(t, w).Data["total"])
	})

	t.Run("revenue by staff is ordered with shares and averages", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/revenue/by-staff", nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		rows := parseResponse(t, w).Data["staff"].([]interface{})
		require.Len(t, rows, 2)

		first := rows[0].(map[string]interface{})
		second := rows[1].(map[string]interface{})

		assert.Equal(t, 120.0, first["revenue"], "highest earner first")
		assert.Equal(t, 40.0, first["avg_per_visit"])
		assert.InDelta(t, 120.0/180.0, first["share_of_total"], 0.01)
		assert.Equal(t, 60.0, second["revenue"])
	})

	t.Run("revenue by period buckets by month", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/revenue/by-period?granularity=month", nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		buckets := parseResponse(t, w).Data["buckets"].([]interface{})
		require.Len(t, buckets, 1)
		bucket := buckets[0].(map[string]interface{})
		assert.Equal(t, "2030-05", bucket["period"])
		assert.Equal(t, 180.0, bucket["revenue"])
	})

	t.Run("invalid granularity is rejected", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/revenue/by-period?granularity=week", nil, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("payout splits the gross in half", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/revenue/payout", nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		payout := parseResponse(t, w).Data["payout"].(map[string]interface{})
		gross := payout["gross"].(float64)
		business := payout["business_share"].(float64)
		staffShare := payout["staff_share"].(float64)

		assert.Equal(t, 180.0, gross)
		assert.Equal(t, 90.0, business)
		assert.Equal(t, 90.0, staffShare)
		assert.Equal(t, gross, business+staffShare)
	})

	t.Run("staff filter narrows the total", func(t *testing.T) {
		w := suite.makeRequest("GET", fmt.Sprintf("/api/v1/revenue/total?staff_id=%d", staffB), nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 60.0, parseResponse(t, w).Data["total"])
	})

	t.Run("xlsx export streams a workbook", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/revenue/export", nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
		assert.NotZero(t, w.Body.Len())
	})

	t.Run("dashboard summary", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/dashboard/summary", nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		summary := parseResponse(t, w).Data["summary"].(map[string]interface{})
		assert.Equal(t, 180.0, summary["total_revenue"])
	})
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}
