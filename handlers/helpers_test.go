package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hermione06/cafeteria-management-system/config"
	"github.com/hermione06/cafeteria-management-system/models"
	"github.com/hermione06/cafeteria-management-system/routes"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupRouter wires a fresh in-memory database into the global config and
// returns a router with all routes registered.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	decimal.MarshalJSONWithoutQuotes = true

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Announcement{},
		&models.Rating{},
	))
	config.DB = db

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// registerAndLogin walks the full register, verify, login flow and returns
// a bearer token for the new account. Registration only produces plain
// users, so elevated roles are written straight to the row before login,
// the same way an admin promotion would.
func registerAndLogin(t *testing.T, r *gin.Engine, username string, role models.UserRole) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"email":    username + "@cafeteria.test",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	verifyToken := decodeBody(t, w)["verification_token"].(string)

	w = doJSON(t, r, http.MethodPost, "/api/auth/verify-email/"+verifyToken, "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	if role != models.RoleUser {
		require.NoError(t, config.DB.Model(&models.User{}).
			Where("username = ?", username).
			Update("role", role).Error)
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decodeBody(t, w)["token"].(string)
}

// createMenuItem inserts a catalog row directly, bypassing the admin API
func createMenuItem(t *testing.T, name, price string, available bool) models.MenuItem {
	t.Helper()
	item := models.MenuItem{
		Name:        name,
		Price:       decimal.RequireFromString(price),
		Category:    models.CategoryFood,
		IsAvailable: available,
	}
	require.NoError(t, config.DB.Create(&item).Error)
	return item
}

func menuItemCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, config.DB.Model(&models.MenuItem{}).Count(&n).Error)
	return n
}

func orderCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, config.DB.Model(&models.Order{}).Count(&n).Error)
	return n
}
