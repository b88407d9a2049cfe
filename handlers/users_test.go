package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserAdminEndpoints(t *testing.T) {
	r := setupRouter(t)
	registerAndLogin(t, r, "alice", "user")
	userToken := registerAndLogin(t, r, "bob", "user")
	adminToken := registerAndLogin(t, r, "boss", "admin")

	// Listing is admin only
	w := doJSON(t, r, http.MethodGet, "/api/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["users"], 3)

	// Role filter
	w = doJSON(t, r, http.MethodGet, "/api/users?role=admin", adminToken, nil)
	assert.Len(t, decodeBody(t, w)["users"], 1)

	// Search
	w = doJSON(t, r, http.MethodGet, "/api/users?search=ali", adminToken, nil)
	users := decodeBody(t, w)["users"].([]interface{})
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].(map[string]interface{})["username"])
}

func TestPromoteAndDeactivateUser(t *testing.T) {
	r := setupRouter(t)
	registerAndLogin(t, r, "alice", "user")
	adminToken := registerAndLogin(t, r, "boss", "admin")

	w := doJSON(t, r, http.MethodGet, "/api/users?search=alice", adminToken, nil)
	users := decodeBody(t, w)["users"].([]interface{})
	require.Len(t, users, 1)
	aliceID := users[0].(map[string]interface{})["id"].(float64)

	// Promote to staff
	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/users/%.0f", aliceID), adminToken, gin.H{
		"role": "staff",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/users/%.0f", aliceID), adminToken, nil)
	got := decodeBody(t, w)["user"].(map[string]interface{})
	assert.Equal(t, "staff", got["role"])

	// Unknown role rejected
	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/users/%.0f", aliceID), adminToken, gin.H{
		"role": "superuser",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Deactivate blocks login
	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/users/%.0f", aliceID), adminToken, gin.H{
		"is_active": false,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "alice", "password": "password123",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUserStats(t *testing.T) {
	r := setupRouter(t)
	userToken := registerAndLogin(t, r, "alice", "user")
	registerAndLogin(t, r, "stan", "staff")
	adminToken := registerAndLogin(t, r, "boss", "admin")

	// One account left unverified
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "newbie", "email": "newbie@cafeteria.test", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/users/stats", userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/users/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decodeBody(t, w)
	assert.Equal(t, float64(4), stats["total_users"])
	assert.Equal(t, float64(4), stats["active_users"])
	assert.Equal(t, float64(3), stats["verified_users"])

	byRole := stats["users_by_role"].(map[string]interface{})
	assert.Equal(t, float64(2), byRole["user"])
	assert.Equal(t, float64(1), byRole["staff"])
	assert.Equal(t, float64(1), byRole["admin"])
}

func TestAdminCannotDeleteOwnAccount(t *testing.T) {
	r := setupRouter(t)
	adminToken := registerAndLogin(t, r, "boss", "admin")

	w := doJSON(t, r, http.MethodGet, "/api/users?search=boss", adminToken, nil)
	users := decodeBody(t, w)["users"].([]interface{})
	require.Len(t, users, 1)
	bossID := users[0].(map[string]interface{})["id"].(float64)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/users/%.0f", bossID), adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
