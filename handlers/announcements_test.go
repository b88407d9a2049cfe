package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnouncementCRUDAdminOnly(t *testing.T) {
	r := setupRouter(t)
	userToken := registerAndLogin(t, r, "alice", "user")
	adminToken := registerAndLogin(t, r, "boss", "admin")

	body := gin.H{"title": "Closed Friday", "message": "Deep cleaning day", "priority": "high"}

	w := doJSON(t, r, http.MethodPost, "/api/announcements", userToken, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/announcements", adminToken, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeBody(t, w)["announcement"].(map[string]interface{})
	id := created["id"].(float64)

	// Public board shows it
	w = doJSON(t, r, http.MethodGet, "/api/announcements", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["announcements"], 1)

	// Update and deactivate
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/announcements/%.0f", id), adminToken, gin.H{
		"is_active": false,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/announcements", "", nil)
	assert.Empty(t, decodeBody(t, w)["announcements"])

	// Admin listing still sees it
	w = doJSON(t, r, http.MethodGet, "/api/announcements/all/list", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["announcements"], 1)

	// Delete
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/announcements/%.0f", id), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/announcements/%.0f", id), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExpiredAnnouncementsHidden(t *testing.T) {
	r := setupRouter(t)
	adminToken := registerAndLogin(t, r, "boss", "admin")

	past := time.Now().UTC().Add(-time.Hour)
	future := time.Now().UTC().Add(time.Hour)

	w := doJSON(t, r, http.MethodPost, "/api/announcements", adminToken, gin.H{
		"title": "Old news", "message": "done", "expires_at": past,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/announcements", adminToken, gin.H{
		"title": "Fresh news", "message": "soup today", "expires_at": future,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/announcements", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeBody(t, w)["announcements"].([]interface{})
	require.Len(t, list, 1)
	first := list[0].(map[string]interface{})
	assert.Equal(t, "Fresh news", first["title"])
}

func TestAnnouncementPriorityOrdering(t *testing.T) {
	r := setupRouter(t)
	adminToken := registerAndLogin(t, r, "boss", "admin")

	for _, a := range []gin.H{
		{"title": "Low note", "message": "m", "priority": "low"},
		{"title": "Urgent", "message": "m", "priority": "high"},
		{"title": "Regular", "message": "m", "priority": "normal"},
	} {
		w := doJSON(t, r, http.MethodPost, "/api/announcements", adminToken, a)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/api/announcements", "", nil)
	list := decodeBody(t, w)["announcements"].([]interface{})
	require.Len(t, list, 3)
	assert.Equal(t, "Urgent", list[0].(map[string]interface{})["title"])
	assert.Equal(t, "Regular", list[1].(map[string]interface{})["title"])
	assert.Equal(t, "Low note", list[2].(map[string]interface{})["title"])
}

func TestAnnouncementValidation(t *testing.T) {
	r := setupRouter(t)
	adminToken := registerAndLogin(t, r, "boss", "admin")

	w := doJSON(t, r, http.MethodPost, "/api/announcements", adminToken, gin.H{
		"title": "No message",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/announcements", adminToken, gin.H{
		"title": "Bad priority", "message": "m", "priority": "extreme",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
