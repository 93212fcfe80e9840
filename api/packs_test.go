package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/pestbooking/config"
	"github.com/Domenick1991/pestbooking/internal/catalog"
	"github.com/Domenick1991/pestbooking/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cfg := config.Default()
	c, err := catalog.New(cfg.Packs, cfg.Booking.DefaultPack)
	require.NoError(t, err)
	return c
}

func TestPackHandler_list(t *testing.T) {
	handler := NewPackHandler(newTestCatalog(t))

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/packs", nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var packs []domain.Pack
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &packs))
	assert.Len(t, packs, 4)
	assert.Equal(t, "rongeur", packs[0].Slug)
}

func TestPackHandler_get(t *testing.T) {
	handler := NewPackHandler(newTestCatalog(t))
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "slug", Value: "guepes-frelons"}}
	c.Request = httptest.NewRequest("GET", "/packs/guepes-frelons", nil)

	handler.get(c)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "slug", Value: "fourmis"}}
	c.Request = httptest.NewRequest("GET", "/packs/fourmis", nil)

	handler.get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
