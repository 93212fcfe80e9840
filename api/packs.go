package api

import (
	"net/http"

	"github.com/Domenick1991/pestbooking/internal/domain"
	"github.com/gin-gonic/gin"
)

type PackCatalog interface {
	All() []domain.Pack
	Get(slug string) (domain.Pack, bool)
}

type PackHandler struct {
	catalog PackCatalog
}

func NewPackHandler(catalog PackCatalog) *PackHandler {
	return &PackHandler{catalog: catalog}
}

func (h *PackHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:slug", h.get)
}

func (h *PackHandler) list(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.All())
}

func (h *PackHandler) get(c *gin.Context) {
	pack, ok := h.catalog.Get(c.Param("slug"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "pack not found"})
		return
	}
	c.JSON(http.StatusOK, pack)
}
