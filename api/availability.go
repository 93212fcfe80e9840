package api

import (
	"net/http"

	"github.com/Domenick1991/pestbooking/internal/calendar"
	"github.com/Domenick1991/pestbooking/internal/service/availability"
	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	service availability.AvailabilityUseCase
}

func NewAvailabilityHandler(service availability.AvailabilityUseCase) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

func (h *AvailabilityHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.week)
	router.GET("/:date", h.check)
}

// week serves the Monday-start week around ?anchor=YYYY-MM-DD, or the
// current week when anchor is absent.
func (h *AvailabilityHandler) week(c *gin.Context) {
	anchor := h.service.Today()
	if raw := c.Query("anchor"); raw != "" {
		d, err := calendar.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		anchor = d
	}

	view, err := h.service.Week(c.Request.Context(), anchor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *AvailabilityHandler) check(c *gin.Context) {
	d, err := calendar.ParseDate(c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.service.Check(c.Request.Context(), d)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}
