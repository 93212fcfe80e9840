package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/Domenick1991/pestbooking/internal/domain"
	"github.com/Domenick1991/pestbooking/internal/repository"
	"github.com/Domenick1991/pestbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type bookingResponse struct {
	Token     string        `json:"token"`
	Status    string        `json:"status"`
	CreatedAt string        `json:"created_at"`
	Record    domain.Record `json:"record"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("/:token", h.get)
}

func (h *BookingHandler) get(c *gin.Context) {
	token := c.Param("token")
	b, err := h.service.GetByToken(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, newBookingResponse(b))
}

func newBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		Token:     b.Token,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
		Record:    b.Record,
	}
}
