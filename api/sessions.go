package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/Domenick1991/pestbooking/internal/calendar"
	"github.com/Domenick1991/pestbooking/internal/domain"
	"github.com/Domenick1991/pestbooking/internal/session"
	"github.com/gin-gonic/gin"
)

// SessionStore is the part of session.Manager the handlers need.
type SessionStore interface {
	Open(slug string, showCompany bool) *session.Controller
	Get(id string) (*session.Controller, error)
	Discard(id string)
}

type SessionHandler struct {
	sessions SessionStore
}

type editFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

type selectDateRequest struct {
	Date string `json:"date" binding:"required"`
}

type selectTimeRequest struct {
	Time string `json:"time" binding:"required"`
}

type submitResponse struct {
	Booking     *bookingResponse `json:"booking,omitempty"`
	RedirectURL string           `json:"redirect_url"`
	Summary     session.Summary  `json:"summary"`
}

type blockedResponse struct {
	Error   string           `json:"error"`
	Session session.Snapshot `json:"session"`
}

func NewSessionHandler(sessions SessionStore) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

func (h *SessionHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.open)
	router.GET("/:id", h.get)
	router.PATCH("/:id/fields", h.editField)
	router.PUT("/:id/date", h.selectDate)
	router.PUT("/:id/time", h.selectTime)
	router.POST("/:id/submit", h.submit)
	router.DELETE("/:id", h.discard)
}

// open starts a session for ?slug= (unknown slugs fall back to the default
// pack). ?company=true shows the optional company field.
func (h *SessionHandler) open(c *gin.Context) {
	showCompany := false
	if raw := c.Query("company"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "company must be a boolean"})
			return
		}
		showCompany = v
	}

	ctrl := h.sessions.Open(c.Query("slug"), showCompany)
	c.JSON(http.StatusCreated, ctrl.Snapshot())
}

func (h *SessionHandler) get(c *gin.Context) {
	ctrl, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

func (h *SessionHandler) editField(c *gin.Context) {
	ctrl, ok := h.lookup(c)
	if !ok {
		return
	}
	var req editFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	field, known := domain.ParseField(req.Field)
	if !known {
		c.JSON(http.StatusBadRequest, gin.H{"error": session.ErrUnknownField.Error(), "field": req.Field})
		return
	}

	ctrl.EditField(field, req.Value)
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

func (h *SessionHandler) selectDate(c *gin.Context) {
	ctrl, ok := h.lookup(c)
	if !ok {
		return
	}
	var req selectDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	d, err := calendar.ParseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ctrl.SelectDate(d); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

func (h *SessionHandler) selectTime(c *gin.Context) {
	ctrl, ok := h.lookup(c)
	if !ok {
		return
	}
	var req selectTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ctrl.SelectTime(req.Time); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

// submit answers 200 with the stored booking, 422 when the form is not
// complete, 409 when a submission is already running and 502 when the
// booking backend failed. The session survives every outcome but success.
func (h *SessionHandler) submit(c *gin.Context) {
	ctrl, ok := h.lookup(c)
	if !ok {
		return
	}

	// A client that hangs up must not abort a booking already on its way to
	// storage; only the configured submit timeout bounds the call.
	res, err := ctrl.Submit(context.WithoutCancel(c.Request.Context()))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error(), "session": ctrl.Snapshot()})
		return
	}
	if res.Blocked {
		c.JSON(http.StatusUnprocessableEntity, blockedResponse{
			Error:   "form is incomplete",
			Session: ctrl.Snapshot(),
		})
		return
	}

	resp := submitResponse{RedirectURL: res.RedirectURL, Summary: ctrl.Summary()}
	if res.Booking != nil {
		b := newBookingResponse(res.Booking)
		resp.Booking = &b
	}
	h.sessions.Discard(ctrl.ID())
	c.JSON(http.StatusOK, resp)
}

func (h *SessionHandler) discard(c *gin.Context) {
	h.sessions.Discard(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) lookup(c *gin.Context) (*session.Controller, bool) {
	ctrl, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return nil, false
	}
	return ctrl, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrSubmitInFlight), errors.Is(err, session.ErrSessionCompleted):
		return http.StatusConflict
	case errors.Is(err, session.ErrSubmissionFailed):
		return http.StatusBadGateway
	case errors.Is(err, session.ErrDateNotBookable), errors.Is(err, session.ErrUnknownTimeSlot):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
