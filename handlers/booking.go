package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pinkmint/models"
	"pinkmint/services/booking"
	"pinkmint/services/catalog"
	"pinkmint/utils"
)

// BookingHandler exposes the booking workflow to the form frontend.
type BookingHandler struct {
	Sessions booking.SessionService
	Catalog  *catalog.Catalog
	Logger   *zap.Logger
}

// NewBookingHandler builds the handler set.
func NewBookingHandler(sessions booking.SessionService, cat *catalog.Catalog, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Sessions: sessions, Catalog: cat, Logger: logger}
}

// StartSession handles POST /api/booking/session. It opens a fresh form
// session and returns the catalog the form renders from.
func (h *BookingHandler) StartSession(c *gin.Context) {
	session, err := h.Sessions.Start()
	if err != nil {
		h.Logger.Error("StartSession: failed to start session", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to start booking session", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionID": session.ID,
		"packages":  h.Catalog.Packages(),
		"addOns":    h.Catalog.AddOns(),
		"status":    session.Controller.Status(),
	})
}

// UpdateDraft handles PATCH /api/booking/session/:sessionID/draft. The body
// carries the fields the user just edited.
func (h *BookingHandler) UpdateDraft(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var input struct {
		Fields map[string]string `json:"fields" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	err := session.Mutate(func(d *models.BookingDraft) error {
		for field, value := range input.Fields {
			if err := booking.SetField(d, field, value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "draft update rejected", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"draft":  session.Controller.DraftSnapshot(),
		"status": session.Controller.Status(),
	})
}

// SelectPackage handles PUT /api/booking/session/:sessionID/package.
func (h *BookingHandler) SelectPackage(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	err := session.Mutate(func(d *models.BookingDraft) error {
		return booking.SelectPackage(d, h.Catalog, input.Name)
	})
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "package selection rejected", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": session.Controller.Status().Total})
}

// ToggleAddOn handles PUT /api/booking/session/:sessionID/addon.
func (h *BookingHandler) ToggleAddOn(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	err := session.Mutate(func(d *models.BookingDraft) error {
		return booking.ToggleAddOn(d, h.Catalog, input.Name)
	})
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "add-on toggle rejected", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": session.Controller.Status().Total})
}

// Submit handles POST /api/booking/session/:sessionID/submit. It runs the
// attempt to completion; a submit while one is already in flight returns 409
// with the in-flight status and no second gateway write.
func (h *BookingHandler) Submit(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	if session.Controller.InFlight() {
		c.JSON(http.StatusConflict, gin.H{"status": session.Controller.Status()})
		return
	}

	status := session.Controller.Submit(c.Request.Context())
	code := http.StatusOK
	if status.State == booking.StateFailed && status.Reason != nil {
		switch status.Reason.Code {
		case booking.CodeValidationError:
			code = http.StatusUnprocessableEntity
		case booking.CodeAuthFailed:
			code = http.StatusServiceUnavailable
		default:
			code = http.StatusBadGateway
		}
	}
	c.JSON(code, gin.H{"status": status})
}

// GetState handles GET /api/booking/session/:sessionID/state.
func (h *BookingHandler) GetState(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": session.Controller.Status(),
		"draft":  session.Controller.DraftSnapshot(),
	})
}

// Acknowledge handles POST /api/booking/session/:sessionID/ack, dismissing a
// success/failure message ahead of the timed reset.
func (h *BookingHandler) Acknowledge(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	session.Controller.Acknowledge()
	c.JSON(http.StatusOK, gin.H{"status": session.Controller.Status()})
}

// CancelSession handles DELETE /api/booking/session/:sessionID.
func (h *BookingHandler) CancelSession(c *gin.Context) {
	sessionID := c.Param("sessionID")
	if err := h.Sessions.Cancel(sessionID); err != nil {
		utils.JSONError(c, http.StatusNotFound, "booking session not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": sessionID})
}

func (h *BookingHandler) session(c *gin.Context) (*booking.FormSession, bool) {
	sessionID := c.Param("sessionID")
	session, err := h.Sessions.Get(sessionID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "booking session not found", err.Error())
		return nil, false
	}
	return session, true
}
