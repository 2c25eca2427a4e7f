package api

import (
	"net/http"

	"github.com/Domenick1991/resortbooking/internal/service/wizard"
	"github.com/Domenick1991/resortbooking/internal/session"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	service session.SessionUseCase
}

func NewSessionHandler(service session.SessionUseCase) *SessionHandler {
	return &SessionHandler{service: service}
}

func (h *SessionHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.start)
	router.GET("/:id", h.get)
	router.POST("/:id/intents", h.apply)
	router.DELETE("/:id", h.end)
}

func (h *SessionHandler) start(c *gin.Context) {
	w, err := h.service.Start(c.Request.Context())
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, w.View())
}

func (h *SessionHandler) get(c *gin.Context) {
	w, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, w.View())
}

// apply answers a rejected intent with the error and the unchanged view, so a
// renderer can redraw without another round trip.
func (h *SessionHandler) apply(c *gin.Context) {
	var intent wizard.Intent
	if err := c.ShouldBindJSON(&intent); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.service.Apply(c.Request.Context(), c.Param("id"), intent)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusNotFound || status == http.StatusInternalServerError {
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(status, gin.H{"error": err.Error(), "view": view})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *SessionHandler) end(c *gin.Context) {
	if err := h.service.End(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
