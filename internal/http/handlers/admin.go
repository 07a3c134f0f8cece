package handlers

import (
	"net/http"

	"meraai/internal/http/middleware"
	"meraai/internal/services"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes hard-delete operations. These bypass the 48-hour
// cancellation window entirely; route registration guards them with the
// admin role.
type AdminHandler struct{}

func (AdminHandler) service(c *gin.Context) services.BookingService {
	return services.BookingService{RequestID: middleware.GetRequestID(c)}
}

// DELETE /api/admin/bookings/:code
func (h AdminHandler) DeleteBooking(c *gin.Context) {
	if err := h.service(c).AdminDelete(c.Param("code")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DELETE /api/admin/bookings
func (h AdminHandler) ClearBookings(c *gin.Context) {
	n, err := h.service(c).AdminClearAll()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "removed": n})
}
