package handlers

import (
	"net/http"

	"github.com/dedekindkali/FFF/internal/repositories"
	"github.com/gin-gonic/gin"
)

// GET /api/notifications
func GetNotifications(c *gin.Context) {
	rc, ok := MustAuth(c)
	if !ok {
		return
	}

	notifications, err := repositories.NotificationRepository{}.ListForUser(rc.UserID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "internal server error", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// POST /api/notifications/:id/read
func MarkNotificationRead(c *gin.Context) {
	rc, ok := MustAuth(c)
	if !ok {
		return
	}
	notificationID, ok := PathID(c, "id")
	if !ok {
		return
	}

	rows, err := repositories.NotificationRepository{}.MarkRead(notificationID, rc.UserID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "internal server error", err)
		return
	}
	if rows == 0 {
		RespondError(c, http.StatusNotFound, "notification not found", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notification marked as read"})
}
