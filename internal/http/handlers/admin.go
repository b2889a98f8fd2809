package handlers

import (
	"fmt"
	"net/http"

	"github.com/dedekindkali/FFF/internal/http/middleware"
	"github.com/dedekindkali/FFF/internal/repositories"
	"github.com/dedekindkali/FFF/internal/services"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AdminPasswordHash is the bcrypt hash the elevation endpoint checks against,
// set from the environment at startup. Elevation is disabled when empty.
var AdminPasswordHash = ""

type elevateRequest struct {
	Password string `json:"password" binding:"required"`
}

// POST /api/admin/elevate — verify the admin password and reissue the token
// with the admin claim set.
func AdminElevate(c *gin.Context) {
	rc, ok := MustAuth(c)
	if !ok {
		return
	}

	if AdminPasswordHash == "" {
		RespondError(c, http.StatusForbidden, "admin elevation is not configured", nil)
		return
	}

	var req elevateRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(AdminPasswordHash), []byte(req.Password)); err != nil {
		RespondError(c, http.StatusForbidden, "wrong admin password", nil)
		return
	}

	token, err := middleware.SignToken(rc.UserID, true)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "could not issue token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// GET /api/admin/stats
func AdminStats(c *gin.Context) {
	svc := services.AdminService{RequestID: middleware.GetRequestID(c)}
	stats, err := svc.Stats()
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// GET /api/admin/users
func AdminUsers(c *gin.Context) {
	users, err := repositories.UserRepository{}.ListParticipants()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "internal server error", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// DELETE /api/admin/users/:id
func AdminDeleteUser(c *gin.Context) {
	rc, ok := MustAuth(c)
	if !ok {
		return
	}
	userID, ok := PathID(c, "id")
	if !ok {
		return
	}
	if userID == rc.UserID {
		RespondError(c, http.StatusBadRequest, "cannot delete your own account", nil)
		return
	}

	svc := services.AdminService{RequestID: middleware.GetRequestID(c)}
	if err := svc.DeleteUser(userID); err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// GET /api/admin/export/:type — CSV reports plus a PDF summary.
func AdminExport(c *gin.Context) {
	exportType := c.Param("type")
	svc := services.ExportService{RequestID: middleware.GetRequestID(c)}

	if exportType == "summary" {
		adminSvc := services.AdminService{RequestID: middleware.GetRequestID(c)}
		stats, err := adminSvc.Stats()
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		pdf, err := svc.BuildSummaryPDF(stats)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="summary-export.pdf"`)
		c.Data(http.StatusOK, "application/pdf", pdf)
		return
	}

	data, err := svc.BuildCSV(exportType)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-export.csv"`, exportType))
	c.Data(http.StatusOK, "text/csv", data)
}
