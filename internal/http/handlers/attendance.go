package handlers

import (
	"net/http"

	"github.com/dedekindkali/FFF/internal/domain"
	"github.com/dedekindkali/FFF/internal/domain/models"
	"github.com/dedekindkali/FFF/internal/http/middleware"
	"github.com/dedekindkali/FFF/internal/repositories"
	"github.com/dedekindkali/FFF/internal/services"
	"github.com/dedekindkali/FFF/internal/utils"
	"github.com/gin-gonic/gin"
)

// GET /api/attendance — the caller's record plus its merged periods.
func GetAttendance(c *gin.Context) {
	rc, ok := MustAuth(c)
	if !ok {
		return
	}

	svc := services.AttendanceService{RequestID: middleware.GetRequestID(c)}
	rec, err := svc.Get(rc.UserID)
	if err != nil {
		if domain.IsNotFound(err) {
			c.JSON(http.StatusOK, gin.H{"attendance": nil, "periods": []string{}})
			return
		}
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"attendance": rec,
		"periods":    utils.AttendancePeriods(rec),
	})
}

// POST /api/attendance — upsert the caller's record.
func SaveAttendance(c *gin.Context) {
	rc, ok := MustAuth(c)
	if !ok {
		return
	}

	var in models.AttendanceInput
	if !BindJSONOrError(c, &in) {
		return
	}

	svc := services.AttendanceService{RequestID: middleware.GetRequestID(c)}
	rec, err := svc.Save(rc.UserID, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"attendance": rec,
		"periods":    utils.AttendancePeriods(rec),
	})
}

// GET /api/participants — every user with their attendance when present.
func GetParticipants(c *gin.Context) {
	if _, ok := MustAuth(c); !ok {
		return
	}

	participants, err := repositories.UserRepository{}.ListParticipants()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "internal server error", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"participants": participants})
}
