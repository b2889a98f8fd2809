package handlers

import (
	"net/http"

	"github.com/dedekindkali/FFF/internal/domain/models"
	"github.com/dedekindkali/FFF/internal/repositories"
	"github.com/gin-gonic/gin"
)

// GET /api/ride-requests — every open/answered request with its requester.
func GetRideRequests(c *gin.Context) {
	if _, ok := MustAuth(c); !ok {
		return
	}

	requests, err := repositories.RideRequestRepository{}.ListAll()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "internal server error", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// POST /api/ride-requests
func CreateRideRequest(c *gin.Context) {
	rc, ok := MustAuth(c)
	if !ok {
		return
	}

	var in models.RideRequestInput
	if !BindJSONOrError(c, &in) {
		return
	}

	req, err := rideService(c).CreateRideRequest(rc.UserID, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"request": req})
}

// PUT /api/ride-requests/:id — requester edits an open request.
func UpdateRideRequest(c *gin.Context) {
	rc, ok := MustAuth(c)
	if !ok {
		return
	}
	requestID, ok := PathID(c, "id")
	if !ok {
		return
	}

	var in models.RideRequestInput
	if !BindJSONOrError(c, &in) {
		return
	}

	req, err := rideService(c).UpdateRideRequest(rc.UserID, requestID, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"request": req})
}

// DELETE /api/ride-requests/:id
func DeleteRideRequest(c *gin.Context) {
	rc, ok := MustAuth(c)
	if !ok {
		return
	}
	requestID, ok := PathID(c, "id")
	if !ok {
		return
	}

	if err := rideService(c).DeleteRideRequest(rc.UserID, requestID); err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ride request deleted"})
}
