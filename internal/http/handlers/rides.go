package handlers

import (
	"net/http"

	"github.com/dedekindkali/FFF/internal/domain/models"
	"github.com/dedekindkali/FFF/internal/http/middleware"
	"github.com/dedekindkali/FFF/internal/repositories"
	"github.com/dedekindkali/FFF/internal/services"
	"github.com/gin-gonic/gin"
)

func rideService(c *gin.Context) services.RideService {
	return services.RideService{RequestID: middleware.GetRequestID(c)}
}

// GET /api/rides — active rides with driver and accepted passengers.
func GetRides(c *gin.Context) {
	if _, ok := MustAuth(c); !ok {
		return
	}

	rides, err := repositories.RideRepository{}.ListActive()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "internal server error", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rides": rides})
}

// POST /api/rides
func CreateRide(c *gin.Context) {
	rc, ok := MustAuth(c)
	if !ok {
		return
	}

	var in models.RideInput
	if !BindJSONOrError(c, &in) {
		return
	}

	ride, fanout, err := rideService(c).CreateRide(rc.UserID, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	resp := gin.H{"ride": ride}
	if len(in.InviteeIDs) > 0 {
		resp["invited"] = fanout.Invited
		resp["failedInvites"] = fanout.Failed
	}
	c.JSON(http.StatusOK, resp)
}

// PUT /api/rides/:id
func UpdateRide(c *gin.Context) {
	rc, ok := MustAuth(c)
	if !ok {
		return
	}
	rideID, ok := PathID(c, "id")
	if !ok {
		return
	}

	var in models.RideInput
	if !BindJSONOrError(c, &in) {
		return
	}

	ride, err := rideService(c).ModifyRide(rc.UserID, rideID, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ride": ride})
}

// DELETE /api/rides/:id
func DeleteRide(c *gin.Context) {
	rc, ok := MustAuth(c)
	if !ok {
		return
	}
	rideID, ok := PathID(c, "id")
	if !ok {
		return
	}

	if err := rideService(c).DeleteRide(rc.UserID, rideID); err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ride deleted"})
}

type joinRequestPayload struct {
	Message string `json:"message"`
}

// POST /api/rides/:id/request-join
func RequestJoin(c *gin.Context) {
	rc, ok := MustAuth(c)
	if !ok {
		return
	}
	rideID, ok := PathID(c, "id")
	if !ok {
		return
	}

	var in joinRequestPayload
	if c.Request.ContentLength > 0 {
		if !BindJSONOrError(c, &in) {
			return
		}
	}

	jr, err := rideService(c).RequestJoin(rc.UserID, rideID, in.Message)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"joinRequest": jr})
}

// GET /api/rides/join-requests — incoming requests against the caller's rides.
func GetJoinRequestsForDriver(c *gin.Context) {
	rc, ok := MustAuth(c)
	if !ok {
		return
	}

	requests, err := repositories.JoinRequestRepository{}.ListForDriver(rc.UserID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "internal server error", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"joinRequests": requests})
}

type respondPayload struct {
	Status string `json:"status" binding:"required"`
}

// POST /api/rides/join-requests/:id/respond
func RespondToJoinRequest(c *gin.Context) {
	rc, ok := MustAuth(c)
	if !ok {
		return
	}
	requestID, ok := PathID(c, "id")
	if !ok {
		return
	}

	var in respondPayload
	if !BindJSONOrError(c, &in) {
		return
	}

	if err := rideService(c).RespondToJoinRequest(rc.UserID, requestID, in.Status); err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "response recorded"})
}

// GET /api/ride-join-status — the caller's own join requests.
func GetJoinStatus(c *gin.Context) {
	rc, ok := MustAuth(c)
	if !ok {
		return
	}

	requests, err := repositories.JoinRequestRepository{}.ListForUser(rc.UserID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "internal server error", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"joinRequests": requests})
}

type invitePayload struct {
	InviteeID int64  `json:"inviteeId" binding:"required"`
	RequestID *int64 `json:"requestId"`
}

// POST /api/rides/:id/invite
func InviteToRide(c *gin.Context) {
	rc, ok := MustAuth(c)
	if !ok {
		return
	}
	rideID, ok := PathID(c, "id")
	if !ok {
		return
	}

	var in invitePayload
	if !BindJSONOrError(c, &in) {
		return
	}

	inv, err := rideService(c).InviteToRide(rc.UserID, rideID, in.InviteeID, in.RequestID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"invitation": inv})
}
