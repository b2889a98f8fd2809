package handlers

import (
	"net/http"

	"github.com/dedekindkali/FFF/internal/repositories"
	"github.com/gin-gonic/gin"
)

// GET /api/ride-invitations — invitations addressed to the caller.
func GetInvitations(c *gin.Context) {
	rc, ok := MustAuth(c)
	if !ok {
		return
	}

	invitations, err := repositories.InvitationRepository{}.ListForInvitee(rc.UserID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "internal server error", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"invitations": invitations})
}

// PUT /api/ride-invitations/:id/respond
func RespondToInvitation(c *gin.Context) {
	rc, ok := MustAuth(c)
	if !ok {
		return
	}
	invitationID, ok := PathID(c, "id")
	if !ok {
		return
	}

	var in respondPayload
	if !BindJSONOrError(c, &in) {
		return
	}

	if err := rideService(c).RespondToInvitation(rc.UserID, invitationID, in.Status); err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "response recorded"})
}
