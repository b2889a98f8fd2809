package services

import (
	"database/sql"
	"errors"
	"fmt"

	intconfig "github.com/dedekindkali/FFF/internal/config"
	"github.com/dedekindkali/FFF/internal/domain"
	"github.com/dedekindkali/FFF/internal/domain/models"
	"github.com/dedekindkali/FFF/internal/metrics"
	"github.com/dedekindkali/FFF/internal/repositories"
	"github.com/dedekindkali/FFF/internal/utils"
)

// RideService mediates every ride-related state transition: offers, join
// requests, invitations and the seat accounting they share. Seats are reserved
// only when a request or invitation is accepted, never earlier.
type RideService struct {
	RideRepo    repositories.RideRepository
	RequestRepo repositories.RideRequestRepository
	JoinRepo    repositories.JoinRequestRepository
	InviteRepo  repositories.InvitationRepository
	NotifyRepo  repositories.NotificationRepository
	UserRepo    repositories.UserRepository
	DB          *sql.DB
	RequestID   string
}

func (s RideService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s RideService) rides() repositories.RideRepository {
	if s.RideRepo.DB != nil {
		return s.RideRepo
	}
	return repositories.RideRepository{DB: s.db()}
}

func (s RideService) requests() repositories.RideRequestRepository {
	if s.RequestRepo.DB != nil {
		return s.RequestRepo
	}
	return repositories.RideRequestRepository{DB: s.db()}
}

func (s RideService) joins() repositories.JoinRequestRepository {
	if s.JoinRepo.DB != nil {
		return s.JoinRepo
	}
	return repositories.JoinRequestRepository{DB: s.db()}
}

func (s RideService) invites() repositories.InvitationRepository {
	if s.InviteRepo.DB != nil {
		return s.InviteRepo
	}
	return repositories.InvitationRepository{DB: s.db()}
}

func (s RideService) notifications() repositories.NotificationRepository {
	if s.NotifyRepo.DB != nil {
		return s.NotifyRepo
	}
	return repositories.NotificationRepository{DB: s.db()}
}

func (s RideService) users() repositories.UserRepository {
	if s.UserRepo.DB != nil {
		return s.UserRepo
	}
	return repositories.UserRepository{DB: s.db()}
}

func validateRideInput(in models.RideInput) error {
	if !models.ValidTripType(in.TripType) {
		return domain.ValidationError{Field: "tripType", Msg: "must be arrival or departure"}
	}
	if !models.ValidEventDay(in.EventDay) {
		return domain.ValidationError{Field: "eventDay", Msg: "must be day1, day2 or day3"}
	}
	if in.TotalSeats < 1 {
		return domain.ValidationError{Field: "totalSeats", Msg: "must be at least 1"}
	}
	return nil
}

// CreateRide creates the ride, then attempts one invitation per requested
// invitee. The ride creation must succeed; each invitation send may fail
// independently and is reported in the fan-out counts.
func (s RideService) CreateRide(driverID int64, in models.RideInput) (models.Ride, models.InviteFanout, error) {
	var fanout models.InviteFanout
	if err := validateRideInput(in); err != nil {
		return models.Ride{}, fanout, err
	}

	ride, err := s.rides().Create(driverID, in)
	if err != nil {
		return models.Ride{}, fanout, domain.InternalError{Err: err}
	}

	for _, inviteeID := range in.InviteeIDs {
		if inviteeID == driverID {
			fanout.Failed++
			continue
		}
		if _, err := s.InviteToRide(driverID, ride.ID, inviteeID, nil); err != nil {
			utils.LogEvent(s.RequestID, "rides", "invite_fanout",
				fmt.Sprintf("ride_id=%d invitee_id=%d err=%v", ride.ID, inviteeID, err))
			fanout.Failed++
			continue
		}
		fanout.Invited++
	}

	utils.LogEvent(s.RequestID, "rides", "create",
		fmt.Sprintf("ride_id=%d driver_id=%d seats=%d invited=%d", ride.ID, driverID, ride.TotalSeats, fanout.Invited))
	return ride, fanout, nil
}

// ModifyRide rewrites the ride details while preserving the count of already
// seated passengers, then notifies them.
func (s RideService) ModifyRide(driverID, rideID int64, in models.RideInput) (models.Ride, error) {
	ride, err := s.rides().GetByID(rideID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Ride{}, domain.NotFoundError{Resource: "ride", Err: err}
		}
		return models.Ride{}, domain.InternalError{Err: err}
	}
	if ride.DriverID != driverID {
		return models.Ride{}, domain.ForbiddenError{Resource: "ride"}
	}
	if err := validateRideInput(in); err != nil {
		return models.Ride{}, err
	}

	seated := ride.TotalSeats - ride.AvailableSeats
	if in.TotalSeats < seated {
		return models.Ride{}, domain.ValidationError{Field: "totalSeats",
			Msg: fmt.Sprintf("cannot go below the %d passengers already seated", seated)}
	}
	available := in.TotalSeats - seated

	if err := s.rides().Update(rideID, in, available); err != nil {
		return models.Ride{}, domain.InternalError{Err: err}
	}

	passengers, err := s.rides().AcceptedPassengers(rideID)
	if err == nil {
		msg := fmt.Sprintf("The ride from %s to %s has been updated by the driver", in.Departure, in.Destination)
		for _, p := range passengers {
			s.notify(p.ID, &rideID, models.NotifyRideModified, msg)
		}
	}

	updated, err := s.rides().GetByID(rideID)
	if err != nil {
		return models.Ride{}, domain.InternalError{Err: err}
	}
	return updated, nil
}

// DeleteRide hard-deletes the ride together with its join requests,
// invitations and ride-scoped notifications, and tells accepted passengers.
func (s RideService) DeleteRide(driverID, rideID int64) error {
	ride, err := s.rides().GetByID(rideID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "ride", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	if ride.DriverID != driverID {
		return domain.ForbiddenError{Resource: "ride"}
	}

	passengers, err := s.rides().AcceptedPassengers(rideID)
	if err != nil {
		return domain.InternalError{Err: err}
	}

	tx, err := s.db().Begin()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	for _, stmt := range []string{
		`DELETE FROM ride_notifications WHERE ride_id = ?`,
		`DELETE FROM ride_invitations WHERE ride_id = ?`,
		`DELETE FROM ride_join_requests WHERE ride_id = ?`,
		`DELETE FROM rides WHERE id = ?`,
	} {
		if _, err := tx.Exec(stmt, rideID); err != nil {
			_ = tx.Rollback()
			return domain.InternalError{Err: err}
		}
	}
	if err := tx.Commit(); err != nil {
		return domain.InternalError{Err: err}
	}

	msg := fmt.Sprintf("The ride from %s to %s on %s was cancelled by the driver",
		ride.Departure, ride.Destination, ride.DepartureTime)
	for _, p := range passengers {
		s.notify(p.ID, nil, models.NotifyRideCancelled, msg)
	}

	utils.LogEvent(s.RequestID, "rides", "delete", fmt.Sprintf("ride_id=%d driver_id=%d", rideID, driverID))
	return nil
}

// RequestJoin records a pending ask to join the ride. Seat availability is
// deliberately not checked here: the driver picks among pending requests and
// seats are reserved only at acceptance.
func (s RideService) RequestJoin(requesterID, rideID int64, message string) (models.RideJoinRequest, error) {
	ride, err := s.rides().GetByID(rideID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RideJoinRequest{}, domain.NotFoundError{Resource: "ride", Err: err}
		}
		return models.RideJoinRequest{}, domain.InternalError{Err: err}
	}
	if !ride.IsActive {
		return models.RideJoinRequest{}, domain.NotFoundError{Resource: "ride"}
	}
	if ride.DriverID == requesterID {
		return models.RideJoinRequest{}, domain.ValidationError{Msg: "a driver cannot join their own ride"}
	}

	jr, err := s.joins().Create(rideID, requesterID, message)
	if err != nil {
		return models.RideJoinRequest{}, domain.InternalError{Err: err}
	}
	return jr, nil
}

// RespondToJoinRequest accepts or declines a pending request. The pending
// guard makes a double submit a no-op conflict instead of a double decrement,
// and the conditional seat update keeps availableSeats from going negative
// under concurrent acceptances.
func (s RideService) RespondToJoinRequest(driverID, requestID int64, status string) error {
	if status != models.JoinAccepted && status != models.JoinDeclined {
		return domain.ValidationError{Field: "status", Msg: "must be accepted or declined"}
	}

	jr, err := s.joins().GetByID(requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "join request", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	ride, err := s.rides().GetByID(jr.RideID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if ride.DriverID != driverID {
		return domain.ForbiddenError{Resource: "join request"}
	}

	tx, err := s.db().Begin()
	if err != nil {
		return domain.InternalError{Err: err}
	}

	res, err := tx.Exec(`UPDATE ride_join_requests SET status = ?, responded_at = NOW() WHERE id = ? AND status = 'pending'`,
		status, requestID)
	if err != nil {
		_ = tx.Rollback()
		return domain.InternalError{Err: err}
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		_ = tx.Rollback()
		return domain.ConflictError{Resource: "join request", Msg: "already responded"}
	}

	if status == models.JoinAccepted {
		res, err := tx.Exec(`UPDATE rides SET available_seats = available_seats - 1 WHERE id = ? AND available_seats > 0`,
			jr.RideID)
		if err != nil {
			_ = tx.Rollback()
			return domain.InternalError{Err: err}
		}
		if rows, _ := res.RowsAffected(); rows == 0 {
			_ = tx.Rollback()
			return domain.ConflictError{Resource: "ride", Msg: "no available seats"}
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.InternalError{Err: err}
	}

	if status == models.JoinAccepted {
		metrics.SeatsAccepted.Inc()
	}
	utils.LogEvent(s.RequestID, "rides", "respond_join",
		fmt.Sprintf("request_id=%d ride_id=%d status=%s", requestID, jr.RideID, status))
	return nil
}

// InviteToRide creates a driver-initiated invitation and notifies the invitee.
// When the invitation answers a standalone ride request, that request moves
// from open to offered.
func (s RideService) InviteToRide(driverID, rideID, inviteeID int64, requestID *int64) (models.RideInvitation, error) {
	ride, err := s.rides().GetByID(rideID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RideInvitation{}, domain.NotFoundError{Resource: "ride", Err: err}
		}
		return models.RideInvitation{}, domain.InternalError{Err: err}
	}
	if ride.DriverID != driverID {
		return models.RideInvitation{}, domain.ForbiddenError{Resource: "ride"}
	}
	if inviteeID == driverID {
		return models.RideInvitation{}, domain.ValidationError{Msg: "a driver cannot invite themselves"}
	}
	if _, err := s.users().GetByID(inviteeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RideInvitation{}, domain.NotFoundError{Resource: "user", Err: err}
		}
		return models.RideInvitation{}, domain.InternalError{Err: err}
	}

	inv, err := s.invites().Create(rideID, driverID, inviteeID, requestID)
	if err != nil {
		return models.RideInvitation{}, domain.InternalError{Err: err}
	}

	if requestID != nil {
		if _, err := s.requests().Transition(*requestID, []string{models.RequestOpen}, models.RequestOffered, &rideID); err != nil {
			utils.LogEvent(s.RequestID, "rides", "invite",
				fmt.Sprintf("request transition failed request_id=%d err=%v", *requestID, err))
		}
	}

	s.notify(inviteeID, &rideID, models.NotifyRideInvitation,
		fmt.Sprintf("You have been invited to join a ride from %s to %s", ride.Departure, ride.Destination))

	utils.LogEvent(s.RequestID, "rides", "invite",
		fmt.Sprintf("invitation_id=%d ride_id=%d invitee_id=%d", inv.ID, rideID, inviteeID))
	return inv, nil
}

// RespondToInvitation accepts or declines an invitation addressed to the
// caller. Acceptance synthesizes an accepted join request and takes a seat;
// a full ride rejects the acceptance rather than seating without a seat.
func (s RideService) RespondToInvitation(inviteeID, invitationID int64, status string) error {
	if status != models.JoinAccepted && status != models.JoinDeclined {
		return domain.ValidationError{Field: "status", Msg: "must be accepted or declined"}
	}

	inv, err := s.invites().GetByID(invitationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "invitation", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	if inv.InviteeID != inviteeID {
		// Invitations addressed to someone else are invisible to the caller.
		return domain.NotFoundError{Resource: "invitation"}
	}

	tx, err := s.db().Begin()
	if err != nil {
		return domain.InternalError{Err: err}
	}

	res, err := tx.Exec(`UPDATE ride_invitations SET status = ?, responded_at = NOW() WHERE id = ? AND status = 'pending'`,
		status, invitationID)
	if err != nil {
		_ = tx.Rollback()
		return domain.InternalError{Err: err}
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		_ = tx.Rollback()
		return domain.ConflictError{Resource: "invitation", Msg: "already responded"}
	}

	if status == models.JoinAccepted {
		res, err := tx.Exec(`UPDATE rides SET available_seats = available_seats - 1 WHERE id = ? AND available_seats > 0`,
			inv.RideID)
		if err != nil {
			_ = tx.Rollback()
			return domain.InternalError{Err: err}
		}
		if rows, _ := res.RowsAffected(); rows == 0 {
			_ = tx.Rollback()
			return domain.ConflictError{Resource: "ride", Msg: "no available seats"}
		}

		if _, err := tx.Exec(`INSERT INTO ride_join_requests (ride_id, requester_id, message, status, responded_at)
			VALUES (?, ?, 'Joined via invitation', 'accepted', NOW())`, inv.RideID, inviteeID); err != nil {
			_ = tx.Rollback()
			return domain.InternalError{Err: err}
		}

		if inv.RequestID != nil {
			if _, err := tx.Exec(`UPDATE ride_requests SET status = 'fulfilled', ride_id = ? WHERE id = ? AND status IN ('open','offered')`,
				inv.RideID, *inv.RequestID); err != nil {
				_ = tx.Rollback()
				return domain.InternalError{Err: err}
			}
		}
	} else if inv.RequestID != nil {
		// The declined offer releases the linked request back to open so other
		// drivers can pick it up.
		if _, err := tx.Exec(`UPDATE ride_requests SET status = 'open' WHERE id = ? AND status = 'offered'`,
			*inv.RequestID); err != nil {
			_ = tx.Rollback()
			return domain.InternalError{Err: err}
		}
	}

	// The invitation notification is answered either way; drop it.
	if _, err := tx.Exec(`DELETE FROM ride_notifications WHERE user_id = ? AND ride_id = ? AND type = ?`,
		inviteeID, inv.RideID, models.NotifyRideInvitation); err != nil {
		_ = tx.Rollback()
		return domain.InternalError{Err: err}
	}

	if err := tx.Commit(); err != nil {
		return domain.InternalError{Err: err}
	}

	if status == models.JoinAccepted {
		metrics.SeatsAccepted.Inc()
	}
	utils.LogEvent(s.RequestID, "rides", "respond_invitation",
		fmt.Sprintf("invitation_id=%d ride_id=%d status=%s", invitationID, inv.RideID, status))
	return nil
}

func (s RideService) CreateRideRequest(requesterID int64, in models.RideRequestInput) (models.RideRequest, error) {
	if !models.ValidTripType(in.TripType) {
		return models.RideRequest{}, domain.ValidationError{Field: "tripType", Msg: "must be arrival or departure"}
	}
	if !models.ValidEventDay(in.EventDay) {
		return models.RideRequest{}, domain.ValidationError{Field: "eventDay", Msg: "must be day1, day2 or day3"}
	}

	req, err := s.requests().Create(requesterID, in)
	if err != nil {
		return models.RideRequest{}, domain.InternalError{Err: err}
	}
	return req, nil
}

// UpdateRideRequest lets the requester edit route details while the request is
// still open. Once a driver has made an offer the request is frozen.
func (s RideService) UpdateRideRequest(requesterID, requestID int64, in models.RideRequestInput) (models.RideRequest, error) {
	req, err := s.requests().GetByID(requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RideRequest{}, domain.NotFoundError{Resource: "ride request", Err: err}
		}
		return models.RideRequest{}, domain.InternalError{Err: err}
	}
	if req.RequesterID != requesterID {
		return models.RideRequest{}, domain.ForbiddenError{Resource: "ride request"}
	}
	if !models.ValidTripType(in.TripType) || !models.ValidEventDay(in.EventDay) {
		return models.RideRequest{}, domain.ValidationError{Msg: "invalid trip type or event day"}
	}

	rows, err := s.requests().UpdateDetails(requestID, in)
	if err != nil {
		return models.RideRequest{}, domain.InternalError{Err: err}
	}
	if rows == 0 {
		return models.RideRequest{}, domain.ConflictError{Resource: "ride request", Msg: "no longer open"}
	}
	return s.requests().GetByID(requestID)
}

func (s RideService) DeleteRideRequest(requesterID, requestID int64) error {
	req, err := s.requests().GetByID(requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "ride request", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	if req.RequesterID != requesterID {
		return domain.ForbiddenError{Resource: "ride request"}
	}
	if err := s.requests().Delete(requestID); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

// notify is best-effort: a failed notification never fails the transition
// that produced it.
func (s RideService) notify(userID int64, rideID *int64, kind, message string) {
	if err := s.notifications().Create(userID, rideID, kind, message); err != nil {
		utils.LogEvent(s.RequestID, "rides", "notify",
			fmt.Sprintf("user_id=%d type=%s err=%v", userID, kind, err))
		return
	}
	metrics.NotificationsCreated.Inc()
}
