package repositories

import (
	"database/sql"

	intconfig "github.com/dedekindkali/FFF/internal/config"
	intdb "github.com/dedekindkali/FFF/internal/db"
	"github.com/dedekindkali/FFF/internal/domain/models"
)

type InvitationRepository struct {
	DB *sql.DB
}

func (r InvitationRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r InvitationRepository) Create(rideID, inviterID, inviteeID int64, requestID *int64) (models.RideInvitation, error) {
	var reqArg any
	if requestID != nil {
		reqArg = *requestID
	}
	res, err := r.db().Exec(`INSERT INTO ride_invitations (ride_id, inviter_id, invitee_id, request_id) VALUES (?,?,?,?)`,
		rideID, inviterID, inviteeID, reqArg)
	if err != nil {
		return models.RideInvitation{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.RideInvitation{}, err
	}
	return r.GetByID(id)
}

func (r InvitationRepository) GetByID(invitationID int64) (models.RideInvitation, error) {
	var inv models.RideInvitation
	var requestID sql.NullInt64
	var respondedAt sql.NullTime
	err := r.db().QueryRow(`
		SELECT id, ride_id, inviter_id, invitee_id, request_id, status, created_at, responded_at
		FROM ride_invitations WHERE id = ?`, invitationID).
		Scan(&inv.ID, &inv.RideID, &inv.InviterID, &inv.InviteeID, &requestID, &inv.Status, &inv.CreatedAt, &respondedAt)
	inv.RequestID = intdb.Int64Ptr(requestID)
	if respondedAt.Valid {
		t := respondedAt.Time
		inv.RespondedAt = &t
	}
	return inv, err
}

// ListForInvitee returns invitations addressed to the user with ride, driver
// and inviter resolved.
func (r InvitationRepository) ListForInvitee(userID int64) ([]models.RideInvitationDetail, error) {
	rows, err := r.db().Query(`
		SELECT i.id, i.ride_id, i.inviter_id, i.invitee_id, i.request_id, i.status, i.created_at, i.responded_at,
		       r.id, r.driver_id, r.trip_type, r.event_day, r.departure, r.destination,
		       r.departure_time, r.total_seats, r.available_seats, COALESCE(r.notes,''), r.is_active, r.created_at,
		       d.id, d.username, COALESCE(d.email,''), COALESCE(d.phone,''), d.is_admin, d.created_at,
		       v.id, v.username, COALESCE(v.email,''), COALESCE(v.phone,''), v.is_admin, v.created_at
		FROM ride_invitations i
		INNER JOIN rides r ON r.id = i.ride_id
		INNER JOIN users d ON d.id = r.driver_id
		INNER JOIN users v ON v.id = i.inviter_id
		WHERE i.invitee_id = ?
		ORDER BY i.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.RideInvitationDetail{}
	for rows.Next() {
		var d models.RideInvitationDetail
		var requestID sql.NullInt64
		var respondedAt sql.NullTime
		if err := rows.Scan(
			&d.ID, &d.RideID, &d.InviterID, &d.InviteeID, &requestID, &d.Status, &d.CreatedAt, &respondedAt,
			&d.Ride.ID, &d.Ride.DriverID, &d.Ride.TripType, &d.Ride.EventDay,
			&d.Ride.Departure, &d.Ride.Destination, &d.Ride.DepartureTime,
			&d.Ride.TotalSeats, &d.Ride.AvailableSeats, &d.Ride.Notes, &d.Ride.IsActive, &d.Ride.CreatedAt,
			&d.Ride.Driver.ID, &d.Ride.Driver.Username, &d.Ride.Driver.Email, &d.Ride.Driver.Phone,
			&d.Ride.Driver.IsAdmin, &d.Ride.Driver.CreatedAt,
			&d.Inviter.ID, &d.Inviter.Username, &d.Inviter.Email, &d.Inviter.Phone,
			&d.Inviter.IsAdmin, &d.Inviter.CreatedAt,
		); err != nil {
			return out, err
		}
		d.RequestID = intdb.Int64Ptr(requestID)
		if respondedAt.Valid {
			t := respondedAt.Time
			d.RespondedAt = &t
		}
		d.Ride.Passengers = []models.User{}
		out = append(out, d)
	}
	return out, rows.Err()
}
