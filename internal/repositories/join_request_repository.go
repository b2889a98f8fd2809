package repositories

import (
	"database/sql"

	intconfig "github.com/dedekindkali/FFF/internal/config"
	intdb "github.com/dedekindkali/FFF/internal/db"
	"github.com/dedekindkali/FFF/internal/domain/models"
)

type JoinRequestRepository struct {
	DB *sql.DB
}

func (r JoinRequestRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r JoinRequestRepository) Create(rideID, requesterID int64, message string) (models.RideJoinRequest, error) {
	res, err := r.db().Exec(`INSERT INTO ride_join_requests (ride_id, requester_id, message) VALUES (?,?,?)`,
		rideID, requesterID, intdb.NullIfEmpty(message))
	if err != nil {
		return models.RideJoinRequest{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.RideJoinRequest{}, err
	}
	return r.GetByID(id)
}

func (r JoinRequestRepository) GetByID(requestID int64) (models.RideJoinRequest, error) {
	var jr models.RideJoinRequest
	var message sql.NullString
	var respondedAt sql.NullTime
	err := r.db().QueryRow(`
		SELECT id, ride_id, requester_id, message, status, created_at, responded_at
		FROM ride_join_requests WHERE id = ?`, requestID).
		Scan(&jr.ID, &jr.RideID, &jr.RequesterID, &message, &jr.Status, &jr.CreatedAt, &respondedAt)
	jr.Message = intdb.StringOrEmpty(message)
	if respondedAt.Valid {
		t := respondedAt.Time
		jr.RespondedAt = &t
	}
	return jr, err
}

// ListForDriver returns pending and answered requests against the driver's rides.
func (r JoinRequestRepository) ListForDriver(driverID int64) ([]models.JoinRequestForDriver, error) {
	rows, err := r.db().Query(`
		SELECT jr.id, jr.ride_id, jr.requester_id, COALESCE(jr.message,''), jr.status, jr.created_at, jr.responded_at,
		       u.id, u.username, COALESCE(u.email,''), COALESCE(u.phone,''), u.is_admin, u.created_at,
		       r.id, r.driver_id, r.trip_type, r.event_day, r.departure, r.destination,
		       r.departure_time, r.total_seats, r.available_seats, COALESCE(r.notes,''), r.is_active, r.created_at
		FROM ride_join_requests jr
		INNER JOIN rides r ON r.id = jr.ride_id
		INNER JOIN users u ON u.id = jr.requester_id
		WHERE r.driver_id = ?
		ORDER BY jr.created_at DESC`, driverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.JoinRequestForDriver{}
	for rows.Next() {
		var d models.JoinRequestForDriver
		var respondedAt sql.NullTime
		if err := rows.Scan(
			&d.ID, &d.RideID, &d.RequesterID, &d.Message, &d.Status, &d.CreatedAt, &respondedAt,
			&d.Requester.ID, &d.Requester.Username, &d.Requester.Email, &d.Requester.Phone,
			&d.Requester.IsAdmin, &d.Requester.CreatedAt,
			&d.Ride.ID, &d.Ride.DriverID, &d.Ride.TripType, &d.Ride.EventDay,
			&d.Ride.Departure, &d.Ride.Destination, &d.Ride.DepartureTime,
			&d.Ride.TotalSeats, &d.Ride.AvailableSeats, &d.Ride.Notes, &d.Ride.IsActive, &d.Ride.CreatedAt,
		); err != nil {
			return out, err
		}
		if respondedAt.Valid {
			t := respondedAt.Time
			d.RespondedAt = &t
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListForUser returns the caller's own join requests with the target ride and driver.
func (r JoinRequestRepository) ListForUser(userID int64) ([]models.JoinRequestForUser, error) {
	rows, err := r.db().Query(`
		SELECT jr.id, jr.ride_id, jr.requester_id, COALESCE(jr.message,''), jr.status, jr.created_at, jr.responded_at,
		       r.id, r.driver_id, r.trip_type, r.event_day, r.departure, r.destination,
		       r.departure_time, r.total_seats, r.available_seats, COALESCE(r.notes,''), r.is_active, r.created_at,
		       u.id, u.username, COALESCE(u.email,''), COALESCE(u.phone,''), u.is_admin, u.created_at
		FROM ride_join_requests jr
		INNER JOIN rides r ON r.id = jr.ride_id
		INNER JOIN users u ON u.id = r.driver_id
		WHERE jr.requester_id = ?
		ORDER BY jr.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.JoinRequestForUser{}
	for rows.Next() {
		var d models.JoinRequestForUser
		var respondedAt sql.NullTime
		if err := rows.Scan(
			&d.ID, &d.RideID, &d.RequesterID, &d.Message, &d.Status, &d.CreatedAt, &respondedAt,
			&d.Ride.ID, &d.Ride.DriverID, &d.Ride.TripType, &d.Ride.EventDay,
			&d.Ride.Departure, &d.Ride.Destination, &d.Ride.DepartureTime,
			&d.Ride.TotalSeats, &d.Ride.AvailableSeats, &d.Ride.Notes, &d.Ride.IsActive, &d.Ride.CreatedAt,
			&d.Ride.Driver.ID, &d.Ride.Driver.Username, &d.Ride.Driver.Email, &d.Ride.Driver.Phone,
			&d.Ride.Driver.IsAdmin, &d.Ride.Driver.CreatedAt,
		); err != nil {
			return out, err
		}
		if respondedAt.Valid {
			t := respondedAt.Time
			d.RespondedAt = &t
		}
		d.Ride.Passengers = []models.User{}
		out = append(out, d)
	}
	return out, rows.Err()
}
