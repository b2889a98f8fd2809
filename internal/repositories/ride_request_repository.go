package repositories

import (
	"database/sql"

	intconfig "github.com/dedekindkali/FFF/internal/config"
	intdb "github.com/dedekindkali/FFF/internal/db"
	"github.com/dedekindkali/FFF/internal/domain/models"
)

type RideRequestRepository struct {
	DB *sql.DB
}

func (r RideRequestRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const rideRequestColumns = `id, requester_id, trip_type, event_day, departure, destination,
	COALESCE(departure_time,''), COALESCE(notes,''), status, ride_id, created_at`

func scanRideRequest(row interface{ Scan(...any) error }) (models.RideRequest, error) {
	var req models.RideRequest
	var rideID sql.NullInt64
	err := row.Scan(&req.ID, &req.RequesterID, &req.TripType, &req.EventDay,
		&req.Departure, &req.Destination, &req.DepartureTime, &req.Notes,
		&req.Status, &rideID, &req.CreatedAt)
	req.RideID = intdb.Int64Ptr(rideID)
	return req, err
}

func (r RideRequestRepository) GetByID(requestID int64) (models.RideRequest, error) {
	row := r.db().QueryRow(`SELECT `+rideRequestColumns+` FROM ride_requests WHERE id = ?`, requestID)
	return scanRideRequest(row)
}

func (r RideRequestRepository) Create(requesterID int64, in models.RideRequestInput) (models.RideRequest, error) {
	res, err := r.db().Exec(`INSERT INTO ride_requests
		(requester_id, trip_type, event_day, departure, destination, departure_time, notes)
		VALUES (?,?,?,?,?,?,?)`,
		requesterID, in.TripType, in.EventDay, in.Departure, in.Destination,
		intdb.NullIfEmpty(in.DepartureTime), intdb.NullIfEmpty(in.Notes))
	if err != nil {
		return models.RideRequest{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.RideRequest{}, err
	}
	return r.GetByID(id)
}

// UpdateDetails rewrites the route fields of an open request.
func (r RideRequestRepository) UpdateDetails(requestID int64, in models.RideRequestInput) (int64, error) {
	res, err := r.db().Exec(`UPDATE ride_requests SET
		trip_type=?, event_day=?, departure=?, destination=?, departure_time=?, notes=?
		WHERE id=? AND status='open'`,
		in.TripType, in.EventDay, in.Departure, in.Destination,
		intdb.NullIfEmpty(in.DepartureTime), intdb.NullIfEmpty(in.Notes), requestID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Transition moves a request from one status to another, optionally binding a
// ride. The affected-row count tells the caller whether the guard held.
func (r RideRequestRepository) Transition(requestID int64, from []string, to string, rideID *int64) (int64, error) {
	query := `UPDATE ride_requests SET status=?`
	args := []any{to}
	if rideID != nil {
		query += `, ride_id=?`
		args = append(args, *rideID)
	}
	query += ` WHERE id=? AND status IN (`
	args = append(args, requestID)
	for i, s := range from {
		if i > 0 {
			query += `,`
		}
		query += `?`
		args = append(args, s)
	}
	query += `)`

	res, err := r.db().Exec(query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r RideRequestRepository) Delete(requestID int64) error {
	_, err := r.db().Exec(`DELETE FROM ride_requests WHERE id = ?`, requestID)
	return err
}

// ListAll returns every request with its requester, newest first.
func (r RideRequestRepository) ListAll() ([]models.RideRequestDetail, error) {
	rows, err := r.db().Query(`
		SELECT rr.id, rr.requester_id, rr.trip_type, rr.event_day, rr.departure, rr.destination,
		       COALESCE(rr.departure_time,''), COALESCE(rr.notes,''), rr.status, rr.ride_id, rr.created_at,
		       u.id, u.username, COALESCE(u.email,''), COALESCE(u.phone,''), u.is_admin, u.created_at
		FROM ride_requests rr
		INNER JOIN users u ON u.id = rr.requester_id
		ORDER BY rr.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.RideRequestDetail{}
	for rows.Next() {
		var d models.RideRequestDetail
		var rideID sql.NullInt64
		if err := rows.Scan(
			&d.ID, &d.RequesterID, &d.TripType, &d.EventDay, &d.Departure, &d.Destination,
			&d.DepartureTime, &d.Notes, &d.Status, &rideID, &d.CreatedAt,
			&d.Requester.ID, &d.Requester.Username, &d.Requester.Email, &d.Requester.Phone,
			&d.Requester.IsAdmin, &d.Requester.CreatedAt,
		); err != nil {
			return out, err
		}
		d.RideID = intdb.Int64Ptr(rideID)
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r RideRequestRepository) ListByUser(userID int64) ([]models.RideRequest, error) {
	rows, err := r.db().Query(`SELECT `+rideRequestColumns+` FROM ride_requests WHERE requester_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.RideRequest{}
	for rows.Next() {
		req, err := scanRideRequest(rows)
		if err != nil {
			return out, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}
