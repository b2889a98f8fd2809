package repositories

import (
	"database/sql"

	intconfig "github.com/dedekindkali/FFF/internal/config"
	intdb "github.com/dedekindkali/FFF/internal/db"
	"github.com/dedekindkali/FFF/internal/domain/models"
)

type RideRepository struct {
	DB *sql.DB
}

func (r RideRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const rideColumns = `id, driver_id, trip_type, event_day, departure, destination,
	departure_time, total_seats, available_seats, COALESCE(notes,''), is_active, created_at`

func scanRide(row interface{ Scan(...any) error }) (models.Ride, error) {
	var ride models.Ride
	err := row.Scan(&ride.ID, &ride.DriverID, &ride.TripType, &ride.EventDay,
		&ride.Departure, &ride.Destination, &ride.DepartureTime,
		&ride.TotalSeats, &ride.AvailableSeats, &ride.Notes, &ride.IsActive, &ride.CreatedAt)
	return ride, err
}

func (r RideRepository) GetByID(rideID int64) (models.Ride, error) {
	row := r.db().QueryRow(`SELECT `+rideColumns+` FROM rides WHERE id = ?`, rideID)
	return scanRide(row)
}

func (r RideRepository) Create(driverID int64, in models.RideInput) (models.Ride, error) {
	res, err := r.db().Exec(`INSERT INTO rides
		(driver_id, trip_type, event_day, departure, destination, departure_time, total_seats, available_seats, notes)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		driverID, in.TripType, in.EventDay, in.Departure, in.Destination,
		in.DepartureTime, in.TotalSeats, in.TotalSeats, intdb.NullIfEmpty(in.Notes))
	if err != nil {
		return models.Ride{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Ride{}, err
	}
	return r.GetByID(id)
}

// Update replaces the ride details. available_seats is recomputed by the
// caller so the count of already-seated passengers is preserved.
func (r RideRepository) Update(rideID int64, in models.RideInput, availableSeats int) error {
	_, err := r.db().Exec(`UPDATE rides SET
		trip_type=?, event_day=?, departure=?, destination=?, departure_time=?,
		total_seats=?, available_seats=?, notes=?
		WHERE id=?`,
		in.TripType, in.EventDay, in.Departure, in.Destination, in.DepartureTime,
		in.TotalSeats, availableSeats, intdb.NullIfEmpty(in.Notes), rideID)
	return err
}

// ListActive returns all active rides with driver and accepted passengers.
func (r RideRepository) ListActive() ([]models.RideDetail, error) {
	rows, err := r.db().Query(`
		SELECT r.id, r.driver_id, r.trip_type, r.event_day, r.departure, r.destination,
		       r.departure_time, r.total_seats, r.available_seats, COALESCE(r.notes,''), r.is_active, r.created_at,
		       u.id, u.username, COALESCE(u.email,''), COALESCE(u.phone,''), u.is_admin, u.created_at
		FROM rides r
		INNER JOIN users u ON u.id = r.driver_id
		WHERE r.is_active = 1
		ORDER BY r.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.RideDetail{}
	for rows.Next() {
		var d models.RideDetail
		if err := rows.Scan(
			&d.ID, &d.DriverID, &d.TripType, &d.EventDay, &d.Departure, &d.Destination,
			&d.DepartureTime, &d.TotalSeats, &d.AvailableSeats, &d.Notes, &d.IsActive, &d.CreatedAt,
			&d.Driver.ID, &d.Driver.Username, &d.Driver.Email, &d.Driver.Phone, &d.Driver.IsAdmin, &d.Driver.CreatedAt,
		); err != nil {
			return out, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return out, err
	}

	for i := range out {
		passengers, err := r.acceptedPassengers(out[i].ID)
		if err != nil {
			return out, err
		}
		out[i].Passengers = passengers
	}
	return out, nil
}

func (r RideRepository) ListByDriver(driverID int64) ([]models.Ride, error) {
	rows, err := r.db().Query(`SELECT `+rideColumns+` FROM rides WHERE driver_id = ? ORDER BY created_at DESC`, driverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Ride{}
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return out, err
		}
		out = append(out, ride)
	}
	return out, rows.Err()
}

// AcceptedPassengers lists users whose join request against the ride was accepted.
func (r RideRepository) AcceptedPassengers(rideID int64) ([]models.User, error) {
	return r.acceptedPassengers(rideID)
}

func (r RideRepository) acceptedPassengers(rideID int64) ([]models.User, error) {
	rows, err := r.db().Query(`
		SELECT u.id, u.username, COALESCE(u.email,''), COALESCE(u.phone,''), u.is_admin, u.created_at
		FROM ride_join_requests jr
		INNER JOIN users u ON u.id = jr.requester_id
		WHERE jr.ride_id = ? AND jr.status = 'accepted'
		ORDER BY jr.responded_at ASC`, rideID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return out, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
