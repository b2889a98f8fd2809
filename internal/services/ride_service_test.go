package services

import (
	"testing"
	"time"

	"github.com/dedekindkali/FFF/internal/domain"
	"github.com/dedekindkali/FFF/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func rideRow(id, driverID int64, total, available int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "driver_id", "trip_type", "event_day", "departure", "destination",
		"departure_time", "total_seats", "available_seats", "notes", "is_active", "created_at",
	}).AddRow(id, driverID, models.TripArrival, models.EventDay1, "Milan", "Forno",
		"09:30", total, available, "", true, time.Now())
}

func joinRequestRow(id, rideID, requesterID int64, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "ride_id", "requester_id", "message", "status", "created_at", "responded_at",
	}).AddRow(id, rideID, requesterID, "room for one more?", status, time.Now(), nil)
}

func TestRespondToJoinRequestAcceptTakesOneSeat(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM ride_join_requests WHERE id").WithArgs(int64(7)).
		WillReturnRows(joinRequestRow(7, 3, 42, models.JoinPending))
	mock.ExpectQuery("FROM rides WHERE id").WithArgs(int64(3)).
		WillReturnRows(rideRow(3, 1, 3, 2))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE ride_join_requests SET status").
		WithArgs(models.JoinAccepted, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE rides SET available_seats").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := RideService{DB: db}
	if err := svc.RespondToJoinRequest(1, 7, models.JoinAccepted); err != nil {
		t.Fatalf("respond error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRespondToJoinRequestSecondAcceptConflicts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM ride_join_requests WHERE id").WithArgs(int64(7)).
		WillReturnRows(joinRequestRow(7, 3, 42, models.JoinAccepted))
	mock.ExpectQuery("FROM rides WHERE id").WithArgs(int64(3)).
		WillReturnRows(rideRow(3, 1, 3, 1))
	mock.ExpectBegin()
	// status is no longer pending, so the guarded update matches nothing
	mock.ExpectExec("UPDATE ride_join_requests SET status").
		WithArgs(models.JoinAccepted, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	svc := RideService{DB: db}
	err = svc.RespondToJoinRequest(1, 7, models.JoinAccepted)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRespondToJoinRequestFullRideConflicts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM ride_join_requests WHERE id").WithArgs(int64(8)).
		WillReturnRows(joinRequestRow(8, 3, 43, models.JoinPending))
	mock.ExpectQuery("FROM rides WHERE id").WithArgs(int64(3)).
		WillReturnRows(rideRow(3, 1, 3, 0))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE ride_join_requests SET status").
		WithArgs(models.JoinAccepted, int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE rides SET available_seats").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	svc := RideService{DB: db}
	err = svc.RespondToJoinRequest(1, 8, models.JoinAccepted)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRespondToJoinRequestForbiddenForOtherDriver(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM ride_join_requests WHERE id").WithArgs(int64(7)).
		WillReturnRows(joinRequestRow(7, 3, 42, models.JoinPending))
	mock.ExpectQuery("FROM rides WHERE id").WithArgs(int64(3)).
		WillReturnRows(rideRow(3, 1, 3, 2))

	svc := RideService{DB: db}
	err = svc.RespondToJoinRequest(99, 7, models.JoinAccepted)
	if !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestRequestJoinOwnRideRejected(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM rides WHERE id").WithArgs(int64(3)).
		WillReturnRows(rideRow(3, 1, 3, 2))

	svc := RideService{DB: db}
	_, err = svc.RequestJoin(1, 3, "pick me up too")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestModifyRideKeepsSeatedPassengers(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// 3 total, 1 available: 2 passengers already seated
	mock.ExpectQuery("FROM rides WHERE id").WithArgs(int64(3)).
		WillReturnRows(rideRow(3, 1, 3, 1))

	in := models.RideInput{
		TripType: models.TripArrival, EventDay: models.EventDay1,
		Departure: "Milan", Destination: "Forno", DepartureTime: "09:30",
		TotalSeats: 4,
	}
	// seated stays 2, so the new availability must be 4-2=2
	mock.ExpectExec("UPDATE rides SET").
		WithArgs(in.TripType, in.EventDay, in.Departure, in.Destination,
			in.DepartureTime, 4, 2, nil, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM ride_join_requests jr").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "phone", "is_admin", "created_at"}))
	mock.ExpectQuery("FROM rides WHERE id").WithArgs(int64(3)).
		WillReturnRows(rideRow(3, 1, 4, 2))

	svc := RideService{DB: db}
	updated, err := svc.ModifyRide(1, 3, in)
	if err != nil {
		t.Fatalf("modify error: %v", err)
	}
	if updated.TotalSeats != 4 || updated.AvailableSeats != 2 {
		t.Fatalf("unexpected seats: total=%d available=%d", updated.TotalSeats, updated.AvailableSeats)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestModifyRideRejectsShrinkBelowSeated(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM rides WHERE id").WithArgs(int64(3)).
		WillReturnRows(rideRow(3, 1, 3, 1))

	in := models.RideInput{
		TripType: models.TripArrival, EventDay: models.EventDay1,
		Departure: "Milan", Destination: "Forno", DepartureTime: "09:30",
		TotalSeats: 1,
	}
	svc := RideService{DB: db}
	_, err = svc.ModifyRide(1, 3, in)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRespondToInvitationAcceptOnFullRideConflicts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM ride_invitations WHERE id").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "ride_id", "inviter_id", "invitee_id", "request_id", "status", "created_at", "responded_at",
		}).AddRow(5, 3, 1, 42, nil, models.JoinPending, time.Now(), nil))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE ride_invitations SET status").
		WithArgs(models.JoinAccepted, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE rides SET available_seats").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	svc := RideService{DB: db}
	err = svc.RespondToInvitation(42, 5, models.JoinAccepted)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRespondToInvitationNotAddressedToCaller(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM ride_invitations WHERE id").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "ride_id", "inviter_id", "invitee_id", "request_id", "status", "created_at", "responded_at",
		}).AddRow(5, 3, 1, 42, nil, models.JoinPending, time.Now(), nil))

	svc := RideService{DB: db}
	err = svc.RespondToInvitation(99, 5, models.JoinDeclined)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
