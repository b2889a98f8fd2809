package repositories

import (
	"testing"

	"github.com/dedekindkali/FFF/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestTransitionBindsRideAndGuardsStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	rideID := int64(9)
	mock.ExpectExec(`UPDATE ride_requests SET status=\?, ride_id=\? WHERE id=\? AND status IN \(\?\)`).
		WithArgs(models.RequestOffered, rideID, int64(4), models.RequestOpen).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := RideRequestRepository{DB: db}
	rows, err := repo.Transition(4, []string{models.RequestOpen}, models.RequestOffered, &rideID)
	if err != nil {
		t.Fatalf("transition error: %v", err)
	}
	if rows != 1 {
		t.Fatalf("rows = %d, want 1", rows)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTransitionMultipleFromStatuses(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`UPDATE ride_requests SET status=\? WHERE id=\? AND status IN \(\?,\?\)`).
		WithArgs(models.RequestFulfilled, int64(4), models.RequestOpen, models.RequestOffered).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := RideRequestRepository{DB: db}
	rows, err := repo.Transition(4, []string{models.RequestOpen, models.RequestOffered}, models.RequestFulfilled, nil)
	if err != nil {
		t.Fatalf("transition error: %v", err)
	}
	if rows != 1 {
		t.Fatalf("rows = %d, want 1", rows)
	}
}

func TestUpdateDetailsOnlyTouchesOpenRequests(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	in := models.RideRequestInput{
		TripType: models.TripDeparture, EventDay: models.EventDay3,
		Departure: "Forno", Destination: "Turin",
	}
	mock.ExpectExec(`UPDATE ride_requests SET`).
		WithArgs(in.TripType, in.EventDay, in.Departure, in.Destination, nil, nil, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := RideRequestRepository{DB: db}
	rows, err := repo.UpdateDetails(4, in)
	if err != nil {
		t.Fatalf("update error: %v", err)
	}
	if rows != 0 {
		t.Fatalf("rows = %d, want 0 for a non-open request", rows)
	}
}
