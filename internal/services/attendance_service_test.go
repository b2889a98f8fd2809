package services

import (
	"testing"
	"time"

	"github.com/dedekindkali/FFF/internal/domain"
	"github.com/dedekindkali/FFF/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func attendanceRow(id, userID int64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(attendanceCols).
		AddRow(id, userID,
			true, false, false, false,
			false, false, false, false,
			false, false, false, false,
			"", "",
			true, false, false, false, false,
			"", "", now)
}

func TestAttendanceGetNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM attendance_records WHERE user_id").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(attendanceCols))

	svc := AttendanceService{DB: db}
	_, err = svc.Get(1)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAttendanceSaveCreatesOnFirstWrite(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM attendance_records WHERE user_id").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(attendanceCols))
	mock.ExpectExec("INSERT INTO attendance_records").
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectQuery("FROM attendance_records WHERE user_id").WithArgs(int64(1)).
		WillReturnRows(attendanceRow(10, 1))

	svc := AttendanceService{DB: db}
	rec, err := svc.Save(1, models.AttendanceInput{Day1Breakfast: true, Omnivore: true})
	if err != nil {
		t.Fatalf("save error: %v", err)
	}
	if rec.ID != 10 || !rec.Day1Breakfast {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAttendanceSaveUpdatesExisting(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM attendance_records WHERE user_id").WithArgs(int64(1)).
		WillReturnRows(attendanceRow(10, 1))
	mock.ExpectExec("UPDATE attendance_records SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM attendance_records WHERE user_id").WithArgs(int64(1)).
		WillReturnRows(attendanceRow(10, 1))

	svc := AttendanceService{DB: db}
	if _, err := svc.Save(1, models.AttendanceInput{Day1Breakfast: true}); err != nil {
		t.Fatalf("save error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
