package services

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/dedekindkali/FFF/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

var participantCols = []string{
	"id", "username", "email", "phone", "is_admin", "created_at",
	"att_id", "att_user_id",
	"day1_breakfast", "day1_lunch", "day1_dinner", "day1_night",
	"day2_breakfast", "day2_lunch", "day2_dinner", "day2_night",
	"day3_breakfast", "day3_lunch", "day3_dinner", "day3_night",
	"transportation_status", "transportation_details",
	"omnivore", "vegetarian", "vegan", "gluten_free", "dairy_free",
	"allergies", "notes", "updated_at",
}

func TestBuildCSVAttendance(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(participantCols).
		AddRow(1, "alice", "alice@example.com", "", false, now,
			10, 1,
			true, true, false, false,
			false, false, false, false,
			false, false, false, false,
			"offering", "4 seats from Milan",
			true, false, false, false, false,
			"", "", now).
		// bob never saved attendance and must be skipped
		AddRow(2, "bob", "", "", false, now,
			nil, nil,
			nil, nil, nil, nil,
			nil, nil, nil, nil,
			nil, nil, nil, nil,
			nil, nil,
			nil, nil, nil, nil, nil,
			nil, nil, nil)
	mock.ExpectQuery("LEFT JOIN attendance_records").WillReturnRows(rows)

	svc := ExportService{DB: db}
	out, err := svc.BuildCSV("attendance")
	if err != nil {
		t.Fatalf("build error: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("csv parse error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header plus one row, got %d records", len(records))
	}
	if records[0][0] != "Username" || records[0][1] != "Day1 Breakfast" || records[0][12] != "Day3 Night" {
		t.Errorf("unexpected header: %v", records[0])
	}
	want := []string{"alice",
		"true", "true", "false", "false",
		"false", "false", "false", "false",
		"false", "false", "false", "false"}
	for i, cell := range want {
		if records[1][i] != cell {
			t.Errorf("row cell %d = %q, want %q", i, records[1][i], cell)
		}
	}
}

func TestBuildCSVDietary(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(participantCols).
		AddRow(1, "carla", "", "", false, now,
			11, 1,
			true, false, false, false,
			false, false, false, false,
			false, false, false, false,
			"own", "",
			false, true, false, true, false,
			"peanuts", "", now)
	mock.ExpectQuery("LEFT JOIN attendance_records").WillReturnRows(rows)

	svc := ExportService{DB: db}
	out, err := svc.BuildCSV("dietary")
	if err != nil {
		t.Fatalf("build error: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("csv parse error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header plus one row, got %d records", len(records))
	}
	row := records[1]
	if row[0] != "carla" || row[1] != "true" || row[3] != "true" || row[5] != "peanuts" {
		t.Errorf("unexpected dietary row: %v", row)
	}
}

func TestBuildCSVUnknownType(t *testing.T) {
	svc := ExportService{}
	_, err := svc.BuildCSV("payroll")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
