package repositories

import (
	"database/sql"

	intconfig "github.com/dedekindkali/FFF/internal/config"
	intdb "github.com/dedekindkali/FFF/internal/db"
	"github.com/dedekindkali/FFF/internal/domain/models"
)

type AttendanceRepository struct {
	DB *sql.DB
}

func (r AttendanceRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const attendanceColumns = `id, user_id,
	day1_breakfast, day1_lunch, day1_dinner, day1_night,
	day2_breakfast, day2_lunch, day2_dinner, day2_night,
	day3_breakfast, day3_lunch, day3_dinner, day3_night,
	COALESCE(transportation_status,''), COALESCE(transportation_details,''),
	omnivore, vegetarian, vegan, gluten_free, dairy_free,
	COALESCE(allergies,''), COALESCE(notes,''), updated_at`

func scanAttendance(row interface{ Scan(...any) error }) (models.AttendanceRecord, error) {
	var a models.AttendanceRecord
	err := row.Scan(
		&a.ID, &a.UserID,
		&a.Day1Breakfast, &a.Day1Lunch, &a.Day1Dinner, &a.Day1Night,
		&a.Day2Breakfast, &a.Day2Lunch, &a.Day2Dinner, &a.Day2Night,
		&a.Day3Breakfast, &a.Day3Lunch, &a.Day3Dinner, &a.Day3Night,
		&a.TransportationStatus, &a.TransportationDetails,
		&a.Omnivore, &a.Vegetarian, &a.Vegan, &a.GlutenFree, &a.DairyFree,
		&a.Allergies, &a.Notes, &a.UpdatedAt,
	)
	return a, err
}

func (r AttendanceRepository) GetByUserID(userID int64) (models.AttendanceRecord, error) {
	row := r.db().QueryRow(`SELECT `+attendanceColumns+` FROM attendance_records WHERE user_id = ?`, userID)
	return scanAttendance(row)
}

func inputArgs(in models.AttendanceInput) []any {
	return []any{
		in.Day1Breakfast, in.Day1Lunch, in.Day1Dinner, in.Day1Night,
		in.Day2Breakfast, in.Day2Lunch, in.Day2Dinner, in.Day2Night,
		in.Day3Breakfast, in.Day3Lunch, in.Day3Dinner, in.Day3Night,
		intdb.NullIfEmpty(in.TransportationStatus), intdb.NullIfEmpty(in.TransportationDetails),
		in.Omnivore, in.Vegetarian, in.Vegan, in.GlutenFree, in.DairyFree,
		intdb.NullIfEmpty(in.Allergies), intdb.NullIfEmpty(in.Notes),
	}
}

func (r AttendanceRepository) Create(userID int64, in models.AttendanceInput) (models.AttendanceRecord, error) {
	args := append([]any{userID}, inputArgs(in)...)
	_, err := r.db().Exec(`INSERT INTO attendance_records (
		user_id,
		day1_breakfast, day1_lunch, day1_dinner, day1_night,
		day2_breakfast, day2_lunch, day2_dinner, day2_night,
		day3_breakfast, day3_lunch, day3_dinner, day3_night,
		transportation_status, transportation_details,
		omnivore, vegetarian, vegan, gluten_free, dairy_free,
		allergies, notes
	) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`, args...)
	if err != nil {
		return models.AttendanceRecord{}, err
	}
	return r.GetByUserID(userID)
}

func (r AttendanceRepository) Update(userID int64, in models.AttendanceInput) (models.AttendanceRecord, error) {
	args := append(inputArgs(in), userID)
	_, err := r.db().Exec(`UPDATE attendance_records SET
		day1_breakfast=?, day1_lunch=?, day1_dinner=?, day1_night=?,
		day2_breakfast=?, day2_lunch=?, day2_dinner=?, day2_night=?,
		day3_breakfast=?, day3_lunch=?, day3_dinner=?, day3_night=?,
		transportation_status=?, transportation_details=?,
		omnivore=?, vegetarian=?, vegan=?, gluten_free=?, dairy_free=?,
		allergies=?, notes=?
		WHERE user_id=?`, args...)
	if err != nil {
		return models.AttendanceRecord{}, err
	}
	return r.GetByUserID(userID)
}

// ListAll returns every attendance record; used by the admin stats aggregation.
func (r AttendanceRepository) ListAll() ([]models.AttendanceRecord, error) {
	rows, err := r.db().Query(`SELECT ` + attendanceColumns + ` FROM attendance_records ORDER BY user_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.AttendanceRecord{}
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return out, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
