package repositories

import (
	"database/sql"

	intconfig "github.com/dedekindkali/FFF/internal/config"
	intdb "github.com/dedekindkali/FFF/internal/db"
	"github.com/dedekindkali/FFF/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const userColumns = `id, username, COALESCE(email,''), COALESCE(phone,''), is_admin, created_at`

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Phone, &u.IsAdmin, &u.CreatedAt)
	return u, err
}

func (r UserRepository) GetByID(id int64) (models.User, error) {
	row := r.db().QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r UserRepository) GetByUsername(username string) (models.User, error) {
	row := r.db().QueryRow(`SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func (r UserRepository) Create(username, email, phone string) (models.User, error) {
	res, err := r.db().Exec(`INSERT INTO users (username, email, phone) VALUES (?, ?, ?)`,
		username, intdb.NullIfEmpty(email), intdb.NullIfEmpty(phone))
	if err != nil {
		return models.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	return r.GetByID(id)
}

func (r UserRepository) List() ([]models.User, error) {
	rows, err := r.db().Query(`SELECT ` + userColumns + ` FROM users ORDER BY id ASC`)
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

// ListParticipants returns every user left-joined with their attendance record.
func (r UserRepository) ListParticipants() ([]models.Participant, error) {
	rows, err := r.db().Query(`
		SELECT u.id, u.username, COALESCE(u.email,''), COALESCE(u.phone,''), u.is_admin, u.created_at,
		       a.id, a.user_id,
		       a.day1_breakfast, a.day1_lunch, a.day1_dinner, a.day1_night,
		       a.day2_breakfast, a.day2_lunch, a.day2_dinner, a.day2_night,
		       a.day3_breakfast, a.day3_lunch, a.day3_dinner, a.day3_night,
		       a.transportation_status, a.transportation_details,
		       a.omnivore, a.vegetarian, a.vegan, a.gluten_free, a.dairy_free,
		       a.allergies, a.notes, a.updated_at
		FROM users u
		LEFT JOIN attendance_records a ON a.user_id = u.id
		ORDER BY u.id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Participant{}
	for rows.Next() {
		var p models.Participant
		var (
			attID, attUserID                                       sql.NullInt64
			d1b, d1l, d1d, d1n, d2b, d2l, d2d, d2n, d3b, d3l, d3d, d3n sql.NullBool
			omn, veg, vgn, glu, dai                                sql.NullBool
			tStatus, tDetails, allergies, notes                    sql.NullString
			updatedAt                                              sql.NullTime
		)
		if err := rows.Scan(
			&p.ID, &p.Username, &p.Email, &p.Phone, &p.IsAdmin, &p.CreatedAt,
			&attID, &attUserID,
			&d1b, &d1l, &d1d, &d1n,
			&d2b, &d2l, &d2d, &d2n,
			&d3b, &d3l, &d3d, &d3n,
			&tStatus, &tDetails,
			&omn, &veg, &vgn, &glu, &dai,
			&allergies, &notes, &updatedAt,
		); err != nil {
			return out, err
		}
		if attID.Valid {
			p.Attendance = &models.AttendanceRecord{
				ID:                    attID.Int64,
				UserID:                attUserID.Int64,
				Day1Breakfast:         d1b.Bool,
				Day1Lunch:             d1l.Bool,
				Day1Dinner:            d1d.Bool,
				Day1Night:             d1n.Bool,
				Day2Breakfast:         d2b.Bool,
				Day2Lunch:             d2l.Bool,
				Day2Dinner:            d2d.Bool,
				Day2Night:             d2n.Bool,
				Day3Breakfast:         d3b.Bool,
				Day3Lunch:             d3l.Bool,
				Day3Dinner:            d3d.Bool,
				Day3Night:             d3n.Bool,
				TransportationStatus:  intdb.StringOrEmpty(tStatus),
				TransportationDetails: intdb.StringOrEmpty(tDetails),
				Omnivore:              omn.Bool,
				Vegetarian:            veg.Bool,
				Vegan:                 vgn.Bool,
				GlutenFree:            glu.Bool,
				DairyFree:             dai.Bool,
				Allergies:             intdb.StringOrEmpty(allergies),
				Notes:                 intdb.StringOrEmpty(notes),
				UpdatedAt:             updatedAt.Time,
			}
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
