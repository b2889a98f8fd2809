package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "github.com/dedekindkali/FFF/internal/config"
	"github.com/dedekindkali/FFF/internal/domain"
	"github.com/dedekindkali/FFF/internal/domain/models"
	"github.com/dedekindkali/FFF/internal/repositories"
	"github.com/dedekindkali/FFF/internal/utils"
)

// AdminService aggregates attendance stats and owns the user deletion cascade.
type AdminService struct {
	UserRepo       repositories.UserRepository
	AttendanceRepo repositories.AttendanceRepository
	DB             *sql.DB
	RequestID      string
}

func (s AdminService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s AdminService) users() repositories.UserRepository {
	if s.UserRepo.DB != nil {
		return s.UserRepo
	}
	return repositories.UserRepository{DB: s.db()}
}

func (s AdminService) attendance() repositories.AttendanceRepository {
	if s.AttendanceRepo.DB != nil {
		return s.AttendanceRepo
	}
	return repositories.AttendanceRepository{DB: s.db()}
}

// Stats counts attendance per day/meal plus transportation and dietary flags.
func (s AdminService) Stats() (models.AttendanceStats, error) {
	records, err := s.attendance().ListAll()
	if err != nil {
		return models.AttendanceStats{}, domain.InternalError{Err: err}
	}

	stats := models.AttendanceStats{TotalParticipants: len(records)}
	for _, a := range records {
		countMeal(&stats.Day1, a.Day1Breakfast, a.Day1Lunch, a.Day1Dinner, a.Day1Night)
		countMeal(&stats.Day2, a.Day2Breakfast, a.Day2Lunch, a.Day2Dinner, a.Day2Night)
		countMeal(&stats.Day3, a.Day3Breakfast, a.Day3Lunch, a.Day3Dinner, a.Day3Night)

		switch a.TransportationStatus {
		case "offering":
			stats.Transportation.Offering++
		case "needed":
			stats.Transportation.Needed++
		case "own":
			stats.Transportation.Own++
		}

		if a.Vegetarian {
			stats.Dietary.Vegetarian++
		}
		if a.Vegan {
			stats.Dietary.Vegan++
		}
		if a.GlutenFree {
			stats.Dietary.GlutenFree++
		}
		if a.DairyFree {
			stats.Dietary.DairyFree++
		}
		if strings.TrimSpace(a.Allergies) != "" {
			stats.Dietary.WithAllergies++
		}
	}
	return stats, nil
}

func countMeal(d *models.DayStats, breakfast, lunch, dinner, night bool) {
	if breakfast {
		d.Breakfast++
	}
	if lunch {
		d.Lunch++
	}
	if dinner {
		d.Dinner++
	}
	if night {
		d.Night++
	}
}

// DeleteUser removes the user and every row they own in one transaction:
// notifications, invitations in both directions, join requests, owned rides
// with their dependents, ride requests and the attendance record.
func (s AdminService) DeleteUser(userID int64) error {
	if _, err := s.users().GetByID(userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "user", Err: err}
		}
		return domain.InternalError{Err: err}
	}

	tx, err := s.db().Begin()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	for _, stmt := range []string{
		`DELETE n FROM ride_notifications n INNER JOIN rides r ON n.ride_id = r.id WHERE r.driver_id = ?`,
		`DELETE i FROM ride_invitations i INNER JOIN rides r ON i.ride_id = r.id WHERE r.driver_id = ?`,
		`DELETE jr FROM ride_join_requests jr INNER JOIN rides r ON jr.ride_id = r.id WHERE r.driver_id = ?`,
		`DELETE FROM ride_notifications WHERE user_id = ?`,
		`DELETE FROM ride_invitations WHERE invitee_id = ? OR inviter_id = ?`,
		`DELETE FROM ride_join_requests WHERE requester_id = ?`,
		`DELETE FROM rides WHERE driver_id = ?`,
		`DELETE FROM ride_requests WHERE requester_id = ?`,
		`DELETE FROM attendance_records WHERE user_id = ?`,
		`DELETE FROM users WHERE id = ?`,
	} {
		args := []any{userID}
		if strings.Count(stmt, "?") == 2 {
			args = append(args, userID)
		}
		if _, err := tx.Exec(stmt, args...); err != nil {
			_ = tx.Rollback()
			return domain.InternalError{Err: err}
		}
	}
	if err := tx.Commit(); err != nil {
		return domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "admin", "delete_user", fmt.Sprintf("user_id=%d", userID))
	return nil
}
