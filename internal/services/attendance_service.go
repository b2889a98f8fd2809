package services

import (
	"database/sql"
	"errors"

	intconfig "github.com/dedekindkali/FFF/internal/config"
	"github.com/dedekindkali/FFF/internal/domain"
	"github.com/dedekindkali/FFF/internal/domain/models"
	"github.com/dedekindkali/FFF/internal/repositories"
)

// AttendanceService owns the upsert semantics of the one-per-user record.
type AttendanceService struct {
	AttendanceRepo repositories.AttendanceRepository
	DB             *sql.DB
	RequestID      string
}

func (s AttendanceService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s AttendanceService) attendance() repositories.AttendanceRepository {
	if s.AttendanceRepo.DB != nil {
		return s.AttendanceRepo
	}
	return repositories.AttendanceRepository{DB: s.db()}
}

// Get returns the caller's record, or NotFound when nothing was saved yet.
func (s AttendanceService) Get(userID int64) (models.AttendanceRecord, error) {
	rec, err := s.attendance().GetByUserID(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.AttendanceRecord{}, domain.NotFoundError{Resource: "attendance", Err: err}
		}
		return models.AttendanceRecord{}, domain.InternalError{Err: err}
	}
	return rec, nil
}

// Save creates the record on first write and updates it in place afterwards.
func (s AttendanceService) Save(userID int64, in models.AttendanceInput) (models.AttendanceRecord, error) {
	_, err := s.attendance().GetByUserID(userID)
	switch {
	case err == nil:
		rec, err := s.attendance().Update(userID, in)
		if err != nil {
			return models.AttendanceRecord{}, domain.InternalError{Err: err}
		}
		return rec, nil
	case errors.Is(err, sql.ErrNoRows):
		rec, err := s.attendance().Create(userID, in)
		if err != nil {
			return models.AttendanceRecord{}, domain.InternalError{Err: err}
		}
		return rec, nil
	default:
		return models.AttendanceRecord{}, domain.InternalError{Err: err}
	}
}
