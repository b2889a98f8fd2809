package repositories

import (
	"database/sql"

	intconfig "github.com/dedekindkali/FFF/internal/config"
	intdb "github.com/dedekindkali/FFF/internal/db"
	"github.com/dedekindkali/FFF/internal/domain/models"
)

type NotificationRepository struct {
	DB *sql.DB
}

func (r NotificationRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r NotificationRepository) Create(userID int64, rideID *int64, kind, message string) error {
	var rideArg any
	if rideID != nil {
		rideArg = *rideID
	}
	_, err := r.db().Exec(`INSERT INTO ride_notifications (user_id, ride_id, type, message) VALUES (?,?,?,?)`,
		userID, rideArg, kind, message)
	return err
}

func (r NotificationRepository) ListForUser(userID int64) ([]models.RideNotification, error) {
	rows, err := r.db().Query(`
		SELECT id, user_id, ride_id, type, message, is_read, created_at
		FROM ride_notifications WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.RideNotification{}
	for rows.Next() {
		var n models.RideNotification
		var rideID sql.NullInt64
		if err := rows.Scan(&n.ID, &n.UserID, &rideID, &n.Type, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return out, err
		}
		n.RideID = intdb.Int64Ptr(rideID)
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead flips the flag only for the owner's own notification.
func (r NotificationRepository) MarkRead(notificationID, userID int64) (int64, error) {
	res, err := r.db().Exec(`UPDATE ride_notifications SET is_read = 1 WHERE id = ? AND user_id = ?`,
		notificationID, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
