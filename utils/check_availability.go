package utils

import (
	"time"

	"gorm.io/gorm"
)

// HasConflict reports whether the professional already has an appointment
// on the given date overlapping the half-open candidate range
// [startTime, endTime). Cancelled and no-show appointments never block a
// slot, and excludeID (when non-zero) skips one appointment so an update
// does not conflict with its own prior booking.
//
// The rows are locked with FOR UPDATE so that two concurrent bookings for
// overlapping slots cannot both pass the check; callers must therefore run
// this inside the same transaction that inserts the appointment.
func HasConflict(tx *gorm.DB, professionalID uint, date time.Time, startTime, endTime string, excludeID uint) (bool, error) {
	query := `
		SELECT id
		FROM appointments
		WHERE professional_id = ?
		  AND date = ?
		  AND status NOT IN ('CANCELLED', 'NO_SHOW')
		  AND start_time < ?
		  AND end_time > ?`
	args := []interface{}{professionalID, date.Format("2006-01-02"), endTime, startTime}

	if excludeID != 0 {
		query += `
		  AND id <> ?`
		args = append(args, excludeID)
	}

	query += `
		LIMIT 1
		FOR UPDATE`

	var conflictingID uint
	if err := tx.Raw(query, args...).Scan(&conflictingID).Error; err != nil {
		return false, err
	}
	return conflictingID != 0, nil
}
