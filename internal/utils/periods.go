package utils

import (
	"github.com/dedekindkali/FFF/internal/domain/models"
)

// The eleven meal/overnight slots of the event in chronological order.
// Day 3 has no overnight slot: the event ends that evening.
var attendanceSlots = []string{
	"breakfast Aug 28",
	"lunch Aug 28",
	"dinner Aug 28",
	"overnight Aug 28-29",
	"breakfast Aug 29",
	"lunch Aug 29",
	"dinner Aug 29",
	"overnight Aug 29-30",
	"breakfast Aug 30",
	"lunch Aug 30",
	"dinner Aug 30",
}

// AttendancePeriods merges the per-slot attendance flags into human-readable
// contiguous ranges. Two attended slots belong to the same period only when
// they are adjacent in the fixed chronological order; an overnight slot is
// adjacent to the following day's breakfast by construction. Deterministic and
// side-effect free.
func AttendancePeriods(rec models.AttendanceRecord) []string {
	attended := [11]bool{
		rec.Day1Breakfast, rec.Day1Lunch, rec.Day1Dinner, rec.Day1Night,
		rec.Day2Breakfast, rec.Day2Lunch, rec.Day2Dinner, rec.Day2Night,
		rec.Day3Breakfast, rec.Day3Lunch, rec.Day3Dinner,
	}

	periods := []string{}
	start := -1
	for i := 0; i <= len(attended); i++ {
		if i < len(attended) && attended[i] {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			end := i - 1
			if start == end {
				periods = append(periods, attendanceSlots[start])
			} else {
				periods = append(periods, "from "+attendanceSlots[start]+" to "+attendanceSlots[end])
			}
			start = -1
		}
	}
	return periods
}
