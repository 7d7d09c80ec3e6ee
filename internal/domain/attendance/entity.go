package attendance

import (
	"math"
	"time"
)

type Status string

const (
	StatusComplet   Status = "COMPLET"
	StatusIncomplet Status = "INCOMPLET"
	StatusAbsent    Status = "ABSENT"
)

// CompleteDayHours is the minimum worked time for a COMPLET day.
const CompleteDayHours = 7.5

type Attendance struct {
	ID           string
	EmployeeID   string
	Date         time.Time
	CheckInTime  *time.Time
	CheckOutTime *time.Time
	TotalHours   *float64
	Status       Status
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	EmployeeName     *string
	EmployeePosition *string
}

// DayOf normalizes a timestamp to its UTC calendar day.
func DayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Derive computes the status and total hours of a day from its two
// timestamps. Hours are rounded to two decimals.
func Derive(checkIn, checkOut *time.Time) (Status, *float64) {
	if checkIn == nil {
		zero := 0.0
		return StatusAbsent, &zero
	}
	if checkOut == nil {
		return StatusIncomplet, nil
	}

	hours := checkOut.Sub(*checkIn).Hours()
	hours = math.Round(hours*100) / 100

	if hours >= CompleteDayHours {
		return StatusComplet, &hours
	}
	return StatusIncomplet, &hours
}

// Rederive recomputes the derived fields from the stored timestamps.
func (a *Attendance) Rederive() {
	a.Status, a.TotalHours = Derive(a.CheckInTime, a.CheckOutTime)
}
