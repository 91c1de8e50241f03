package directory

import (
	"time"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/pkg/types"
)

// Doctor is the doctor record kept by the directory service.
type Doctor struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Spec     string `json:"specialization"`
	IsActive bool   `json:"is_active"`
}

// Patient is the patient record kept by the directory service.
type Patient struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Clinic is the clinic record kept by the directory service.
type Clinic struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	IsActive bool   `json:"is_active"`
}

// Service is a bookable medical service.
type Service struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
}

// DaySchedule is one weekday's operating window at a clinic. A nil window
// (IsOpen false) means the clinic is closed that day.
type DaySchedule struct {
	IsOpen    bool             `json:"is_open"`
	StartTime types.TimeString `json:"start_time"`
	EndTime   types.TimeString `json:"end_time"`
}

// WeekSchedule holds a doctor's operating windows at a clinic, keyed by
// weekday name in lowercase ("monday" .. "sunday").
type WeekSchedule struct {
	Days map[string]DaySchedule `json:"days"`
}

// ForDate returns the operating window for the given date's weekday.
func (w WeekSchedule) ForDate(date time.Time) DaySchedule {
	name := weekdayName(date.Weekday())
	day, ok := w.Days[name]
	if !ok {
		return DaySchedule{IsOpen: false}
	}
	return day
}

func weekdayName(d time.Weekday) string {
	switch d {
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	case time.Saturday:
		return "saturday"
	default:
		return "sunday"
	}
}

// ErrorResponse is the error body format of the directory service.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
