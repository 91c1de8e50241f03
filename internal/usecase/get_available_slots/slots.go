package get_available_slots

import (
	"time"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/domain"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/integrations/directory"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/pkg/types"
)

// generateGrid builds the day's slot grid: fixed steps from the window's
// start, keeping every slot that finishes by the window's end. A closed day
// or a past date yields an empty grid. For today, slots that already started
// are dropped.
func generateGrid(day directory.DaySchedule, requestDate, now time.Time) ([]types.TimeString, error) {
	if isDateInPast(requestDate, now) {
		return []types.TimeString{}, nil
	}

	if !day.IsOpen {
		return []types.TimeString{}, nil
	}

	allSlots := make([]types.TimeString, 0)
	current := day.StartTime

	for current.IsBefore(day.EndTime) {
		slotEnd, err := current.AddMinutes(domain.SlotGranularityMinutes)
		if err != nil {
			break
		}
		if slotEnd.IsAfter(day.EndTime) {
			break
		}

		allSlots = append(allSlots, current)
		current = slotEnd
	}

	if !isSameDay(requestDate, now) {
		return allSlots, nil
	}

	currentTime := types.NewTimeString(now)
	upcoming := make([]types.TimeString, 0, len(allSlots))
	for _, slot := range allSlots {
		if !slot.IsBefore(currentTime) {
			upcoming = append(upcoming, slot)
		}
	}

	return upcoming, nil
}

// markOccupied resolves each candidate start against the service's full
// interval: starting the service there must keep it inside the operating
// window and clear of every active appointment. Bookings that merely touch
// the interval's boundary leave it free.
func markOccupied(slots []types.TimeString, appointments []*domain.Appointment, windowEnd types.TimeString, durationMinutes int) []Slot {
	result := make([]Slot, 0, len(slots))

	for _, slotStart := range slots {
		slotEnd, err := slotStart.AddMinutes(durationMinutes)
		if err != nil {
			// Past midnight: nothing bookable here.
			result = append(result, Slot{
				StartTime:       slotStart,
				EndTime:         windowEnd,
				DurationMinutes: durationMinutes,
				Available:       false,
			})
			continue
		}

		available := !windowEnd.IsBefore(slotEnd) && !overlapsAny(slotStart, slotEnd, appointments)

		result = append(result, Slot{
			StartTime:       slotStart,
			EndTime:         slotEnd,
			DurationMinutes: durationMinutes,
			Available:       available,
		})
	}

	return result
}

func overlapsAny(slotStart, slotEnd types.TimeString, appointments []*domain.Appointment) bool {
	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}

		apptEnd, err := appt.EndTime()
		if err != nil {
			continue
		}

		// Strict inequalities: boundary contact is not an overlap.
		if appt.StartTime.IsBefore(slotEnd) && apptEnd.IsAfter(slotStart) {
			return true
		}
	}

	return false
}

func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
