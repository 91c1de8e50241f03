package get_available_slots

import (
	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/domain"
	getAvailableSlots "github.com/mahmoud-medhat0/clinic-flow-sub000/internal/usecase/get_available_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	Date            string         `json:"date"`
	DoctorID        int64          `json:"doctorId"`
	ClinicID        int64          `json:"clinicId"`
	ServiceID       int64          `json:"serviceId"`
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

// SlotResponse one grid cell
type SlotResponse struct {
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
}

// FromUseCaseResponse converts the use case response into the HTTP response.
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime:       s.StartTime.String(),
			EndTime:         s.EndTime.String(),
			DurationMinutes: s.DurationMinutes,
			Available:       s.Available,
		})
	}

	return &SlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		DoctorID:        resp.DoctorID,
		ClinicID:        resp.ClinicID,
		ServiceID:       resp.ServiceID,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
