package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is the HTTP client for the reference-data (directory) service that
// owns doctors, patients, clinics, services and doctor schedules.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient creates a directory service client.
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetDoctor fetches a doctor by ID.
func (c *Client) GetDoctor(ctx context.Context, doctorID int64) (*Doctor, error) {
	url := fmt.Sprintf("%s/internal/doctors/%d", c.baseURL, doctorID)

	var doctor Doctor
	if err := c.getJSON(ctx, url, &doctor, ErrDoctorNotFound); err != nil {
		return nil, err
	}

	return &doctor, nil
}

// GetPatient fetches a patient by ID.
func (c *Client) GetPatient(ctx context.Context, patientID int64) (*Patient, error) {
	url := fmt.Sprintf("%s/internal/patients/%d", c.baseURL, patientID)

	var patient Patient
	if err := c.getJSON(ctx, url, &patient, ErrPatientNotFound); err != nil {
		return nil, err
	}

	return &patient, nil
}

// GetClinic fetches a clinic by ID.
func (c *Client) GetClinic(ctx context.Context, clinicID int64) (*Clinic, error) {
	url := fmt.Sprintf("%s/internal/clinics/%d", c.baseURL, clinicID)

	var clinic Clinic
	if err := c.getJSON(ctx, url, &clinic, ErrClinicNotFound); err != nil {
		return nil, err
	}

	return &clinic, nil
}

// GetService fetches a medical service by ID.
func (c *Client) GetService(ctx context.Context, serviceID int64) (*Service, error) {
	url := fmt.Sprintf("%s/internal/services/%d", c.baseURL, serviceID)

	var service Service
	if err := c.getJSON(ctx, url, &service, ErrServiceNotFound); err != nil {
		return nil, err
	}

	return &service, nil
}

// GetDoctorSchedule fetches a doctor's weekly operating windows at a clinic.
// A doctor unknown at the clinic is reported as ErrDoctorNotFound.
func (c *Client) GetDoctorSchedule(ctx context.Context, doctorID, clinicID int64) (*WeekSchedule, error) {
	url := fmt.Sprintf("%s/internal/doctors/%d/clinics/%d/schedule", c.baseURL, doctorID, clinicID)

	var schedule WeekSchedule
	if err := c.getJSON(ctx, url, &schedule, ErrDoctorNotFound); err != nil {
		return nil, err
	}

	return &schedule, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}, notFound error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decoding
	case http.StatusNotFound:
		return notFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
