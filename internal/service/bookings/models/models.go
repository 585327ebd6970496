package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ClinicScheduling/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidDate возвращается при некорректной дате фильтра
	ErrInvalidDate = errors.New("invalid date")
)

// Request модели

// CancelBookingRequest запрос на отмену записи
type CancelBookingRequest struct {
	Identity           domain.Identity `json:"-"`
	CancellationReason *string         `json:"cancellationReason,omitempty"`
}

// UpdateStatusRequest запрос на смену статуса
type UpdateStatusRequest struct {
	Identity domain.Identity `json:"-"`
	Status   string          `json:"status"`
}

// GetPatientBookingsRequest запрос на получение записей пациента
type GetPatientBookingsRequest struct {
	Identity  domain.Identity
	PatientID int64
	Status    *string
}

// GetPractitionerBookingsRequest запрос на получение записей врача
type GetPractitionerBookingsRequest struct {
	Identity         domain.Identity
	PractitionerID   int64
	Date             *string // YYYY-MM-DD (опционально)
	Status           *string // Фильтр по статусу (опционально)
	IncludeCancelled bool    // Включить отмененные записи
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetPractitionerBookingsRequest) ToDomainFilter() (domain.PractitionerBookingsFilter, error) {
	filter := domain.PractitionerBookingsFilter{
		PractitionerID:   r.PractitionerID,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return filter, ErrInvalidDate
		}
		filter.Date = &date
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными записи
type BookingResponse struct {
	ID             int64   `json:"id"`
	PractitionerID int64   `json:"practitionerId"`
	PatientID      int64   `json:"patientId"`
	OfficeID       int64   `json:"officeId"`
	Date           string  `json:"date"`      // "2025-01-06"
	StartTime      string  `json:"startTime"` // "10:00:00"
	Reason         *string `json:"reason,omitempty"`
	Status         string  `json:"status"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком записей
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		PractitionerID:     b.PractitionerID,
		PatientID:          b.PatientID,
		OfficeID:           b.OfficeID,
		Date:               b.Date.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		Reason:             b.Reason,
		Status:             string(b.Status),
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с проверкой по закрытому набору
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s, ok := domain.ParseBookingStatus(status)
	if !ok {
		return "", ErrInvalidStatus
	}
	return s, nil
}
