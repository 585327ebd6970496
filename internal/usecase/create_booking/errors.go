package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClinicScheduling/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduling/pkg/types"
)

var (
	// ErrPractitionerNotFound возвращается, когда врач не найден
	ErrPractitionerNotFound = errors.New("create_booking: practitioner not found")

	// ErrPatientNotFound возвращается, когда пациент не найден
	ErrPatientNotFound = errors.New("create_booking: patient not found")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrSlotInPast возвращается при попытке записи на прошедшее время
	ErrSlotInPast = errors.New("create_booking: slot is in the past")

	// ErrSlotAlreadyBooked возвращается, когда на это время уже есть неотмененная запись
	ErrSlotAlreadyBooked = errors.New("create_booking: slot already booked")

	// ErrSlotBeingBooked возвращается, когда этот слот прямо сейчас бронирует другой запрос
	ErrSlotBeingBooked = errors.New("create_booking: slot is being booked by another request")

	// ErrOutsideWorkWindow возвращается, когда время не попадает ни в одно рабочее окно
	ErrOutsideWorkWindow = errors.New("create_booking: time is outside practitioner work windows")

	// ErrAccessDenied возвращается, когда пользователь записывает не себя
	ErrAccessDenied = errors.New("create_booking: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// SchedulingError время вне рабочих окон. Содержит окна на дату, чтобы клиент мог выбрать другое время.
type SchedulingError struct {
	StartTime types.TimeString
	Windows   []domain.WorkWindow
}

func (e *SchedulingError) Error() string {
	return fmt.Sprintf("%v: %s (%d work windows on this date)", ErrOutsideWorkWindow, e.StartTime, len(e.Windows))
}

func (e *SchedulingError) Unwrap() error {
	return ErrOutsideWorkWindow
}
