package schedule

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("schedule: invalid input data")

	// ErrPractitionerNotFound возвращается, когда врач не найден
	ErrPractitionerNotFound = errors.New("schedule: practitioner not found")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("schedule: internal error")
)
