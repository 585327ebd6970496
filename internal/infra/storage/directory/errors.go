package directory

import "errors"

var (
	// ErrPractitionerNotFound врач не найден
	ErrPractitionerNotFound = errors.New("directory.repository: practitioner not found")

	// ErrPatientNotFound пациент не найден
	ErrPatientNotFound = errors.New("directory.repository: patient not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("directory.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("directory.repository: failed to scan row")
)
