package get_work_windows

import (
	"context"

	"github.com/m04kA/SMC-ClinicScheduling/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-ClinicScheduling/internal/usecase/get_available_slots"
)

type WorkWindowsUseCase interface {
	GetWorkWindows(ctx context.Context, req *getAvailableSlots.Request) ([]domain.WorkWindow, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
