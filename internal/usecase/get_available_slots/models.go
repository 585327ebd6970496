package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ClinicScheduling/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduling/pkg/types"
)

// Request модель запроса на получение слотов врача
type Request struct {
	Identity       domain.Identity // Вызывающий пользователь (для логирования, не влияет на результат)
	PractitionerID int64           // ID врача
	Date           string          // Дата в формате YYYY-MM-DD
}

// Response результат расчета доступности. Не сохраняется.
type Response struct {
	Date           time.Time
	PractitionerID int64
	Scheduled      bool // false - врач не работает в этот день, Slots пустой
	Slots          []domain.Slot
	WorkWindows    []domain.WorkWindow
	BookedSlots    []types.TimeString
}
