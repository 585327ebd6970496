package domain

import (
	"time"

	"github.com/m04kA/SMC-ClinicScheduling/pkg/types"
)

// ScheduleEntry строка повторяющегося расписания.
// Задаётся либо день недели, либо список конкретных дат (разовое переопределение).
type ScheduleEntry struct {
	ID             int64
	PractitionerID int64
	OfficeID       int64
	OfficeName     string
	DayOfWeek      *string
	ExplicitDates  []time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
}

// MatchesDate содержит ли список конкретных дат указанную дату
func (e *ScheduleEntry) MatchesDate(date time.Time) bool {
	y, m, d := date.Date()
	for _, explicit := range e.ExplicitDates {
		ey, em, ed := explicit.Date()
		if ey == y && em == m && ed == d {
			return true
		}
	}
	return false
}

// WorkWindow непрерывный период присутствия врача в кабинете в конкретную дату
type WorkWindow struct {
	PractitionerID int64
	Date           time.Time
	OfficeID       int64
	OfficeName     string
	StartTime      types.TimeString
	EndTime        types.TimeString
}

// Contains попадает ли время в [StartTime, EndTime)
func (w WorkWindow) Contains(t types.TimeString) bool {
	return !t.IsBefore(w.StartTime) && t.IsBefore(w.EndTime)
}

// FindContainingWindow возвращает первое окно, содержащее время
func FindContainingWindow(windows []WorkWindow, t types.TimeString) (WorkWindow, bool) {
	for _, w := range windows {
		if w.Contains(t) {
			return w, true
		}
	}
	return WorkWindow{}, false
}
