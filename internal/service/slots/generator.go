// Package slots раскладывает рабочие окна по фиксированной сетке слотов.
//
// Запись в неровное время (например 08:30) не занимает ни один слот сетки:
// это известное ограничение фиксированной сетки.
package slots

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-ClinicScheduling/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduling/pkg/types"
)

// Result слоты в порядке сетки и занятые времена
type Result struct {
	Slots       []domain.Slot
	BookedSlots []types.TimeString
}

// Generate строит слоты для даты. Функция чистая: результат зависит только от аргументов.
// Без рабочих окон возвращает пустой список слотов.
// now задает текущий момент в часовом поясе клиники, прошедшие слоты недоступны.
func Generate(windows []domain.WorkWindow, bookings []*domain.Booking, date, now time.Time) Result {
	booked := bookedTimes(bookings)

	result := Result{
		Slots:       make([]domain.Slot, 0),
		BookedSlots: booked,
	}

	if len(windows) == 0 {
		return result
	}

	for _, entry := range domain.SlotCatalog() {
		if _, ok := domain.FindContainingWindow(windows, entry.Time); !ok {
			continue
		}

		past := isPast(entry.Time, date, now)
		taken := containsTime(booked, entry.Time)

		result.Slots = append(result.Slots, domain.Slot{
			StartTime:   entry.Time,
			Label:       entry.Label,
			IsAvailable: !taken && !past,
			IsPast:      past,
		})
	}

	return result
}

func isPast(t types.TimeString, date, now time.Time) bool {
	return t.On(date, now.Location()).Before(now)
}

// bookedTimes времена неотмененных записей, по возрастанию и без повторов
func bookedTimes(bookings []*domain.Booking) []types.TimeString {
	seen := make(map[int]struct{}, len(bookings))
	out := make([]types.TimeString, 0, len(bookings))

	for _, b := range bookings {
		if b == nil || !b.IsActive() {
			continue
		}
		t, err := types.NewTimeStringFromString(b.StartTime.String())
		if err != nil {
			continue
		}
		secs := t.Seconds()
		if _, ok := seen[secs]; ok {
			continue
		}
		seen[secs] = struct{}{}
		out = append(out, t)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].IsBefore(out[j])
	})

	return out
}

func containsTime(times []types.TimeString, t types.TimeString) bool {
	for _, bt := range times {
		if bt.Equal(t) {
			return true
		}
	}
	return false
}
