package domain

import "github.com/m04kA/SMC-ClinicScheduling/pkg/types"

// CatalogEntry элемент фиксированной сетки слотов
type CatalogEntry struct {
	Time  types.TimeString
	Label string
}

// slotCatalog фиксированная дневная сетка. Перерыв 12:00 - обед клиники.
var slotCatalog = []CatalogEntry{
	{Time: "08:00:00", Label: "08:00 AM"},
	{Time: "09:00:00", Label: "09:00 AM"},
	{Time: "10:00:00", Label: "10:00 AM"},
	{Time: "11:00:00", Label: "11:00 AM"},
	{Time: "13:00:00", Label: "01:00 PM"},
	{Time: "14:00:00", Label: "02:00 PM"},
	{Time: "15:00:00", Label: "03:00 PM"},
	{Time: "16:00:00", Label: "04:00 PM"},
	{Time: "17:00:00", Label: "05:00 PM"},
}

// SlotCatalog возвращает копию сетки в порядке следования
func SlotCatalog() []CatalogEntry {
	out := make([]CatalogEntry, len(slotCatalog))
	copy(out, slotCatalog)
	return out
}

// IsCatalogTime входит ли время в сетку
func IsCatalogTime(t types.TimeString) bool {
	for _, entry := range slotCatalog {
		if entry.Time.Equal(t) {
			return true
		}
	}
	return false
}

// Slot слот сетки с признаком доступности
type Slot struct {
	StartTime   types.TimeString
	Label       string
	IsAvailable bool
	IsPast      bool // слот уже прошел (дата в прошлом или время раньше текущего)
}
