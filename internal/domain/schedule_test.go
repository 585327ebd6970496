package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorkWindow_ContainsIsEndExclusive(t *testing.T) {
	w := WorkWindow{StartTime: "08:00:00", EndTime: "12:00:00"}

	assert.True(t, w.Contains("08:00:00"))
	assert.True(t, w.Contains("11:00:00"))
	assert.False(t, w.Contains("12:00:00"))
	assert.False(t, w.Contains("07:59:59"))
}

func TestScheduleEntry_MatchesDate(t *testing.T) {
	e := ScheduleEntry{ExplicitDates: []time.Time{
		time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
	}}

	assert.True(t, e.MatchesDate(time.Date(2025, 1, 6, 15, 0, 0, 0, time.UTC)))
	assert.False(t, e.MatchesDate(time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC)))
}

func TestSlotCatalog_PreservesLunchGap(t *testing.T) {
	catalog := SlotCatalog()

	assert.Len(t, catalog, 9)
	assert.True(t, IsCatalogTime("11:00:00"))
	assert.False(t, IsCatalogTime("12:00:00"))
	assert.True(t, IsCatalogTime("13:00"))
	assert.Equal(t, "01:00 PM", catalog[4].Label)
}

func TestIdentity_Permissions(t *testing.T) {
	patient := Identity{UserID: 7, Role: RolePatient}
	doctor := Identity{UserID: 42, Role: RoleDoctor}
	receptionist := Identity{UserID: 1, Role: RoleReceptionist}

	assert.True(t, patient.CanActForPatient(7))
	assert.False(t, patient.CanActForPatient(8))
	assert.False(t, patient.CanManagePractitioner(42))

	assert.True(t, doctor.CanManagePractitioner(42))
	assert.False(t, doctor.CanManagePractitioner(43))

	assert.True(t, receptionist.CanActForPatient(8))
	assert.True(t, receptionist.CanManagePractitioner(43))
}
