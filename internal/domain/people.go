package domain

import "time"

// PractitionerKind тип сотрудника, принимающего пациентов
type PractitionerKind string

const (
	PractitionerDoctor PractitionerKind = "doctor"
	PractitionerNurse  PractitionerKind = "nurse"
)

// Practitioner врач или медсестра
type Practitioner struct {
	ID        int64
	FirstName string
	LastName  string
	Kind      PractitionerKind
	Specialty *string
	IsActive  bool
}

// Patient пациент
type Patient struct {
	ID          int64
	FirstName   string
	LastName    string
	DateOfBirth *time.Time
	Phone       *string
}

// Office кабинет или филиал клиники
type Office struct {
	ID      int64
	Name    string
	Address *string
}
