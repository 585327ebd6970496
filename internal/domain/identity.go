package domain

// Role роль вызывающего пользователя
type Role string

const (
	RolePatient      Role = "patient"
	RoleDoctor       Role = "doctor"
	RoleNurse        Role = "nurse"
	RoleReceptionist Role = "receptionist"
	RoleAdmin        Role = "admin"
)

// ParseRole возвращает роль, если она известна
func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RolePatient, RoleDoctor, RoleNurse, RoleReceptionist, RoleAdmin:
		return r, true
	default:
		return "", false
	}
}

// Identity аутентифицированный пользователь запроса.
// Для пациента UserID - id пациента, для врача/медсестры - id практикующего сотрудника.
type Identity struct {
	UserID int64
	Role   Role
}

// IsStaff регистратура или администратор, действуют за любого пользователя
func (i Identity) IsStaff() bool {
	return i.Role == RoleReceptionist || i.Role == RoleAdmin
}

// IsPractitioner врач или медсестра
func (i Identity) IsPractitioner() bool {
	return i.Role == RoleDoctor || i.Role == RoleNurse
}

// CanActForPatient может ли пользователь записывать пациента или смотреть его записи
func (i Identity) CanActForPatient(patientID int64) bool {
	if i.IsStaff() || i.IsPractitioner() {
		return true
	}
	return i.Role == RolePatient && i.UserID == patientID
}

// CanManagePractitioner может ли пользователь менять записи врача
func (i Identity) CanManagePractitioner(practitionerID int64) bool {
	if i.IsStaff() {
		return true
	}
	return i.IsPractitioner() && i.UserID == practitionerID
}
