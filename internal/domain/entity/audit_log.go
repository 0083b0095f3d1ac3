package entity

import "time"

// AuditLog is one mutation a staff member pushed through the portal.
type AuditLog struct {
	ID        int64
	UserID    int
	Action    string
	Entity    string
	EntityID  string
	OldValue  interface{}
	NewValue  interface{}
	CreatedAt time.Time
}

// AuditQuery narrows the audit trail. Zero fields match everything.
type AuditQuery struct {
	UserID int
	Entity string
	Action string
	Offset int
	Limit  int
}

func (q AuditQuery) Matches(log AuditLog) bool {
	if q.UserID != 0 && log.UserID != q.UserID {
		return false
	}
	if q.Entity != "" && log.Entity != q.Entity {
		return false
	}
	return q.Action == "" || log.Action == q.Action
}

// Common audit actions
const (
	AuditActionUserLogin          = "user.login"
	AuditActionScheduleUpdate     = "schedule.update"
	AuditActionOverrideUpdate     = "override.update"
	AuditActionServiceCreate      = "service.create"
	AuditActionServiceUpdate      = "service.update"
	AuditActionServiceDelete      = "service.delete"
	AuditActionMaterialCreate     = "material.create"
	AuditActionMaterialUpdate     = "material.update"
	AuditActionMaterialDelete     = "material.delete"
	AuditActionDoctorSave         = "doctor.save"
	AuditActionDoctorDelete       = "doctor.delete"
	AuditActionAdminSave          = "admin.save"
	AuditActionAdminDelete        = "admin.delete"
	AuditActionPatientUpdate      = "patient.update"
	AuditActionPatientDelete      = "patient.delete"
	AuditActionPatientRegister    = "patient.register"
	AuditActionProfileUpdate      = "profile.update"
	AuditActionEmailChange        = "email.change"
	AuditActionPasswordChange     = "password.change"
	AuditActionLoginChange        = "login.change"
	AuditActionAppointmentBook    = "appointment.book"
	AuditActionAppointmentMove    = "appointment.transfer"
	AuditActionAppointmentCancel  = "appointment.cancel"
	AuditActionAppointmentConfirm = "appointment.confirm"
	AuditActionVisitCreate        = "visit.create"
	AuditActionVisitConfirm       = "visit.confirm"
)
