package viewmodel

import "clinic-portal/internal/domain/entity"

var staffAdmins = []entity.Role{entity.RoleAdmin, entity.RoleSuperadmin}

// spec says who may mount a page kind and how to build it.
type spec struct {
	roles     []entity.Role
	anonymous bool
	build     func(*Deps) Page
}

func (s spec) allows(role entity.Role) bool {
	if len(s.roles) == 0 {
		return true
	}
	for _, r := range s.roles {
		if r == role {
			return true
		}
	}
	return false
}

func defaultSpecs() map[Kind]spec {
	return map[Kind]spec{
		KindScheduleManagement:   {roles: staffAdmins, build: newScheduleManagementPage},
		KindAppointment:          {anonymous: true, build: newAppointmentPage},
		KindPriceList:            {roles: staffAdmins, build: newPriceListPage},
		KindDoctorList:           {roles: staffAdmins, build: newDoctorListPage},
		KindAdminList:            {roles: []entity.Role{entity.RoleSuperadmin}, build: newAdminListPage},
		KindPatientList:          {roles: staffAdmins, build: newPatientListPage},
		KindConsultation:         {roles: []entity.Role{entity.RoleDoctor}, build: newConsultationPage},
		KindPatientAccount:       {roles: []entity.Role{entity.RolePatient}, build: newPatientAccountPage},
		KindDoctorAccount:        {roles: []entity.Role{entity.RoleDoctor}, build: newDoctorAccountPage},
		KindAdministratorAccount: {roles: staffAdmins, build: newAdministratorAccountPage},
		KindPatientRegistration:  {roles: staffAdmins, build: newPatientRegistrationPage},
		KindAdministratorProfile: {roles: staffAdmins, build: newAdministratorProfilePage},
		KindDoctorProfile:        {roles: []entity.Role{entity.RoleDoctor}, build: newDoctorProfilePage},
		KindStatistics:           {roles: []entity.Role{entity.RoleSuperadmin}, build: newStatisticsPage},
	}
}
