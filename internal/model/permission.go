package model

import "fmt"

// Permission represents a string code for a single capability in the system.
type Permission string

const (
	// ─── Administration ────────────────────────────────────────────────

	// PermissionManageUsers allows creating, editing and removing accounts.
	PermissionManageUsers Permission = "manage_users"

	// PermissionManageSystem allows system configuration, backup and restore.
	PermissionManageSystem Permission = "manage_system"

	// PermissionViewAllReports allows viewing every report in the system.
	PermissionViewAllReports Permission = "view_all_reports"

	// ─── Medical ───────────────────────────────────────────────────────

	// PermissionManageHealthRecords allows managing every student health record.
	PermissionManageHealthRecords Permission = "manage_health_records"

	// PermissionConductHealthChecks allows running periodic health checks.
	PermissionConductHealthChecks Permission = "conduct_health_checks"

	// PermissionManageVaccinations allows managing vaccination campaigns.
	PermissionManageVaccinations Permission = "manage_vaccinations"

	// PermissionHandleMedicalEvents allows handling medical incidents.
	PermissionHandleMedicalEvents Permission = "handle_medical_events"

	// PermissionApproveMedicines allows approving medicine sent in by parents.
	PermissionApproveMedicines Permission = "approve_medicines"

	// PermissionViewMedicalReports allows viewing medical reports.
	PermissionViewMedicalReports Permission = "view_medical_reports"

	// ─── Parent ────────────────────────────────────────────────────────

	// PermissionViewOwnChildHealth allows a parent to view their own child's health data.
	PermissionViewOwnChildHealth Permission = "view_own_child_health"

	// PermissionSubmitMedicineRequest allows a parent to submit a medicine request.
	PermissionSubmitMedicineRequest Permission = "submit_medicine_request"

	// PermissionViewVaccinationSchedule allows viewing the vaccination schedule.
	PermissionViewVaccinationSchedule Permission = "view_vaccination_schedule"

	// PermissionReceiveHealthNotifications allows receiving health notifications.
	PermissionReceiveHealthNotifications Permission = "receive_health_notifications"

	// ─── Teacher ───────────────────────────────────────────────────────

	// PermissionViewClassHealthStatus allows viewing the health status of a class.
	PermissionViewClassHealthStatus Permission = "view_class_health_status"

	// PermissionReportHealthIncidents allows reporting health incidents.
	PermissionReportHealthIncidents Permission = "report_health_incidents"

	// PermissionViewStudentBasicHealth allows viewing basic student health data.
	PermissionViewStudentBasicHealth Permission = "view_student_basic_health"

	// ─── Common ────────────────────────────────────────────────────────

	// PermissionViewDashboard allows viewing the dashboard.
	PermissionViewDashboard Permission = "view_dashboard"

	// PermissionUpdateProfile allows updating one's own profile.
	PermissionUpdateProfile Permission = "update_profile"
)

// AllPermissions is the closed permission catalog in display order.
var AllPermissions = []Permission{
	PermissionManageUsers,
	PermissionManageSystem,
	PermissionViewAllReports,
	PermissionManageHealthRecords,
	PermissionConductHealthChecks,
	PermissionManageVaccinations,
	PermissionHandleMedicalEvents,
	PermissionApproveMedicines,
	PermissionViewMedicalReports,
	PermissionViewOwnChildHealth,
	PermissionSubmitMedicineRequest,
	PermissionViewVaccinationSchedule,
	PermissionReceiveHealthNotifications,
	PermissionViewClassHealthStatus,
	PermissionReportHealthIncidents,
	PermissionViewStudentBasicHealth,
	PermissionViewDashboard,
	PermissionUpdateProfile,
}

// PermissionGroup names the audience a permission was designed for.
type PermissionGroup string

const (
	PermissionGroupAdministration PermissionGroup = "administration"
	PermissionGroupMedical        PermissionGroup = "medical"
	PermissionGroupParent         PermissionGroup = "parent"
	PermissionGroupTeacher        PermissionGroup = "teacher"
	PermissionGroupCommon         PermissionGroup = "common"
)

type permissionInfo struct {
	description string
	group       PermissionGroup
}

var permissionCatalog = map[Permission]permissionInfo{
	PermissionManageUsers:                {"Quản lý người dùng (thêm, sửa, xóa tài khoản)", PermissionGroupAdministration},
	PermissionManageSystem:               {"Quản lý hệ thống (cấu hình, backup, restore)", PermissionGroupAdministration},
	PermissionViewAllReports:             {"Xem tất cả báo cáo của hệ thống", PermissionGroupAdministration},
	PermissionManageHealthRecords:        {"Quản lý hồ sơ sức khỏe học sinh", PermissionGroupMedical},
	PermissionConductHealthChecks:        {"Thực hiện khám sức khỏe định kỳ", PermissionGroupMedical},
	PermissionManageVaccinations:         {"Quản lý tiêm chủng", PermissionGroupMedical},
	PermissionHandleMedicalEvents:        {"Xử lý các sự kiện y tế", PermissionGroupMedical},
	PermissionApproveMedicines:           {"Duyệt thuốc từ phụ huynh", PermissionGroupMedical},
	PermissionViewMedicalReports:         {"Xem báo cáo y tế", PermissionGroupMedical},
	PermissionViewOwnChildHealth:         {"Xem thông tin sức khỏe con em", PermissionGroupParent},
	PermissionSubmitMedicineRequest:      {"Gửi yêu cầu thuốc cho con", PermissionGroupParent},
	PermissionViewVaccinationSchedule:    {"Xem lịch tiêm chủng", PermissionGroupParent},
	PermissionReceiveHealthNotifications: {"Nhận thông báo sức khỏe", PermissionGroupParent},
	PermissionViewClassHealthStatus:      {"Xem tình trạng sức khỏe lớp học", PermissionGroupTeacher},
	PermissionReportHealthIncidents:      {"Báo cáo sự cố sức khỏe", PermissionGroupTeacher},
	PermissionViewStudentBasicHealth:     {"Xem thông tin sức khỏe cơ bản học sinh", PermissionGroupTeacher},
	PermissionViewDashboard:              {"Xem trang tổng quan", PermissionGroupCommon},
	PermissionUpdateProfile:              {"Cập nhật thông tin cá nhân", PermissionGroupCommon},
}

// The catalog table must cover every permission. A missing entry is a build
// defect and stops the process before any request is served.
func init() {
	if err := validateCatalog(); err != nil {
		panic(err)
	}
}

func validateCatalog() error {
	if len(permissionCatalog) != len(AllPermissions) {
		return fmt.Errorf("permission catalog has %d entries, want %d", len(permissionCatalog), len(AllPermissions))
	}
	for _, p := range AllPermissions {
		info, ok := permissionCatalog[p]
		if !ok || info.description == "" {
			return fmt.Errorf("permission %q has no description", p)
		}
	}
	return nil
}

// Valid reports whether p is a member of the catalog.
func (p Permission) Valid() bool {
	_, ok := permissionCatalog[p]
	return ok
}

// Describe returns the human-readable description of p.
func Describe(p Permission) (string, error) {
	info, ok := permissionCatalog[p]
	if !ok {
		return "", &PolicyGapError{Kind: GapPermission, Value: string(p)}
	}
	return info.description, nil
}

// GroupOf returns the audience group p belongs to.
func GroupOf(p Permission) (PermissionGroup, error) {
	info, ok := permissionCatalog[p]
	if !ok {
		return "", &PolicyGapError{Kind: GapPermission, Value: string(p)}
	}
	return info.group, nil
}

// ParsePermission converts a wire value into a catalog Permission.
func ParsePermission(s string) (Permission, error) {
	p := Permission(s)
	if !p.Valid() {
		return "", &PolicyGapError{Kind: GapPermission, Value: s}
	}
	return p, nil
}

// PermissionDescriptions returns a copy of the permission → description table.
func PermissionDescriptions() map[Permission]string {
	out := make(map[Permission]string, len(permissionCatalog))
	for p, info := range permissionCatalog {
		out[p] = info.description
	}
	return out
}
