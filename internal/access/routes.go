package access

import "github.com/stemsi/schoolhealth-backend/internal/model"

// Route paths shared by the router, the navigation and the route policy.
const (
	RouteHome          = "/"
	RouteDashboard     = "/dashboard"
	RouteStudentHealth = "/student-health"
	RouteMedicine      = "/medicine"
	RouteHealthEvents  = "/health-events"
	RouteVaccination   = "/vaccination"
	RouteHealthCheck   = "/health-check"
	RouteUsers         = "/users"
	RoutePermissions   = "/permissions"
)

// routePolicy maps a route to the permissions that unlock it. Holding any one
// of the listed permissions is enough. Routes missing from the table are open
// to every authenticated identity.
var routePolicy = map[string][]model.Permission{
	RouteDashboard:     {model.PermissionViewDashboard},
	RouteStudentHealth: {model.PermissionManageHealthRecords, model.PermissionViewOwnChildHealth},
	RouteMedicine:      {model.PermissionSubmitMedicineRequest, model.PermissionApproveMedicines},
	RouteHealthEvents:  {model.PermissionHandleMedicalEvents, model.PermissionReportHealthIncidents},
	RouteVaccination:   {model.PermissionManageVaccinations, model.PermissionViewVaccinationSchedule},
	RouteHealthCheck:   {model.PermissionConductHealthChecks},
	RouteUsers:         {model.PermissionManageUsers},
}

// RequiredPermissions returns the permissions guarding path and whether the
// path is mapped at all.
func RequiredPermissions(path string) ([]model.Permission, bool) {
	perms, ok := routePolicy[path]
	if !ok {
		return nil, false
	}
	return append([]model.Permission(nil), perms...), true
}

// RoutePolicyTable returns a copy of the route → permission table.
func RoutePolicyTable() map[string][]model.Permission {
	out := make(map[string][]model.Permission, len(routePolicy))
	for path, perms := range routePolicy {
		out[path] = append([]model.Permission(nil), perms...)
	}
	return out
}
