package access

import "github.com/stemsi/schoolhealth-backend/internal/model"

// NavItem is an entry of the dashboard menu.
type NavItem struct {
	Key         string             `json:"key"`
	Label       string             `json:"label"`
	Path        string             `json:"path"`
	Permissions []model.Permission `json:"permissions"`
}

// Navigation is the full menu. Paths come from the route constants so the
// menu and the route policy cannot drift apart.
var Navigation = []NavItem{
	{Key: "home", Label: "Trang chủ", Path: RouteHome},
	{Key: "dashboard", Label: "Dashboard", Path: RouteDashboard, Permissions: routePolicy[RouteDashboard]},
	{Key: "student_health", Label: "Hồ sơ học sinh", Path: RouteStudentHealth, Permissions: routePolicy[RouteStudentHealth]},
	{Key: "medicine", Label: "Quản lý thuốc", Path: RouteMedicine, Permissions: routePolicy[RouteMedicine]},
	{Key: "health_events", Label: "Sự kiện y tế", Path: RouteHealthEvents, Permissions: routePolicy[RouteHealthEvents]},
	{Key: "vaccination", Label: "Tiêm chủng", Path: RouteVaccination, Permissions: routePolicy[RouteVaccination]},
	{Key: "health_check", Label: "Kiểm tra y tế", Path: RouteHealthCheck, Permissions: routePolicy[RouteHealthCheck]},
	{Key: "users", Label: "Quản lý người dùng", Path: RouteUsers, Permissions: routePolicy[RouteUsers]},
	{Key: "permissions", Label: "Quyền hạn của tôi", Path: RoutePermissions},
}

// VisibleNavigation returns the menu entries role is allowed to see.
func VisibleNavigation(role model.Role) []NavItem {
	items := make([]NavItem, 0, len(Navigation))
	for _, item := range Navigation {
		if len(item.Permissions) == 0 || CanAccessRoute(role, item.Path) {
			items = append(items, item)
		}
	}
	return items
}
