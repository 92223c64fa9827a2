package server

// Route path constants
const (
	// Auth Routes - Login & Logout
	RouteLogin      = "/login"
	RouteAuthLogin  = "/auth/login"
	RouteAuthLogout = "/auth/logout"

	// Portal Routes
	RouteIndex       = "/"
	RouteView        = "/view/{view}"
	RouteStudents    = "/students"
	RouteEnrollments = "/enrollments"
	RouteProfile     = "/profile"

	RouteHealth = "/healthz"
)

// viewPath is the navigation link of a view slug
func viewPath(slug string) string {
	return "/view/" + slug
}
