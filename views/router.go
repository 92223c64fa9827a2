package views

import "github.com/jrsteele09/college-portal/users"

// Router tracks the selected view. It starts at Home and only moves on
// explicit requests that the role is allowed to make.
type Router struct {
	current View
}

func NewRouter() *Router {
	return &Router{current: Home}
}

func (r *Router) Current() View {
	return r.current
}

// Request moves to v if role may see it. On rejection the current view is kept.
func (r *Router) Request(v View, role users.RoleType) (View, error) {
	selected, err := Select(v, role)
	if err != nil {
		return r.current, err
	}
	r.current = selected
	return selected, nil
}

// Reset returns to Home; used on logout
func (r *Router) Reset() {
	r.current = Home
}
