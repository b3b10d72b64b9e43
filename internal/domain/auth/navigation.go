package auth

// Navigation is a single attempt to enter a view.
// It lives for one guard evaluation; observers of the resulting event may
// attach a corrective redirect or a notice that the router applies afterwards.
type Navigation struct {
	ID          string
	From        string // path of the view the actor is on, empty on first load
	To          string // target view name
	Path        string // target view path
	Requirement NavigationRequirement

	redirect string
	notice   string
}

// RedirectTo records a corrective navigation. The first redirect wins.
func (n *Navigation) RedirectTo(path string) {
	if n == nil || path == "" || n.redirect != "" {
		return
	}
	n.redirect = path
}

// Redirect returns the corrective navigation, if an observer set one.
func (n *Navigation) Redirect() (string, bool) {
	if n == nil || n.redirect == "" {
		return "", false
	}
	return n.redirect, true
}

// Notify attaches a user-facing notice. The last notice wins.
func (n *Navigation) Notify(msg string) {
	if n == nil {
		return
	}
	n.notice = msg
}

// Notice returns the notice attached by an observer, if any.
func (n *Navigation) Notice() string {
	if n == nil {
		return ""
	}
	return n.notice
}
