package client

// RouteMeta declares a route's access rules.
type RouteMeta struct {
	// RequiresAuth routes bounce anonymous visitors to the login page.
	RequiresAuth bool
	// GuestOnly routes (login, register) bounce signed-in users home.
	GuestOnly bool
}

// Decision is the guard's verdict for one navigation.
type Decision struct {
	Allowed bool
	// RedirectTo is set when the navigation is rejected.
	RedirectTo string
	// ReturnTo carries the originally requested path so the login flow can
	// come back to it.
	ReturnTo string
}

// Guard evaluates navigations against the session state.
type Guard struct {
	store     *Store
	loginPath string
	homePath  string
}

func NewGuard(store *Store) *Guard {
	return &Guard{
		store:     store,
		loginPath: "/login",
		homePath:  "/",
	}
}

// Check resolves one navigation attempt.
func (g *Guard) Check(path string, meta RouteMeta) Decision {
	authenticated := g.store != nil && g.store.Snapshot().Authenticated()

	if meta.RequiresAuth && !authenticated {
		return Decision{
			RedirectTo: g.loginPath,
			ReturnTo:   path,
		}
	}

	if meta.GuestOnly && authenticated {
		return Decision{RedirectTo: g.homePath}
	}

	return Decision{Allowed: true}
}
