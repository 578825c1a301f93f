package domain

// Authorize reports whether the identity named in a route may be served to the
// authenticated session identity. Only an exact match is allowed.
func Authorize(routeIdentity, sessionIdentity string) error {
	if routeIdentity == "" || routeIdentity != sessionIdentity {
		return ErrForbidden
	}
	return nil
}
