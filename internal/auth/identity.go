package auth // package auth implements stateless token authentication and authorization predicates

// Role names match the values persisted in the users table and carried in
// the token's "role" claim.
const (
    RoleProgrammer = "PROGRAMMER" // publishes portfolios, receives advisory requests
    RoleAdmin      = "ADMIN"      // moderates the platform
    RoleExternal   = "EXTERNAL"   // requests advisory sessions
)

// Identity is the request-scoped authenticated principal resolved from a
// validated token.  It lives only for the duration of a request and is never
// persisted.  Handlers receive it explicitly; there is no ambient security
// context.
type Identity struct {
    Subject string // user uid, matches ownership fields on resources
    Email   string
    Role    string
}

// IsAdmin reports whether the identity carries the administrator role.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// ValidRole reports whether s is one of the known role names.
func ValidRole(s string) bool {
    switch s {
    case RoleProgrammer, RoleAdmin, RoleExternal:
        return true
    }
    return false
}
