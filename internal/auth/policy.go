package auth

// Authorization predicates.  Every check receives the resolved identity
// explicitly; a nil identity means the request carried no valid token.

// RequireRole allows the identity when its role is in the allowed set.  A
// missing identity yields ErrUnauthenticated, a role outside the set yields
// ErrForbidden.
func RequireRole(ident *Identity, roles ...string) error {
    if ident == nil {
        return ErrUnauthenticated
    }
    for _, r := range roles {
        if ident.Role == r {
            return nil
        }
    }
    return ErrForbidden
}

// RequireOwnerOrAdmin allows administrators unconditionally and otherwise
// requires the identity's subject to match the resource's owner id.
func RequireOwnerOrAdmin(ident *Identity, ownerID string) error {
    if ident == nil {
        return ErrUnauthenticated
    }
    if ident.IsAdmin() {
        return nil
    }
    if ownerID != "" && ident.Subject == ownerID {
        return nil
    }
    return ErrForbidden
}
