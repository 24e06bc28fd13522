package auth

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestRequireRole(t *testing.T) {
    programmer := &Identity{Subject: "p1", Role: RoleProgrammer}

    assert.ErrorIs(t, RequireRole(nil, RoleProgrammer), ErrUnauthenticated)
    assert.NoError(t, RequireRole(programmer, RoleProgrammer))
    assert.NoError(t, RequireRole(programmer, RoleAdmin, RoleProgrammer))
    assert.ErrorIs(t, RequireRole(programmer, RoleAdmin), ErrForbidden)
    assert.ErrorIs(t, RequireRole(&Identity{Role: ""}, RoleAdmin), ErrForbidden)
}

func TestRequireOwnerOrAdmin(t *testing.T) {
    owner := &Identity{Subject: "p1", Role: RoleProgrammer}
    other := &Identity{Subject: "p2", Role: RoleProgrammer}
    admin := &Identity{Subject: "a1", Role: RoleAdmin}

    assert.ErrorIs(t, RequireOwnerOrAdmin(nil, "p1"), ErrUnauthenticated)
    assert.NoError(t, RequireOwnerOrAdmin(owner, "p1"))
    assert.ErrorIs(t, RequireOwnerOrAdmin(other, "p1"), ErrForbidden)
    // Administrators bypass ownership entirely.
    assert.NoError(t, RequireOwnerOrAdmin(admin, "p1"))
    assert.NoError(t, RequireOwnerOrAdmin(admin, ""))
    // An empty owner id never matches a non-admin subject.
    assert.ErrorIs(t, RequireOwnerOrAdmin(&Identity{Subject: "", Role: RoleExternal}, ""), ErrForbidden)
}
