package auth

import (
    "strings"
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

const testSecret = "unit-test-signing-secret"

func TestIssueValidateRoundTrip(t *testing.T) {
    svc := NewTokenService(testSecret, time.Hour)

    raw, err := svc.Issue("u-123", "dev@example.com", RoleProgrammer)
    require.NoError(t, err)
    require.NotEmpty(t, raw)

    ident, err := svc.Validate(raw)
    require.NoError(t, err)
    assert.Equal(t, "u-123", ident.Subject)
    assert.Equal(t, "dev@example.com", ident.Email)
    assert.Equal(t, RoleProgrammer, ident.Role)
}

func TestValidateExpired(t *testing.T) {
    // Negative TTL issues a token that is already past its expiry.
    svc := NewTokenService(testSecret, -time.Minute)

    raw, err := svc.Issue("u-123", "dev@example.com", RoleProgrammer)
    require.NoError(t, err)

    _, err = svc.Validate(raw)
    assert.ErrorIs(t, err, ErrExpired)
}

func TestValidateTamperedSignature(t *testing.T) {
    svc := NewTokenService(testSecret, time.Hour)

    raw, err := svc.Issue("u-123", "dev@example.com", RoleProgrammer)
    require.NoError(t, err)

    // Flip one character of the signature segment.
    last := raw[len(raw)-1]
    flipped := byte('A')
    if last == 'A' {
        flipped = 'B'
    }
    tampered := raw[:len(raw)-1] + string(flipped)

    _, err = svc.Validate(tampered)
    assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestValidateWrongSecret(t *testing.T) {
    issuer := NewTokenService(testSecret, time.Hour)
    verifier := NewTokenService("a-different-secret", time.Hour)

    raw, err := issuer.Issue("u-123", "dev@example.com", RoleAdmin)
    require.NoError(t, err)

    _, err = verifier.Validate(raw)
    assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestValidateMalformed(t *testing.T) {
    svc := NewTokenService(testSecret, time.Hour)

    for _, raw := range []string{"", "garbage", "a.b", strings.Repeat("x", 64)} {
        _, err := svc.Validate(raw)
        assert.ErrorIs(t, err, ErrMalformed, "input %q", raw)
    }
}

func TestValidateRejectsNonHMAC(t *testing.T) {
    svc := NewTokenService(testSecret, time.Hour)

    tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
        "sub":  "u-123",
        "role": RoleAdmin,
        "exp":  time.Now().Add(time.Hour).Unix(),
    })
    raw, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
    require.NoError(t, err)

    _, err = svc.Validate(raw)
    assert.ErrorIs(t, err, ErrUnsupported)
}
