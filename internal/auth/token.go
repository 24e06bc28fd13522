package auth

import (
    "errors"
    "time"

    "github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// TokenService issues and validates signed bearer tokens.  Tokens are HS256
// JWTs carrying the subject uid, email and role; validity is purely a
// function of signature and expiry, there is no server-side token store.
type TokenService struct {
    secret []byte
    ttl    time.Duration
}

// NewTokenService returns a TokenService signing with the given secret.  The
// ttl fixes the expiry window for every issued token.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
    return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue builds and signs a token for the given principal.  The JWT includes
// standard claims: subject (sub), email, role, expiration (exp) and issued
// at (iat).  No state is recorded anywhere.
func (s *TokenService) Issue(subject, email, role string) (string, error) {
    now := time.Now().UTC()
    claims := jwt.MapClaims{
        "sub":   subject,
        "email": email,
        "role":  role,
        "iat":   now.Unix(),
        "exp":   now.Add(s.ttl).Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    return t.SignedString(s.secret)
}

// Validate verifies signature and expiry and returns the encoded identity.
// Failures are reported as one of ErrInvalidSignature, ErrMalformed,
// ErrExpired or ErrUnsupported.  Expiry is strict: once the lifetime has
// elapsed the token is invalid, with no grace window.
func (s *TokenService) Validate(raw string) (Identity, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        // Reject tokens signed with anything but HMAC; asymmetric or "none"
        // algorithms must never verify against the shared secret.
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrUnsupported
        }
        return s.secret, nil
    })
    if err != nil {
        switch {
        case errors.Is(err, ErrUnsupported):
            return Identity{}, ErrUnsupported
        case errors.Is(err, jwt.ErrTokenMalformed):
            return Identity{}, ErrMalformed
        case errors.Is(err, jwt.ErrTokenExpired):
            return Identity{}, ErrExpired
        case errors.Is(err, jwt.ErrTokenSignatureInvalid):
            return Identity{}, ErrInvalidSignature
        default:
            return Identity{}, ErrUnsupported
        }
    }
    if !tok.Valid {
        return Identity{}, ErrInvalidSignature
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return Identity{}, ErrMalformed
    }
    sub, _ := claims["sub"].(string)
    email, _ := claims["email"].(string)
    role, _ := claims["role"].(string)
    if sub == "" || role == "" {
        return Identity{}, ErrMalformed
    }
    return Identity{Subject: sub, Email: email, Role: role}, nil
}
