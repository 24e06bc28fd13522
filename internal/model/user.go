package model

import "time"

// User represents an application user record as stored in the `users`
// table.  Programmers publish portfolios and receive advisory requests,
// administrators moderate, external users book sessions.  Role changes are
// explicit updates; nothing cascades implicitly.
//
// Fields:
//  UID          – primary key; externally supplied or generated at registration.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  DisplayName  – name shown on portfolio pages.
//  Role         – PROGRAMMER, ADMIN or EXTERNAL.
//  Specialty    – programmer's stated specialty.
//  Bio          – short biography.
//  PhotoURL     – profile picture URL.
//  Available    – whether the programmer currently accepts advisories.
//  GitHub / Instagram / WhatsApp – optional social links.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
    UID          string    // users.uid
    Email        string    // users.email
    PasswordHash string    // users.password_hash
    DisplayName  string    // users.display_name
    Role         string    // users.role
    Specialty    string    // users.specialty
    Bio          string    // users.bio
    PhotoURL     string    // users.photo_url
    Available    bool      // users.available
    GitHub       string    // users.github
    Instagram    string    // users.instagram
    WhatsApp     string    // users.whatsapp
    CreatedAt    time.Time // users.created_at
    UpdatedAt    time.Time // users.updated_at
}
