package model

import "time"

// Advisory statuses.  A booking always starts pending; approved and rejected
// are terminal for status purposes (no further transition is defined out of
// them, though an overwrite is currently permitted).
const (
    StatusPending  = "pending"
    StatusApproved = "approved"
    StatusRejected = "rejected"
)

// ValidStatus reports whether s is one of the advisory statuses.
func ValidStatus(s string) bool {
    switch s {
    case StatusPending, StatusApproved, StatusRejected:
        return true
    }
    return false
}

// Advisory records a booking request for an advisory session between an
// external requester and a programmer.  The programmer's email and name are
// denormalized onto the row so notifications need no secondary lookup.
// Requesters are tracked by email only and need not be registered users.
//
// Fields:
//  ID              – primary key identifier.
//  ProgrammerID    – uid of the assigned programmer (ownership field).
//  ProgrammerEmail – denormalized programmer email.
//  ProgrammerName  – denormalized programmer display name.
//  RequesterName   – name of the person requesting the session.
//  RequesterEmail  – contact email of the requester.
//  Date            – scheduled date, YYYY-MM-DD.
//  Time            – scheduled time, HH:MM.
//  Note            – free-text note from the requester.
//  Status          – pending, approved or rejected.
//  CreatedAt       – creation timestamp.
type Advisory struct {
    ID              int64     // advisories.id
    ProgrammerID    string    // advisories.programmer_id
    ProgrammerEmail string    // advisories.programmer_email
    ProgrammerName  string    // advisories.programmer_name
    RequesterName   string    // advisories.requester_name
    RequesterEmail  string    // advisories.requester_email
    Date            string    // advisories.date
    Time            string    // advisories.time
    Note            string    // advisories.note
    Status          string    // advisories.status
    CreatedAt       time.Time // advisories.created_at
}
