// Package queue defines the mail events exchanged over the message broker.
package queue

// Event types carried in MailEvent.Type.  Each maps to one outbound mail
// rendered by the consumer.
const (
    EventWelcome           = "user.welcome"       // welcome mail after registration
    EventAdvisoryRequested = "advisory.requested" // new request, sent to the programmer
    EventAdvisoryReceived  = "advisory.received"  // submission confirmation, sent to the requester
    EventAdvisoryDecided   = "advisory.decided"   // approval/rejection outcome, sent to the requester
    EventAdvisoryReminder  = "advisory.reminder"  // day-before reminder
)

// MailEvent is the single payload published for every notification.  It
// carries enough denormalized booking data for downstream consumers to
// render and deliver the mail without querying the primary database.
type MailEvent struct {
    Type           string `json:"type"`
    To             string `json:"to"`
    ToName         string `json:"to_name"`
    AdvisoryID     int64  `json:"advisory_id,omitempty"`
    ProgrammerName string `json:"programmer_name,omitempty"`
    RequesterName  string `json:"requester_name,omitempty"`
    Date           string `json:"date,omitempty"`
    Time           string `json:"time,omitempty"`
    Note           string `json:"note,omitempty"`
    Status         string `json:"status,omitempty"`
    QueuedAt       string `json:"queued_at"`
}
