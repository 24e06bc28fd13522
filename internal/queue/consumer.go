// The background consumer listens to the advisory.events queue and delivers
// each mail event by rendering it to logs/advisory-mail.log.  Delivery is
// advisory-only: booking state in the database is authoritative and nothing
// here feeds back into it.
package queue

import (
    "encoding/json"
    "errors"
    "fmt"
    "log"
    "os"
    "path/filepath"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

// StartMailConsumer connects to RabbitMQ, declares the advisory.events
// queue (durable), and starts consuming messages.  Each message is rendered
// as a single mail line appended to logs/advisory-mail.log.  The function
// runs a reconnect loop with backoff and keeps running indefinitely, logging
// processing errors and rejecting the offending message so the server
// continues operating.
func StartMailConsumer() error {
    url := brokerURL()

    backoff := time.Second
    for {
        conn, err := amqp.Dial(url)
        if err != nil {
            log.Printf("mail-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
            time.Sleep(backoff)
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second // reset after successful connect

        if err := consumeLoop(conn); err != nil {
            log.Printf("mail-consumer: consume loop ended: %v; reconnecting", err)
            time.Sleep(2 * time.Second)
            continue
        }
    }
}

func consumeLoop(conn *amqp.Connection) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        log.Printf("mail-consumer: set QoS failed: %v", err)
    }

    _, err = ch.QueueDeclare(mailQueueName, true, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }

    msgs, err := ch.Consume(mailQueueName, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for d := range msgs {
        if err := handleMessage(d.Body); err != nil {
            log.Printf("mail-consumer: handle message failed: %v", err)
            _ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
            continue
        }
        _ = d.Ack(false)
    }
    return errors.New("deliveries channel closed")
}

func handleMessage(body []byte) error {
    var ev MailEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    // Ensure logs directory exists
    if err := os.MkdirAll("logs", 0o755); err != nil {
        return fmt.Errorf("mkdir logs: %w", err)
    }
    fpath := filepath.Join("logs", "advisory-mail.log")
    f, err := os.OpenFile(fpath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()

    line := fmt.Sprintf("[%s] to=%s subject=%q body=%q\n",
        ev.QueuedAt, ev.To, subjectFor(ev), bodyFor(ev))
    if _, err := f.WriteString(line); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}

func subjectFor(ev MailEvent) string {
    switch ev.Type {
    case EventWelcome:
        return "Welcome to the portfolio platform"
    case EventAdvisoryRequested:
        return "New advisory request"
    case EventAdvisoryReceived:
        return "Advisory request submitted"
    case EventAdvisoryDecided:
        return "Advisory " + ev.Status
    case EventAdvisoryReminder:
        return "Reminder: advisory session tomorrow"
    }
    return "Notification"
}

func bodyFor(ev MailEvent) string {
    switch ev.Type {
    case EventWelcome:
        return fmt.Sprintf("Hi %s, your account has been created.", ev.ToName)
    case EventAdvisoryRequested:
        return fmt.Sprintf("Hi %s, %s requested an advisory session on %s at %s. Note: %s",
            ev.ProgrammerName, ev.RequesterName, ev.Date, ev.Time, ev.Note)
    case EventAdvisoryReceived:
        return fmt.Sprintf("Hi %s, your advisory request with %s on %s at %s was submitted. You will be notified when the programmer responds.",
            ev.RequesterName, ev.ProgrammerName, ev.Date, ev.Time)
    case EventAdvisoryDecided:
        return fmt.Sprintf("Hi %s, your advisory request with %s has been %s.",
            ev.RequesterName, ev.ProgrammerName, ev.Status)
    case EventAdvisoryReminder:
        return fmt.Sprintf("Hi %s, you have an advisory session tomorrow (%s) at %s.",
            ev.ToName, ev.Date, ev.Time)
    }
    return ""
}
