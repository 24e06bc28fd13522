package service

import (
    "context"
    "log"
    "time"

    "github.com/lexisware/portfolio-backend/internal/repository"
)

// StartDailyReminders runs forever, sending reminder notifications for
// tomorrow's approved advisories once per day at 09:00 server time.  It is
// started on its own goroutine from main.  Failures are logged and the next
// cycle proceeds regardless; reminders are advisory-only and never touch
// booking state.
func StartDailyReminders(repo *repository.AdvisoryRepo, n Notifier) {
    for {
        time.Sleep(time.Until(nextRunAt(time.Now())))
        remindTomorrow(repo, n)
    }
}

// nextRunAt returns the next 09:00 strictly after now.
func nextRunAt(now time.Time) time.Time {
    run := time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, now.Location())
    if !run.After(now) {
        run = run.AddDate(0, 0, 1)
    }
    return run
}

func remindTomorrow(repo *repository.AdvisoryRepo, n Notifier) {
    ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
    defer cancel()

    tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
    advisories, err := repo.ListApprovedForDate(ctx, tomorrow)
    if err != nil {
        log.Printf("reminders: query failed: %v", err)
        return
    }

    sent := 0
    for _, a := range advisories {
        if err := n.AdvisoryReminder(ctx, a); err != nil {
            log.Printf("reminders: dispatch failed (id=%d): %v", a.ID, err)
            continue
        }
        sent++
    }
    log.Printf("reminders: processed %d advisories for %s, sent %d", len(advisories), tomorrow, sent)
}
