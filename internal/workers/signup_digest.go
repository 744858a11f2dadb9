package workers

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/devhive-app/devhive/internal/store"
)

// StartSignupDigestScheduler logs a periodic digest of new registrations on
// the given cron schedule. Blocks; run it in a goroutine. An empty or invalid
// schedule disables the digest.
func StartSignupDigestScheduler(db *gorm.DB, logger zerolog.Logger, cronExpr string) {
	if cronExpr == "" {
		logger.Debug().Msg("No signup digest schedule configured")
		return
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(cronExpr)
	if err != nil {
		logger.Error().Err(err).Str("schedule", cronExpr).Msg("Invalid signup digest schedule")
		return
	}

	users := store.NewUsers(db)
	last := time.Now()

	for {
		next := schedule.Next(time.Now())
		time.Sleep(time.Until(next))

		count, err := users.CountCreatedSince(last)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to count signups for digest")
			continue
		}

		logger.Info().
			Int64("new_users", count).
			Time("since", last).
			Msg("Signup digest")
		last = next
	}
}

// NextDigestAt computes the next digest time from a cron expression,
// or nil when no schedule is set
func NextDigestAt(cronExpr string, from time.Time) *time.Time {
	if cronExpr == "" {
		return nil
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(cronExpr)
	if err != nil {
		return nil
	}

	next := schedule.Next(from)
	return &next
}
