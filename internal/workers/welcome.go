package workers

import (
	"context"
	"errors"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/devhive-app/devhive/internal/store"
	"github.com/devhive-app/devhive/internal/tasks"
)

// HandleIdentityWelcome processes the welcome task for a new registration.
// Idempotent: a retried task for an already-welcomed user is a no-op.
func HandleIdentityWelcome(ctx context.Context, t *asynq.Task, db *gorm.DB, logger zerolog.Logger) error {
	payload, err := tasks.ParseWelcomePayload(t)
	if err != nil {
		return err
	}

	users := store.NewUsers(db)

	user, err := users.FindByID(payload.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Account deleted before the task ran; nothing to do
			logger.Warn().Str("user_id", payload.UserID).Msg("Welcome task for missing user")
			return nil
		}
		return err
	}

	if user.WelcomedAt != nil {
		return nil
	}

	if err := users.MarkWelcomed(user.ID, time.Now()); err != nil {
		return err
	}

	logger.Info().
		Str("user_id", user.ID).
		Str("email", user.Email).
		Msg("Welcomed new user")

	return nil
}
