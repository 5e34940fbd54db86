// Package flash delivers transient per-user notices through the
// session: added on one request, shown on the next rendered page,
// then gone. User-visible failures travel this way rather than as
// hard error pages.
package flash

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/kinfolium/kinfolium/internal/web/session"
)

// flashExpiry bounds how long undelivered notices survive.
const flashExpiry = time.Hour

// Add appends notices to the current session. Requests without a
// session silently drop them; there is nowhere to show the message.
func Add(c *fiber.Ctx, notices ...string) {
	if len(notices) == 0 {
		return
	}

	sessionID := c.Cookies("session")
	if sessionID == "" {
		return
	}

	data := new(session.Data)
	if err := data.Read(sessionID); err != nil {
		return
	}

	data.Flashes = append(data.Flashes, notices...)
	if err := data.Write(sessionID, flashExpiry); err != nil {
		log.Error().Err(err).Msg("failed to store flash notices")
	}
}

// Drain returns and clears the pending notices for the current session.
func Drain(c *fiber.Ctx) []string {
	sessionID := c.Cookies("session")
	if sessionID == "" {
		return nil
	}

	data := new(session.Data)
	if err := data.Read(sessionID); err != nil {
		return nil
	}

	notices := data.Flashes
	if len(notices) == 0 {
		return nil
	}

	data.Flashes = nil
	if err := data.Write(sessionID, flashExpiry); err != nil {
		log.Error().Err(err).Msg("failed to clear flash notices")
	}

	return notices
}
