package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Session keys set at login and read on every protected request.
const (
	SessionKeyUserID   = "user_id"
	SessionKeyUserName = "user_name"
)

// SessionAuth is a Fiber middleware that gates protected routes behind
// an established session. Requests without one are redirected to the
// login page; nothing downstream runs. On success the user's identity
// is exposed to handlers through request-scoped Locals, and the session
// is re-saved so its 24-hour expiry slides forward.
func SessionAuth(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			log.Printf("Failed to load session: %v", err)
			return c.Redirect("/login", fiber.StatusFound)
		}

		userID, ok := sess.Get(SessionKeyUserID).(string)
		if !ok || userID == "" {
			return c.Redirect("/login", fiber.StatusFound)
		}
		userName, _ := sess.Get(SessionKeyUserName).(string)

		// Store identity in Fiber context for subsequent handlers
		c.Locals(SessionKeyUserID, userID)
		c.Locals(SessionKeyUserName, userName)

		if err := sess.Save(); err != nil {
			log.Printf("Failed to refresh session for user %s: %v", userID, err)
		}

		// Continue to the next handler
		return c.Next()
	}
}
