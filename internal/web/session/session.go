// Package session keeps logged in operators in a fiber session storage.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/AppShell-Admin/AppShell-Admin/internal/db/models"
)

// CookieName is the name of the session cookie.
const CookieName = "session"

// ErrNoSession is returned when the request carries no valid session.
var ErrNoSession = errors.New("no session")

// Store is the global session store instance.
var Store *session.Store //nolint:gochecknoglobals

// Data represents the session data structure.
type Data struct {
	User models.User
}

// Write writes the session data for the given session ID with an expiration duration.
func (s *Data) Write(sessionID string, exp time.Duration) error {
	out, err := json.Marshal(s)
	if err != nil {
		return err
	}

	return Store.Storage.Set(sessionID, out, exp)
}

// Read reads the session data for the given session ID.
func (s *Data) Read(sessionID string) error {
	byteData, err := Store.Storage.Get(sessionID)
	if err != nil {
		return err
	}

	if len(byteData) == 0 {
		return ErrNoSession
	}

	return json.Unmarshal(byteData, s)
}

// Init initializes the session store. A nil storage keeps sessions in memory.
func Init(storage fiber.Storage) {
	Store = session.New(session.Config{
		Storage:    storage,
		KeyLookup:  "cookie:" + CookieName,
		Expiration: 12 * time.Hour, //nolint:mnd
	})
}

// FromContext reads the session of the request.
func FromContext(c *fiber.Ctx) (*Data, error) {
	sessionID := c.Cookies(CookieName)
	if sessionID == "" || Store == nil {
		return nil, ErrNoSession
	}

	data := new(Data)
	if err := data.Read(sessionID); err != nil {
		return nil, err
	}

	if data.User.ID == 0 {
		return nil, ErrNoSession
	}

	return data, nil
}

// GenerateSessionID generates a new secure random session ID.
func GenerateSessionID() (string, error) {
	// 32 bytes = 256 bits
	b := make([]byte, 32) //nolint:mnd
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}
