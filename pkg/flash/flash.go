// Package flash carries one-shot notifications across a redirect in a cookie.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"unicode/utf8"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

type Message struct {
	Level Level  `json:"l"`
	Text  string `json:"t"`
}

const maxText = 300

// Store reads and writes flash messages under a single cookie name.
type Store struct {
	Cookie string
}

// Save replaces any pending messages with msgs.
func (s Store) Save(w http.ResponseWriter, msgs ...Message) {
	if len(msgs) == 0 {
		return
	}
	for i := range msgs {
		msgs[i].Text = truncate(msgs[i].Text)
	}

	raw, err := json.Marshal(msgs)
	if err != nil {
		slog.Error("Flash encoding failed", "err", err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.Cookie,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// truncate cuts s to at most maxText bytes without splitting a rune.
func truncate(s string) string {
	if len(s) <= maxText {
		return s
	}
	cut := maxText
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// Pop returns the pending messages and clears the cookie. A missing or
// malformed cookie yields no messages.
func (s Store) Pop(w http.ResponseWriter, r *http.Request) []Message {
	c, err := r.Cookie(s.Cookie)
	if err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.Cookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		slog.Debug("Dropping malformed flash cookie", "err", err)
		return nil
	}
	var msgs []Message
	if err := json.Unmarshal(raw, &msgs); err != nil {
		slog.Debug("Dropping malformed flash cookie", "err", err)
		return nil
	}
	return msgs
}
