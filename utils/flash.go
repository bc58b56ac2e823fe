package utils

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// FlashMessage is a one-time notice shown on the next rendered page.
type FlashMessage struct {
	Category string
	Message  string
}

// Flash queues a message on the session. Categories follow the usual
// success/info/warning/danger convention.
func Flash(c *gin.Context, category, message string) {
	s := sessions.Default(c)
	s.AddFlash(category + "|" + message)
	if err := s.Save(); err != nil {
		Sugar.Warnf("flash save failed: %v", err)
	}
}

// TakeFlashes drains queued messages and persists their removal.
func TakeFlashes(c *gin.Context) []FlashMessage {
	s := sessions.Default(c)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := s.Save(); err != nil {
		Sugar.Warnf("flash drain failed: %v", err)
	}

	out := make([]FlashMessage, 0, len(raw))
	for _, v := range raw {
		str, ok := v.(string)
		if !ok {
			continue
		}
		category, message, found := strings.Cut(str, "|")
		if !found {
			category, message = "info", str
		}
		out = append(out, FlashMessage{Category: category, Message: message})
	}
	return out
}
