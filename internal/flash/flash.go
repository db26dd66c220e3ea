// Package flash carries one-shot status messages across a redirect using a
// short-lived cookie. A message set before a redirect is rendered exactly once
// by the next page that pops it.
package flash

import (
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

const cookieName = "flash"

type Message struct {
	Category string
	Text     string
}

// Set queues a flash message for the next rendered page.
func Set(c *gin.Context, category, text string) {
	value := url.QueryEscape(category + ":" + text)
	c.SetCookie(cookieName, value, 60, "/", "", false, true)
}

// Pop returns pending flash messages and clears the cookie so they render
// exactly once.
func Pop(c *gin.Context) []Message {
	raw, err := c.Cookie(cookieName)
	if err != nil || raw == "" {
		return nil
	}

	c.SetCookie(cookieName, "", -1, "/", "", false, true)

	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return nil
	}

	category, text, found := strings.Cut(decoded, ":")
	if !found || text == "" {
		return nil
	}
	return []Message{{Category: category, Text: text}}
}
