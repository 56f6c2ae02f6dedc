package auth

import "github.com/gin-gonic/gin"

const flashCookieName = "flash"

// SetFlash queues a one-shot notice shown on the next rendered page.
// Cookie values are escaped and unescaped by gin.
func SetFlash(c *gin.Context, message string) {
	c.SetCookie(flashCookieName, message, 60, "/", "", false, true)
}

// PopFlash returns the pending notice, if any, and clears it.
func PopFlash(c *gin.Context) string {
	msg, err := c.Cookie(flashCookieName)
	if err != nil || msg == "" {
		return ""
	}
	c.SetCookie(flashCookieName, "", -1, "/", "", false, true)
	return msg
}
