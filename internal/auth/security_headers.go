package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// apiContentSecurityPolicy locks JSON responses down completely.
const apiContentSecurityPolicy = "default-src 'none'; frame-ancestors 'none'"

// docsContentSecurityPolicy lets the Swagger UI page run its inline bootstrap
// script. All of its assets are served from this origin.
const docsContentSecurityPolicy = "default-src 'self'; " +
	"script-src 'self' 'unsafe-inline'; " +
	"style-src 'self' 'unsafe-inline'; " +
	"img-src 'self' data:; " +
	"connect-src 'self'; " +
	"frame-ancestors 'none'"

// SecurityHeadersMiddleware adds security headers to all responses.
// Paths under docsPrefix get a policy that allows the documentation page to render.
func SecurityHeadersMiddleware(docsPrefix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Prevent clickjacking
		c.Header("X-Frame-Options", "DENY")

		// Prevent MIME type sniffing
		c.Header("X-Content-Type-Options", "nosniff")

		c.Header("Referrer-Policy", "no-referrer")

		if docsPrefix != "" && strings.HasPrefix(c.Request.URL.Path, docsPrefix) {
			c.Header("Content-Security-Policy", docsContentSecurityPolicy)
		} else {
			c.Header("Content-Security-Policy", apiContentSecurityPolicy)
		}

		c.Header("Permissions-Policy",
			"accelerometer=(), "+
				"camera=(), "+
				"geolocation=(), "+
				"microphone=(), "+
				"payment=(), "+
				"usb=()")

		c.Next()
	}
}

// StrictTransportSecurityMiddleware adds HSTS header for HTTPS-only access.
// Only enable this when serving over HTTPS, as it will break HTTP access.
func StrictTransportSecurityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
			c.Header("Strict-Transport-Security",
				"max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
