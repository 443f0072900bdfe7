package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

const RealIPKey = "real_ip"

// RealIP sets the real client IP into Gin context (key: "real_ip").
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := ForwardedIP(c.GetHeader("CF-Connecting-IP"), c.GetHeader("X-Forwarded-For"))
		if ip == "" {
			ip = c.ClientIP()
		}
		c.Set(RealIPKey, ip)
		c.Next()
	}
}

// ForwardedIP picks the client address from proxy headers.
// Priority:
// 1) CF-Connecting-IP (Cloudflare)
// 2) X-Forwarded-For (left-most)
// It returns "" when neither holds a parseable IP.
func ForwardedIP(cfConnectingIP, xForwardedFor string) string {
	if ip := net.ParseIP(strings.TrimSpace(cfConnectingIP)); ip != nil {
		return ip.String()
	}
	if xForwardedFor != "" {
		first, _, _ := strings.Cut(xForwardedFor, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String()
		}
	}
	return ""
}
