package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// analyticsPropsKey holds the event properties handlers attach to the current request.
const analyticsPropsKey = "analyticsProps"

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// currencyParams lists, per route, the parameters that carry currency codes.
var currencyParams = map[string][]string{
	"/api/v1/currencies/:code":         {"code"},
	"/api/v1/currencies/:code/default": {"code"},
	"/api/v1/exchange-rates/:from/:to": {"from", "to"},
}

// currencyQueries lists, per route, the query parameters that carry currency codes.
var currencyQueries = map[string][]string{
	"/api/v1/conversions/convert": {"from", "to"},
}

// EventTracker is the analytics sink used by PosthogMiddleware.
type EventTracker interface {
	IsInitialized() bool
	Enqueue(distinctID string, event string, properties map[string]any)
}

// SetAnalyticsProperty attaches a property to the analytics event recorded for this request,
// for example the currency of a new transaction or the state of a conversion offer.
func SetAnalyticsProperty(c *gin.Context, key string, value any) {
	props, _ := c.Get(analyticsPropsKey)
	m, ok := props.(map[string]any)
	if !ok {
		m = make(map[string]any)
		c.Set(analyticsPropsKey, m)
	}
	m[key] = value
}

// PosthogMiddleware tracks successful authenticated API calls.
// Events are named after the method and route template, e.g. "post_conversions_offers_accept",
// so IDs never end up in event names.
func PosthogMiddleware(tracker EventTracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tracker == nil || !tracker.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		// Set by the auth middleware; unauthenticated routes are not tracked.
		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		route := c.FullPath()
		eventName := analyticsEventName(c.Request.Method, route)
		if eventName == "" {
			return
		}

		tracker.Enqueue(userID, eventName, analyticsProperties(c, route))
	}
}

func analyticsEventName(method, route string) string {
	route = strings.TrimPrefix(route, "/api/v1")
	var parts []string
	for _, segment := range strings.Split(route, "/") {
		if segment == "" || strings.HasPrefix(segment, ":") || strings.HasPrefix(segment, "*") {
			continue
		}
		parts = append(parts, strings.ReplaceAll(segment, "-", "_"))
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.ToLower(method) + "_" + strings.Join(parts, "_")
}

func analyticsProperties(c *gin.Context, route string) map[string]any {
	props := map[string]any{
		"method":      c.Request.Method,
		"route":       route,
		"status_code": c.Writer.Status(),
	}

	var currencies []string
	for _, name := range currencyParams[route] {
		if v := c.Param(name); v != "" {
			currencies = append(currencies, strings.ToUpper(v))
		}
	}
	for _, name := range currencyQueries[route] {
		if v := c.Query(name); v != "" {
			currencies = append(currencies, strings.ToUpper(strings.TrimSpace(v)))
		}
	}
	if len(currencies) > 0 {
		props["currencies"] = currencies
	}

	if extra, ok := c.Get(analyticsPropsKey); ok {
		if m, ok := extra.(map[string]any); ok {
			for k, v := range m {
				props[k] = v
			}
		}
	}
	return props
}
