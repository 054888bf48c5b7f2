package observability

import "github.com/gofiber/fiber/v2"

// UnmatchedRoute is the metrics key shared by every request that matched no route.
const UnmatchedRoute = "<unmatched>"

const unmatchedLocal = "observability.unmatched"

// MarkUnmatched flags the request as a routing miss.
func MarkUnmatched(c *fiber.Ctx) {
	c.Locals(unmatchedLocal, true)
}

// RouteKey returns the registered route pattern that served c, or UnmatchedRoute.
// Raw request paths are never used as keys so the metric set stays bounded.
func RouteKey(c *fiber.Ctx) string {
	if unmatched, _ := c.Locals(unmatchedLocal).(bool); unmatched {
		return UnmatchedRoute
	}
	return c.Route().Path
}
