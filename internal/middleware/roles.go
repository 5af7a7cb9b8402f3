// Package middleware contains HTTP middleware functions for the Survivor Pool API.
// This file handles role-based access control — checking that the authenticated
// caller has permission to perform the requested action.
package middleware

// roles.go — Role-based access control middleware.
// The pool has exactly one privileged role: admin. RequireRole is kept
// variadic so a future role split doesn't change any call sites.

import "github.com/gofiber/fiber/v2"

// RequireRole returns a middleware handler that allows only callers whose role
// matches one of the provided roles. Returns HTTP 403 Forbidden otherwise.
//
//	api.Post("/admin/players", middleware.RequireRole("admin"), handlers.CreatePlayer(svc))
//
// RequireRole must be used AFTER the Auth middleware, because Auth is what
// populates the "userRole" value in the request context via c.Locals.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// The .(string) is a type assertion converting the interface{} value
		// stored in Locals back to a concrete string. ok is false if Auth
		// never ran or stored something unexpected.
		userRole, ok := c.Locals("userRole").(string)
		if !ok || userRole == "" {
			// No role means the Auth middleware wasn't applied or failed
			// silently — deny with 403 (not 401: the caller may well be
			// authenticated but still have no role).
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "forbidden",
			})
		}

		for _, role := range roles {
			if userRole == role {
				// Role is allowed — pass the request to the next handler
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "insufficient permissions",
		})
	}
}
