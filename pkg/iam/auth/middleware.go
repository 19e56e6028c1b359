package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/redlaboral/portal/pkg/kernel"
)

const authContextKey = "auth_context"

// AuthContext carries the authenticated identity through a request
type AuthContext struct {
	UserID kernel.UserID
	Email  kernel.Email
	Role   Role
	Scopes []string
}

// HasScope reports whether the context carries scope, honoring
// "resource:*" wildcards.
func (a *AuthContext) HasScope(scope string) bool {
	resource, _, found := strings.Cut(scope, ":")
	for _, s := range a.Scopes {
		if s == scope {
			return true
		}
		if found && s == resource+":*" {
			return true
		}
	}
	return false
}

// Middleware builds fiber middleware from a token service
type Middleware struct {
	tokens TokenService
}

func NewMiddleware(tokens TokenService) *Middleware {
	return &Middleware{tokens: tokens}
}

// RequireAuth rejects requests without a valid bearer token and stores
// the AuthContext in request locals.
func (m *Middleware) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := m.authenticate(c)
		if err != nil {
			return err
		}

		c.Locals(authContextKey, &AuthContext{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
			Scopes: claims.Scopes,
		})
		return c.Next()
	}
}

// RequireRole rejects authenticated requests whose role is not in roles
func (m *Middleware) RequireRole(roles ...Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authContext, ok := GetAuthContext(c)
		if !ok {
			return ErrMissingToken()
		}
		for _, role := range roles {
			if authContext.Role == role || authContext.Role == RoleAdmin {
				return c.Next()
			}
		}
		return ErrForbidden().WithDetail("role", string(authContext.Role))
	}
}

// RequireScope rejects authenticated requests missing scope
func (m *Middleware) RequireScope(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authContext, ok := GetAuthContext(c)
		if !ok {
			return ErrMissingToken()
		}
		if !authContext.HasScope(scope) {
			return ErrForbidden().WithDetail("scope", scope)
		}
		return c.Next()
	}
}

// OptionalAuth stores an AuthContext when a valid token is present but
// lets anonymous requests through.
func (m *Middleware) OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := m.authenticate(c)
		if err == nil {
			c.Locals(authContextKey, &AuthContext{
				UserID: claims.UserID,
				Email:  claims.Email,
				Role:   claims.Role,
				Scopes: claims.Scopes,
			})
		}
		return c.Next()
	}
}

func (m *Middleware) authenticate(c *fiber.Ctx) (*TokenClaims, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return nil, ErrMissingToken()
	}

	tokenString, found := strings.CutPrefix(header, "Bearer ")
	if !found || tokenString == "" {
		return nil, ErrInvalidToken().WithDetail("header", "expected Bearer token")
	}

	return m.tokens.ValidateAccessToken(tokenString)
}

// GetAuthContext retrieves the AuthContext stored by the middleware
func GetAuthContext(c *fiber.Ctx) (*AuthContext, bool) {
	authContext, ok := c.Locals(authContextKey).(*AuthContext)
	return authContext, ok
}
