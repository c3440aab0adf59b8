package http

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
)

// Headers set by the API gateway after authenticating the caller.
const (
	HeaderActorID          = "X-Actor-ID"
	HeaderActorPermissions = "X-Actor-Permissions"
)

// Permissions checked by the handlers.
const (
	PermissionTransitionOrders = "orders:transition"
	PermissionUpdateTickets    = "kitchen:tickets"
	PermissionWriteMenu        = "menu:write"
)

var ErrForbidden = errors.New("forbidden")

// Actor is the verified identity of the caller.
type Actor struct {
	ID          string
	Permissions map[string]struct{}
}

func (a Actor) IsAnonymous() bool {
	return a.ID == ""
}

func (a Actor) Can(permission string) bool {
	_, ok := a.Permissions[permission]
	return ok
}

type actorKey struct{}

// ActorFromContext returns the actor stored by IdentityMiddleware, or an
// anonymous actor.
func ActorFromContext(ctx context.Context) Actor {
	actor, _ := ctx.Value(actorKey{}).(Actor)
	return actor
}

// IdentityMiddleware trusts the gateway headers and attaches the actor to the
// request context. It never rejects a request by itself.
func IdentityMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			actor := Actor{
				ID:          strings.TrimSpace(req.Header.Get(HeaderActorID)),
				Permissions: parsePermissions(req.Header.Get(HeaderActorPermissions)),
			}
			c.SetRequest(req.WithContext(context.WithValue(req.Context(), actorKey{}, actor)))
			return next(c)
		}
	}
}

func parsePermissions(header string) map[string]struct{} {
	perms := make(map[string]struct{})
	for _, p := range strings.FieldsFunc(header, func(r rune) bool { return r == ',' || r == ' ' }) {
		perms[strings.ToLower(p)] = struct{}{}
	}
	return perms
}

// authorize returns the actor when it is identified and holds permission.
func authorize(c echo.Context, permission string) (Actor, error) {
	actor := ActorFromContext(c.Request().Context())
	if actor.IsAnonymous() {
		return Actor{}, newForbiddenError("caller is not identified")
	}
	if !actor.Can(permission) {
		return Actor{}, newForbiddenError("missing permission " + permission)
	}
	return actor, nil
}

type forbiddenError struct {
	reason string
}

func newForbiddenError(reason string) error {
	return &forbiddenError{reason: reason}
}

func (e *forbiddenError) Error() string { return "forbidden: " + e.reason }

func (e *forbiddenError) Unwrap() error { return ErrForbidden }
