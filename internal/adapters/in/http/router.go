package http

import (
	"log/slog"
	"net/http"

	"restaurant/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type apiDoc struct{}

func (apiDoc) ReadDoc() string {
	return string(servers.RawSpec())
}

func init() {
	swag.Register(swag.Name, apiDoc{})
}

// HealthChecker reports whether the service dependencies are reachable.
type HealthChecker func() error

// NewRouter builds the echo instance serving the API, the OpenAPI document
// under /swagger and /health.
func NewRouter(server servers.ServerInterface, health HealthChecker, logger *slog.Logger) (*echo.Echo, error) {
	doc, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	validator, err := OpenAPIValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler(logger)

	e.Use(echo.WrapMiddleware(otelhttp.NewMiddleware("restaurant-http")))
	e.Use(middleware.Recover())
	e.Use(IdentityMiddleware())
	e.Use(validator)

	e.GET("/health", func(c echo.Context) error {
		if health != nil {
			if err := health(); err != nil {
				logger.WarnContext(c.Request().Context(), "health check failed", "error", err)
				return c.String(http.StatusServiceUnavailable, "Unhealthy")
			}
		}
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	servers.RegisterHandlers(e, server)

	return e, nil
}
