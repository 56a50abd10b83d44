package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"fieldserv/internal/auth"
	"fieldserv/internal/config"
	apperrors "fieldserv/internal/errors"
	"fieldserv/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	guard *auth.Guard,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	locationHandler *handler.LocationHandler,
	recordHandler *handler.RecordHandler,
	photoHandler *handler.PhotoHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	if len(cfg.AllowedOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowCredentials: true,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		}))
	}

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Uploaded photos are served straight from the content directory.
	e.Static("/uploads", cfg.UploadDir)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login", authHandler.Login)

	// Secured routes: echo-jwt checks signature and expiry, the guard
	// resolves the token subject to a stored user.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		ErrorHandler: func(c echo.Context, err error) error {
			httpErr := apperrors.MapErrorToHTTP(apperrors.ErrUnauthenticated)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		},
	}), guard.LoadUser)

	// Location routes: listing for any authenticated user, creation for admins
	secured.GET("/locations", locationHandler.ListLocations)
	secured.POST("/locations", locationHandler.CreateLocation, guard.RequireAdmin)

	// Record routes
	secured.GET("/records", recordHandler.ListRecords)
	secured.POST("/records", recordHandler.CreateRecord)

	// Photo routes
	secured.GET("/records/:id/photos", photoHandler.ListPhotos)
	secured.POST("/records/:id/photos", photoHandler.AttachPhotos)

	// User management is admin-only
	admin := secured.Group("", guard.RequireAdmin)
	admin.GET("/users", userHandler.ListUsers)
	admin.POST("/users", userHandler.CreateUser)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
