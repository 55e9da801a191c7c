package auth

import (
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"brickyard.GO/config"
)

// Middleware gate-keeps the /api group with a shared credential: HTTP basic
// auth by default, a static API key when AUTH_TYPE=key. Paths listed by
// config.GetAuthSkipperPaths stay open.
func Middleware() echo.MiddlewareFunc {
	skipper := pathSkipper(config.GetAuthSkipperPaths())
	if os.Getenv("AUTH_TYPE") == "key" {
		return keyAuth(skipper)
	}
	return basicAuth(skipper)
}

func pathSkipper(open []string) middleware.Skipper {
	return func(c echo.Context) bool {
		for _, p := range open {
			if c.Path() == p {
				return true
			}
		}
		return false
	}
}

func basicAuth(skipper middleware.Skipper) echo.MiddlewareFunc {
	return middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Validator: func(username, password string, c echo.Context) (bool, error) {
			return username == os.Getenv("API_USER") && password == os.Getenv("API_PASS"), nil
		},
		Skipper: skipper,
	})
}

func keyAuth(skipper middleware.Skipper) echo.MiddlewareFunc {
	apiKey := os.Getenv("API_KEY")
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Validator: func(key string, c echo.Context) (bool, error) {
			return key == apiKey, nil
		},
		Skipper: skipper,
	})
}
