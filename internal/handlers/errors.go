package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/yatube/backend/pkg/apperrors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// NewHTTPErrorHandler maps domain errors onto HTTP responses. Unexpected
// errors are logged and answered with a generic 500.
func NewHTTPErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		body := echo.Map{"success": false, "error": http.StatusText(code)}

		var (
			he   *echo.HTTPError
			verr *apperrors.ValidationError
			nf   *apperrors.NotFoundError
		)
		switch {
		case errors.As(err, &verr):
			code = http.StatusBadRequest
			body["error"] = "validation failed"
			body["fields"] = verr.Fields
		case errors.As(err, &nf):
			code = http.StatusNotFound
			body["error"] = nf.Message
		case errors.As(err, &he):
			code = he.Code
			body["error"] = he.Message
		default:
			log.Error("unhandled error",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, body)
		}
		if err != nil {
			log.Error("write error response", zap.Error(err))
		}
	}
}

// parseID reads a numeric path parameter.
func parseID(c echo.Context, name string) (uint, error) {
	var id uint
	if err := echo.PathParamsBinder(c).MustUint(name, &id).BindError(); err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound, "Invalid "+name)
	}
	return id, nil
}
