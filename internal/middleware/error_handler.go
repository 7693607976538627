package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/shaadibazaarhub/marketplace-api/internal/apperror"
	"github.com/shaadibazaarhub/marketplace-api/internal/dto"
)

const internalMessage = "internal server error"

// NewErrorHandler renders every failure as {"kind","message"}. Internal
// errors are logged with their cause and answered with a generic message.
func NewErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		kind, msg := classify(err)
		if kind == apperror.Internal {
			log.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.Error(err),
			)
			msg = internalMessage
		}

		status := apperror.HTTPStatus(kind)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, dto.ErrorResponse{Kind: string(kind), Message: msg})
	}
}

func classify(err error) (apperror.Kind, string) {
	var ae *apperror.Error
	if errors.As(err, &ae) {
		return ae.Kind, ae.Message
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			msg = m
		}
		return apperror.KindForStatus(he.Code), msg
	}
	return apperror.Internal, err.Error()
}
