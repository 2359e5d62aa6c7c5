package middleware

import (
	"os"

	"github.com/labstack/echo/v4"

	"github.com/ledgerhub/go-bank-ledger/internal/common/logger"
)

const HeaderCorrelationID = "X-Correlation-Id"

// Context propagates the request correlation id into the request context
// so every log line written downstream carries it. The request id
// assigned by the RequestID middleware is used when the caller did not
// send one.
func (m *AppMiddleware) Context() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			correlationID := req.Header.Get(HeaderCorrelationID)
			if correlationID == "" {
				correlationID = c.Response().Header().Get(echo.HeaderXRequestID)
			}

			hostname, _ := os.Hostname()

			ctx := req.Context()
			ctx = logger.WithCorrelationID(ctx, correlationID)
			ctx = logger.WithHost(ctx, hostname)
			c.SetRequest(req.WithContext(ctx))

			c.Response().Header().Set(HeaderCorrelationID, correlationID)

			return next(c)
		}
	}
}
