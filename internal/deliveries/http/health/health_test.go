package health

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func Test_Handler_healthCheck(t *testing.T) {
	app := echo.New()
	apiGroup := app.Group("/api")
	New(apiGroup)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `{"kind":"health","status":"server is up and running"}`, strings.TrimSpace(string(body)))
}
