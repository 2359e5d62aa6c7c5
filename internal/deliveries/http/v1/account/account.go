package account

import (
	nethttp "net/http"

	"github.com/labstack/echo/v4"

	"github.com/ledgerhub/go-bank-ledger/internal/common/http"
	"github.com/ledgerhub/go-bank-ledger/internal/services"
)

type accountHandler struct {
	balanceService services.BalanceService
}

// New account handler will initialize the accounts/ resources endpoint
func New(app *echo.Group, balanceService services.BalanceService) {
	handler := accountHandler{balanceService}
	endpoint := app.Group("/accounts")
	endpoint.GET("/:accountName", handler.getAccountBalance())
}

// getAccountBalance godoc
// @Summary 	Get account balance
// @Description Get the current balance of an account by its name
// @Tags 		Accounts
// @Accept		json
// @Produce		json
// @Param		accountName path string true "account name"
// @Success 200 {object} models.AccountResponse
// @Failure 404 {object} http.RestErrorResponseModel "No balance has been recorded under the given account name"
// @Failure 500 {object} http.RestErrorResponseModel "Internal server error"
// @Router /v1/accounts/:accountName [get]
func (ah accountHandler) getAccountBalance() echo.HandlerFunc {
	return func(c echo.Context) error {
		result, err := ah.balanceService.Get(c.Request().Context(), c.Param("accountName"))
		if err != nil {
			return http.HandleServiceError(c, err)
		}

		return http.RestSuccessResponse(c, nethttp.StatusOK, result.ToResponse())
	}
}
