package transaction

import (
	nethttp "net/http"

	"github.com/labstack/echo/v4"

	"github.com/ledgerhub/go-bank-ledger/internal/common/http"
	"github.com/ledgerhub/go-bank-ledger/internal/models"
	"github.com/ledgerhub/go-bank-ledger/internal/services"
)

type transactionHandler struct {
	transactionService services.TransactionService
}

// New transaction handler will initialize the transactions/ resources endpoint
func New(app *echo.Group, transactionService services.TransactionService) {
	handler := transactionHandler{transactionService}
	endpoint := app.Group("/transactions")
	endpoint.POST("", handler.createTransaction())
	endpoint.GET("/:id", handler.getTransaction())
}

// createTransaction godoc
// @Summary 	Record a transaction
// @Description Record a credit or debit transaction and queue it for balance application
// @Tags 		Transactions
// @Accept		json
// @Produce		json
// @Param		request body models.CreateTransactionRequest true "transaction payload"
// @Success 201 {object} models.CreateTransactionResponse "Response indicates that the transaction has been recorded"
// @Failure 422 {object} http.RestErrorValidationResponseModel "Validation error on the request payload"
// @Failure 500 {object} http.RestErrorResponseModel "Internal server error"
// @Router /v1/transactions [post]
func (th transactionHandler) createTransaction() echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(models.CreateTransactionRequest)
		if err := c.Bind(req); err != nil {
			return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
		}

		result, err := th.transactionService.Create(c.Request().Context(), *req)
		if err != nil {
			return http.HandleServiceError(c, err)
		}

		return http.RestSuccessResponse(c, nethttp.StatusCreated, result.ToCreateResponse())
	}
}

// getTransaction godoc
// @Summary 	Get a transaction by id
// @Description Get a recorded transaction by its id
// @Tags 		Transactions
// @Accept		json
// @Produce		json
// @Param		id path string true "transaction id"
// @Success 200 {object} models.TransactionResponse
// @Failure 404 {object} http.RestErrorResponseModel "No transaction recorded under the given id"
// @Failure 500 {object} http.RestErrorResponseModel "Internal server error"
// @Router /v1/transactions/:id [get]
func (th transactionHandler) getTransaction() echo.HandlerFunc {
	return func(c echo.Context) error {
		result, err := th.transactionService.GetByID(c.Request().Context(), c.Param("id"))
		if err != nil {
			return http.HandleServiceError(c, err)
		}

		return http.RestSuccessResponse(c, nethttp.StatusOK, result.ToResponse())
	}
}
