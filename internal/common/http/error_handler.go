package http

import (
	"errors"
	"net/http"

	"github.com/hashicorp/go-multierror"
	"github.com/labstack/echo/v4"

	"github.com/ledgerhub/go-bank-ledger/internal/common"
	"github.com/ledgerhub/go-bank-ledger/internal/common/validation"
)

// HandleServiceError translates service layer errors into REST responses.
func HandleServiceError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, common.ErrValidation):
		if fieldErrs := validation.CollectFieldErrors(err); len(fieldErrs) > 0 {
			merr := &multierror.Error{}
			for _, fieldErr := range fieldErrs {
				merr = multierror.Append(merr, fieldErr)
			}
			return RestErrorValidationResponse(c, merr)
		}
		return RestErrorResponse(c, http.StatusBadRequest, err)
	case errors.Is(err, common.ErrAccountNotExists),
		errors.Is(err, common.ErrTransactionNotFound),
		errors.Is(err, common.ErrDataNotFound):
		return RestErrorResponse(c, http.StatusNotFound, err)
	case errors.Is(err, common.ErrTransactionAlreadyExists):
		return RestErrorResponse(c, http.StatusConflict, err)
	default:
		return RestErrorResponse(c, http.StatusInternalServerError, common.ErrInternalServerError)
	}
}
