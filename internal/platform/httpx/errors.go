package httpx

import (
	"errors"
	"net/http"

	"github.com/inkbill/inkbill/internal/shared"
)

// RespondError maps ledger domain errors to HTTP responses using RFC7807.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, shared.ErrClientInUse):
		Problem(w, http.StatusConflict, "Client In Use", err.Error())
	case errors.Is(err, shared.ErrInvalidTransition):
		Problem(w, http.StatusConflict, "Invalid Transition", err.Error())
	case errors.Is(err, shared.ErrFinalized):
		Problem(w, http.StatusConflict, "Document Finalized", err.Error())
	case errors.Is(err, shared.ErrInvalidPayment):
		Problem(w, http.StatusUnprocessableEntity, "Invalid Payment", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
