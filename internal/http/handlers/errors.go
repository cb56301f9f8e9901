package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/levelpath-backend/internal/http/response"
	"github.com/yungbote/levelpath-backend/internal/pkg/errors"
	"github.com/yungbote/levelpath-backend/internal/platform/apierr"
)

// respondServiceError translates service errors into HTTP responses.
// Sentinels map to their status; anything unrecognized is a 500 with a
// generic message so internals don't leak.
func respondServiceError(c *gin.Context, err error) {
	var ae *apierr.Error
	if stderrors.As(err, &ae) {
		response.RespondError(c, ae.Status, ae.Code, ae)
		return
	}

	switch {
	case stderrors.Is(err, errors.ErrNotFound):
		response.RespondError(c, http.StatusNotFound, "not_found", err)
	case stderrors.Is(err, errors.ErrUnauthorized):
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", err)
	case stderrors.Is(err, errors.ErrForbidden):
		response.RespondError(c, http.StatusForbidden, "forbidden", err)
	case stderrors.Is(err, errors.ErrConflict):
		response.RespondError(c, http.StatusConflict, "conflict", err)
	case stderrors.Is(err, errors.ErrInvalidArgument):
		response.RespondError(c, http.StatusBadRequest, "invalid_argument", err)
	case stderrors.Is(err, errors.ErrRequirementsNotMet):
		response.RespondError(c, http.StatusBadRequest, "requirements_not_met",
			stderrors.New("Mission requirements not yet met."))
	default:
		response.RespondError(c, http.StatusInternalServerError, "internal",
			stderrors.New("internal server error"))
	}
}
