package response

import (
	"net/http"

	"tablebook/internal/shared/apperrors"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondError maps a classified application error onto the standard
// envelope. Unclassified errors surface as 500s.
func RespondError(c *gin.Context, message string, err error) {
	code := http.StatusInternalServerError
	switch apperrors.KindOf(err) {
	case apperrors.KindNotFound:
		code = http.StatusNotFound
	case apperrors.KindInvalidRequest:
		code = http.StatusBadRequest
	case apperrors.KindConflict:
		code = http.StatusConflict
	case apperrors.KindConfig:
		code = http.StatusInternalServerError
	}
	RespondJSON(c, "error", code, message, nil, err.Error())
}
