package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-user-post-api/pkg/apperror"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// Success writes data wrapped under a single named field, e.g. {"user": {...}}.
func Success(ctx *gin.Context, status int, field string, data any) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, gin.H{field: data})
}

// Message writes a {"msg": "..."} body, used by deletes.
func Message(ctx *gin.Context, status int, msg string) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, gin.H{"msg": msg})
}

func Error(ctx *gin.Context, status int, message string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.JSON(status, ErrorBody{Error: message})
}

// Fail maps an application error to its HTTP status and writes it.
func Fail(ctx *gin.Context, err error) {
	e := apperror.From(err)
	Error(ctx, StatusFor(e.Kind), e.Error())
}

func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation:
		return http.StatusBadRequest
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
