package response

import (
	"net/http"

	"github.com/Yadlapure/health-care/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

type PaginationMeta struct {
	Total      int64 `json:"total,omitempty"`
	TotalPages int   `json:"totalPages,omitempty"`
	Page       int   `json:"page,omitempty"`
	PageSize   int   `json:"pageSize,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

type ApiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  any             `json:"data,omitempty"`
	Meta  *PaginationMeta `json:"meta,omitempty"`
	Error *ErrorBody      `json:"error,omitempty"`
}

// Paginate slices an in-memory listing. page is 1-based; out of range pages are empty.
func Paginate[T any](items []T, page, pageSize int) ([]T, PaginationMeta) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = len(items)
	}
	meta := PaginationMeta{Total: int64(len(items)), Page: page, PageSize: pageSize}
	if pageSize > 0 {
		meta.TotalPages = (len(items) + pageSize - 1) / pageSize
	}

	start := min((page-1)*pageSize, len(items))
	end := min(start+pageSize, len(items))
	return items[start:end], meta
}

func Success(c *gin.Context, status int, data any, meta *PaginationMeta) {
	c.JSON(status, ApiEnvelope{Ok: true, Data: data, Meta: meta})
}

func Error(c *gin.Context, status int, errorCode string, message string, details any) {
	c.JSON(status, ApiEnvelope{
		Error: &ErrorBody{Code: errorCode, Message: message, Details: details},
	})
}

// Invalid reports a request that failed binding, naming the first offending field.
func Invalid(c *gin.Context, err error) {
	he := apperror.ToHTTP(apperror.MapValidationError(err))
	Error(c, http.StatusBadRequest, he.Code, he.Message, he.Details)
}
