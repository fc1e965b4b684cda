package response

import (
	"net/http"

	"github.com/alimikegami/storefront-service/pkg/errs"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data"`
}

type ValidationError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
}

type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Errors  interface{} `json:"errors"`
}

func WriteSuccessResponse(c echo.Context, message string, data interface{}) error {
	return writeSuccess(c, http.StatusOK, message, data)
}

func WriteCreatedResponse(c echo.Context, message string, data interface{}) error {
	return writeSuccess(c, http.StatusCreated, message, data)
}

// WriteListResponse adds the record count next to the data array.
func WriteListResponse[T any](c echo.Context, message string, data []T) error {
	if data == nil {
		data = []T{}
	}
	count := len(data)

	resp := SuccessResponse{}
	resp.Status = "success"
	resp.Message = message
	resp.Count = &count
	resp.Data = data

	return c.JSON(http.StatusOK, resp)
}

func writeSuccess(c echo.Context, code int, message string, data interface{}) error {
	resp := SuccessResponse{}
	resp.Status = "success"
	resp.Data = data
	resp.Message = message

	return c.JSON(code, resp)
}

// WriteErrorResponse never exposes the text of errors outside the errs taxonomy.
func WriteErrorResponse(c echo.Context, err error, errors interface{}) error {
	statusCode := errs.GetErrorStatusCode(err)
	resp := ErrorResponse{}
	resp.Status = "error"
	resp.Errors = errors

	if known := errs.Known(err); known != nil {
		resp.Message = known.Error()
	} else {
		log.Ctx(c.Request().Context()).Error().Err(err).Str("component", "WriteErrorResponse").Msg("unexpected error")
		resp.Message = errs.ErrInternalServer.Error()
	}

	return c.JSON(statusCode, resp)
}
