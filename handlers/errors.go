package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"reflect"
	"strings"

	"triviaapi/services"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

var errorMessages = map[int]string{
	http.StatusBadRequest:          "bad request",
	http.StatusUnauthorized:        "unauthorized",
	http.StatusNotFound:            "resource not found",
	http.StatusMethodNotAllowed:    "method not allowed",
	http.StatusUnprocessableEntity: "unprocessable",
	http.StatusInternalServerError: "internal server error",
	http.StatusServiceUnavailable:  "service unavailable",
}

// AbortWithStatus ends the request with the error envelope for status.
func AbortWithStatus(c *gin.Context, status int) {
	AbortWithMessage(c, status, "")
}

// AbortWithMessage is AbortWithStatus with a more specific message.
func AbortWithMessage(c *gin.Context, status int, message string) {
	if message == "" {
		message = errorMessages[status]
		if message == "" {
			message = strings.ToLower(http.StatusText(status))
		}
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Success: false,
		Error:   status,
		Message: message,
	})
}

// storeErrorStatus maps a service error onto a status code. Errors outside
// the known taxonomy fall back to fallback.
func storeErrorStatus(err error, fallback int) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrUnprocessable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return fallback
	}
}

// bindJSON decodes the request body into obj. An absent or malformed body is
// an internal error; a well-formed body that fails validation is
// unprocessable. It reports whether the handler may continue.
func bindJSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var validationErrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &validationErrs):
		AbortWithMessage(c, http.StatusUnprocessableEntity, describeValidation(validationErrs))
	case errors.As(err, &typeErr):
		AbortWithMessage(c, http.StatusUnprocessableEntity,
			fmt.Sprintf("field %s must be %s", typeErr.Field, typeErr.Type))
	case errors.Is(err, io.EOF):
		log.Printf("Empty request body on %s %s", c.Request.Method, c.FullPath())
		AbortWithStatus(c, http.StatusInternalServerError)
	default:
		log.Printf("Malformed request body on %s %s: %v", c.Request.Method, c.FullPath(), err)
		AbortWithStatus(c, http.StatusInternalServerError)
	}
	return false
}

func describeValidation(errs validator.ValidationErrors) string {
	fields := make([]string, 0, len(errs))
	for _, fe := range errs {
		// Namespace starts with the Go type name of the request.
		name := fe.Namespace()
		if i := strings.Index(name, "."); i >= 0 {
			name = name[i+1:]
		}
		fields = append(fields, fmt.Sprintf("%s is %s", name, fe.Tag()))
	}
	return strings.Join(fields, "; ")
}

// UseJSONFieldNames makes validation messages name fields by their JSON key.
func UseJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}
