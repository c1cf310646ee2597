package controller

import (
	"errors"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	apperrors "github.com/ikkim/flyer-backend/internal/errors"
	"github.com/ikkim/flyer-backend/internal/middleware"
)

// bindJSON decodes the body and answers 400 on failure. Binding tag failures
// are reported per field.
func bindJSON(c *gin.Context, dst interface{}) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	middleware.GetLoggerFromContext(c).Warn("Invalid request body", map[string]interface{}{
		"error": err.Error(),
	})

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		apperrors.RespondWithValidationError(c, validationFields(verrs))
		return false
	}
	apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "요청 형식이 올바르지 않습니다")
	return false
}

// validationFields keys each failure by its JSON field name.
func validationFields(verrs validator.ValidationErrors) map[string]string {
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		msg := "올바르지 않은 값입니다"
		if fe.Tag() == "required" {
			msg = "필수 항목입니다"
		}
		fields[lowerFirst(fe.Field())] = msg
	}
	return fields
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

func respondError(c *gin.Context, err error) {
	apperrors.Respond(c, err)
}
