package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/linklytics/linklytics/internal/domain"
	"github.com/linklytics/linklytics/pkg/response"
)

var validate *validator.Validate

var reservedKeywords = map[string]bool{
	"api":       true,
	"auth":      true,
	"shorten":   true,
	"analytics": true,
	"overall":   true,
	"topic":     true,
	"healthz":   true,
	"readyz":    true,
}

func init() {
	validate = validator.New()

	validate.RegisterValidation("alias", validateAlias)
	validate.RegisterValidation("topic", validateTopic)
}

func Validate(data interface{}) []response.ValidationError {
	var validationErrors []response.ValidationError

	err := validate.Struct(data)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, response.ValidationError{
				Field:   err.Field(),
				Message: getErrorMessage(err),
			})
		}
	}

	return validationErrors
}

func validateAlias(fl validator.FieldLevel) bool {
	alias := fl.Field().String()

	if IsReservedKeyword(alias) {
		return false
	}

	matched, _ := regexp.MatchString(`^[a-zA-Z0-9_-]+$`, alias)
	return matched
}

func validateTopic(fl validator.FieldLevel) bool {
	return domain.Topic(fl.Field().String()).IsValid()
}

func IsReservedKeyword(alias string) bool {
	return reservedKeywords[strings.ToLower(alias)]
}

func getErrorMessage(err validator.FieldError) string {
	field := err.Field()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, err.Param())
	case "alias":
		return fmt.Sprintf("%s may only contain letters, digits, '-' and '_'", field)
	case "topic":
		return fmt.Sprintf("%s must be one of acquisition, activation, retention, promotion, referral", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
