package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/alimikegami/storefront-service/pkg/response"
	"github.com/go-playground/validator/v10"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Validator adapts go-playground/validator to echo.Validator.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report json names so clients see the field they sent
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})

	v.RegisterValidation("image_ref", func(fl validator.FieldLevel) bool {
		return IsImageRef(fl.Field().String())
	})

	return &Validator{validate: v}
}

func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// IsImageRef accepts an http(s) URL, an inline data:image URI or a site-relative path.
func IsImageRef(s string) bool {
	switch {
	case s == "":
		return true
	case strings.HasPrefix(s, "data:image/"):
		return true
	case strings.HasPrefix(s, "http://"), strings.HasPrefix(s, "https://"):
		return len(s) > len("https://")
	case strings.HasPrefix(s, "/"):
		return true
	}
	return false
}

// Errors flattens a validation failure into the response field list. It returns nil when err
// did not come from the validator.
func Errors(err error) []response.ValidationError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make([]response.ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, response.ValidationError{
			Field: fe.Field(),
			Tag:   fe.Tag(),
		})
	}
	return out
}
