package forms

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	registerOnce sync.Once
	registerErr  error

	phoneRegex = regexp.MustCompile(`^\(?[0-9]{3}\)?[-. ]?[0-9]{3}[-. ]?[0-9]{4}$`)
)

const (
	ErrFieldRequired     = "This field is required."
	ErrInvalidPhone      = "Invalid phone number, use xxx-xxx-xxxx."
	ErrInvalidState      = "Not a valid state."
	ErrInvalidGenres     = "Choose one or more genres from the list."
	ErrInvalidURL        = "Invalid URL."
	ErrInvalidStartTime  = "Invalid start time, use YYYY-MM-DD HH:MM:SS."
	ErrFieldTooLong      = "Field is too long."
	ErrUnknownValidation = "Invalid value."
)

// Register installs the custom rules on gin's validator. It is safe to call
// more than once.
func Register() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("gin validator engine is not go-playground/validator/v10")
			return
		}
		v.RegisterTagNameFunc(formName)
		for tag, fn := range map[string]validator.Func{
			"phone":    validatePhone,
			"state":    validateState,
			"genres":   validateGenres,
			"showtime": validateShowTime,
		} {
			if err := v.RegisterValidation(tag, fn); err != nil {
				registerErr = err
				return
			}
		}
	})
	return registerErr
}

func formName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
	if name == "" || name == "-" {
		return field.Name
	}
	return name
}

func validatePhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(strings.TrimSpace(fl.Field().String()))
}

func validateState(fl validator.FieldLevel) bool {
	return isState(fl.Field().String())
}

func validateGenres(fl validator.FieldLevel) bool {
	genres, ok := fl.Field().Interface().([]string)
	if !ok || len(genres) == 0 {
		return false
	}
	for _, g := range genres {
		if !isGenre(g) {
			return false
		}
	}
	return true
}

func validateShowTime(fl validator.FieldLevel) bool {
	_, err := ParseStartTime(fl.Field().String())
	return err == nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return ErrFieldRequired
	case "phone":
		return ErrInvalidPhone
	case "state":
		return ErrInvalidState
	case "genres":
		return ErrInvalidGenres
	case "url":
		return ErrInvalidURL
	case "showtime":
		return ErrInvalidStartTime
	case "max":
		return ErrFieldTooLong
	default:
		return ErrUnknownValidation
	}
}

// Messages turns a binding error into one message per form field. Errors
// that are not field validations are reported under "_".
func Messages(err error) map[string]string {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": "The form could not be read: " + err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; !seen {
			out[fe.Field()] = message(fe)
		}
	}
	return out
}
