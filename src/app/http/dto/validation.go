package dto

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidation makes validation errors report JSON field names.
func RegisterValidation() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(jsonTagName)
		}
	})
}

func jsonTagName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// FieldError extracts the first failing field and a readable message from a
// binding error. ok is false for errors that are not validation failures,
// such as malformed JSON.
func FieldError(err error) (field, message string, ok bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "", "", false
	}
	fe := verrs[0]
	field = fe.Field()
	switch fe.Tag() {
	case "required":
		message = "is required"
	case "min", "max", "gt":
		message = "must satisfy " + fe.Tag() + "=" + fe.Param()
	case "datetime":
		message = "must be formatted as " + fe.Param()
	case "url":
		message = "must be a valid URL"
	default:
		message = "failed " + fe.Tag() + " validation"
	}
	return field, message, true
}
