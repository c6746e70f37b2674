package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// v is the package-level singleton validator.
var v = validator.New(validator.WithRequiredStructEnabled())

// Struct validates the given struct using its validate tags and flattens
// any field failures into a single readable error.
func Struct(s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		tag := fe.Tag()
		if fe.Param() != "" {
			tag += "=" + fe.Param()
		}
		msgs = append(msgs, fmt.Sprintf("field '%s' failed '%s'", fe.Field(), tag))
	}
	return errors.New(strings.Join(msgs, "; "))
}
