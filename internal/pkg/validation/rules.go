// Package validation configures the request validator used by gin bindings.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/tcasystem/internal/app/models"
)

// DepartmentTag validates a department code
const DepartmentTag = "department"

// Register installs the custom rules on v and makes field errors report json
// field names.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonTagName)
	if err := v.RegisterValidation(DepartmentTag, validateDepartment); err != nil {
		return fmt.Errorf("failed to register %s rule: %w", DepartmentTag, err)
	}
	return nil
}

// RegisterGinValidators configures the validator engine behind gin's binding
func RegisterGinValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected gin validator engine %T", binding.Validator.Engine())
	}
	return Register(v)
}

func validateDepartment(fl validator.FieldLevel) bool {
	return models.Department(fl.Field().String()).IsValid()
}

func jsonTagName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}
