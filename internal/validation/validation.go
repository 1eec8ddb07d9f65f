// Package validation wraps go-playground/validator with the custom rules and
// error formatting shared by configuration and layout files.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// Delimiters accepted in configuration, by name or literal.
var Delimiters = map[string]rune{
	",":         ',',
	";":         ';',
	"|":         '|',
	"\t":        '\t',
	"tab":       '\t',
	"comma":     ',',
	"semicolon": ';',
	"pipe":      '|',
}

var instance = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report YAML names so messages match what users wrote.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("delimiter", func(fl validator.FieldLevel) bool {
		_, ok := Delimiters[strings.ToLower(fl.Field().String())]
		return ok
	})
	_ = v.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		d, err := time.ParseDuration(fl.Field().String())
		return err == nil && d > 0
	})

	return v
})

// Validator returns the shared validator instance.
func Validator() *validator.Validate {
	return instance()
}

// Struct validates s and returns a readable error listing every failed field.
func Struct(s any) error {
	return Describe(Validator().Struct(s))
}

// Describe rewrites validator errors as "field: rule" lines. Other errors pass
// through unchanged.
func Describe(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeField(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func describeField(fe validator.FieldError) string {
	field := trimRoot(fe.Namespace())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s: required", field)
	case "oneof":
		return fmt.Sprintf("%s: must be one of [%s], got %v", field, fe.Param(), fe.Value())
	case "min", "gt", "gte":
		return fmt.Sprintf("%s: must be at least %s, got %v", field, fe.Param(), fe.Value())
	case "max", "lt", "lte":
		return fmt.Sprintf("%s: must be at most %s, got %v", field, fe.Param(), fe.Value())
	case "delimiter":
		return fmt.Sprintf("%s: unsupported delimiter %q (use , ; | or tab)", field, fe.Value())
	case "duration":
		return fmt.Sprintf("%s: invalid duration %q (e.g. 30s, 2m)", field, fe.Value())
	}
	if fe.Param() != "" {
		return fmt.Sprintf("%s: failed %s=%s", field, fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s: failed %s", field, fe.Tag())
}

// trimRoot drops the struct type name that prefixes every namespace.
func trimRoot(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}
