// Package validator provides validation infrastructure for the portal.
// This is part of the platform layer and contains no business logic.
package validator

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator for structured validation.
// Using a struct allows for dependency injection and easier testing.
type Validator struct {
	v *validator.Validate
}

// New creates a new Validator instance.
// The instance reads the same `binding` tags Gin uses, so DTOs carry a
// single set of rules enforced both at bind time and inside services.
// Custom rules are mirrored onto Gin's binding engine: the engine panics
// on tags it does not know, so ShouldBind* needs them registered too.
func New() *Validator {
	v := validator.New()
	v.SetTagName("binding")

	// required accepts whitespace-only strings; the offer contract does not.
	_ = v.RegisterValidation("notblank", notBlank)
	if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = engine.RegisterValidation("notblank", notBlank)
	}

	return &Validator{v: v}
}

// Struct validates a struct based on validation tags.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

// Var validates a single variable against a tag.
func (val *Validator) Var(field interface{}, tag string) error {
	return val.v.Var(field, tag)
}

// RegisterValidation registers a custom validation function.
func (val *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return val.v.RegisterValidation(tag, fn)
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return true
	}
	return strings.TrimSpace(field.String()) != ""
}
