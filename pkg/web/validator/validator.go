// Package validator wires custom validation rules into gin's binding
// engine. Init must run once before routes are registered.
package validator

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/halls510/project-list-pokemons/pkg/checksum"
)

// Init registers tag-name mapping and the custom rules.
func Init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// Error messages should reference json field names, not Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
		return checksum.ValidCPF(fl.Field().String())
	})
}
