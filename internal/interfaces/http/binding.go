package http

import (
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Permission codes are resource.action pairs, e.g. leads.read.
var permCodePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*\.[a-z][a-z0-9_]*$`)

var bindingOnce sync.Once

// registerBindingValidations adds domain formats to gin's request validator
// so handlers can declare them in binding tags.
func registerBindingValidations() {
	bindingOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("permcode", func(fl validator.FieldLevel) bool {
			return permCodePattern.MatchString(fl.Field().String())
		})
	})
}
