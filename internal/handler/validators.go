package handler

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Organization codes double as CSV lookup keys, so they stay short and
// unambiguous: uppercase letters, digits, hyphens and underscores.
var orgCodePattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9_-]{0,31}$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("orgcode", func(fl validator.FieldLevel) bool {
			return orgCodePattern.MatchString(fl.Field().String())
		})
	}
}
