package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	// Account codes are plain digit strings so the chart of accounts sorts
	// numerically ("411000", "701000").
	accountCodeRe = regexp.MustCompile(`^[0-9]{3,10}$`)

	// Period codes are a year or a year-month ("2025", "2025-09").
	periodCodeRe = regexp.MustCompile(`^[0-9]{4}(-(0[1-9]|1[0-2]))?$`)
)

// RegisterCustomValidators installs the ledger-specific binding validators on
// gin's validator engine. Must be called once before routes are registered.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterValidation("accountcode", func(fl validator.FieldLevel) bool {
		return accountCodeRe.MatchString(fl.Field().String())
	})
	v.RegisterValidation("periodcode", func(fl validator.FieldLevel) bool {
		return periodCodeRe.MatchString(fl.Field().String())
	})
}
