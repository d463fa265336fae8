package handlers

import (
	"sync"

	"github.com/SscSPs/pocket_ledger/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// RegisterValidators adds the custom binding tags used by the dto package to gin's validator.
func RegisterValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("month", func(fl validator.FieldLevel) bool {
			return domain.ValidMonth(fl.Field().String())
		})
	})
}
