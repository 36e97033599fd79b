package auth

import (
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/mikepea/chatter/pkg/chatter/policy"
)

// RegisterValidators installs the custom "strongpassword" binding rule on
// gin's validator engine, backed by the policy's strength predicate. Every
// path that accepts a password uses this tag, so registration and password
// changes are gated identically. Must be called before serving traffic.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding validator engine is not *validator.Validate")
	}
	return v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		return policy.IsStrongPassword(fl.Field().String())
	})
}
