package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type signup struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func TestValidate(t *testing.T) {
	assert.Nil(t, Validate(signup{Name: "Acme", Email: "a@acme.test", Password: "password1"}))

	errs := Validate(signup{Name: "A", Email: "nope", Password: "short"})
	assert.Equal(t, map[string]string{
		"name":     "min=2",
		"email":    "email",
		"password": "min=8",
	}, errs)
}
