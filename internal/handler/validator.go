package handler

import "github.com/go-playground/validator/v10"

// Validator adapts go-playground/validator to Echo's Validator interface.
// Handlers call c.Validate(&req) after binding; failures surface through
// writeError as a 400 with a field map.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{v: validator.New()}
}

func (val *Validator) Validate(i any) error {
	return val.v.Struct(i)
}
