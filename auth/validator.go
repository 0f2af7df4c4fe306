package auth

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// RegisterRequest is the payload accepted by the broker's register endpoint.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=80"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest is the payload accepted by the broker's login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func ValidateRegister(req RegisterRequest) error {
	return validate.Struct(req)
}

func ValidateLogin(req LoginRequest) error {
	return validate.Struct(req)
}
