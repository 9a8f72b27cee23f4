package models

import "errors"

var (
	// credential and account errors
	ErrInvalidCredentials    = errors.New("incorrect credentials, please try again")
	ErrDuplicateEmail        = errors.New("email address already exists")
	ErrNotFound              = errors.New("not found")
	ErrUnauthorized          = errors.New("you are not allowed to perform this action")
	ErrPasswordResetRequired = errors.New("please reset your password")
	ErrSamePassword          = errors.New("previous password can't be the same as the new password")
	ErrNotConfirmed          = errors.New("please confirm your email address")
	ErrSecondFactorRequired  = errors.New("access denied, your OTP hasn't been verified")
	ErrValidation            = errors.New("validation failed")

	// single-use token errors
	ErrInvalidToken = errors.New("token is invalid")
	ErrExpired      = errors.New("expired")

	// second factor errors
	ErrInvalidCode        = errors.New("invalid otp, please check again")
	ErrAlreadyVerified    = errors.New("your otp has already been verified")
	ErrCooldownActive     = errors.New("otp cooldown active")
	ErrGatewayUnavailable = errors.New("otp gateway unavailable")

	ErrMailUnavailable   = errors.New("email delivery failed")
	ErrDuplicateProduct  = errors.New("you already have a product with this title")
	ErrInvalidTransition = errors.New("invalid account state transition")
)
