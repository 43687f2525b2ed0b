package handler

const (
	errInternalServer     = "Internal server error"
	errInvalidCredentials = "Invalid email or password"
	errUserNotFound       = "Invalid link - user not found"
	errTokenNotFound      = "Invalid link - token not found"
	errNotVerified        = "Email not verified. Verification link resent."
	errNoProductData      = "No valid product data extracted"
)
