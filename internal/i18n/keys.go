// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserNotFound       = "auth.user_not_found"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// Platform
	KeyPlatformInitialized  = "platform.initialized"
	KeyPlatformNotFound     = "platform.not_found"
	KeyPlatformExists       = "platform.exists"
	KeyPlatformAccessDenied = "platform.access_denied"
	KeyPlatformWithdrawn    = "platform.withdrawn"

	// Papers
	KeyPaperCreated  = "paper.created"
	KeyPaperNotFound = "paper.not_found"

	// Passes
	KeyPassPurchased = "pass.purchased"
	KeyPassNotFound  = "pass.not_found"
	KeyPassExists    = "pass.exists"

	// Credentials
	KeyCredentialIssued   = "credential.issued"
	KeyCredentialNotFound = "credential.not_found"
	KeyCredentialExists   = "credential.exists"

	// Payments
	KeyPaymentSuccess       = "payment.success"
	KeyPaymentFailed        = "payment.failed"
	KeyPaymentInvalidAmount = "payment.invalid_amount"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"
	KeyValidationTooLong  = "validation.too_long"

	// File Upload
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
	KeyFileInvalidType   = "file.invalid_type"
	KeyFileTooLarge      = "file.too_large"
)
