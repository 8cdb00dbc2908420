// internal/services/errors.go
package services

import "net/http"

// DomainError is a typed, non-retryable rule violation. Every failure of the
// five core operations is one of these; transient transport/database failures
// are wrapped separately and surface as internal errors.
type DomainError struct {
	Code    string
	Status  int
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func domainErr(code string, status int, message string) *DomainError {
	return &DomainError{Code: code, Status: status, Message: message}
}

var (
	// Input validation
	ErrInvalidNameLength  = domainErr("INVALID_NAME_LENGTH", http.StatusBadRequest, "invalid name length")
	ErrInvalidListingFee  = domainErr("INVALID_LISTING_FEE", http.StatusBadRequest, "invalid listing fee")
	ErrEmptyTitle         = domainErr("EMPTY_TITLE", http.StatusBadRequest, "title cannot be empty")
	ErrTitleTooLong       = domainErr("TITLE_TOO_LONG", http.StatusBadRequest, "title is too long")
	ErrEmptyDescription   = domainErr("EMPTY_DESCRIPTION", http.StatusBadRequest, "description cannot be empty")
	ErrDescriptionTooLong = domainErr("DESCRIPTION_TOO_LONG", http.StatusBadRequest, "description is too long")
	ErrEmptyURI           = domainErr("EMPTY_URI", http.StatusBadRequest, "uri cannot be empty")
	ErrURITooLong         = domainErr("URI_TOO_LONG", http.StatusBadRequest, "uri is too long")
	ErrInvalidPrice       = domainErr("INVALID_PRICE", http.StatusBadRequest, "price is inconsistent with the open access flag")

	// Authorization
	ErrInvalidResearcher         = domainErr("INVALID_RESEARCHER", http.StatusForbidden, "researcher does not match the paper entry")
	ErrInvalidOwnerForCredential = domainErr("INVALID_OWNER_FOR_CREDENTIAL", http.StatusForbidden, "caller does not own the access pass")
	ErrNotPlatformOperator       = domainErr("NOT_PLATFORM_OPERATOR", http.StatusForbidden, "caller is not the platform operator")

	// Insufficient funds
	ErrInsufficientFunds              = domainErr("INSUFFICIENT_FUNDS", http.StatusBadRequest, "insufficient balance")
	ErrInsufficientBalanceForListing  = domainErr("INSUFFICIENT_BALANCE_FOR_LISTING", http.StatusBadRequest, "insufficient balance for listing")
	ErrInsufficientBalanceForWithdraw = domainErr("INSUFFICIENT_BALANCE_FOR_WITHDRAW", http.StatusBadRequest, "insufficient treasury balance for withdrawal")
	ErrWithdrawalBelowMinimum         = domainErr("WITHDRAWAL_BELOW_MINIMUM", http.StatusBadRequest, "withdrawal below minimum threshold")

	// Duplicates / idempotency
	ErrPlatformExists          = domainErr("PLATFORM_EXISTS", http.StatusConflict, "platform already initialized for this operator")
	ErrPassExists              = domainErr("PASS_EXISTS", http.StatusConflict, "access pass already purchased for this paper")
	ErrCredentialAlreadyIssued = domainErr("CREDENTIAL_ALREADY_ISSUED", http.StatusConflict, "credential already issued for this pass")

	// Arithmetic
	ErrArithmeticOverflow = domainErr("ARITHMETIC_OVERFLOW", http.StatusBadRequest, "fee computation overflow")

	// Missing resources
	ErrPlatformNotFound   = domainErr("PLATFORM_NOT_FOUND", http.StatusNotFound, "platform not found")
	ErrPaperNotFound      = domainErr("PAPER_NOT_FOUND", http.StatusNotFound, "paper not found")
	ErrPassNotFound       = domainErr("PASS_NOT_FOUND", http.StatusNotFound, "access pass not found")
	ErrCredentialNotFound = domainErr("CREDENTIAL_NOT_FOUND", http.StatusNotFound, "credential not found")
	ErrAccountNotFound    = domainErr("ACCOUNT_NOT_FOUND", http.StatusNotFound, "account not found")
	ErrUserNotFound       = domainErr("USER_NOT_FOUND", http.StatusNotFound, "user not found")
)
