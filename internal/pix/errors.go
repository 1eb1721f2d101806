package pix

import "errors"

var (
	ErrInvalidKeyFormat      = errors.New("invalid key format")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrInvalidMerchant       = errors.New("invalid merchant")
	ErrInvalidReferenceLabel = errors.New("invalid reference label")
	ErrChecksumMismatch      = errors.New("checksum mismatch")
)

// Request fields named by ValidationError.
const (
	FieldKey            = "key"
	FieldKeyType        = "key_type"
	FieldMerchantName   = "merchant_name"
	FieldMerchantCity   = "merchant_city"
	FieldAmount         = "amount"
	FieldReferenceLabel = "reference_label"
)

// ValidationError reports which request field was rejected and why.
// Err is one of the package sentinels so callers can use errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
