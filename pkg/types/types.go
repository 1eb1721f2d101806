package types

// GenerateBRCodeRequest is the body of POST /api/v1/brcodes.
type GenerateBRCodeRequest struct {
	Key            string `json:"key" validate:"required,max=100"`
	KeyType        string `json:"key_type" validate:"required,max=20"`
	MerchantName   string `json:"merchant_name" validate:"required,max=100"`
	MerchantCity   string `json:"merchant_city" validate:"required,max=60"`
	Amount         string `json:"amount,omitempty" validate:"omitempty,max=20"`
	ReferenceLabel string `json:"reference_label,omitempty" validate:"omitempty,max=25"`
	IncludeImage   bool   `json:"include_image,omitempty"`
}

// PayeeBRCodeRequest is the body of POST /api/v1/payees/{payeeID}/brcodes.
type PayeeBRCodeRequest struct {
	Amount         string `json:"amount,omitempty" validate:"omitempty,max=20"`
	ReferenceLabel string `json:"reference_label,omitempty" validate:"omitempty,max=25"`
	IncludeImage   bool   `json:"include_image,omitempty"`
}

type BRCodeResponse struct {
	Payload      string `json:"payload"`
	Image        string `json:"image,omitempty"`
	KeyType      string `json:"key_type"`
	MerchantName string `json:"merchant_name"`
	MerchantCity string `json:"merchant_city"`
	Amount       string `json:"amount,omitempty"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}
