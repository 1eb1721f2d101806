package constants

// Top-level field ids of the BR Code payload.
const (
	IDPayloadFormatIndicator  = "00"
	IDPointOfInitiationMethod = "01"
	IDMerchantAccountInfo     = "26"
	IDMerchantCategoryCode    = "52"
	IDTransactionCurrency     = "53"
	IDTransactionAmount       = "54"
	IDCountryCode             = "58"
	IDMerchantName            = "59"
	IDMerchantCity            = "60"
	IDAdditionalDataField     = "62"
	IDCRC                     = "63"
)

// Sub-field ids.
const (
	IDMerchantAccountGUI = "00"
	IDMerchantAccountKey = "01"
	IDReferenceLabel     = "05"
)

// Fixed values. Codes are always static, so point of initiation is "11".
const (
	PayloadFormatIndicator  = "01"
	PointOfInitiationStatic = "11"
	PixGUI                  = "br.gov.bcb.pix"
	MerchantCategoryCode    = "0000"
	CurrencyBRL             = "986"
	CountryCodeBR           = "BR"
	ReferenceLabelNone      = "***"
	CRCLength               = "04"
)

// Byte caps.
const (
	MaxMerchantNameLen   = 25
	MaxMerchantCityLen   = 15
	MaxReferenceLabelLen = 25
	MaxAmountLen         = 13
	MaxKeyLen            = 77
	MaxPhoneDigits       = 13
)
