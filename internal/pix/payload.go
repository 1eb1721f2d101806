// Package pix builds static Pix BR Code payloads: the EMV merchant-presented
// QR text that banking apps scan or accept as "copy and paste" input.
//
// Generation is a pure function of the PaymentRequest. Nothing is cached and
// every function is safe for concurrent use.
package pix

import (
	"fmt"

	"github.com/Niiaks/pixcode/pkg/constants"
	"github.com/Niiaks/pixcode/pkg/crc16"
	"github.com/Niiaks/pixcode/pkg/tlv"
)

// PaymentRequest carries the payee identity and an optional amount.
// Amount is decimal text ("10.50"); leave it blank to let the payer choose.
// ReferenceLabel is optional and defaults to "***".
type PaymentRequest struct {
	Key            string
	KeyType        KeyType
	MerchantName   string
	MerchantCity   string
	Amount         string
	ReferenceLabel string
}

// Sanitize returns a copy of r with every field normalized, or the first
// ValidationError found.
func (r PaymentRequest) Sanitize() (PaymentRequest, error) {
	var (
		out PaymentRequest
		err error
	)
	out.KeyType = r.KeyType

	if out.Key, err = NormalizeKey(r.KeyType, r.Key); err != nil {
		return PaymentRequest{}, err
	}
	if out.MerchantName, err = NormalizeMerchantName(r.MerchantName); err != nil {
		return PaymentRequest{}, err
	}
	if out.MerchantCity, err = NormalizeMerchantCity(r.MerchantCity); err != nil {
		return PaymentRequest{}, err
	}
	if out.Amount, err = NormalizeAmount(r.Amount); err != nil {
		return PaymentRequest{}, err
	}
	if out.ReferenceLabel, err = NormalizeReferenceLabel(r.ReferenceLabel); err != nil {
		return PaymentRequest{}, err
	}
	return out, nil
}

// Generate validates r and returns the complete payload, CRC included.
func Generate(r PaymentRequest) (string, error) {
	clean, err := r.Sanitize()
	if err != nil {
		return "", err
	}
	return Assemble(clean), nil
}

// Fields returns the ordered payload fields for an already sanitized request,
// without the CRC field.
func Fields(r PaymentRequest) []tlv.Field {
	fields := []tlv.Field{
		tlv.Simple(constants.IDPayloadFormatIndicator, constants.PayloadFormatIndicator),
		tlv.Simple(constants.IDPointOfInitiationMethod, constants.PointOfInitiationStatic),
		tlv.Group(constants.IDMerchantAccountInfo,
			tlv.Simple(constants.IDMerchantAccountGUI, constants.PixGUI),
			tlv.Simple(constants.IDMerchantAccountKey, r.Key),
		),
		tlv.Simple(constants.IDMerchantCategoryCode, constants.MerchantCategoryCode),
		tlv.Simple(constants.IDTransactionCurrency, constants.CurrencyBRL),
	}
	if r.Amount != "" {
		fields = append(fields, tlv.Simple(constants.IDTransactionAmount, r.Amount))
	}
	return append(fields,
		tlv.Simple(constants.IDCountryCode, constants.CountryCodeBR),
		tlv.Simple(constants.IDMerchantName, r.MerchantName),
		tlv.Simple(constants.IDMerchantCity, r.MerchantCity),
		tlv.Group(constants.IDAdditionalDataField,
			tlv.Simple(constants.IDReferenceLabel, r.ReferenceLabel),
		),
	)
}

// Assemble encodes an already sanitized request and appends the CRC field.
// Unsanitized input can panic on the length ceiling; use Generate instead.
func Assemble(r PaymentRequest) string {
	body := tlv.Encode(Fields(r)...) + constants.IDCRC + constants.CRCLength
	return body + crc16.Hex([]byte(body))
}

// fieldOrder lists the top-level ids a payload may carry, in emission order.
// Optional ids are marked false.
var fieldOrder = []struct {
	id       string
	required bool
}{
	{constants.IDPayloadFormatIndicator, true},
	{constants.IDPointOfInitiationMethod, true},
	{constants.IDMerchantAccountInfo, true},
	{constants.IDMerchantCategoryCode, true},
	{constants.IDTransactionCurrency, true},
	{constants.IDTransactionAmount, false},
	{constants.IDCountryCode, true},
	{constants.IDMerchantName, true},
	{constants.IDMerchantCity, true},
	{constants.IDAdditionalDataField, true},
	{constants.IDCRC, true},
}

// Verify checks that payload is framed correctly, carries the fields Generate
// emits in the same order, and ends with a matching CRC.
func Verify(payload string) error {
	fields, err := tlv.Decode(payload)
	if err != nil {
		return err
	}

	i := 0
	for _, want := range fieldOrder {
		if i < len(fields) && fields[i].ID == want.id {
			i++
			continue
		}
		if want.required {
			return fmt.Errorf("%w: missing or misplaced field %s", tlv.ErrMalformedPayload, want.id)
		}
	}
	if i != len(fields) {
		return fmt.Errorf("%w: unexpected field %s after checksum", tlv.ErrMalformedPayload, fields[i].ID)
	}

	for _, id := range []string{constants.IDMerchantAccountInfo, constants.IDAdditionalDataField} {
		f, _ := tlv.Find(fields, id)
		if _, err := tlv.DecodeGroup(f); err != nil {
			return err
		}
	}

	crc := fields[len(fields)-1].Value
	if len(crc) != 4 {
		return fmt.Errorf("%w: checksum must be 4 characters, got %d", tlv.ErrMalformedPayload, len(crc))
	}
	body := payload[:len(payload)-len(crc)]
	if want := crc16.Hex([]byte(body)); want != crc {
		return fmt.Errorf("%w: payload carries %s, computed %s", ErrChecksumMismatch, crc, want)
	}
	return nil
}
