package pix

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/Niiaks/pixcode/pkg/constants"
)

var validate = validator.New()

var plainDecimal = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// keyRules holds the validator tag each key type must satisfy after
// normalization, and the message shown when it does not.
var keyRules = map[KeyType]struct {
	tag     string
	message string
}{
	KeyTypeCPF:    {"number,len=11", "cpf key must have exactly 11 digits"},
	KeyTypeCNPJ:   {"number,len=14", "cnpj key must have exactly 14 digits"},
	KeyTypeEmail:  {"printascii,email", "email key must be a valid ASCII address of at most 77 bytes"},
	KeyTypePhone:  {"e164", "phone key must be + followed by country code and number"},
	KeyTypeRandom: {"uuid", "random key must be a canonical UUID"},
}

// NormalizeKey strips formatting from key and checks it against the rules
// for keyType.
func NormalizeKey(keyType KeyType, key string) (string, error) {
	rule, ok := keyRules[keyType]
	if !ok {
		return "", &ValidationError{Field: FieldKeyType, Message: "unsupported key type " + strconv.Quote(keyType.String()), Err: ErrInvalidKeyFormat}
	}

	key = strings.TrimSpace(key)
	switch keyType {
	case KeyTypeCPF, KeyTypeCNPJ:
		key = stripChars(key, ".-/ ")
	case KeyTypePhone:
		key = stripChars(key, " -()")
	case KeyTypeEmail, KeyTypeRandom:
		key = strings.ToLower(key)
	}

	invalid := &ValidationError{Field: FieldKey, Message: rule.message, Err: ErrInvalidKeyFormat}
	if key == "" {
		return "", invalid
	}
	if len(key) > constants.MaxKeyLen {
		return "", invalid
	}
	if err := validate.Var(key, rule.tag); err != nil {
		return "", invalid
	}
	if keyType == KeyTypePhone && len(key)-1 > constants.MaxPhoneDigits {
		return "", invalid
	}
	return key, nil
}

// NormalizeAmount returns amount with exactly two fraction digits, or "" when
// amount is blank. Values with more than two significant fraction digits are
// rejected rather than rounded.
func NormalizeAmount(amount string) (string, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return "", nil
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return "", amountError("amount must be a number such as 10.50")
	}
	if !d.IsPositive() {
		return "", amountError("amount must be positive")
	}
	if !plainDecimal.MatchString(amount) {
		return "", amountError("amount must use digits and an optional '.' decimal separator")
	}
	if !d.Equal(d.Truncate(2)) {
		return "", amountError("amount must have at most 2 decimal places")
	}

	out := d.StringFixed(2)
	if len(out) > constants.MaxAmountLen {
		return "", amountError("amount must be at most " + strconv.Itoa(constants.MaxAmountLen) + " characters")
	}
	return out, nil
}

func amountError(msg string) error {
	return &ValidationError{Field: FieldAmount, Message: msg, Err: ErrInvalidAmount}
}

// NormalizeMerchantName transliterates name to printable uppercase ASCII and
// caps it at 25 bytes.
func NormalizeMerchantName(name string) (string, error) {
	out := SanitizeText(name, constants.MaxMerchantNameLen)
	if out == "" {
		return "", &ValidationError{Field: FieldMerchantName, Message: "merchant name is required", Err: ErrInvalidMerchant}
	}
	return out, nil
}

// NormalizeMerchantCity is NormalizeMerchantName with a 15 byte cap.
func NormalizeMerchantCity(city string) (string, error) {
	out := SanitizeText(city, constants.MaxMerchantCityLen)
	if out == "" {
		return "", &ValidationError{Field: FieldMerchantCity, Message: "merchant city is required", Err: ErrInvalidMerchant}
	}
	return out, nil
}

// NormalizeReferenceLabel returns the reserved "***" label for a blank input.
func NormalizeReferenceLabel(label string) (string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return constants.ReferenceLabelNone, nil
	}
	if err := validate.Var(label, "alphanum,max=25"); err != nil {
		return "", &ValidationError{
			Field:   FieldReferenceLabel,
			Message: "reference label must be 1 to 25 letters or digits",
			Err:     ErrInvalidReferenceLabel,
		}
	}
	return label, nil
}

// SanitizeText strips diacritics, drops anything outside printable ASCII,
// collapses whitespace, uppercases and truncates to max bytes.
func SanitizeText(s string, max int) string {
	// Chained transformers carry state, so build one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if stripped, _, err := transform.String(t, s); err == nil {
		s = stripped
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\t' || c == '\n' || c == '\r':
			b.WriteByte(' ')
		case c >= 0x20 && c <= 0x7e:
			b.WriteByte(c)
		}
	}

	out := strings.ToUpper(strings.Join(strings.Fields(b.String()), " "))
	if len(out) > max {
		out = strings.TrimRight(out[:max], " ")
	}
	return out
}

func stripChars(s, chars string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(chars, r) {
			return -1
		}
		return r
	}, s)
}
