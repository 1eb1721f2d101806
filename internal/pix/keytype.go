package pix

import (
	"strconv"
	"strings"
)

// KeyType identifies the kind of Pix key a payee registered.
type KeyType int

const (
	KeyTypeUnknown KeyType = iota
	KeyTypeCPF
	KeyTypeCNPJ
	KeyTypeEmail
	KeyTypePhone
	KeyTypeRandom
)

var keyTypeNames = map[KeyType]string{
	KeyTypeCPF:    "cpf",
	KeyTypeCNPJ:   "cnpj",
	KeyTypeEmail:  "email",
	KeyTypePhone:  "phone",
	KeyTypeRandom: "random",
}

func (k KeyType) String() string {
	if name, ok := keyTypeNames[k]; ok {
		return name
	}
	return "unknown"
}

// keyTypeAliases maps alternative spellings, lowercased, onto key types.
var keyTypeAliases = map[string]KeyType{
	"taxid":         KeyTypeCPF,
	"businesstaxid": KeyTypeCNPJ,
	"phonenumber":   KeyTypePhone,
	"randomkey":     KeyTypeRandom,
	"evp":           KeyTypeRandom,
}

// ParseKeyType accepts the names returned by String and a few aliases,
// case-insensitively.
func ParseKeyType(s string) (KeyType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range keyTypeNames {
		if name == s {
			return k, nil
		}
	}
	if k, ok := keyTypeAliases[s]; ok {
		return k, nil
	}
	return KeyTypeUnknown, &ValidationError{
		Field:   FieldKeyType,
		Message: "unsupported key type " + strconv.Quote(s),
		Err:     ErrInvalidKeyFormat,
	}
}

func (k KeyType) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *KeyType) UnmarshalText(b []byte) error {
	parsed, err := ParseKeyType(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
