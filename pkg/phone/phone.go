package phone

import (
	"errors"
	"strings"

	"github.com/ttacon/libphonenumber"
)

// DefaultRegion é a região usada para números sem código de país
const DefaultRegion = "ID"

var ErrInvalidPhone = errors.New("número de telefone inválido")

// Normalize valida o número e o devolve no formato E.164 (ex: +6281234567890).
// String vazia é devolvida sem erro: o telefone é opcional.
func Normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}

	p, err := libphonenumber.Parse(raw, DefaultRegion)
	if err != nil {
		return "", ErrInvalidPhone
	}

	if !libphonenumber.IsValidNumber(p) {
		return "", ErrInvalidPhone
	}

	return libphonenumber.Format(p, libphonenumber.E164), nil
}
