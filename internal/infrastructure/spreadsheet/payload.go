package spreadsheet

import (
	"encoding/base64"
	"fmt"
	"strings"

	domain "github.com/mohammadpnp/candidate-onboarding/internal/domain/onboarding"
)

// EncodePayload stores raw upload bytes as standard base64.
func EncodePayload(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodePayload accepts plain base64 or a data URL ("data:<type>;base64,<data>").
func DecodePayload(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if strings.HasPrefix(encoded, "data:") {
		_, after, ok := strings.Cut(encoded, ";base64,")
		if !ok {
			return nil, fmt.Errorf("%w: data url is not base64", domain.ErrDecode)
		}
		encoded = after
	}
	if encoded == "" {
		return nil, fmt.Errorf("%w: empty payload", domain.ErrDecode)
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err == nil {
		return data, nil
	}
	if data, rawErr := base64.RawStdEncoding.DecodeString(encoded); rawErr == nil {
		return data, nil
	}
	return nil, fmt.Errorf("%w: %v", domain.ErrDecode, err)
}
