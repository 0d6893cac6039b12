package onboarding

import domain "github.com/mohammadpnp/candidate-onboarding/internal/domain/onboarding"

// SpreadsheetCodec moves uploads between raw bytes, the stored payload and decoded rows.
// Rows and Payload report unreadable input as domain.ErrDecode.
type SpreadsheetCodec interface {
	Encode(data []byte) string
	Payload(file domain.File) ([]byte, error)
	Rows(file domain.File) ([]domain.RawRow, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
}
