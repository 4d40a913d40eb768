package util

import (
	"database/sql/driver"
	"fmt"

	"github.com/google/uuid"
)

// matchNamespace scopes the name-based UUIDs derived from match contents.
var matchNamespace = uuid.MustParse("0f5c2d4e-6b1a-4f0e-9a57-3d6f0c8e2b91") // nolint:gochecknoglobals

// UUIDAsBlob is stored as blob(16) but used as a uuid.UUID
type UUIDAsBlob uuid.UUID

func NewUUIDAsBlob() UUIDAsBlob {
	return UUIDAsBlob(uuid.New())
}

// NewUUIDAsBlobFromContent returns a deterministic UUID (v5) for the given
// content, the same content always yields the same ID.
func NewUUIDAsBlobFromContent(content []byte) UUIDAsBlob {
	return UUIDAsBlob(uuid.NewSHA1(matchNamespace, content))
}

func (t UUIDAsBlob) Value() (driver.Value, error) {
	buf := [16]byte(t)
	return driver.Value(buf[:]), nil
}

func (t UUIDAsBlob) UUID() uuid.UUID {
	return uuid.UUID(t)
}

func (t UUIDAsBlob) String() string {
	return t.UUID().String()
}

func (t UUIDAsBlob) IsZero() bool {
	return [16]byte(t) == [16]byte{}
}

func (t *UUIDAsBlob) Scan(src interface{}) error {
	slice, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("expected []byte, got %T", src)
	}

	var buf [16]byte

	copy(buf[:], slice)
	*t = UUIDAsBlob(buf)

	return nil
}
