package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// TextTypeUUID identifies a text type code within a domain.
func TextTypeUUID(domain, code string) uuid.UUID {
	return UUID("shop-admin:text_type:" + normalize(domain) + ":" + normalize(code))
}

// ListTypeUUID identifies a list relation type code within a domain.
func ListTypeUUID(domain, code string) uuid.UUID {
	return UUID("shop-admin:list_type:" + normalize(domain) + ":" + normalize(code))
}

// StockTypeUUID identifies a stock location type.
func StockTypeUUID(code string) uuid.UUID {
	return UUID("shop-admin:stock_type:" + normalize(code))
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
