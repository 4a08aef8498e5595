package blog

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentMeta describes a post body: its byte length and the hex SHA-256
// digest of its raw UTF-8 bytes.
type ContentMeta struct {
	Length int64
	Hash   string
}

// ComputeContentMeta computes the length and digest for a post body. Pure
// and deterministic; the digest doubles as a fallback freshness token when
// the blob store does not report one.
func ComputeContentMeta(content string) ContentMeta {
	sum := sha256.Sum256([]byte(content))
	return ContentMeta{
		Length: int64(len(content)),
		Hash:   hex.EncodeToString(sum[:]),
	}
}
