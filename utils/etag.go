package utils

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GenerateETag builds a weak validator for one document version.
func GenerateETag(id primitive.ObjectID, updatedAt time.Time) string {
	return ListETag(1, id, updatedAt)
}

// ListETag changes whenever the newest document or the number of documents
// in a listing changes.
func ListETag(count int, latestID primitive.ObjectID, latest time.Time) string {
	sum := sha1.Sum([]byte(fmt.Sprintf("%d:%s:%d", count, latestID.Hex(), latest.UnixNano())))
	return `W/"` + hex.EncodeToString(sum[:8]) + `"`
}

// ETagMatches evaluates an If-None-Match header against etag with the weak
// comparison: "*" matches anything and W/ prefixes are ignored.
func ETagMatches(header, etag string) bool {
	if header == "" || etag == "" {
		return false
	}
	want := strings.TrimPrefix(etag, "W/")
	for _, tag := range strings.Split(header, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "*" || strings.TrimPrefix(tag, "W/") == want {
			return true
		}
	}
	return false
}
