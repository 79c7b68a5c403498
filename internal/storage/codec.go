package storage

import (
	"strconv"
	"strings"
)

// The outfits table keeps item ids as a comma-separated string, matching the
// original closet schema. Order is significant and preserved.

func encodeItemIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

// decodeItemIDs tolerates empty and malformed segments by skipping them, so a
// hand-edited or legacy row degrades to fewer items rather than an error.
func decodeItemIDs(encoded string) []int64 {
	if encoded == "" {
		return nil
	}
	var ids []int64
	for _, part := range strings.Split(encoded, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
