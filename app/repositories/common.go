package repositories

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strconv"
)

const (
	// Key prefixes for different entity types
	PostKeyPrefix = "post:"

	// PostSeqKey holds badger's leased post sequence.
	PostSeqKey = "seq:post"

	// postSeqBandwidth is how many identifiers one sequence lease covers.
	postSeqBandwidth = 100
)

// itob encodes a sequence number so that byte order matches numeric order.
func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

// postKey builds the badger key of a post. Keys sort in creation order.
func postKey(id uint64) []byte {
	return append([]byte(PostKeyPrefix), itob(id)...)
}

// parseID converts an opaque post identifier back into a sequence number.
// Anything that was never issued by a sequence is reported as ErrNotFound.
func parseID(id string) (uint64, error) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("post %q: %w", id, ErrNotFound)
	}
	return n, nil
}

func formatID(n uint64) string {
	return strconv.FormatUint(n, 10)
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return nil
}
