package store

import "github.com/google/uuid"

// uuidArray converts ids to their string form so the pgx driver encodes
// them as a uuid[] parameter.
func uuidArray(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
