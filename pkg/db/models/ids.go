package models

import "github.com/google/uuid"

// ensureID assigns a fresh UUID when the caller did not provide one, so rows
// get identifiers on both Postgres and sqlite.
func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
