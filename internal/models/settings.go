package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SiteSetting is a keyed JSON document driving editable site content,
// e.g. the "homepage" key holds hero slides, featured categories and the
// promotion banner.
type SiteSetting struct {
	ID        uuid.UUID
	Key       string
	Value     json.RawMessage
	CreatedAt time.Time
	UpdatedAt *time.Time
}
