package httputil

import (
	"encoding/json"
	"strconv"

	apperrors "github.com/allisson/casting/internal/errors"
)

// ErrInvalidID is returned for path ids that are not positive integers. No
// record can have such an id, so it is reported as not found.
var ErrInvalidID = apperrors.Wrap(apperrors.ErrNotFound, "invalid id")

// ParseID parses a positive integer record id.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// Text is a request field stored as text. It accepts a JSON string or a JSON
// number; numbers keep their literal form ("45", "1.5e3").
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*t = Text(n.String())
	return nil
}

// Value returns the text, or "" for a nil field.
func (t *Text) Value() string {
	if t == nil {
		return ""
	}
	return string(*t)
}

// Ptr returns the text as a *string, keeping nil for an absent field.
func (t *Text) Ptr() *string {
	if t == nil {
		return nil
	}
	s := string(*t)
	return &s
}

// DeleteResponse is the body of a successful delete.
type DeleteResponse struct {
	Success bool  `json:"success"`
	Deleted int64 `json:"deleted"`
}
