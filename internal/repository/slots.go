package repository

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
)

// EncodeSlots serializes a slot list for the slot_time column of the
// bookings and cinema_room_bookings tables.  A nil list is stored as [].
func EncodeSlots(slots []string) (string, error) {
	if slots == nil {
		slots = []string{}
	}
	b, err := json.Marshal(slots)
	if err != nil {
		return "", errors.Wrap(err, "encode slots")
	}
	return string(b), nil
}

// DecodeSlots parses stored slot_time text.  Text that is not a JSON array
// of strings yields an empty, non-nil list together with the parse error so
// that readers can skip the row and keep going.
func DecodeSlots(raw string) ([]string, error) {
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return []string{}, errors.Wrapf(err, "decode slots %.32q", raw)
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

// DecodeGameSlot parses the single-value slot_time of a game room booking.
// Plain text is one slot; JSON text (a quoted string or an array) is decoded.
func DecodeGameSlot(raw string) ([]string, error) {
	s := strings.TrimSpace(raw)
	switch {
	case s == "":
		return []string{}, nil
	case s[0] == '[':
		return DecodeSlots(s)
	case s[0] == '"':
		var v string
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			return []string{}, errors.Wrapf(err, "decode slot %.32q", raw)
		}
		return []string{v}, nil
	}
	return []string{s}, nil
}
