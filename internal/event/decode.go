package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNilPayload is returned when an event carries no payload
	ErrNilPayload = errors.New(ErrMsgNilPayload)
	// ErrUnsupportedVersion is returned for events from an incompatible schema major version
	ErrUnsupportedVersion = errors.New(ErrMsgUnsupportedVersion)
)

// DecodePayload returns the payload as T. In-process publishers hand over the struct
// itself or a pointer to it; anything else, such as a map decoded from JSON, goes
// through a JSON round-trip.
func DecodePayload[T any](input interface{}) (T, error) {
	var result T
	switch v := input.(type) {
	case nil:
		return result, ErrNilPayload
	case T:
		return v, nil
	case *T:
		if v == nil {
			return result, ErrNilPayload
		}
		return *v, nil
	}

	data, err := json.Marshal(input)
	if err != nil {
		return result, fmt.Errorf("%s: %w", ErrContextDecodePayload, err)
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("%s: %w", ErrContextDecodePayload, err)
	}
	return result, nil
}

// Decode checks the event's schema version and decodes its payload. Events without a
// version are accepted; otherwise the major version must match EventSchemaVersion.
func Decode[T any](evt Event) (T, error) {
	if evt.Version != "" && majorVersion(evt.Version) != majorVersion(EventSchemaVersion) {
		var zero T
		return zero, fmt.Errorf("%w: %s %s", ErrUnsupportedVersion, evt.Type, evt.Version)
	}
	return DecodePayload[T](evt.Payload)
}

func majorVersion(v string) string {
	major, _, _ := strings.Cut(v, ".")
	return major
}
