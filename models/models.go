// Package models maps raw TruckersMP API JSON onto typed values. The
// decoders are pure data transformation: any payload that does not match
// the expected shape fails with an apierrors.FormatError.
package models

import (
	"encoding/json"

	"github.com/Keksclan/goTruckersMP/apierrors"
)

// envelope is the wrapper most endpoints use around their payload.
type envelope struct {
	Error    bool            `json:"error"`
	Response json.RawMessage `json:"response"`
}

// unwrap extracts the response field from an enveloped payload.
func unwrap(raw json.RawMessage, what string) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &apierrors.FormatError{What: what, Err: err}
	}
	if len(env.Response) == 0 || string(env.Response) == "null" {
		return nil, &apierrors.FormatError{What: what}
	}
	return env.Response, nil
}

// decode unmarshals data into v, wrapping any failure as a FormatError.
func decode(data json.RawMessage, v any, what string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return &apierrors.FormatError{What: what, Err: err}
	}
	return nil
}

// missingField reports a required field that was absent from the payload.
func missingField(what, field string) error {
	return &apierrors.FormatError{What: what, Err: errMissing(field)}
}

type errMissing string

func (e errMissing) Error() string { return "missing required field " + string(e) }
