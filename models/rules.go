package models

import "encoding/json"

// Rules is the current in-game rules document, delivered without the
// usual response envelope.
type Rules struct {
	Rules    string `json:"rules"`
	Revision int    `json:"revision"`
}

// DecodeRules decodes the /rules payload.
func DecodeRules(raw json.RawMessage) (*Rules, error) {
	var r Rules
	if err := decode(raw, &r, "rules"); err != nil {
		return nil, err
	}
	if r.Revision == 0 {
		return nil, missingField("rules", "revision")
	}
	return &r, nil
}
