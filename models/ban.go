package models

import "encoding/json"

// Ban is one entry in a player's ban history.
type Ban struct {
	Expiration string `json:"expiration"`
	TimeAdded  string `json:"timeAdded"`
	Active     bool   `json:"active"`
	Reason     string `json:"reason"`
	AdminName  string `json:"adminName"`
	AdminID    int64  `json:"adminID"`
}

// DecodeBans decodes a /bans lookup.
func DecodeBans(raw json.RawMessage) ([]Ban, error) {
	resp, err := unwrap(raw, "bans")
	if err != nil {
		return nil, err
	}
	var bans []Ban
	if err := decode(resp, &bans, "bans"); err != nil {
		return nil, err
	}
	return bans, nil
}
