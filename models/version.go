package models

import "encoding/json"

// Version is the TruckersMP mod version payload. It arrives without the
// usual response envelope.
type Version struct {
	Name                 string   `json:"name"`
	Numeric              string   `json:"numeric"`
	Stage                string   `json:"stage"`
	Time                 string   `json:"time"`
	SupportedGameVersion string   `json:"supported_game_version"`
	SupportedATSVersion  string   `json:"supported_ats_game_version"`
	ETS2MPChecksum       Checksum `json:"ets2mp_checksum"`
	ATSMPChecksum        Checksum `json:"atsmp_checksum"`
}

// Checksum carries the dll and adb hashes of a mod build.
type Checksum struct {
	DLL string `json:"dll"`
	ADB string `json:"adb"`
}

// DecodeVersion decodes the /version payload.
func DecodeVersion(raw json.RawMessage) (*Version, error) {
	var v Version
	if err := decode(raw, &v, "version"); err != nil {
		return nil, err
	}
	if v.Name == "" {
		return nil, missingField("version", "name")
	}
	return &v, nil
}
