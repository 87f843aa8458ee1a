package models

import "encoding/json"

// Server is one TruckersMP game server.
type Server struct {
	ID                   int    `json:"id"`
	Game                 string `json:"game"`
	IP                   string `json:"ip"`
	Port                 int    `json:"port"`
	Name                 string `json:"name"`
	ShortName            string `json:"shortname"`
	IDPrefix             string `json:"idprefix"`
	Online               bool   `json:"online"`
	Players              int    `json:"players"`
	Queue                int    `json:"queue"`
	MaxPlayers           int    `json:"maxplayers"`
	MapID                int    `json:"mapid"`
	DisplayOrder         int    `json:"displayorder"`
	SpeedLimiter         int    `json:"speedlimiter"`
	Collisions           bool   `json:"collisions"`
	CarsForPlayers       bool   `json:"carsforplayers"`
	PoliceCarsForPlayers bool   `json:"policecarsforplayers"`
	AFKEnabled           bool   `json:"afkenabled"`
	Event                bool   `json:"event"`
	SpecialEvent         bool   `json:"specialEvent"`
	ProMods              bool   `json:"promods"`
	SyncDelay            int    `json:"syncdelay"`
}

// DecodeServers decodes the /servers listing.
func DecodeServers(raw json.RawMessage) ([]Server, error) {
	resp, err := unwrap(raw, "servers")
	if err != nil {
		return nil, err
	}
	var servers []Server
	if err := decode(resp, &servers, "servers"); err != nil {
		return nil, err
	}
	return servers, nil
}

// DecodeGameTime decodes the /game_time payload, which carries the
// in-game time directly rather than inside the usual envelope.
func DecodeGameTime(raw json.RawMessage) (int, error) {
	var body struct {
		GameTime *int `json:"game_time"`
	}
	if err := decode(raw, &body, "game time"); err != nil {
		return 0, err
	}
	if body.GameTime == nil {
		return 0, missingField("game time", "game_time")
	}
	return *body.GameTime, nil
}
