package models

import "encoding/json"

// Player is a TruckersMP user account.
type Player struct {
	ID                int64             `json:"id"`
	Name              string            `json:"name"`
	Avatar            string            `json:"avatar"`
	SmallAvatar       string            `json:"smallAvatar"`
	JoinDate          string            `json:"joinDate"`
	SteamID64         int64             `json:"steamID64"`
	SteamID           string            `json:"steamID"`
	DiscordID         string            `json:"discordSnowflake"`
	DisplayVTCHistory bool              `json:"displayVTCHistory"`
	GroupName         string            `json:"groupName"`
	GroupColor        string            `json:"groupColor"`
	GroupID           int64             `json:"groupID"`
	Banned            bool              `json:"banned"`
	BannedUntil       string            `json:"bannedUntil"`
	BanCount          int               `json:"bansCount"`
	DisplayBans       bool              `json:"displayBans"`
	Patreon           PlayerPatreon     `json:"patreon"`
	Permissions       PlayerPermissions `json:"permissions"`
	VTC               PlayerVTC         `json:"vtc"`
}

// PlayerPatreon describes a player's Patreon contributions.
type PlayerPatreon struct {
	IsPatron       bool   `json:"isPatron"`
	Active         bool   `json:"active"`
	Color          string `json:"color"`
	TierID         int    `json:"tierId"`
	CurrentPledge  int    `json:"currentPledge"`
	LifetimePledge int    `json:"lifetimePledge"`
	NextPledge     int    `json:"nextPledge"`
	Hidden         bool   `json:"hidden"`
}

// PlayerPermissions describes a player's staff flags.
type PlayerPermissions struct {
	IsStaff            bool `json:"isStaff"`
	IsUpperStaff       bool `json:"isManagement"`
	IsGameAdmin        bool `json:"isGameAdmin"`
	ShowDetailedOnMaps bool `json:"showDetailedOnWebMaps"`
}

// PlayerVTC describes a player's virtual trucking company membership.
type PlayerVTC struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Tag      string `json:"tag"`
	InVTC    bool   `json:"inVTC"`
	MemberID int64  `json:"memberID"`
}

// DecodePlayer decodes a /player lookup.
func DecodePlayer(raw json.RawMessage) (*Player, error) {
	resp, err := unwrap(raw, "player")
	if err != nil {
		return nil, err
	}
	var p Player
	if err := decode(resp, &p, "player"); err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, missingField("player", "id")
	}
	return &p, nil
}
