package models

import "encoding/json"

// Event is a community-organised convoy or meetup.
type Event struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	Slug         string           `json:"slug"`
	Game         string           `json:"game"`
	Language     string           `json:"language"`
	StartAt      string           `json:"start_at"`
	Banner       string           `json:"banner"`
	Map          string           `json:"map"`
	Description  string           `json:"description"`
	Rule         string           `json:"rule"`
	VoiceLink    string           `json:"voice_link"`
	ExternalLink string           `json:"external_link"`
	Featured     string           `json:"featured"`
	DLCs         json.RawMessage  `json:"dlcs"`
	URL          string           `json:"url"`
	CreatedAt    string           `json:"created_at"`
	UpdatedAt    string           `json:"updated_at"`
	EventType    EventType        `json:"event_type"`
	Server       EventServer      `json:"server"`
	Departure    EventLocation    `json:"departure"`
	Arrive       EventLocation    `json:"arrive"`
	VTC          EventVTC         `json:"vtc"`
	User         EventUser        `json:"user"`
	Attendances  EventAttendances `json:"attendances"`
}

// EventType is the category of an event (convoy, truckshow, ...).
type EventType struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// EventServer names the server an event runs on.
type EventServer struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// EventLocation is a departure or arrival point.
type EventLocation struct {
	Location string `json:"location"`
	City     string `json:"city"`
}

// EventVTC names the organising company, if any.
type EventVTC struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// EventUser names the organising player.
type EventUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// EventAttendances summarises sign-ups. The user lists are only populated
// when looking up a single event by ID.
type EventAttendances struct {
	Confirmed      int           `json:"confirmed"`
	Unsure         int           `json:"unsure"`
	ConfirmedUsers []EventSignup `json:"confirmed_users"`
	UnsureUsers    []EventSignup `json:"unsure_users"`
}

// EventSignup is one player's attendance record.
type EventSignup struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Following bool   `json:"following"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Events groups the event listings returned by /events.
type Events struct {
	Featured []Event `json:"featured"`
	Today    []Event `json:"today"`
	Now      []Event `json:"now"`
	Upcoming []Event `json:"upcoming"`
}

// DecodeEvents decodes the /events listing.
func DecodeEvents(raw json.RawMessage) (*Events, error) {
	resp, err := unwrap(raw, "events")
	if err != nil {
		return nil, err
	}
	var ev Events
	if err := decode(resp, &ev, "events"); err != nil {
		return nil, err
	}
	return &ev, nil
}

// DecodeEvent decodes a single event lookup.
func DecodeEvent(raw json.RawMessage) (*Event, error) {
	resp, err := unwrap(raw, "event")
	if err != nil {
		return nil, err
	}
	var ev Event
	if err := decode(resp, &ev, "event"); err != nil {
		return nil, err
	}
	if ev.ID == 0 {
		return nil, missingField("event", "id")
	}
	return &ev, nil
}

// DecodeEventList decodes an enveloped flat list of events, as returned
// by the VTC events endpoint.
func DecodeEventList(raw json.RawMessage) ([]Event, error) {
	resp, err := unwrap(raw, "events")
	if err != nil {
		return nil, err
	}
	var evs []Event
	if err := decode(resp, &evs, "events"); err != nil {
		return nil, err
	}
	return evs, nil
}
