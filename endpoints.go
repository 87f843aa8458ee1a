package gotruckersmp

import "strconv"

// DefaultBaseURL is the production TruckersMP API root.
const DefaultBaseURL = "https://api.truckersmp.com/v2"

func (c *Client) serversURL() string  { return c.baseURL + "/servers" }
func (c *Client) gameTimeURL() string { return c.baseURL + "/game_time" }
func (c *Client) eventsURL() string   { return c.baseURL + "/events" }
func (c *Client) vtcsURL() string     { return c.baseURL + "/vtc" }
func (c *Client) versionURL() string  { return c.baseURL + "/version" }
func (c *Client) rulesURL() string    { return c.baseURL + "/rules" }

func (c *Client) playerURL(id int64) string {
	return c.baseURL + "/player/" + strconv.FormatInt(id, 10)
}

func (c *Client) bansURL(playerID int64) string {
	return c.baseURL + "/bans/" + strconv.FormatInt(playerID, 10)
}

func (c *Client) eventURL(id int64) string {
	return c.baseURL + "/events/" + strconv.FormatInt(id, 10)
}

func (c *Client) vtcURL(id int64) string {
	return c.baseURL + "/vtc/" + strconv.FormatInt(id, 10)
}

func (c *Client) vtcNewsURL(vtcID int64) string {
	return c.vtcURL(vtcID) + "/news"
}

func (c *Client) vtcNewsPostURL(vtcID, postID int64) string {
	return c.vtcNewsURL(vtcID) + "/" + strconv.FormatInt(postID, 10)
}

func (c *Client) vtcRolesURL(vtcID int64) string {
	return c.vtcURL(vtcID) + "/roles"
}

func (c *Client) vtcMembersURL(vtcID int64) string {
	return c.vtcURL(vtcID) + "/members"
}

func (c *Client) vtcEventsURL(vtcID int64) string {
	return c.vtcURL(vtcID) + "/events"
}

func (c *Client) vtcEventURL(vtcID, eventID int64) string {
	return c.vtcEventsURL(vtcID) + "/" + strconv.FormatInt(eventID, 10)
}
