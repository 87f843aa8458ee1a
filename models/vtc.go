package models

import "encoding/json"

// VTC is a virtual trucking company.
type VTC struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	OwnerID       int64      `json:"owner_id"`
	OwnerUsername string     `json:"owner_username"`
	Slogan        string     `json:"slogan"`
	Tag           string     `json:"tag"`
	Logo          string     `json:"logo"`
	Cover         string     `json:"cover"`
	Information   string     `json:"information"`
	Rules         string     `json:"rules"`
	Requirements  string     `json:"requirements"`
	Website       string     `json:"website"`
	MembersCount  int        `json:"members_count"`
	Recruitment   string     `json:"recruitment"`
	Language      string     `json:"language"`
	Verified      bool       `json:"verified"`
	Validated     bool       `json:"validated"`
	Created       string     `json:"created"`
	Socials       VTCSocials `json:"socials"`
	Games         VTCGames   `json:"games"`
}

// VTCSocials holds a company's social media links.
type VTCSocials struct {
	Twitter  string `json:"twitter"`
	Facebook string `json:"facebook"`
	Twitch   string `json:"twitch"`
	Discord  string `json:"discord"`
	YouTube  string `json:"youtube"`
}

// VTCGames flags which games a company plays.
type VTCGames struct {
	ATS bool `json:"ats"`
	ETS bool `json:"ets"`
}

// VTCs groups the company listings returned by /vtc.
type VTCs struct {
	Recent        []VTC `json:"recent"`
	Featured      []VTC `json:"featured"`
	FeaturedCover []VTC `json:"featured_cover"`
}

// NewsPost is a company news article. Content is only populated when a
// post is looked up by ID.
type NewsPost struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	ContentSummary string `json:"content_summary"`
	Content        string `json:"content"`
	AuthorID       int64  `json:"author_id"`
	Author         string `json:"author"`
	Pinned         bool   `json:"pinned"`
	UpdatedAt      string `json:"updated_at"`
	PublishedAt    string `json:"published_at"`
}

// Role is a company role.
type Role struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Order     int    `json:"order"`
	Owner     bool   `json:"owner"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Member is a company member.
type Member struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	SteamID  int64  `json:"steam_id"`
	RoleID   int64  `json:"role_id"`
	Role     string `json:"role"`
	JoinDate string `json:"joinDate"`
}

// DecodeVTCs decodes the /vtc listing.
func DecodeVTCs(raw json.RawMessage) (*VTCs, error) {
	resp, err := unwrap(raw, "vtcs")
	if err != nil {
		return nil, err
	}
	var v VTCs
	if err := decode(resp, &v, "vtcs"); err != nil {
		return nil, err
	}
	return &v, nil
}

// DecodeVTC decodes a single company lookup.
func DecodeVTC(raw json.RawMessage) (*VTC, error) {
	resp, err := unwrap(raw, "vtc")
	if err != nil {
		return nil, err
	}
	var v VTC
	if err := decode(resp, &v, "vtc"); err != nil {
		return nil, err
	}
	if v.ID == 0 {
		return nil, missingField("vtc", "id")
	}
	return &v, nil
}

// DecodeNewsPosts decodes a company's news listing.
func DecodeNewsPosts(raw json.RawMessage) ([]NewsPost, error) {
	resp, err := unwrap(raw, "vtc news")
	if err != nil {
		return nil, err
	}
	var body struct {
		News []NewsPost `json:"news"`
	}
	if err := decode(resp, &body, "vtc news"); err != nil {
		return nil, err
	}
	return body.News, nil
}

// DecodeNewsPost decodes a single news post lookup.
func DecodeNewsPost(raw json.RawMessage) (*NewsPost, error) {
	resp, err := unwrap(raw, "vtc news post")
	if err != nil {
		return nil, err
	}
	var p NewsPost
	if err := decode(resp, &p, "vtc news post"); err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, missingField("vtc news post", "id")
	}
	return &p, nil
}

// DecodeRoles decodes a company's role listing.
func DecodeRoles(raw json.RawMessage) ([]Role, error) {
	resp, err := unwrap(raw, "vtc roles")
	if err != nil {
		return nil, err
	}
	var body struct {
		Roles []Role `json:"roles"`
	}
	if err := decode(resp, &body, "vtc roles"); err != nil {
		return nil, err
	}
	return body.Roles, nil
}

// DecodeMembers decodes a company's member listing.
func DecodeMembers(raw json.RawMessage) ([]Member, error) {
	resp, err := unwrap(raw, "vtc members")
	if err != nil {
		return nil, err
	}
	var body struct {
		Members []Member `json:"members"`
	}
	if err := decode(resp, &body, "vtc members"); err != nil {
		return nil, err
	}
	return body.Members, nil
}
