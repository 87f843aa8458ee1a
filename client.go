// Package gotruckersmp is a client for the TruckersMP REST API. It
// layers a response cache, per-endpoint single-flight, token-bucket rate
// limiting and a configurable failure policy between the typed accessor
// methods and the wire, so integrations can call it freely without
// hammering the upstream.
//
//	client, err := gotruckersmp.New()
//	if err != nil {
//		// ...
//	}
//	servers, err := client.Servers(ctx)
package gotruckersmp

import (
	"context"

	"github.com/Keksclan/goTruckersMP/apierrors"
	"github.com/Keksclan/goTruckersMP/cache"
	"github.com/Keksclan/goTruckersMP/flight"
	"github.com/Keksclan/goTruckersMP/metrics"
	"github.com/Keksclan/goTruckersMP/models"
	"github.com/Keksclan/goTruckersMP/ratelimit"
	"github.com/Keksclan/goTruckersMP/transport"
)

// Client is the TruckersMP API client. Construct with New; the zero
// value is not usable. All methods are safe for concurrent use.
type Client struct {
	baseURL string
	coord   *flight.Coordinator
}

// New creates a Client by applying the supplied functional options on
// top of the defaults. Every call builds its own limiter and cache
// unless instances are injected explicitly, so clients never share
// state by accident.
func New(opts ...Option) (*Client, error) {
	cfg := newConfig()
	for _, o := range opts {
		o(&cfg)
	}

	limiter := cfg.limiter
	if limiter == nil {
		limiter = ratelimit.NewWindowLimiter(cfg.permits, cfg.window)
	}

	store := cfg.store
	if store == nil {
		switch {
		case cfg.ristretto > 0:
			var err error
			store, err = cache.NewRistretto(cfg.ristretto, cfg.cacheTTL)
			if err != nil {
				return nil, err
			}
		case cfg.smartEviction:
			store = cache.NewFIFO(cfg.cacheMaxSize, cfg.cacheTTL, cache.WithSmartEviction(cfg.minimiseSize))
		default:
			store = cache.NewFIFO(cfg.cacheMaxSize, cfg.cacheTTL)
		}
	}

	tr := cfg.transport
	if tr == nil {
		var topts []transport.Option
		if cfg.headers != nil {
			topts = append(topts, transport.WithHeaders(cfg.headers))
		}
		if cfg.tracerProvider != nil {
			topts = append(topts, transport.WithTracerProvider(cfg.tracerProvider))
		}
		tr = transport.NewClient(topts...)
	}

	var m *metrics.Metrics
	if cfg.registerer != nil {
		m = metrics.New(cfg.registerer)
	}

	return &Client{
		baseURL: cfg.baseURL,
		coord: flight.New(flight.Config{
			Cache:                 store,
			Transport:             tr,
			Limiter:               limiter,
			Logger:                cfg.logger,
			Metrics:               m,
			RequestTimeout:        cfg.requestTimeout,
			RetryTime:             cfg.retryTime,
			HandleConnectErrors:   cfg.handleConnect,
			HandleRateLimitErrors: cfg.handleRateLimit,
			LogFreq:               cfg.logFreq,
			MinQueueForLog:        cfg.minQ,
		}),
	}, nil
}

// CacheInfo returns a live snapshot of the response cache counters.
func (c *Client) CacheInfo() cache.Info {
	return c.coord.CacheInfo()
}

// Servers lists the TruckersMP game servers.
func (c *Client) Servers(ctx context.Context) ([]models.Server, error) {
	raw, err := c.coord.Process(ctx, c.serversURL(), c.serversURL())
	if err != nil {
		return nil, err
	}
	return models.DecodeServers(raw)
}

// GameTime returns the current in-game time in minutes.
func (c *Client) GameTime(ctx context.Context) (int, error) {
	raw, err := c.coord.Process(ctx, c.gameTimeURL(), c.gameTimeURL())
	if err != nil {
		return 0, err
	}
	return models.DecodeGameTime(raw)
}

// Player looks up a player by their TruckersMP ID.
func (c *Client) Player(ctx context.Context, id int64) (*models.Player, error) {
	url := c.playerURL(id)
	raw, err := c.coord.Process(ctx, url, url)
	if err != nil {
		return nil, err
	}
	return models.DecodePlayer(raw)
}

// Bans lists a player's ban history.
func (c *Client) Bans(ctx context.Context, playerID int64) ([]models.Ban, error) {
	url := c.bansURL(playerID)
	raw, err := c.coord.Process(ctx, url, url)
	if err != nil {
		return nil, err
	}
	return models.DecodeBans(raw)
}

// Events returns the featured, today, now and upcoming event listings.
// Attendance user lists are only populated by Event lookups.
func (c *Client) Events(ctx context.Context) (*models.Events, error) {
	raw, err := c.coord.Process(ctx, c.eventsURL(), c.eventsURL())
	if err != nil {
		return nil, err
	}
	return models.DecodeEvents(raw)
}

// Event looks up a single event by ID, including its attendance lists.
func (c *Client) Event(ctx context.Context, id int64) (*models.Event, error) {
	url := c.eventURL(id)
	raw, err := c.coord.Process(ctx, url, url)
	if err != nil {
		return nil, err
	}
	return models.DecodeEvent(raw)
}

// VTCs returns the recent, featured and featured-cover company listings.
func (c *Client) VTCs(ctx context.Context) (*models.VTCs, error) {
	raw, err := c.coord.Process(ctx, c.vtcsURL(), c.vtcsURL())
	if err != nil {
		return nil, err
	}
	return models.DecodeVTCs(raw)
}

// VTC looks up a single company by ID.
func (c *Client) VTC(ctx context.Context, id int64) (*models.VTC, error) {
	url := c.vtcURL(id)
	raw, err := c.coord.Process(ctx, url, url)
	if err != nil {
		return nil, err
	}
	return models.DecodeVTC(raw)
}

// VTCNews lists a company's news posts. Post content is only populated
// by VTCNewsPost lookups.
func (c *Client) VTCNews(ctx context.Context, vtcID int64) ([]models.NewsPost, error) {
	url := c.vtcNewsURL(vtcID)
	raw, err := c.coord.Process(ctx, url, url)
	if err != nil {
		return nil, err
	}
	return models.DecodeNewsPosts(raw)
}

// VTCNewsPost looks up a single company news post with full content.
func (c *Client) VTCNewsPost(ctx context.Context, vtcID, postID int64) (*models.NewsPost, error) {
	url := c.vtcNewsPostURL(vtcID, postID)
	raw, err := c.coord.Process(ctx, url, url)
	if err != nil {
		return nil, err
	}
	return models.DecodeNewsPost(raw)
}

// VTCRoles lists a company's roles.
func (c *Client) VTCRoles(ctx context.Context, vtcID int64) ([]models.Role, error) {
	url := c.vtcRolesURL(vtcID)
	raw, err := c.coord.Process(ctx, url, url)
	if err != nil {
		return nil, err
	}
	return models.DecodeRoles(raw)
}

// VTCRole returns one role of a company. The API serves the same data
// for the whole listing, so this fetches (or reuses the cached) role
// list and searches locally rather than spending another request.
func (c *Client) VTCRole(ctx context.Context, vtcID, roleID int64) (*models.Role, error) {
	roles, err := c.VTCRoles(ctx, vtcID)
	if err != nil {
		return nil, err
	}
	for i := range roles {
		if roles[i].ID == roleID {
			return &roles[i], nil
		}
	}
	return nil, &apierrors.NotFoundError{URL: c.vtcRolesURL(vtcID)}
}

// VTCMembers lists a company's members.
func (c *Client) VTCMembers(ctx context.Context, vtcID int64) ([]models.Member, error) {
	url := c.vtcMembersURL(vtcID)
	raw, err := c.coord.Process(ctx, url, url)
	if err != nil {
		return nil, err
	}
	return models.DecodeMembers(raw)
}

// VTCMember returns one member of a company, searching the (cached)
// member listing locally like VTCRole does.
func (c *Client) VTCMember(ctx context.Context, vtcID, memberID int64) (*models.Member, error) {
	members, err := c.VTCMembers(ctx, vtcID)
	if err != nil {
		return nil, err
	}
	for i := range members {
		if members[i].ID == memberID {
			return &members[i], nil
		}
	}
	return nil, &apierrors.NotFoundError{URL: c.vtcMembersURL(vtcID)}
}

// VTCEvents lists a company's events.
func (c *Client) VTCEvents(ctx context.Context, vtcID int64) ([]models.Event, error) {
	url := c.vtcEventsURL(vtcID)
	raw, err := c.coord.Process(ctx, url, url)
	if err != nil {
		return nil, err
	}
	return models.DecodeEventList(raw)
}

// VTCEvent looks up a single company event.
func (c *Client) VTCEvent(ctx context.Context, vtcID, eventID int64) (*models.Event, error) {
	url := c.vtcEventURL(vtcID, eventID)
	raw, err := c.coord.Process(ctx, url, url)
	if err != nil {
		return nil, err
	}
	return models.DecodeEvent(raw)
}

// Version returns the current TruckersMP mod version information.
func (c *Client) Version(ctx context.Context) (*models.Version, error) {
	raw, err := c.coord.Process(ctx, c.versionURL(), c.versionURL())
	if err != nil {
		return nil, err
	}
	return models.DecodeVersion(raw)
}

// Rules returns the latest in-game rules document.
func (c *Client) Rules(ctx context.Context) (*models.Rules, error) {
	raw, err := c.coord.Process(ctx, c.rulesURL(), c.rulesURL())
	if err != nil {
		return nil, err
	}
	return models.DecodeRules(raw)
}
