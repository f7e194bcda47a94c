package royale

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/valyala/fasthttp"
)

// DefaultBaseURL is the RoyaleAPI proxy, which accepts tokens without IP allow-listing.
const DefaultBaseURL = "https://proxy.royaleapi.dev/v1"

const requestTimeout = 10 * time.Second

// APIClient talks to the Clash Royale API on behalf of a single clan.
type APIClient struct {
	httpClient *fasthttp.Client
	BaseURL    string
	token      string
	clanTag    string
}

// NewClient creates a new Clash Royale API client scoped to clanTag.
func NewClient(baseURL, token, clanTag string) RoyaleClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &APIClient{
		httpClient: newHTTPClient(),
		BaseURL:    baseURL,
		token:      token,
		clanTag:    NormalizeTag(clanTag),
	}
}

// Tags are sent percent-encoded ("%23ABC"), so path normalizing must stay off.
func newHTTPClient() *fasthttp.Client {
	return &fasthttp.Client{
		ReadTimeout:            requestTimeout,
		WriteTimeout:           requestTimeout,
		DisablePathNormalizing: true,
	}
}

// Ensure APIClient implements the RoyaleClient interface.
var _ RoyaleClient = (*APIClient)(nil)

// GetClan fetches the clan profile and its current member list.
func (c *APIClient) GetClan(ctx context.Context) (*Clan, error) {
	var clan Clan
	if err := c.get(ctx, "", nil, &clan); err != nil {
		return nil, err
	}
	if clan.Members == nil {
		return nil, fmt.Errorf("clan %s: memberList missing: %w", c.clanTag, ErrMalformedResponse)
	}
	log.Debug("Fetched clan roster", "clan", clan.Tag, "members", len(clan.Members))
	return &clan, nil
}

// GetCurrentRiverRace fetches the race in progress. Missing counters decode as zero.
func (c *APIClient) GetCurrentRiverRace(ctx context.Context) (*RiverRace, error) {
	var race RiverRace
	if err := c.get(ctx, "/currentriverrace", nil, &race); err != nil {
		return nil, err
	}
	log.Debug("Fetched current river race", "state", race.State, "participants", len(race.Clan.Participants), "period_logs", len(race.ClosedPeriodLogs()))
	return &race, nil
}

// GetRiverRaceLog fetches the most recent finished races, newest first.
func (c *APIClient) GetRiverRaceLog(ctx context.Context, limit int) ([]RaceLogEntry, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var resp raceLogResponse
	if err := c.get(ctx, "/riverracelog", query, &resp); err != nil {
		return nil, err
	}
	if resp.Items == nil {
		return nil, fmt.Errorf("river race log: items missing: %w", ErrMalformedResponse)
	}
	log.Debug("Fetched river race log", "races", len(resp.Items))
	return resp.Items, nil
}

func (c *APIClient) get(ctx context.Context, endpoint string, query url.Values, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	reqURL := fmt.Sprintf("%s/clans/%s%s", c.BaseURL, url.PathEscape(c.clanTag), endpoint)
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(reqURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	deadline := time.Now().Add(requestTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	log.Debug("Requesting Clash Royale API", "url", reqURL)
	if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}

	if status := resp.StatusCode(); status != fasthttp.StatusOK {
		body := resp.Body()
		if len(body) > 1024 {
			body = body[:1024]
		}
		log.Error("Received non-OK HTTP status from Clash Royale API", "status", status, "body", string(body))
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, status)
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
