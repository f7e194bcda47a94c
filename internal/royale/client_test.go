package royale

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *APIClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return &APIClient{
		httpClient: newHTTPClient(),
		BaseURL:    server.URL,
		token:      "secret-token",
		clanTag:    "#ABC123",
	}
}

func TestGetCurrentRiverRace(t *testing.T) {
	mockJSONResponse := `{
		"state": "full",
		"sectionIndex": 2,
		"periodIndex": 15,
		"periodType": "warDay",
		"createdDate": "20240101T094500.000Z",
		"clan": {
			"tag": "#ABC123",
			"name": "Tribble",
			"fame": 5400,
			"participants": [
				{ "tag": "#A", "name": "Alpha", "fame": 1200, "decksUsed": 5, "decksUsedToday": 1 },
				{ "tag": "#B", "name": "Bravo" }
			]
		},
		"periodLogs": [
			{ "periodIndex": 14, "items": [] }
		]
	}`

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/clans/%23ABC123/currentriverrace", r.URL.EscapedPath())
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, mockJSONResponse)
	})

	race, err := client.GetCurrentRiverRace(context.Background())
	require.NoError(t, err)
	assert.Equal(t, RaceStateFull, race.State)
	assert.Equal(t, "20240101T094500.000Z", race.CreatedDate)
	assert.Len(t, race.ClosedPeriodLogs(), 1)

	participants := race.Participants()
	require.Len(t, participants, 2)
	assert.Equal(t, 5, participants["#A"].DecksUsed)
	assert.Equal(t, 1200, participants["#A"].Fame)
	require.NotNil(t, participants["#A"].DecksUsedToday)
	assert.Equal(t, 1, *participants["#A"].DecksUsedToday)
	assert.Equal(t, 0, participants["#B"].DecksUsed, "Missing counts should decode as zero")
	assert.Nil(t, participants["#B"].DecksUsedToday)
}

func TestGetCurrentRiverRace_NestedPeriodLogs(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"clan": {"periodLogs": [{"periodIndex": 3}, {"periodIndex": 4}]}}`)
	})

	race, err := client.GetCurrentRiverRace(context.Background())
	require.NoError(t, err)
	assert.Len(t, race.ClosedPeriodLogs(), 2)
}

func TestGetClan(t *testing.T) {
	t.Run("decodes the member list", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/clans/%23ABC123", r.URL.EscapedPath())
			fmt.Fprintln(w, `{"tag": "#ABC123", "name": "Tribble", "memberList": [{"tag": "#A", "name": "Alpha", "role": "leader"}]}`)
		})

		clan, err := client.GetClan(context.Background())
		require.NoError(t, err)
		require.Len(t, clan.Members, 1)
		assert.Equal(t, "Alpha", clan.Members[0].Name)
	})

	t.Run("missing member list is a hard failure", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintln(w, `{"tag": "#ABC123"}`)
		})

		_, err := client.GetClan(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})
}

func TestGetRiverRaceLog(t *testing.T) {
	t.Run("passes the limit and decodes standings", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/clans/%23ABC123/riverracelog", r.URL.EscapedPath())
			assert.Equal(t, "10", r.URL.Query().Get("limit"))
			fmt.Fprintln(w, `{"items": [{"seasonId": 100, "sectionIndex": 1, "createdDate": "20231225T094500.000Z",
				"standings": [{"rank": 1, "clan": {"tag": "#abc123", "participants": [{"tag": "#A", "decksUsed": 16, "fame": 3000}]}}]}]}`)
		})

		entries, err := client.GetRiverRaceLog(context.Background(), 10)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		standing := entries[0].StandingFor("ABC123")
		require.NotNil(t, standing, "Tags should match case-insensitively and without '#'")
		assert.Equal(t, 16, standing.Clan.Participants[0].DecksUsed)
		assert.Nil(t, entries[0].StandingFor("#OTHER"))
	})

	t.Run("missing items is a hard failure", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintln(w, `{"paging": {}}`)
		})

		_, err := client.GetRiverRaceLog(context.Background(), 10)
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})
}

func TestGet_NonOKStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"reason": "accessDenied"}`, http.StatusForbidden)
	})

	_, err := client.GetCurrentRiverRace(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Contains(t, err.Error(), "403")
}

func TestGet_CanceledContext(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.GetClan(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called, "No request should be sent once the context is done")
}

func TestNormalizeTag(t *testing.T) {
	assert.Equal(t, "#ABC", NormalizeTag("abc"))
	assert.Equal(t, "#ABC", NormalizeTag(" #abc "))
	assert.Equal(t, "", NormalizeTag(""))
}
