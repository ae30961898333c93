package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BehshadMoeini/rick-and-morty/pkg/characters"
	"github.com/BehshadMoeini/rick-and-morty/pkg/errors"
	"github.com/BehshadMoeini/rick-and-morty/pkg/logging"
)

// decodedRequest is the request body the fake service receives.
type decodedRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// newTestService starts a fake catalog endpoint. Each incoming request
// is counted and passed to respond, which returns the JSON body to
// send back.
func newTestService(t *testing.T, calls *atomic.Int64, respond func(req decodedRequest) string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		var req decodedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(respond(req)))
	}))
}

// characterJSON renders a minimal character payload with a GraphQL
// string id, the way the live service serializes IDs.
func characterJSON(id int, name string) string {
	return fmt.Sprintf(`{
		"id": "%d",
		"name": %q,
		"status": "Alive",
		"species": "Human",
		"type": "",
		"gender": "Male",
		"origin": {"name": "Earth"},
		"location": {"name": "Earth"},
		"image": "https://example.test/%d.jpeg",
		"episode": [{"id": "1", "name": "Pilot", "episode": "S01E01"}],
		"created": "2017-11-04T18:48:46.250Z"
	}`, id, name, id)
}

func TestListCharacters(t *testing.T) {
	var calls atomic.Int64
	srv := newTestService(t, &calls, func(req decodedRequest) string {
		assert.Contains(t, req.Query, "characters(page: $page, filter: $filter)")
		assert.EqualValues(t, 2, req.Variables["page"])
		filter, ok := req.Variables["filter"].(map[string]any)
		require.True(t, ok, "filter variable missing")
		assert.Equal(t, "rick", filter["name"])

		return fmt.Sprintf(`{"data": {"characters": {
			"info": {"count": 826, "pages": 42, "next": 3, "prev": 1},
			"results": [%s, %s]
		}}}`, characterJSON(21, "Rick Prime"), characterJSON(22, "Morty Prime"))
	})
	defer srv.Close()

	api := New(srv.URL, nil, &logging.Nop)
	page, err := api.ListCharacters(context.Background(), 2, characters.Filter{Name: "rick"})
	require.NoError(t, err)

	assert.Equal(t, 826, page.Info.Count)
	require.NotNil(t, page.Info.Next)
	assert.Equal(t, 3, *page.Info.Next)
	require.Len(t, page.Results, 2)
	assert.Equal(t, characters.ID(21), page.Results[0].ID)
	assert.Equal(t, "Rick Prime", page.Results[0].Name)
}

func TestListCharacters_DefaultsPageAndFilter(t *testing.T) {
	var calls atomic.Int64
	srv := newTestService(t, &calls, func(req decodedRequest) string {
		assert.EqualValues(t, 1, req.Variables["page"])
		_, hasFilter := req.Variables["filter"]
		assert.False(t, hasFilter, "zero filter must not be sent")
		return `{"data": {"characters": {"info": {"count": 0, "pages": 0, "next": null, "prev": null}, "results": []}}}`
	})
	defer srv.Close()

	api := New(srv.URL, nil, &logging.Nop)
	page, err := api.ListCharacters(context.Background(), 0, characters.Filter{})
	require.NoError(t, err)
	assert.Nil(t, page.Info.Next)
	assert.Empty(t, page.Results)
}

func TestListCharacters_ServiceErrorJoinsMessages(t *testing.T) {
	var calls atomic.Int64
	srv := newTestService(t, &calls, func(decodedRequest) string {
		return `{"data": null, "errors": [{"message": "first problem"}, {"message": "second problem"}]}`
	})
	defer srv.Close()

	api := New(srv.URL, nil, &logging.Nop)
	_, err := api.ListCharacters(context.Background(), 1, characters.Filter{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrService))
	assert.Contains(t, err.Error(), "first problem, second problem")
}

func TestGetCharacter(t *testing.T) {
	var calls atomic.Int64
	srv := newTestService(t, &calls, func(req decodedRequest) string {
		assert.EqualValues(t, 1, req.Variables["id"])
		return fmt.Sprintf(`{"data": {"character": %s}}`, characterJSON(1, "Rick Sanchez"))
	})
	defer srv.Close()

	api := New(srv.URL, nil, &logging.Nop)
	c, err := api.GetCharacter(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, characters.ID(1), c.ID)
	assert.Equal(t, "Rick Sanchez", c.Name)
	require.Len(t, c.Episode, 1)
	assert.Equal(t, "S01E01", c.Episode[0].Code)
}

func TestGetCharacter_NullResultIsNotFound(t *testing.T) {
	var calls atomic.Int64
	srv := newTestService(t, &calls, func(decodedRequest) string {
		return `{"data": {"character": null}}`
	})
	defer srv.Close()

	api := New(srv.URL, nil, &logging.Nop)
	_, err := api.GetCharacter(context.Background(), 999999)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
	var nfe *errors.NotFoundError
	require.True(t, errors.As(err, &nfe))
	assert.Equal(t, 999999, nfe.ID)
}

func TestGetCharacter_ServiceReported404IsNotFound(t *testing.T) {
	// The live service reports unknown ids as a field error rather
	// than a null result.
	var calls atomic.Int64
	srv := newTestService(t, &calls, func(decodedRequest) string {
		return `{"data": {"character": null}, "errors": [{"message": "404: Not Found"}]}`
	})
	defer srv.Close()

	api := New(srv.URL, nil, &logging.Nop)
	_, err := api.GetCharacter(context.Background(), 999999)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestGetCharacter_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	api := New(srv.URL, nil, &logging.Nop)
	_, err := api.GetCharacter(context.Background(), 1)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrTransport))
}

func TestGetCharacters_PartialAbsence(t *testing.T) {
	var calls atomic.Int64
	srv := newTestService(t, &calls, func(req decodedRequest) string {
		assert.Contains(t, req.Query, "character1: character(id: 1)")
		assert.Contains(t, req.Query, "character2: character(id: 2)")
		assert.Contains(t, req.Query, "character999999: character(id: 999999)")
		return fmt.Sprintf(`{"data": {
			"character1": %s,
			"character2": %s,
			"character999999": null
		}}`, characterJSON(1, "Rick Sanchez"), characterJSON(2, "Morty Smith"))
	})
	defer srv.Close()

	api := New(srv.URL, nil, &logging.Nop)
	got, err := api.GetCharacters(context.Background(), []int{1, 2, 999999})

	require.NoError(t, err, "absent ids in a batch are dropped, not errors")
	require.Len(t, got, 2)
	assert.Equal(t, characters.ID(1), got[0].ID)
	assert.Equal(t, characters.ID(2), got[1].ID)
	assert.EqualValues(t, 1, calls.Load(), "batch must be a single round trip")
}

func TestGetCharacters_EmptyInputShortCircuits(t *testing.T) {
	var calls atomic.Int64
	srv := newTestService(t, &calls, func(decodedRequest) string {
		t.Error("no network call expected for empty input")
		return `{"data": {}}`
	})
	defer srv.Close()

	api := New(srv.URL, nil, &logging.Nop)
	got, err := api.GetCharacters(context.Background(), []int{})

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.EqualValues(t, 0, calls.Load())
}

func TestGetCharacters_DuplicatesRestoredInOutput(t *testing.T) {
	var calls atomic.Int64
	srv := newTestService(t, &calls, func(req decodedRequest) string {
		// The alias for id 1 must appear exactly once.
		assert.Equal(t, 1, strings.Count(req.Query, "character1: character(id: 1)"))
		return fmt.Sprintf(`{"data": {
			"character1": %s,
			"character2": %s
		}}`, characterJSON(1, "Rick Sanchez"), characterJSON(2, "Morty Smith"))
	})
	defer srv.Close()

	api := New(srv.URL, nil, &logging.Nop)
	got, err := api.GetCharacters(context.Background(), []int{1, 2, 1})

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, characters.ID(1), got[0].ID)
	assert.Equal(t, characters.ID(2), got[1].ID)
	assert.Equal(t, characters.ID(1), got[2].ID)
}

func TestBuildBatchQuery(t *testing.T) {
	q := buildBatchQuery([]int{3, 7})
	assert.Contains(t, q, "fragment CharacterFields on Character")
	assert.Contains(t, q, "character3: character(id: 3)")
	assert.Contains(t, q, "character7: character(id: 7)")
}
