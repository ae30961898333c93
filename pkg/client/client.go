// Package client implements the catalog client: parameterized queries
// against the remote character catalog, with transport and service
// failures normalized into the error taxonomy of pkg/errors.
package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/BehshadMoeini/rick-and-morty/internal/graphql"
	"github.com/BehshadMoeini/rick-and-morty/pkg/characters"
	"github.com/BehshadMoeini/rick-and-morty/pkg/errors"
	"github.com/BehshadMoeini/rick-and-morty/pkg/logging"
)

// DefaultBaseURL is the public catalog endpoint.
const DefaultBaseURL = "https://rickandmortyapi.com/graphql"

// API issues queries against the remote character catalog.
type API struct {
	transport *graphql.Client
	logger    *zerolog.Logger
}

// New creates a catalog client. Empty baseURL selects DefaultBaseURL,
// nil httpClient a default one, nil logger the package default.
func New(baseURL string, httpClient *http.Client, logger *zerolog.Logger) *API {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &API{
		transport: graphql.New(baseURL, httpClient),
		logger:    logger,
	}
}

// ListCharacters fetches one page of characters matching the filter.
// Page defaults to 1 when not positive. The zero filter means no
// constraints.
func (a *API) ListCharacters(ctx context.Context, page int, filter characters.Filter) (*characters.Page, error) {
	if page < 1 {
		page = 1
	}

	variables := map[string]any{"page": page}
	if !filter.IsZero() {
		variables["filter"] = filter
	}

	var out struct {
		Characters *characters.Page `json:"characters"`
	}
	if err := a.transport.Do(ctx, "ListCharacters", listCharactersQuery, variables, &out); err != nil {
		return nil, err
	}
	if out.Characters == nil {
		return nil, errors.NewServiceError("ListCharacters", []string{"empty characters payload"})
	}

	a.logger.Debug().
		Int("page", page).
		Stringer("filter", filter).
		Int("results", len(out.Characters.Results)).
		Msg("Fetched character page")

	return out.Characters, nil
}

// GetCharacter fetches a single character by identifier. A null or
// absent result resolves to a NotFoundError rather than a generic
// service error, so callers can skip retries and render a distinct
// not-found state.
func (a *API) GetCharacter(ctx context.Context, id int) (*characters.Character, error) {
	var out struct {
		Character *characters.Character `json:"character"`
	}
	err := a.transport.Do(ctx, "GetCharacter", getCharacterQuery, map[string]any{"id": id}, &out)
	if err != nil {
		// The service reports unknown identifiers as a field error
		// rather than a null result; both mean the same definitive
		// absence.
		var svcErr *errors.ServiceError
		if errors.As(err, &svcErr) && looksLikeNotFound(svcErr.Messages) {
			return nil, errors.NewNotFoundError("character", id)
		}
		return nil, err
	}
	if out.Character == nil {
		return nil, errors.NewNotFoundError("character", id)
	}
	return out.Character, nil
}

// GetCharacters fetches a set of characters in a single batched request,
// one aliased sub-query per unique identifier. Empty input yields empty
// output with no network call. Identifiers the service reports as absent
// are dropped from the result; the caller can compare input and output
// sizes to observe this. Duplicate input identifiers are de-duplicated
// for the query and restored in the output, which follows input order.
// Individual absent ids never produce a NotFoundError.
func (a *API) GetCharacters(ctx context.Context, ids []int) ([]characters.Character, error) {
	if len(ids) == 0 {
		return []characters.Character{}, nil
	}

	unique := dedupe(ids)

	var out map[string]json.RawMessage
	if err := a.transport.Do(ctx, "GetCharacters", buildBatchQuery(unique), nil, &out); err != nil {
		return nil, err
	}

	byAlias := make(map[string]*characters.Character, len(unique))
	for _, id := range unique {
		raw, ok := out[batchAlias(id)]
		if !ok {
			continue
		}
		var c *characters.Character
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, errors.WrapParse("json", "batch entry "+batchAlias(id), err)
		}
		byAlias[batchAlias(id)] = c
	}

	result := make([]characters.Character, 0, len(ids))
	for _, id := range ids {
		if c := byAlias[batchAlias(id)]; c != nil {
			result = append(result, *c)
		}
	}

	// Zero results for a non-empty request is indistinguishable from
	// every id happening to be absent; surface it as a warning rather
	// than masking it entirely.
	if len(result) == 0 {
		a.logger.Warn().
			Ints("ids", ids).
			Msg("No characters found for the requested identifiers")
	}

	return result, nil
}

// looksLikeNotFound reports whether the service's error messages
// describe a missing entity (the upstream phrases it as "404: Not Found").
func looksLikeNotFound(messages []string) bool {
	for _, m := range messages {
		lower := strings.ToLower(m)
		if strings.Contains(lower, "not found") || strings.Contains(lower, "404") {
			return true
		}
	}
	return false
}

// dedupe returns the ids with duplicates removed, preserving first-seen
// order.
func dedupe(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	unique := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
