package client

import (
	"fmt"
	"strings"
)

// characterFields is the field set requested for every character,
// shared by all three query shapes.
const characterFields = `
  fragment CharacterFields on Character {
    id
    name
    status
    species
    type
    gender
    origin {
      name
    }
    location {
      name
    }
    image
    episode {
      id
      name
      episode
    }
    created
  }
`

// listCharactersQuery fetches one page of characters with an optional filter.
const listCharactersQuery = characterFields + `
  query GetCharacters($page: Int, $filter: FilterCharacter) {
    characters(page: $page, filter: $filter) {
      info {
        count
        pages
        next
        prev
      }
      results {
        ...CharacterFields
      }
    }
  }
`

// getCharacterQuery fetches a single character by identifier.
const getCharacterQuery = characterFields + `
  query GetCharacter($id: ID!) {
    character(id: $id) {
      ...CharacterFields
    }
  }
`

// batchAlias returns the response alias used for one id in a batch query.
func batchAlias(id int) string {
	return fmt.Sprintf("character%d", id)
}

// buildBatchQuery builds one request body containing one aliased
// sub-query per id, so a single round trip resolves all of them.
// Callers must pass de-duplicated ids; duplicate ids would produce
// colliding aliases.
func buildBatchQuery(ids []int) string {
	var b strings.Builder
	b.WriteString(characterFields)
	b.WriteString("\n  query {")
	for _, id := range ids {
		fmt.Fprintf(&b, `
    %s: character(id: %d) {
      ...CharacterFields
    }`, batchAlias(id), id)
	}
	b.WriteString("\n  }")
	return b.String()
}
