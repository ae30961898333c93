package table

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/BehshadMoeini/rick-and-morty/pkg/characters"
)

// titleCaser renders lowercase enum values for display.
var titleCaser = cases.Title(language.English)

// CharactersToTableData converts a character list to table format.
// The favorite marker column is filled via isFavorite; pass nil to
// leave it blank. Wide mode adds origin, location, and episode count.
func CharactersToTableData(list []characters.Character, isFavorite func(int) bool, wide bool) Data {
	headers := []string{"", "ID", "Name", "Status", "Species", "Gender"}
	alignment := []Align{AlignCenter, AlignRight, AlignLeft, AlignLeft, AlignLeft, AlignLeft}
	if wide {
		headers = append(headers, "Type", "Origin", "Location", "Episodes")
		alignment = append(alignment, AlignLeft, AlignLeft, AlignLeft, AlignRight)
	}

	rows := make([][]string, 0, len(list))
	for _, c := range list {
		marker := ""
		if isFavorite != nil && isFavorite(c.ID.Int()) {
			marker = "*"
		}

		row := []string{
			marker,
			strconv.Itoa(c.ID.Int()),
			c.Name,
			FormatEnum(string(c.Status)),
			c.Species,
			FormatEnum(string(c.Gender)),
		}
		if wide {
			row = append(row,
				orDash(c.Type),
				orDash(c.Origin.Name),
				orDash(c.Location.Name),
				strconv.Itoa(len(c.Episode)),
			)
		}
		rows = append(rows, row)
	}

	return Data{
		Headers:         headers,
		Rows:            rows,
		ColumnAlignment: alignment,
	}
}

// CharacterToDetailData converts a single character to a key-value table.
func CharacterToDetailData(c *characters.Character, favorite bool) Data {
	rows := [][]string{
		{"ID", strconv.Itoa(c.ID.Int())},
		{"Name", c.Name},
		{"Status", FormatEnum(string(c.Status))},
		{"Species", c.Species},
		{"Type", orDash(c.Type)},
		{"Gender", FormatEnum(string(c.Gender))},
		{"Origin", orDash(c.Origin.Name)},
		{"Location", orDash(c.Location.Name)},
		{"Episodes", strconv.Itoa(len(c.Episode))},
	}
	if len(c.Episode) > 0 {
		rows = append(rows, []string{"First seen", episodeLabel(c.Episode[0])})
		rows = append(rows, []string{"Last seen", episodeLabel(c.Episode[len(c.Episode)-1])})
	}
	if c.Created != "" {
		rows = append(rows, []string{"Created", c.Created})
	}
	if favorite {
		rows = append(rows, []string{"Favorite", "yes"})
	}

	return Data{
		Headers: []string{"Property", "Value"},
		Rows:    rows,
	}
}

// FormatEnum renders a lowercase catalog enum ("alive", "unknown") for
// display. Empty values render as a dash.
func FormatEnum(s string) string {
	if s == "" {
		return "-"
	}
	return titleCaser.String(strings.ToLower(s))
}

func episodeLabel(e characters.Episode) string {
	if e.Code == "" {
		return e.Name
	}
	return e.Name + " (" + e.Code + ")"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
