package stats

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go-champ-stats/internal/models"
)

// buildResponse is the primary-channel payload for the build domain. Item
// sets arrive keyed itemSet1..itemSet5 plus itemBootSet1..itemBootSet6; each
// row is [underscore-joined item ids, games, wins].
type buildResponse struct {
	ItemSets map[string]json.RawMessage `json:"itemSets"`
}

type itemSetRow struct {
	ids   []int
	games int
	wins  int
}

// extractBuild assembles a build record from the item-set tables: starting
// items from the most played itemSet1 row, core items from the deepest
// populated set, boots from the best boot row. Returns nil when the tables
// cannot yield a full six-slot build.
func extractBuild(resp *buildResponse, minSample int) *models.Build {
	if resp == nil || len(resp.ItemSets) == 0 {
		return nil
	}

	starting := bestRow(resp.rows("itemSet1", minSample))
	if starting == nil {
		return nil
	}

	// Deepest populated set has the most complete item path.
	var core *itemSetRow
	for n := 5; n >= 2; n-- {
		if core = bestRow(resp.rows(fmt.Sprintf("itemSet%d", n), minSample)); core != nil {
			break
		}
	}
	if core == nil {
		return nil
	}

	var boots *itemSetRow
	for n := 1; n <= 6; n++ {
		row := bestRow(resp.rows(fmt.Sprintf("itemBootSet%d", n), minSample))
		if row == nil || len(row.ids) == 0 {
			continue
		}
		if boots == nil || row.games > boots.games {
			boots = row
		}
	}
	if boots == nil {
		return nil
	}

	full := make([]int, 0, 6)
	full = append(full, boots.ids[0])
	for _, id := range core.ids {
		if len(full) == 6 {
			break
		}
		full = append(full, id)
	}

	return &models.Build{
		StartingItems: starting.ids,
		FullBuild:     full,
	}
}

// rows decodes one item-set table, dropping malformed rows and rows below
// the sample gate.
func (r *buildResponse) rows(key string, minSample int) []itemSetRow {
	raw, ok := r.ItemSets[key]
	if !ok {
		return nil
	}

	var table [][]json.RawMessage
	if err := json.Unmarshal(raw, &table); err != nil {
		return nil
	}

	rows := make([]itemSetRow, 0, len(table))
	for _, cells := range table {
		if len(cells) < 3 {
			continue
		}
		var joined string
		var games, wins int
		if err := json.Unmarshal(cells[0], &joined); err != nil {
			continue
		}
		if err := json.Unmarshal(cells[1], &games); err != nil {
			continue
		}
		if err := json.Unmarshal(cells[2], &wins); err != nil {
			continue
		}
		ids := splitItemIDs(joined)
		if len(ids) == 0 || games < minSample {
			continue
		}
		rows = append(rows, itemSetRow{ids: ids, games: games, wins: wins})
	}
	return rows
}

// bestRow returns the most played row, or nil for an empty table
func bestRow(rows []itemSetRow) *itemSetRow {
	var best *itemSetRow
	for i := range rows {
		if best == nil || rows[i].games > best.games {
			best = &rows[i]
		}
	}
	return best
}

func splitItemIDs(joined string) []int {
	parts := strings.Split(joined, "_")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(p)
		if err != nil || id <= 0 {
			return nil
		}
		ids = append(ids, id)
	}
	return ids
}
