package stats

import (
	"strings"

	"go-champ-stats/internal/models"
)

// runesResponse is the primary-channel payload for the rune/skill domain.
// Both the most-played and the highest-win-rate aggregates are carried for
// every table.
type runesResponse struct {
	Summary struct {
		Pick runeAggregate `json:"pick"`
		Win  runeAggregate `json:"win"`
	} `json:"summary"`
	SkillPriority struct {
		Pick skillAggregate `json:"pick"`
		Win  skillAggregate `json:"win"`
	} `json:"skillpriority"`
	SkillOrder struct {
		Pick skillAggregate `json:"pick"`
		Win  skillAggregate `json:"win"`
	} `json:"skillorder"`
}

type runeAggregate struct {
	Wr   float64 `json:"wr"`
	N    int     `json:"n"`
	Page struct {
		Pri int `json:"pri"`
		Sec int `json:"sec"`
	} `json:"page"`
	Set struct {
		Pri []int `json:"pri"`
		Sec []int `json:"sec"`
		Mod []int `json:"mod"`
	} `json:"set"`
}

type skillAggregate struct {
	Val string  `json:"v"`
	Wr  float64 `json:"wr"`
	N   int     `json:"n"`
}

// extractRunePages builds up to two rune pages, most played first. A page
// missing the 4+2+3 perk structure is dropped rather than padded.
func extractRunePages(resp *runesResponse, minSample int) []models.RunePage {
	if resp == nil {
		return nil
	}

	pages := make([]models.RunePage, 0, 2)
	if page, ok := runePageFrom(resp.Summary.Pick, models.SourceMostCommon, minSample); ok {
		pages = append(pages, page)
	}
	if page, ok := runePageFrom(resp.Summary.Win, models.SourceHighestWin, minSample); ok {
		pages = append(pages, page)
	}
	return pages
}

func runePageFrom(agg runeAggregate, source models.RecordSource, minSample int) (models.RunePage, bool) {
	if agg.N < minSample {
		return models.RunePage{}, false
	}
	if agg.Page.Pri == 0 || agg.Page.Sec == 0 {
		return models.RunePage{}, false
	}
	if len(agg.Set.Pri) != 4 || len(agg.Set.Sec) != 2 || len(agg.Set.Mod) != 3 {
		return models.RunePage{}, false
	}

	perks := make([]int, 0, models.RunePerkCount)
	perks = append(perks, agg.Set.Pri...)
	perks = append(perks, agg.Set.Sec...)
	perks = append(perks, agg.Set.Mod...)
	for _, id := range perks {
		if id <= 0 {
			return models.RunePage{}, false
		}
	}

	return models.RunePage{
		PrimaryTree:   agg.Page.Pri,
		SecondaryTree: agg.Page.Sec,
		Perks:         perks,
		WinRate:       agg.Wr,
		Games:         agg.N,
		Source:        source,
	}, true
}

// extractSkillPlan pairs the max-order priority with the full 15-level
// sequence, preferring the most-played aggregates and falling back to the
// highest-win-rate ones when the former fail validation.
func extractSkillPlan(resp *runesResponse, minSample int) *models.SkillPlan {
	if resp == nil {
		return nil
	}

	candidates := []struct {
		priority skillAggregate
		order    skillAggregate
		source   models.RecordSource
	}{
		{resp.SkillPriority.Pick, resp.SkillOrder.Pick, models.SourceMostCommon},
		{resp.SkillPriority.Win, resp.SkillOrder.Win, models.SourceHighestWin},
	}

	for _, c := range candidates {
		maxOrder := normalizeSkillString(c.priority.Val)
		sequence := normalizeSkillString(c.order.Val)
		if len(maxOrder) != 3 || len(sequence) != models.SkillSequenceLen {
			continue
		}
		if c.order.N < minSample {
			continue
		}
		return &models.SkillPlan{
			MaxOrder: maxOrder,
			Sequence: sequence,
			WinRate:  c.order.Wr,
			Games:    c.order.N,
			Source:   c.source,
		}
	}
	return nil
}

// normalizeSkillString maps the site's digit encoding (1=Q 2=W 3=E 4=R) to
// ability letters; already-lettered input passes through. Anything else
// comes back empty so validation fails closed.
func normalizeSkillString(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		switch r {
		case '1', 'Q':
			b.WriteByte('Q')
		case '2', 'W':
			b.WriteByte('W')
		case '3', 'E':
			b.WriteByte('E')
		case '4', 'R':
			b.WriteByte('R')
		default:
			return ""
		}
	}
	return b.String()
}
