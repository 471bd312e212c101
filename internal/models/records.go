package models

// RecordSource tells which aggregate a rune page or skill plan was taken from
type RecordSource string

const (
	SourceMostCommon RecordSource = "most_common"
	SourceHighestWin RecordSource = "highest_wr"
)

// Matchup is one opponent row of a champion's matchup table. WinRate is the
// subject's win rate against the opponent, 0-100.
type Matchup struct {
	OpponentAlias string  `json:"opponent_alias"`
	OpponentName  string  `json:"opponent_name"`
	WinRate       float64 `json:"win_rate"`
	Games         int     `json:"games"`
	DefaultLane   string  `json:"default_lane,omitempty"`
}

// Counterpick is a matchup seen from the opposite side: how well the opponent
// does into the subject (100 - subject win rate).
type Counterpick struct {
	Alias   string  `json:"alias"`
	Name    string  `json:"name"`
	WinRate float64 `json:"win_rate"`
	Games   int     `json:"games"`
}

// PickSuggestion is a candidate answer to several enemies at once.
type PickSuggestion struct {
	Alias   string  `json:"alias"`
	Name    string  `json:"name"`
	Score   float64 `json:"score"` // mean inverted win rate plus synergy adjustment
	Synergy float64 `json:"synergy"`
	Games   int     `json:"games"` // smallest sample among the per-enemy matchups
}

// Build holds the recommended item path for a champion/lane slice.
type Build struct {
	StartingItems []int `json:"starting_items"`
	FullBuild     []int `json:"full_build"` // 6 slots including boots
}

// RunePage is a complete rune selection: 4 primary + 2 secondary + 3 fragments.
type RunePage struct {
	PrimaryTree   int          `json:"primary_tree"`
	SecondaryTree int          `json:"secondary_tree"`
	Perks         []int        `json:"perks"`
	WinRate       float64      `json:"win_rate"`
	Games         int          `json:"games"`
	Source        RecordSource `json:"source"`
}

// RunePerkCount is the number of perk ids a valid page carries (4+2+3).
const RunePerkCount = 9

// SkillPlan is the recommended ability leveling for a champion/lane slice.
type SkillPlan struct {
	MaxOrder string       `json:"max_order"` // e.g. "QEW"
	Sequence string       `json:"sequence"`  // 15 level-up slots, e.g. "QWEQQRQWQWRWWEE"
	WinRate  float64      `json:"win_rate"`
	Games    int          `json:"games"`
	Source   RecordSource `json:"source"`
}

// SkillSequenceLen is the number of level-up slots a full plan covers.
const SkillSequenceLen = 15

// ChampionTraits is the slice of static reference data the synergy heuristic
// consumes. Damage is "physical", "magic" or "mixed".
type ChampionTraits struct {
	Alias       string
	Name        string
	Key         int
	Damage      string
	Frontline   bool
	Roles       []string
	DefaultLane string
}
