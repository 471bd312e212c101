package stats

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-champ-stats/internal/models"
)

const runesFixture = `{
	"summary": {
		"pick": {
			"wr": 51.2, "n": 4200,
			"page": {"pri": 8000, "sec": 8400},
			"set": {"pri": [8010, 9111, 9104, 8014], "sec": [8444, 8453], "mod": [5008, 5008, 5002]}
		},
		"win": {
			"wr": 54.8, "n": 800,
			"page": {"pri": 8100, "sec": 8000},
			"set": {"pri": [8112, 8139, 8138, 8135], "sec": [9111, 9105], "mod": [5008, 5005, 5002]}
		}
	},
	"skillpriority": {
		"pick": {"v": "QEW", "wr": 51.0, "n": 4000},
		"win": {"v": "QWE", "wr": 53.0, "n": 700}
	},
	"skillorder": {
		"pick": {"v": "QWEQQRQWQWRWWEE", "wr": 51.0, "n": 3900},
		"win": {"v": "QEWQQRQEQERWEWW", "wr": 53.5, "n": 650}
	}
}`

func runesResponseFixture(t *testing.T, payload string) *runesResponse {
	t.Helper()
	var resp runesResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &resp))
	return &resp
}

func TestExtractRunePages(t *testing.T) {
	resp := runesResponseFixture(t, runesFixture)

	pages := extractRunePages(resp, 50)

	require.Len(t, pages, 2)
	assert.Equal(t, models.SourceMostCommon, pages[0].Source)
	assert.Equal(t, 8000, pages[0].PrimaryTree)
	assert.Equal(t, 8400, pages[0].SecondaryTree)
	assert.Equal(t, []int{8010, 9111, 9104, 8014, 8444, 8453, 5008, 5008, 5002}, pages[0].Perks)
	assert.Len(t, pages[0].Perks, models.RunePerkCount)
	assert.Equal(t, models.SourceHighestWin, pages[1].Source)
	assert.Equal(t, 54.8, pages[1].WinRate)
}

func TestExtractRunePages_BadPerkStructureDropped(t *testing.T) {
	resp := runesResponseFixture(t, runesFixture)
	resp.Summary.Pick.Set.Pri = resp.Summary.Pick.Set.Pri[:3] // 3+2+3, invalid

	pages := extractRunePages(resp, 50)

	require.Len(t, pages, 1)
	assert.Equal(t, models.SourceHighestWin, pages[0].Source)
}

func TestExtractRunePages_SampleGate(t *testing.T) {
	resp := runesResponseFixture(t, runesFixture)
	resp.Summary.Win.N = 30

	pages := extractRunePages(resp, 50)

	require.Len(t, pages, 1)
	assert.Equal(t, models.SourceMostCommon, pages[0].Source)
}

func TestExtractSkillPlan(t *testing.T) {
	resp := runesResponseFixture(t, runesFixture)

	plan := extractSkillPlan(resp, 50)

	require.NotNil(t, plan)
	assert.Equal(t, "QEW", plan.MaxOrder)
	assert.Equal(t, "QWEQQRQWQWRWWEE", plan.Sequence)
	assert.Len(t, plan.Sequence, models.SkillSequenceLen)
	assert.Equal(t, models.SourceMostCommon, plan.Source)
}

func TestExtractSkillPlan_DigitEncoding(t *testing.T) {
	resp := runesResponseFixture(t, runesFixture)
	resp.SkillPriority.Pick.Val = "132"
	resp.SkillOrder.Pick.Val = "123114121214223"

	plan := extractSkillPlan(resp, 50)

	require.NotNil(t, plan)
	assert.Equal(t, "QEW", plan.MaxOrder)
	assert.Equal(t, "QWEQQRQWQWQRWWE", plan.Sequence)
}

func TestExtractSkillPlan_FallsBackToWinAggregate(t *testing.T) {
	resp := runesResponseFixture(t, runesFixture)
	resp.SkillOrder.Pick.Val = "QWE" // truncated, invalid

	plan := extractSkillPlan(resp, 50)

	require.NotNil(t, plan)
	assert.Equal(t, models.SourceHighestWin, plan.Source)
	assert.Equal(t, "QWE", plan.MaxOrder)
}

func TestExtractSkillPlan_GarbageFailsClosed(t *testing.T) {
	resp := runesResponseFixture(t, runesFixture)
	resp.SkillOrder.Pick.Val = "QWEQQRQWQWRWWEZ"
	resp.SkillOrder.Win.Val = "XXXXXXXXXXXXXXX"

	assert.Nil(t, extractSkillPlan(resp, 50))
}

func TestNormalizeSkillString(t *testing.T) {
	assert.Equal(t, "QWER", normalizeSkillString("1234"))
	assert.Equal(t, "QWER", normalizeSkillString("qwer"))
	assert.Equal(t, "QWER", normalizeSkillString("QWER"))
	assert.Equal(t, "", normalizeSkillString("QWERZ"))
}
