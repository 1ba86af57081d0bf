package outline

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefine_DropsTextsRepeatedThreeTimes(t *testing.T) {
	cands := []HeadingCandidate{
		{Text: "Company Confidential", Page: 1},
		{Text: "Summary", Page: 1},
		{Text: "Company Confidential", Page: 2},
		{Text: "Summary", Page: 3},
		{Text: "Company Confidential", Page: 3},
		{Text: "Company Confidential", Page: 4},
	}
	got := Refine(cands, DefaultConfig())
	assert.Equal(t, []Entry{
		{Level: H1, Text: "Summary", Page: 1},
		{Level: H1, Text: "Summary", Page: 3},
	}, got)
}

func TestRefine_LevelsAndVerbatimText(t *testing.T) {
	cands := []HeadingCandidate{
		{Text: "1. Introduction", Page: 1},
		{Text: "1.1 Background", Page: 1},
		{Text: "1.1.1 History", Page: 2},
	}
	got := Refine(cands, DefaultConfig())
	require.Len(t, got, 3)
	assert.Equal(t, Entry{Level: H1, Text: "1. Introduction", Page: 1}, got[0])
	assert.Equal(t, Entry{Level: H2, Text: "1.1 Background", Page: 1}, got[1])
	assert.Equal(t, Entry{Level: H3, Text: "1.1.1 History", Page: 2}, got[2])
}

func TestRefine_StableSortByPage(t *testing.T) {
	cands := []HeadingCandidate{
		{Text: "Later", Page: 4},
		{Text: "Alpha", Page: 2},
		{Text: "Beta", Page: 2},
		{Text: "Gamma", Page: 2},
	}
	got := Refine(cands, DefaultConfig())
	require.Len(t, got, 4)
	assert.Equal(t, []string{"Alpha", "Beta", "Gamma", "Later"},
		[]string{got[0].Text, got[1].Text, got[2].Text, got[3].Text})
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].Page, got[i].Page)
	}
}

func TestRefine_DropsBlankText(t *testing.T) {
	got := Refine([]HeadingCandidate{{Text: "   ", Page: 1}}, DefaultConfig())
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestLevel_JSON(t *testing.T) {
	data, err := json.Marshal(Entry{Level: H3, Text: "x", Page: 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"level":"H3","text":"x","page":2}`, string(data))

	var e Entry
	require.NoError(t, json.Unmarshal(data, &e))
	assert.Equal(t, H3, e.Level)

	assert.Error(t, json.Unmarshal([]byte(`{"level":"H9"}`), &e))
}
