package results

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `[
  {
    "Id": "E14000530",
    "Summary": {
      "Constituency": "Aldershot",
      "WinningCandidate": "Leo Docherty",
      "WinningPartyName": "Conservative",
      "PartyColour": "#0087DC",
      "Electorate": 76205,
      "ValidVotes": 50592,
      "WinningVoteCount": 26950,
      "ValidVotePercent": 0.5327,
      "TheyWorkForYouLink": "https://www.theyworkforyou.com/mp/?c=Aldershot"
    },
    "CandidateVoteInfo": [
      {"PartyAbbrevTransformed": "CON", "Votes": 26950, "PartyColour": "#0087DC"},
      {"PartyAbbrevTransformed": "LAB", "Votes": 15477, "PartyColour": "#DC241f"}
    ]
  }
]`

func TestDecode(t *testing.T) {
	ds, err := Decode(strings.NewReader(sampleDoc), "2017")
	require.NoError(t, err)

	assert.Equal(t, "2017", ds.Year)
	require.Equal(t, 1, ds.Len())

	rec := ds.Records[0]
	assert.Equal(t, "E14000530", rec.ID)
	assert.Equal(t, "Aldershot", rec.Summary.Constituency)
	assert.Equal(t, 50592, rec.Summary.ValidVotes)
	assert.InDelta(t, 0.5327, rec.Summary.ValidVotePercent, 1e-9)
	require.Len(t, rec.CandidateVoteInfo, 2)
	assert.Equal(t, "LAB", rec.CandidateVoteInfo[1].PartyAbbrevTransformed)
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"not": "an array"}`), "2015")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2015")
}

func TestFindFirstMatch(t *testing.T) {
	ds := &Dataset{Year: "2017", Records: []Record{
		{ID: "A", Summary: Summary{Constituency: "first"}},
		{ID: "A", Summary: Summary{Constituency: "second"}},
	}}

	rec, ok := ds.Find("A")
	require.True(t, ok)
	assert.Equal(t, "first", rec.Summary.Constituency)

	_, ok = ds.Find("missing")
	assert.False(t, ok)

	var nilDS *Dataset
	_, ok = nilDS.Find("A")
	assert.False(t, ok)
	assert.Equal(t, 0, nilDS.Len())
}
