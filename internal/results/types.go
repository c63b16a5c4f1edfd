package results

// Record is the election outcome for one constituency in one election year.
// Field names follow the published result documents.
type Record struct {
	ID                string          `json:"Id"`
	Summary           Summary         `json:"Summary"`
	CandidateVoteInfo []CandidateVote `json:"CandidateVoteInfo"`
}

// Summary carries the headline figures shown in the info panel.
type Summary struct {
	Constituency       string  `json:"Constituency"`
	WinningCandidate   string  `json:"WinningCandidate"`
	WinningPartyName   string  `json:"WinningPartyName"`
	PartyColour        string  `json:"PartyColour"`
	Electorate         int     `json:"Electorate"`
	ValidVotes         int     `json:"ValidVotes"`
	WinningVoteCount   int     `json:"WinningVoteCount"`
	ValidVotePercent   float64 `json:"ValidVotePercent"`
	TheyWorkForYouLink string  `json:"TheyWorkForYouLink"`
}

// CandidateVote is one candidate's tally. Minor parties share the
// transformed abbreviation (e.g. "OTH"), so abbreviations repeat.
type CandidateVote struct {
	PartyAbbrevTransformed string `json:"PartyAbbrevTransformed"`
	Votes                  int    `json:"Votes"`
	PartyColour            string `json:"PartyColour"`
}

// Dataset is every result record for one election year.
type Dataset struct {
	Year    string
	Records []Record
}

// Len returns the number of records in the dataset.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Find returns the first record with the given constituency code.
func (d *Dataset) Find(id string) (*Record, bool) {
	if d == nil {
		return nil, false
	}
	for i := range d.Records {
		if d.Records[i].ID == id {
			return &d.Records[i], true
		}
	}
	return nil, false
}
