// Package summary tallies seats and votes for a whole election.
package summary

import (
	"sort"

	"github.com/robinmackenzie/uk-election-map/internal/results"
)

// PartySeats is the number of constituencies a party won.
type PartySeats struct {
	Party  string `json:"party"`
	Colour string `json:"colour"`
	Seats  int    `json:"seats"`
}

// PartyVotes is a party's vote total across all constituencies.
type PartyVotes struct {
	Party  string `json:"party"`
	Colour string `json:"colour"`
	Votes  int    `json:"votes"`
}

// Summary is the national picture for one dataset.
type Summary struct {
	Year           string       `json:"year"`
	Constituencies int          `json:"constituencies"`
	TotalVotes     int          `json:"total_votes"`
	Seats          []PartySeats `json:"seats"`
	Votes          []PartyVotes `json:"votes"`
}

// Compute tallies a dataset. Only the first record per constituency id
// counts, matching what the map shows. Seats and votes are sorted by
// count, largest first, ties by party name.
func Compute(ds *results.Dataset) Summary {
	s := Summary{Seats: []PartySeats{}, Votes: []PartyVotes{}}
	if ds == nil {
		return s
	}
	s.Year = ds.Year

	seen := make(map[string]bool, len(ds.Records))
	seatIdx := make(map[string]int)
	voteIdx := make(map[string]int)
	for _, rec := range ds.Records {
		if seen[rec.ID] {
			continue
		}
		seen[rec.ID] = true
		s.Constituencies++

		party := rec.Summary.WinningPartyName
		if i, ok := seatIdx[party]; ok {
			s.Seats[i].Seats++
		} else {
			seatIdx[party] = len(s.Seats)
			s.Seats = append(s.Seats, PartySeats{Party: party, Colour: rec.Summary.PartyColour, Seats: 1})
		}

		for _, v := range rec.CandidateVoteInfo {
			s.TotalVotes += v.Votes
			if i, ok := voteIdx[v.PartyAbbrevTransformed]; ok {
				s.Votes[i].Votes += v.Votes
				continue
			}
			voteIdx[v.PartyAbbrevTransformed] = len(s.Votes)
			s.Votes = append(s.Votes, PartyVotes{Party: v.PartyAbbrevTransformed, Colour: v.PartyColour, Votes: v.Votes})
		}
	}

	sort.SliceStable(s.Seats, func(i, j int) bool {
		if s.Seats[i].Seats != s.Seats[j].Seats {
			return s.Seats[i].Seats > s.Seats[j].Seats
		}
		return s.Seats[i].Party < s.Seats[j].Party
	})
	sort.SliceStable(s.Votes, func(i, j int) bool {
		if s.Votes[i].Votes != s.Votes[j].Votes {
			return s.Votes[i].Votes > s.Votes[j].Votes
		}
		return s.Votes[i].Party < s.Votes[j].Party
	})
	return s
}

// Share returns a party's fraction of all votes cast, or 0.
func (s Summary) Share(party string) float64 {
	if s.TotalVotes == 0 {
		return 0
	}
	for _, v := range s.Votes {
		if v.Party == party {
			return float64(v.Votes) / float64(s.TotalVotes)
		}
	}
	return 0
}
