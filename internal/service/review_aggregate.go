package service

import "github.com/iliyamo/campus-housing/internal/model"

// Score is the signed sum of vote values.
func Score(votes []model.Vote) int {
	total := 0
	for _, v := range votes {
		total += v.VoteType
	}
	return total
}

// AverageRating returns the arithmetic mean of the ratings and false when
// there are no reviews.
func AverageRating(reviews []model.Review) (float64, bool) {
	if len(reviews) == 0 {
		return 0, false
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews)), true
}

// ProjectVote is the local view of a vote before the server confirms it:
// the voter's previous vote is dropped and, unless value is VoteClear, a
// new one is appended.  votes is not modified.
func ProjectVote(votes []model.Vote, voterID string, value int) []model.Vote {
	out := make([]model.Vote, 0, len(votes)+1)
	for _, v := range votes {
		if v.UserID != voterID {
			out = append(out, v)
		}
	}
	if value != model.VoteClear {
		out = append(out, model.Vote{UserID: voterID, VoteType: value})
	}
	return out
}
