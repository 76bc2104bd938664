package service

import "hotnews-aggregator/internal/entity"

// ScoreFunc computes an item's score from its 0-based position in the
// provider's own ranking. The platform is passed so a future variant can fold
// the configured platform weight into the score; RankScore ignores it.
type ScoreFunc func(platform entity.Platform, index int) float64

// RankScore is the default scoring: 100 minus the provider rank index, floored
// at 1 so batches larger than 100 items never produce non-positive scores.
func RankScore(_ entity.Platform, index int) float64 {
	score := float64(100 - index)
	if score < 1 {
		return 1
	}
	return score
}
