package models

// ReviewStats summarizes the published review set. RatingHistogram
// always carries all five rating buckets, zero-filled, and AvgRating is
// pre-formatted to two decimal places ("0.00" when nothing is
// published) because that is the contract the front end renders from.
type ReviewStats struct {
	TotalPublished  int64         `json:"totalPublished"`
	AvgRating       string        `json:"avgRating"`
	Last30dCount    int64         `json:"last30dCount"`
	RatingHistogram map[int]int64 `json:"ratingHistogram"`
}
