package food

import (
	"time"
)

// Bucket is the lifecycle state of a food relative to a point in time.
type Bucket string

const (
	BucketFresh        Bucket = "FRESH"
	BucketExpiringSoon Bucket = "EXPIRING_SOON"
	BucketExpired      Bucket = "EXPIRED"
)

// ExpiringSoonWindow is how far ahead of now an expiry still counts as soon.
const ExpiringSoonWindow = 5 * 24 * time.Hour

// ExpiringSoonRange returns the inclusive [from, to] window for now.
func ExpiringSoonRange(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	return now, now.Add(ExpiringSoonWindow)
}

// Classify places expiry into exactly one bucket. Both ends of the
// expiring-soon window are inclusive.
func Classify(expiry, now time.Time) Bucket {
	from, to := ExpiringSoonRange(now)
	switch {
	case expiry.Before(from):
		return BucketExpired
	case !expiry.After(to):
		return BucketExpiringSoon
	default:
		return BucketFresh
	}
}
