package food

import (
	"time"
)

const (
	FieldExpiryDate = "expiryDate"
	FieldAddedDate  = "addedDate"
	FieldUserEmail  = "userEmail"

	// ShowcaseLimit caps the expiring-soon and recent lists.
	ShowcaseLimit = 6
)

type SortOrder int

const (
	SortNone SortOrder = 0
	SortAsc  SortOrder = 1
	SortDesc SortOrder = -1
)

// FoodQuery describes one read against the food collection. Zero values mean
// "no constraint": no filter, no sort, no limit.
type FoodQuery struct {
	// Bucket, when set, keeps only foods whose expiry Classify places in it
	// at Now. Foods without a date expiry are in no bucket.
	Bucket    Bucket
	Now       time.Time
	UserEmail string

	SortField string
	SortOrder SortOrder
	Limit     int64
}

func AllFoodsQuery() FoodQuery {
	return FoodQuery{}
}

func ExpiringSoonQuery(now time.Time) FoodQuery {
	return FoodQuery{
		Bucket:    BucketExpiringSoon,
		Now:       now.UTC(),
		SortField: FieldExpiryDate,
		SortOrder: SortAsc,
		Limit:     ShowcaseLimit,
	}
}

func RecentQuery() FoodQuery {
	return FoodQuery{
		SortField: FieldAddedDate,
		SortOrder: SortDesc,
		Limit:     ShowcaseLimit,
	}
}

func ExpiredQuery(now time.Time) FoodQuery {
	return FoodQuery{
		Bucket:    BucketExpired,
		Now:       now.UTC(),
		SortField: FieldExpiryDate,
		SortOrder: SortDesc,
	}
}

func OwnerQuery(email string) FoodQuery {
	return FoodQuery{UserEmail: email}
}
