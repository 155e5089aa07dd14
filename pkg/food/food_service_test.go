package food_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"Expiry-Food-Track/domain"
	"Expiry-Food-Track/entities"
	"Expiry-Food-Track/pkg/food"
	"Expiry-Food-Track/pkg/food/foodtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newService() (food.FoodService, *foodtest.Repository) {
	repo := foodtest.NewRepository()
	return food.NewFoodService(repo, func() time.Time { return now }), repo
}

func at(d time.Duration) *entities.DateValue {
	return entities.DateOf(now.Add(d))
}

const day = 24 * time.Hour

func strPtr(s string) *string { return &s }

func TestAddFood_NormalizesTextExpiry(t *testing.T) {
	svc, repo := newService()

	res, err := svc.AddFood(context.Background(), &entities.Food{
		Title:      "Milk",
		ExpiryDate: entities.TextDate("2099-01-01"),
	})
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)

	id, ok := res.InsertedID.(primitive.ObjectID)
	require.True(t, ok)
	stored := repo.Get(id)
	require.NotNil(t, stored)
	require.NotNil(t, stored.ExpiryDate)
	assert.False(t, stored.ExpiryDate.IsText)
	assert.True(t, stored.ExpiryDate.Time.Equal(time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestAddFood_KeepsUnparseableTextAndStampsAddedDate(t *testing.T) {
	svc, repo := newService()

	res, err := svc.AddFood(context.Background(), &entities.Food{
		Title:      "Mystery jar",
		ExpiryDate: entities.TextDate("when it smells"),
	})
	require.NoError(t, err)

	stored := repo.Get(res.InsertedID.(primitive.ObjectID))
	assert.True(t, stored.ExpiryDate.IsText)
	assert.Equal(t, "when it smells", stored.ExpiryDate.Text)
	require.NotNil(t, stored.AddedDate)
	assert.True(t, stored.AddedDate.Time.Equal(now))
}

func TestAddFood_IgnoresClientID(t *testing.T) {
	svc, repo := newService()
	clientID := primitive.NewObjectID()

	res, err := svc.AddFood(context.Background(), &entities.Food{ID: clientID, Title: "Eggs"})
	require.NoError(t, err)
	assert.NotEqual(t, clientID, res.InsertedID)
	assert.Nil(t, repo.Get(clientID))
}

func TestGetExpiringSoonFoods_OrderedAndCapped(t *testing.T) {
	svc, repo := newService()
	for i := 9; i >= 0; i-- {
		repo.Seed(entities.Food{Title: fmt.Sprintf("soon-%d", i), ExpiryDate: at(time.Duration(i) * 12 * time.Hour)})
	}
	repo.Seed(entities.Food{Title: "expired", ExpiryDate: at(-time.Hour)})
	repo.Seed(entities.Food{Title: "fresh", ExpiryDate: at(6 * day)})
	repo.Seed(entities.Food{Title: "legacy", ExpiryDate: entities.TextDate("2026-03-11")})

	foods, err := svc.GetExpiringSoonFoods(context.Background())
	require.NoError(t, err)
	require.Len(t, foods, food.ShowcaseLimit)

	for i, f := range foods {
		assert.Equal(t, food.BucketExpiringSoon, food.Classify(f.ExpiryDate.Time, now))
		if i > 0 {
			assert.False(t, f.ExpiryDate.Time.Before(foods[i-1].ExpiryDate.Time), "not ascending at %d", i)
		}
	}
	assert.Equal(t, "soon-0", foods[0].Title)
}

func TestGetExpiringSoonFoods_InclusiveBounds(t *testing.T) {
	svc, repo := newService()
	repo.Seed(entities.Food{Title: "now", ExpiryDate: at(0)})
	repo.Seed(entities.Food{Title: "edge", ExpiryDate: at(5 * day)})
	repo.Seed(entities.Food{Title: "past edge", ExpiryDate: at(5*day + time.Second)})

	foods, err := svc.GetExpiringSoonFoods(context.Background())
	require.NoError(t, err)
	titles := []string{}
	for _, f := range foods {
		titles = append(titles, f.Title)
	}
	assert.Equal(t, []string{"now", "edge"}, titles)
}

func TestGetRecentFoods_NewestFirstAndCapped(t *testing.T) {
	svc, repo := newService()
	for i := 0; i < 8; i++ {
		repo.Seed(entities.Food{Title: fmt.Sprintf("item-%d", i), AddedDate: at(-time.Duration(i) * day)})
	}

	foods, err := svc.GetRecentFoods(context.Background())
	require.NoError(t, err)
	require.Len(t, foods, 6)
	for i := 1; i < len(foods); i++ {
		assert.False(t, foods[i].AddedDate.Time.After(foods[i-1].AddedDate.Time))
	}
	assert.Equal(t, "item-0", foods[0].Title)
}

func TestGetExpiredFoods_MostRecentlyExpiredFirst(t *testing.T) {
	svc, repo := newService()
	repo.Seed(entities.Food{Title: "long gone", ExpiryDate: at(-30 * day)})
	repo.Seed(entities.Food{Title: "yesterday", ExpiryDate: at(-day)})
	repo.Seed(entities.Food{Title: "a second ago", ExpiryDate: at(-time.Second)})
	repo.Seed(entities.Food{Title: "right now", ExpiryDate: at(0)})
	for i := 0; i < 7; i++ {
		repo.Seed(entities.Food{Title: "old", ExpiryDate: at(-time.Duration(40+i) * day)})
	}

	foods, err := svc.GetExpiredFoods(context.Background())
	require.NoError(t, err)
	require.Len(t, foods, 10, "expired list is not capped")
	assert.Equal(t, "a second ago", foods[0].Title)
	assert.Equal(t, "yesterday", foods[1].Title)
	for i := 1; i < len(foods); i++ {
		assert.False(t, foods[i].ExpiryDate.Time.After(foods[i-1].ExpiryDate.Time))
	}
}

func TestListQueries_EmptyStoreGivesEmptySlices(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	for name, list := range map[string]func(context.Context) ([]*entities.Food, error){
		"all":      svc.GetAllFoods,
		"soon":     svc.GetExpiringSoonFoods,
		"recent":   svc.GetRecentFoods,
		"expired":  svc.GetExpiredFoods,
		"by owner": func(ctx context.Context) ([]*entities.Food, error) { return svc.GetFoodsByOwner(ctx, "x@y.z") },
	} {
		foods, err := list(ctx)
		require.NoError(t, err, name)
		assert.NotNil(t, foods, name)
		assert.Empty(t, foods, name)
	}
}

func TestGetFoodsByOwner(t *testing.T) {
	svc, repo := newService()
	repo.Seed(entities.Food{Title: "a", UserEmail: "me@example.com"})
	repo.Seed(entities.Food{Title: "b", UserEmail: "you@example.com"})
	repo.Seed(entities.Food{Title: "c", UserEmail: "me@example.com"})

	foods, err := svc.GetFoodsByOwner(context.Background(), "me@example.com")
	require.NoError(t, err)
	assert.Len(t, foods, 2)
	for _, f := range foods {
		assert.Equal(t, "me@example.com", f.UserEmail)
	}
}

func TestGetFoodByID(t *testing.T) {
	svc, repo := newService()
	id := repo.Seed(entities.Food{Title: "Bread"})

	f, err := svc.GetFoodByID(context.Background(), id.Hex())
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, "Bread", f.Title)

	f, err = svc.GetFoodByID(context.Background(), primitive.NewObjectID().Hex())
	require.NoError(t, err)
	assert.Nil(t, f)

	_, err = svc.GetFoodByID(context.Background(), "not-an-id")
	assert.ErrorIs(t, err, domain.ErrInvalidFoodID)
}

func TestUpdateFood_OnlyAllowListedFields(t *testing.T) {
	svc, repo := newService()
	expiry := entities.DateOf(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC))
	id := repo.Seed(entities.Food{Title: "Old", Category: "Dairy", ExpiryDate: expiry})

	res, err := svc.UpdateFood(context.Background(), id.Hex(), domain.UpdateFoodItemRequest{Title: strPtr("X")})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.MatchedCount)
	assert.EqualValues(t, 1, res.ModifiedCount)

	stored := repo.Get(id)
	assert.Equal(t, "X", stored.Title)
	assert.Equal(t, "Dairy", stored.Category)
	assert.True(t, stored.ExpiryDate.Time.Equal(expiry.Time))
}

func TestUpdateFood_MissingIDIsNoOp(t *testing.T) {
	svc, _ := newService()

	res, err := svc.UpdateFood(context.Background(), primitive.NewObjectID().Hex(),
		domain.UpdateFoodItemRequest{Category: strPtr("Bakery")})
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)
	assert.Zero(t, res.MatchedCount)
	assert.Zero(t, res.ModifiedCount)
}

func TestUpdateFood_EmptyRequestSkipsStore(t *testing.T) {
	svc, repo := newService()
	id := repo.Seed(entities.Food{Title: "Tea"})

	res, err := svc.UpdateFood(context.Background(), id.Hex(), domain.UpdateFoodItemRequest{})
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)
	assert.Zero(t, repo.Calls["UpdateFoodFields"])
}

func TestDeleteFood(t *testing.T) {
	svc, repo := newService()
	id := repo.Seed(entities.Food{Title: "Cheese"})

	res, err := svc.DeleteFood(context.Background(), id.Hex())
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.DeletedCount)
	assert.Zero(t, repo.Len())

	res, err = svc.DeleteFood(context.Background(), id.Hex())
	require.NoError(t, err)
	assert.Zero(t, res.DeletedCount)

	_, err = svc.DeleteFood(context.Background(), "xyz")
	assert.ErrorIs(t, err, domain.ErrInvalidFoodID)
}

func TestAddNote_AppendsInOrder(t *testing.T) {
	svc, repo := newService()
	first := entities.Note{Note: "opened", PostedAt: "2026-03-01T00:00:00.000Z", UserEmail: "a@b.co"}
	id := repo.Seed(entities.Food{Title: "Jam", Notes: []entities.Note{first}})

	ok, err := svc.AddNote(context.Background(), id.Hex(), domain.AddNoteRequest{Note: "half left", UserEmail: "c@d.co"})
	require.NoError(t, err)
	assert.True(t, ok)

	notes := repo.Get(id).Notes
	require.Len(t, notes, 2)
	assert.Equal(t, first, notes[0])
	assert.Equal(t, "half left", notes[1].Note)
	assert.Equal(t, "c@d.co", notes[1].UserEmail)
	assert.Equal(t, "2026-03-10T12:00:00.000Z", notes[1].PostedAt)
}

func TestAddNote_UnknownFood(t *testing.T) {
	svc, _ := newService()

	ok, err := svc.AddNote(context.Background(), primitive.NewObjectID().Hex(), domain.AddNoteRequest{Note: "hi"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRepairExpiryDates_FixesSkipsAndIsIdempotent(t *testing.T) {
	svc, repo := newService()
	fixA := repo.Seed(entities.Food{Title: "a", ExpiryDate: entities.TextDate("2030-01-01")})
	fixB := repo.Seed(entities.Food{Title: "b", ExpiryDate: entities.TextDate("2031-06-15T00:00:00Z")})
	bad := repo.Seed(entities.Food{Title: "c", ExpiryDate: entities.TextDate("someday")})
	repo.Seed(entities.Food{Title: "d", ExpiryDate: at(day)})
	repo.Seed(entities.Food{Title: "e"})

	report, err := svc.RepairExpiryDates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Fixed)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, "Fixed 2 expiryDate values.", report.Message())

	assert.False(t, repo.Get(fixA).ExpiryDate.IsText)
	assert.True(t, repo.Get(fixB).ExpiryDate.Time.Equal(time.Date(2031, 6, 15, 0, 0, 0, 0, time.UTC)))
	assert.True(t, repo.Get(bad).ExpiryDate.IsText)

	again, err := svc.RepairExpiryDates(context.Background())
	require.NoError(t, err)
	assert.Zero(t, again.Fixed)
}

func TestRepairExpiryDates_ContinuesPastFailedUpdate(t *testing.T) {
	svc, repo := newService()
	broken := repo.Seed(entities.Food{ExpiryDate: entities.TextDate("2030-01-01")})
	fine := repo.Seed(entities.Food{ExpiryDate: entities.TextDate("2030-01-02")})
	repo.SetExpiryErrs[broken] = errors.New("write conflict")

	report, err := svc.RepairExpiryDates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Fixed)
	assert.Equal(t, 1, report.Skipped)
	assert.False(t, repo.Get(fine).ExpiryDate.IsText)
}

func TestRepairExpiryDates_BrowserDateForms(t *testing.T) {
	svc, repo := newService()
	ids := []primitive.ObjectID{
		repo.Seed(entities.Food{ExpiryDate: entities.TextDate("Tue Mar 10 2026 12:00:00 GMT+0000 (Coordinated Universal Time)")}),
		repo.Seed(entities.Food{ExpiryDate: entities.TextDate("Mar 10 2026")}),
		repo.Seed(entities.Food{ExpiryDate: entities.TextDate("2026-3-10")}),
	}

	report, err := svc.RepairExpiryDates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.Fixed)
	assert.Zero(t, report.Skipped)

	assert.True(t, repo.Get(ids[0]).ExpiryDate.Time.Equal(now))
	assert.True(t, repo.Get(ids[1]).ExpiryDate.Time.Equal(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)))
	assert.True(t, repo.Get(ids[2]).ExpiryDate.Time.Equal(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)))
}

func TestAddFood_KeepsExtraFieldsButNotClientID(t *testing.T) {
	svc, repo := newService()

	res, err := svc.AddFood(context.Background(), &entities.Food{
		Title: "Milk",
		Extra: map[string]any{"_id": "client-chosen", "brand": "Acme"},
	})
	require.NoError(t, err)

	stored := repo.Get(res.InsertedID.(primitive.ObjectID))
	assert.Equal(t, map[string]any{"brand": "Acme"}, stored.Extra)
}

func TestRepairExpiryDates_ScanFailure(t *testing.T) {
	svc, repo := newService()
	repo.Err = errors.New("connection refused")

	_, err := svc.RepairExpiryDates(context.Background())
	assert.Error(t, err)
}

func TestStoreErrorsPropagate(t *testing.T) {
	svc, repo := newService()
	repo.Err = errors.New("no reachable servers")
	ctx := context.Background()
	id := primitive.NewObjectID().Hex()

	_, err := svc.GetRecentFoods(ctx)
	assert.Error(t, err)
	_, err = svc.GetFoodByID(ctx, id)
	assert.Error(t, err)
	_, err = svc.AddFood(ctx, &entities.Food{})
	assert.Error(t, err)
	_, err = svc.AddNote(ctx, id, domain.AddNoteRequest{Note: "x"})
	assert.Error(t, err)
}
