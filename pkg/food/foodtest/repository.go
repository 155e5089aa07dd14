// Package foodtest provides an in-memory food.FoodRepository for tests.
// It follows the store's query semantics closely enough for service and
// handler tests: range filters only match real dates, and sorting places
// missing values before text before dates.
package foodtest

import (
	"context"
	"maps"
	"reflect"
	"sort"
	"sync"
	"time"

	"Expiry-Food-Track/domain"
	"Expiry-Food-Track/entities"
	"Expiry-Food-Track/pkg/food"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Repository struct {
	mu    sync.Mutex
	order []primitive.ObjectID
	foods map[primitive.ObjectID]*entities.Food

	// Err, when set, is returned by every call.
	Err error
	// SetExpiryErrs fails SetExpiryDate for specific ids.
	SetExpiryErrs map[primitive.ObjectID]error

	Calls map[string]int
}

var _ food.FoodRepository = (*Repository)(nil)

func NewRepository() *Repository {
	return &Repository{
		foods:         make(map[primitive.ObjectID]*entities.Food),
		SetExpiryErrs: make(map[primitive.ObjectID]error),
		Calls:         make(map[string]int),
	}
}

// Seed stores f as-is, keeping text dates, and returns its id.
func (r *Repository) Seed(f entities.Food) primitive.ObjectID {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f.ID.IsZero() {
		f.ID = primitive.NewObjectID()
	}
	r.put(clone(&f))
	return f.ID
}

// Get returns a copy of the stored food, or nil.
func (r *Repository) Get(id primitive.ObjectID) *entities.Food {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.foods[id]; ok {
		return clone(f)
	}
	return nil
}

func (r *Repository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.foods)
}

func (r *Repository) FindFoods(_ context.Context, q food.FoodQuery) ([]*entities.Food, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls["FindFoods"]++
	if r.Err != nil {
		return nil, r.Err
	}

	out := make([]*entities.Food, 0)
	for _, id := range r.order {
		f := r.foods[id]
		if matches(f, q) {
			out = append(out, clone(f))
		}
	}

	if q.SortField != "" && q.SortOrder != food.SortNone {
		sort.SliceStable(out, func(i, j int) bool {
			c := compareDates(field(out[i], q.SortField), field(out[j], q.SortField))
			if q.SortOrder == food.SortDesc {
				return c > 0
			}
			return c < 0
		})
	}
	if q.Limit > 0 && int64(len(out)) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (r *Repository) GetFoodByID(_ context.Context, id primitive.ObjectID) (*entities.Food, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls["GetFoodByID"]++
	if r.Err != nil {
		return nil, r.Err
	}
	f, ok := r.foods[id]
	if !ok {
		return nil, domain.ErrFoodItemNotFound
	}
	return clone(f), nil
}

func (r *Repository) AddFood(_ context.Context, f *entities.Food) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls["AddFood"]++
	if r.Err != nil {
		return primitive.NilObjectID, r.Err
	}
	f.ID = primitive.NewObjectID()
	r.put(clone(f))
	return f.ID, nil
}

func (r *Repository) UpdateFoodFields(_ context.Context, id primitive.ObjectID, fields map[string]any) (domain.UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls["UpdateFoodFields"]++
	if r.Err != nil {
		return domain.UpdateResult{}, r.Err
	}
	f, ok := r.foods[id]
	if !ok {
		return domain.UpdateResult{Acknowledged: true}, nil
	}

	before := *f
	for k, v := range fields {
		delete(f.Extra, k)
		switch k {
		case "title":
			f.Title, _ = v.(string)
		case "quantity":
			f.Quantity = v
		case "category":
			f.Category, _ = v.(string)
		}
	}
	var modified int64
	if before.Title != f.Title || before.Category != f.Category || !reflect.DeepEqual(before.Quantity, f.Quantity) {
		modified = 1
	}
	return domain.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: modified}, nil
}

func (r *Repository) DeleteFood(_ context.Context, id primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls["DeleteFood"]++
	if r.Err != nil {
		return 0, r.Err
	}
	if _, ok := r.foods[id]; !ok {
		return 0, nil
	}
	delete(r.foods, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return 1, nil
}

func (r *Repository) PushNote(_ context.Context, id primitive.ObjectID, note entities.Note) (domain.UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls["PushNote"]++
	if r.Err != nil {
		return domain.UpdateResult{}, r.Err
	}
	f, ok := r.foods[id]
	if !ok {
		return domain.UpdateResult{Acknowledged: true}, nil
	}
	f.Notes = append(f.Notes, note)
	return domain.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (r *Repository) ScanExpiryDates(ctx context.Context, fn func(id primitive.ObjectID, expiry *entities.DateValue) error) error {
	r.mu.Lock()
	r.Calls["ScanExpiryDates"]++
	if r.Err != nil {
		r.mu.Unlock()
		return r.Err
	}
	type item struct {
		id     primitive.ObjectID
		expiry *entities.DateValue
	}
	items := make([]item, 0, len(r.order))
	for _, id := range r.order {
		items = append(items, item{id: id, expiry: cloneDate(r.foods[id].ExpiryDate)})
	}
	r.mu.Unlock()

	// fn calls back into the repository, so the lock is not held here.
	for _, it := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(it.id, it.expiry); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) SetExpiryDate(_ context.Context, id primitive.ObjectID, expiry time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls["SetExpiryDate"]++
	if err := r.SetExpiryErrs[id]; err != nil {
		return err
	}
	if r.Err != nil {
		return r.Err
	}
	if f, ok := r.foods[id]; ok {
		f.ExpiryDate = entities.DateOf(expiry)
	}
	return nil
}

func (r *Repository) put(f *entities.Food) {
	if _, exists := r.foods[f.ID]; !exists {
		r.order = append(r.order, f.ID)
	}
	r.foods[f.ID] = f
}

func matches(f *entities.Food, q food.FoodQuery) bool {
	if q.UserEmail != "" && f.UserEmail != q.UserEmail {
		return false
	}
	if q.Bucket == "" {
		return true
	}

	// Range operators never match across types, so text dates are excluded.
	d := f.ExpiryDate
	if d == nil || d.IsText || d.Time.IsZero() {
		return false
	}
	return food.Classify(d.Time, q.Now) == q.Bucket
}

func field(f *entities.Food, name string) *entities.DateValue {
	switch name {
	case food.FieldExpiryDate:
		return f.ExpiryDate
	case food.FieldAddedDate:
		return f.AddedDate
	}
	return nil
}

func rank(d *entities.DateValue) int {
	switch {
	case d == nil || d.IsZero():
		return 0
	case d.IsText:
		return 1
	default:
		return 2
	}
}

func compareDates(a, b *entities.DateValue) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return ra - rb
	}
	switch ra {
	case 1:
		switch {
		case a.Text < b.Text:
			return -1
		case a.Text > b.Text:
			return 1
		}
	case 2:
		return a.Time.Compare(b.Time)
	}
	return 0
}

func clone(f *entities.Food) *entities.Food {
	c := *f
	c.ExpiryDate = cloneDate(f.ExpiryDate)
	c.AddedDate = cloneDate(f.AddedDate)
	c.Extra = maps.Clone(f.Extra)
	if f.Notes != nil {
		c.Notes = append([]entities.Note(nil), f.Notes...)
	}
	return &c
}

func cloneDate(d *entities.DateValue) *entities.DateValue {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}
