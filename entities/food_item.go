package entities

import (
	"encoding/json"
	"maps"
	"reflect"
	"slices"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Food is a stored grocery item. The collection has no schema, so the codecs
// below fill a known field only when the stored or sent value fits its type.
// Everything else, including known keys holding an unexpected type, is kept
// verbatim in Extra and written back out unchanged.
type Food struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title,omitempty" json:"title,omitempty"`
	Quantity    any                `bson:"quantity,omitempty" json:"quantity,omitempty"` // number or free text, stored as sent
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	FoodImage   string             `bson:"foodImage,omitempty" json:"foodImage,omitempty"`
	ExpiryDate  *DateValue         `bson:"expiryDate,omitempty" json:"expiryDate,omitempty"`
	AddedDate   *DateValue         `bson:"addedDate,omitempty" json:"addedDate,omitempty"`
	UserEmail   string             `bson:"userEmail,omitempty" json:"userEmail,omitempty"`
	Notes       []Note             `bson:"notes,omitempty" json:"notes,omitempty"`

	Extra map[string]any `bson:"-" json:"-"`
}

// Note is embedded in Food and only ever appended.
type Note struct {
	Note      string `bson:"note" json:"note"`
	PostedAt  string `bson:"postedAt" json:"postedAt"`
	UserEmail string `bson:"userEmail" json:"userEmail"`
}

// foodKeys is the document order used when encoding.
var foodKeys = []string{
	"_id", "title", "quantity", "category", "description",
	"foodImage", "expiryDate", "addedDate", "userEmail", "notes",
}

func (f *Food) fieldPtrs() map[string]any {
	return map[string]any{
		"_id":         &f.ID,
		"title":       &f.Title,
		"quantity":    &f.Quantity,
		"category":    &f.Category,
		"description": &f.Description,
		"foodImage":   &f.FoodImage,
		"expiryDate":  &f.ExpiryDate,
		"addedDate":   &f.AddedDate,
		"userEmail":   &f.UserEmail,
		"notes":       &f.Notes,
	}
}

// knownValues returns the set known fields keyed by document name.
func (f Food) knownValues() map[string]any {
	out := make(map[string]any, len(foodKeys))
	if !f.ID.IsZero() {
		out["_id"] = f.ID
	}
	if f.Title != "" {
		out["title"] = f.Title
	}
	if f.Quantity != nil {
		out["quantity"] = f.Quantity
	}
	if f.Category != "" {
		out["category"] = f.Category
	}
	if f.Description != "" {
		out["description"] = f.Description
	}
	if f.FoodImage != "" {
		out["foodImage"] = f.FoodImage
	}
	if f.ExpiryDate != nil {
		out["expiryDate"] = f.ExpiryDate
	}
	if f.AddedDate != nil {
		out["addedDate"] = f.AddedDate
	}
	if f.UserEmail != "" {
		out["userEmail"] = f.UserEmail
	}
	if len(f.Notes) > 0 {
		out["notes"] = f.Notes
	}
	return out
}

func (f *Food) keep(key string, v any) {
	if f.Extra == nil {
		f.Extra = make(map[string]any)
	}
	f.Extra[key] = v
}

func (f Food) MarshalBSON() ([]byte, error) {
	known := f.knownValues()
	doc := make(bson.D, 0, len(known)+len(f.Extra))
	for _, key := range foodKeys {
		if v, ok := known[key]; ok {
			doc = append(doc, bson.E{Key: key, Value: v})
		}
	}
	for _, key := range slices.Sorted(maps.Keys(f.Extra)) {
		if _, ok := known[key]; !ok {
			doc = append(doc, bson.E{Key: key, Value: f.Extra[key]})
		}
	}
	return bson.Marshal(doc)
}

func (f *Food) UnmarshalBSON(data []byte) error {
	// The generic decode gives nested documents as maps for Extra.
	var generic bson.M
	if err := bson.Unmarshal(data, &generic); err != nil {
		return err
	}
	elems, err := bson.Raw(data).Elements()
	if err != nil {
		return err
	}

	*f = Food{}
	fields := f.fieldPtrs()
	for _, elem := range elems {
		key := elem.Key()
		if key == "quantity" {
			f.Quantity = generic[key]
			continue
		}
		if ptr, ok := fields[key]; ok {
			if err := elem.Value().Unmarshal(ptr); err == nil {
				continue
			}
			reflect.ValueOf(ptr).Elem().SetZero()
		}
		f.keep(key, generic[key])
	}
	return nil
}

func (f Food) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(f.Extra)+len(foodKeys))
	maps.Copy(out, f.Extra)
	maps.Copy(out, f.knownValues())
	if _, ok := out["_id"]; !ok {
		out["_id"] = f.ID
	}
	return json.Marshal(out)
}

func (f *Food) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*f = Food{}
	fields := f.fieldPtrs()
	for key, msg := range raw {
		if ptr, ok := fields[key]; ok {
			if err := json.Unmarshal(msg, ptr); err == nil {
				continue
			}
			reflect.ValueOf(ptr).Elem().SetZero()
		}
		var v any
		if err := json.Unmarshal(msg, &v); err != nil {
			return err
		}
		f.keep(key, v)
	}
	return nil
}
