package entities

import (
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// JSONTimeLayout matches the ISO form browsers produce for Date values.
const JSONTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// DateValue is a date field that older documents may still hold as a plain
// string. Once normalized it is always a UTC date.
type DateValue struct {
	Time   time.Time
	Text   string
	IsText bool
}

func DateOf(t time.Time) *DateValue {
	return &DateValue{Time: t.UTC()}
}

func TextDate(s string) *DateValue {
	return &DateValue{Text: s, IsText: true}
}

func (d DateValue) IsZero() bool {
	return !d.IsText && d.Time.IsZero()
}

func (d DateValue) MarshalBSONValue() (bsontype.Type, []byte, error) {
	switch {
	case d.IsText:
		return bson.MarshalValue(d.Text)
	case d.Time.IsZero():
		return bsontype.Null, nil, nil
	default:
		return bson.MarshalValue(d.Time.UTC())
	}
}

func (d *DateValue) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.DateTime:
		*d = DateValue{Time: raw.Time().UTC()}
	case bsontype.String:
		*d = DateValue{Text: raw.StringValue(), IsText: true}
	case bsontype.Int64:
		*d = DateValue{Time: time.UnixMilli(raw.Int64()).UTC()}
	case bsontype.Int32:
		*d = DateValue{Time: time.UnixMilli(int64(raw.Int32())).UTC()}
	case bsontype.Double:
		*d = DateValue{Time: time.UnixMilli(int64(raw.Double())).UTC()}
	case bsontype.Null, bsontype.Undefined:
		*d = DateValue{}
	default:
		return fmt.Errorf("entities: cannot decode BSON %s into a date", t)
	}
	return nil
}

func (d DateValue) MarshalJSON() ([]byte, error) {
	switch {
	case d.IsText:
		return json.Marshal(d.Text)
	case d.Time.IsZero():
		return []byte("null"), nil
	default:
		return json.Marshal(d.Time.UTC().Format(JSONTimeLayout))
	}
}

// UnmarshalJSON keeps strings verbatim; callers decide whether they parse.
// Numbers are read as Unix milliseconds.
func (d *DateValue) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch val := v.(type) {
	case nil:
		*d = DateValue{}
	case string:
		*d = DateValue{Text: val, IsText: true}
	case float64:
		*d = DateValue{Time: time.UnixMilli(int64(val)).UTC()}
	default:
		return fmt.Errorf("entities: cannot decode JSON %s into a date", data)
	}
	return nil
}
