package models

import (
	"encoding/json"
	"fmt"
	"math"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Facilities is the amenity bag on a property. Known keys are typed; any
// other key a client sends is kept in Extra so legacy and ad-hoc documents
// survive a round trip through the API.
type Facilities struct {
	Bedrooms  int
	Bathrooms int
	Parking   bool
	Gym       bool
	Pool      bool
	Extra     map[string]interface{}
}

func (f Facilities) toMap() map[string]interface{} {
	m := map[string]interface{}{
		"bedrooms":  f.Bedrooms,
		"bathrooms": f.Bathrooms,
		"parking":   f.Parking,
		"gym":       f.Gym,
		"pool":      f.Pool,
	}
	for k, v := range f.Extra {
		m[k] = v
	}
	return m
}

func (f *Facilities) fromMap(m map[string]interface{}) {
	*f = Facilities{}
	for k, v := range m {
		switch k {
		case "bedrooms":
			f.Bedrooms = asInt(v)
		case "bathrooms":
			f.Bathrooms = asInt(v)
		case "parking":
			f.Parking = asBool(v)
		case "gym":
			f.Gym = asBool(v)
		case "pool":
			f.Pool = asBool(v)
		default:
			if f.Extra == nil {
				f.Extra = map[string]interface{}{}
			}
			f.Extra[k] = v
		}
	}
}

// MarshalJSON flattens known keys and Extra into a single object.
func (f Facilities) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.toMap())
}

func (f *Facilities) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	f.fromMap(m)
	return nil
}

// MarshalBSONValue always stores the facilities as a flat document.
func (f Facilities) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(f.toMap())
}

// UnmarshalBSONValue accepts a missing, null or document value so that
// documents written without facilities still decode.
func (f *Facilities) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.Null, bsontype.Undefined:
		*f = Facilities{}
		return nil
	case bsontype.EmbeddedDocument:
		var m map[string]interface{}
		if err := bson.UnmarshalValue(t, data, &m); err != nil {
			return err
		}
		f.fromMap(m)
		return nil
	default:
		return fmt.Errorf("cannot decode %s into Facilities", t)
	}
}

func asInt(v interface{}) int {
	switch typed := v.(type) {
	case int:
		return typed
	case int32:
		return int(typed)
	case int64:
		return int(typed)
	case float64:
		// JSON numbers arrive as float64; round rather than truncate so a
		// client sending 2.5 does not silently lose a bedroom.
		return int(math.Round(typed))
	default:
		return 0
	}
}

func asBool(v interface{}) bool {
	switch typed := v.(type) {
	case bool:
		return typed
	case string:
		return typed == "true"
	default:
		return false
	}
}
