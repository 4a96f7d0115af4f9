package mocks

import (
	"bytes"
	"encoding/json"
	"math"
)

// object is a JSON object that keeps insertion order, so grouped results
// come back in first-seen order the way a client would display them
type object struct {
	keys   []string
	values map[string]interface{}
}

func newObject() *object {
	return &object{values: make(map[string]interface{})}
}

func (o *object) set(key string, value interface{}) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

func (o *object) get(key string) (interface{}, bool) {
	v, ok := o.values[key]
	return v, ok
}

func (o *object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// num maps values JSON cannot carry (NaN, Inf) to null
func num(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}
