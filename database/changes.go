package database

import (
	"fmt"
	"reflect"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
)

// Changes is a partial update: top-level fields to $set and to $unset.
type Changes struct {
	Set   bson.M
	Unset []string
}

func (c Changes) Empty() bool { return len(c.Set) == 0 && len(c.Unset) == 0 }

func (c Changes) document() bson.M {
	update := bson.M{}
	if len(c.Set) > 0 {
		update["$set"] = c.Set
	}
	if len(c.Unset) > 0 {
		unset := bson.M{}
		for _, k := range c.Unset {
			unset[k] = ""
		}
		update["$unset"] = unset
	}
	return update
}

// Diff compares two versions of a document by their bson encoding. Fields
// equal in both are left out; _id is never part of the result.
func Diff(before, after any) (Changes, error) {
	old, err := toM(before)
	if err != nil {
		return Changes{}, err
	}
	cur, err := toM(after)
	if err != nil {
		return Changes{}, err
	}

	ch := Changes{Set: bson.M{}}
	for k, v := range cur {
		if k == "_id" {
			continue
		}
		if prev, ok := old[k]; ok && reflect.DeepEqual(prev, v) {
			continue
		}
		ch.Set[k] = v
	}
	for k := range old {
		if _, ok := cur[k]; !ok && k != "_id" {
			ch.Unset = append(ch.Unset, k)
		}
	}
	sort.Strings(ch.Unset)
	return ch, nil
}

func toM(doc any) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return m, nil
}
