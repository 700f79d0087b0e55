package store

import (
	"regexp"

	"gopkg.in/mgo.v2/bson"
)

// Query selects documents by field equality and string prefixes, with an
// optional ordering and limit.
type Query struct {
	Eq     bson.M
	Prefix map[string]string
	Sort   string
	Limit  int
}

// All matches every document of a collection.
func All() Query {
	return Query{}
}

// Where starts a query with one equality condition.
func Where(field string, value interface{}) Query {
	return Query{}.And(field, value)
}

// And adds an equality condition.
func (q Query) And(field string, value interface{}) Query {
	eq := make(bson.M, len(q.Eq)+1)
	for k, v := range q.Eq {
		eq[k] = v
	}
	eq[field] = value
	q.Eq = eq
	return q
}

// HasPrefix matches string fields starting with prefix.
func (q Query) HasPrefix(field, prefix string) Query {
	p := make(map[string]string, len(q.Prefix)+1)
	for k, v := range q.Prefix {
		p[k] = v
	}
	p[field] = prefix
	q.Prefix = p
	return q
}

// OrderBy sorts by field, descending when prefixed with "-".
func (q Query) OrderBy(field string) Query {
	q.Sort = field
	return q
}

// Take limits the number of returned documents.
func (q Query) Take(n int) Query {
	q.Limit = n
	return q
}

func (q Query) selector() bson.M {
	m := bson.M{}
	for k, v := range q.Eq {
		m[k] = v
	}
	for k, p := range q.Prefix {
		m[k] = bson.RegEx{Pattern: "^" + regexp.QuoteMeta(p)}
	}
	return m
}
