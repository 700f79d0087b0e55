package store

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/mgo.v2/bson"
)

// Memory is an in-process store. Documents are kept as bson maps so reads
// decode through the same tags the mgo driver uses.
type Memory struct {
	mu          sync.RWMutex
	seq         int64
	collections map[string]map[string]entry
}

type entry struct {
	seq int64
	doc bson.M
}

// NewMemory returns an empty in-process store.
func NewMemory() *Memory {
	return &Memory{collections: map[string]map[string]entry{}}
}

// C returns a collection handle.
func (m *Memory) C(name string) Collection {
	return memoryCollection{m, name}
}

// Close is a no-op.
func (m *Memory) Close() {}

type memoryCollection struct {
	m    *Memory
	name string
}

func (c memoryCollection) docs() map[string]entry {
	return c.m.collections[c.name]
}

func (c memoryCollection) writable() map[string]entry {
	docs, exists := c.m.collections[c.name]
	if !exists {
		docs = map[string]entry{}
		c.m.collections[c.name] = docs
	}
	return docs
}

func toM(doc interface{}) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	m := bson.M{}
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func decode(doc bson.M, out interface{}) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}

func docID(doc bson.M) (string, error) {
	id, ok := doc["_id"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("document has no string _id")
	}
	return id, nil
}

func (c memoryCollection) FindId(ctx context.Context, id string, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.m.mu.RLock()
	defer c.m.mu.RUnlock()
	e, exists := c.docs()[id]
	if !exists {
		return ErrNotFound
	}
	return decode(e.doc, out)
}

func (c memoryCollection) match(q Query) []entry {
	list := []entry{}
	for _, e := range c.docs() {
		if matches(e.doc, q) {
			list = append(list, e)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].seq < list[j].seq
	})
	if q.Sort != "" {
		field, desc := q.Sort, false
		if strings.HasPrefix(field, "-") {
			field, desc = field[1:], true
		}
		sort.SliceStable(list, func(i, j int) bool {
			if desc {
				return less(list[j].doc[field], list[i].doc[field])
			}
			return less(list[i].doc[field], list[j].doc[field])
		})
	}
	if q.Limit > 0 && len(list) > q.Limit {
		list = list[:q.Limit]
	}
	return list
}

func (c memoryCollection) Find(ctx context.Context, q Query, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("find output must be a pointer to a slice, got %T", out)
	}
	c.m.mu.RLock()
	list := c.match(q)
	c.m.mu.RUnlock()

	slice := rv.Elem()
	result := reflect.MakeSlice(slice.Type(), 0, len(list))
	for _, e := range list {
		item := reflect.New(slice.Type().Elem())
		if err := decode(e.doc, item.Interface()); err != nil {
			return err
		}
		result = reflect.Append(result, item.Elem())
	}
	slice.Set(result)
	return nil
}

func (c memoryCollection) Count(ctx context.Context, q Query) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	c.m.mu.RLock()
	defer c.m.mu.RUnlock()
	q.Limit = 0
	return len(c.match(q)), nil
}

func (c memoryCollection) Insert(ctx context.Context, doc interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m, err := toM(doc)
	if err != nil {
		return err
	}
	id, err := docID(m)
	if err != nil {
		return err
	}
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	docs := c.writable()
	if _, exists := docs[id]; exists {
		return ErrDuplicate
	}
	c.m.seq++
	docs[id] = entry{c.m.seq, m}
	return nil
}

func (c memoryCollection) Put(ctx context.Context, id string, doc interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m, err := toM(doc)
	if err != nil {
		return err
	}
	m["_id"] = id
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	docs := c.writable()
	e, exists := docs[id]
	if !exists {
		c.m.seq++
		e.seq = c.m.seq
	}
	e.doc = m
	docs[id] = e
	return nil
}

func (c memoryCollection) Update(ctx context.Context, id string, u Update) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	e, exists := c.docs()[id]
	if !exists {
		return ErrNotFound
	}
	return apply(e.doc, u)
}

func (c memoryCollection) UpdateAll(ctx context.Context, q Query, u Update) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	q.Limit = 0
	list := c.match(q)
	for _, e := range list {
		if err := apply(e.doc, u); err != nil {
			return 0, err
		}
	}
	return len(list), nil
}

func (c memoryCollection) RemoveId(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	docs := c.docs()
	if _, exists := docs[id]; !exists {
		return ErrNotFound
	}
	delete(docs, id)
	return nil
}

func (c memoryCollection) RemoveAll(ctx context.Context, q Query) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	q.Limit = 0
	docs := c.docs()
	list := c.match(q)
	for _, e := range list {
		id, _ := docID(e.doc)
		delete(docs, id)
	}
	return len(list), nil
}

func apply(doc bson.M, u Update) error {
	for k, v := range u.Set {
		m, err := toM(bson.M{"v": v})
		if err != nil {
			return err
		}
		doc[k] = m["v"]
	}
	for k, v := range u.Inc {
		sum, err := add(doc[k], v)
		if err != nil {
			return fmt.Errorf("cannot increment %s: %v", k, err)
		}
		doc[k] = sum
	}
	return nil
}

func matches(doc bson.M, q Query) bool {
	for k, v := range q.Eq {
		if !equal(doc[k], v) {
			return false
		}
	}
	for k, p := range q.Prefix {
		s, ok := doc[k].(string)
		if !ok || !strings.HasPrefix(s, p) {
			return false
		}
	}
	return true
}

func equal(a, b interface{}) bool {
	if x, ok := integer(a); ok {
		if y, ok := integer(b); ok {
			return x == y
		}
	}
	return reflect.DeepEqual(a, b)
}

func integer(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

func add(current, delta interface{}) (interface{}, error) {
	d, ok := integer(delta)
	if !ok {
		return nil, fmt.Errorf("non integer delta %T", delta)
	}
	if current == nil {
		return int(d), nil
	}
	n, ok := integer(current)
	if !ok {
		return nil, fmt.Errorf("non integer field %T", current)
	}
	return int(n + d), nil
}

func less(a, b interface{}) bool {
	switch x := a.(type) {
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Before(y)
		}
	case string:
		if y, ok := b.(string); ok {
			return x < y
		}
	case float64:
		if y, ok := b.(float64); ok {
			return x < y
		}
	}
	if x, ok := integer(a); ok {
		if y, ok := integer(b); ok {
			return x < y
		}
	}
	return false
}
