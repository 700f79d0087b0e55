package store

import (
	"context"

	"gopkg.in/mgo.v2"
)

// Mongo is the mgo backed store.
type Mongo struct {
	Session *mgo.Session
	Name    string
}

// Dial connects to the given mongo url and ensures the board indexes.
func Dial(url, name string) (*Mongo, error) {
	session, err := mgo.Dial(url)
	if err != nil {
		return nil, err
	}

	session.SetMode(mgo.Monotonic, true)
	m := &Mongo{Session: session, Name: name}
	if err := m.ensureIndexes(); err != nil {
		session.Close()
		return nil, err
	}
	return m, nil
}

func (m *Mongo) ensureIndexes() error {
	db := m.Session.DB(m.Name)
	indexes := map[string][]mgo.Index{
		"users": {
			{Key: []string{"email"}, Unique: true, Background: true},
			{Key: []string{"lowercaseUsername"}, Unique: true, Background: true},
		},
		"posts": {
			{Key: []string{"userId", "-createdAt"}, Background: true},
			{Key: []string{"-createdAt"}, Background: true},
		},
		"likes": {
			{Key: []string{"postId", "userId"}, Background: true},
		},
		"comments": {
			{Key: []string{"postId", "-createdAt"}, Background: true},
		},
		"notifications": {
			{Key: []string{"receiverId", "-createdAt"}, Background: true},
		},
	}
	for name, list := range indexes {
		for _, index := range list {
			if err := db.C(name).EnsureIndex(index); err != nil {
				return err
			}
		}
	}
	return nil
}

// C returns a collection handle. Each operation runs on a copied session.
func (m *Mongo) C(name string) Collection {
	return mongoCollection{m, name}
}

// Close releases the root session.
func (m *Mongo) Close() {
	m.Session.Close()
}

type mongoCollection struct {
	m    *Mongo
	name string
}

func (c mongoCollection) with(ctx context.Context, fn func(*mgo.Collection) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := c.m.Session.Copy()
	defer s.Close()
	return translate(fn(s.DB(c.m.Name).C(c.name)))
}

func translate(err error) error {
	switch {
	case err == mgo.ErrNotFound:
		return ErrNotFound
	case mgo.IsDup(err):
		return ErrDuplicate
	}
	return err
}

func (c mongoCollection) FindId(ctx context.Context, id string, out interface{}) error {
	return c.with(ctx, func(col *mgo.Collection) error {
		return col.FindId(id).One(out)
	})
}

func (c mongoCollection) Find(ctx context.Context, q Query, out interface{}) error {
	return c.with(ctx, func(col *mgo.Collection) error {
		query := col.Find(q.selector())
		if q.Sort != "" {
			query = query.Sort(q.Sort)
		}
		if q.Limit > 0 {
			query = query.Limit(q.Limit)
		}
		return query.All(out)
	})
}

func (c mongoCollection) Count(ctx context.Context, q Query) (n int, err error) {
	err = c.with(ctx, func(col *mgo.Collection) error {
		n, err = col.Find(q.selector()).Count()
		return err
	})
	return
}

func (c mongoCollection) Insert(ctx context.Context, doc interface{}) error {
	return c.with(ctx, func(col *mgo.Collection) error {
		return col.Insert(doc)
	})
}

func (c mongoCollection) Put(ctx context.Context, id string, doc interface{}) error {
	return c.with(ctx, func(col *mgo.Collection) error {
		_, err := col.UpsertId(id, doc)
		return err
	})
}

func (c mongoCollection) Update(ctx context.Context, id string, u Update) error {
	return c.with(ctx, func(col *mgo.Collection) error {
		return col.UpdateId(id, u.bson())
	})
}

func (c mongoCollection) UpdateAll(ctx context.Context, q Query, u Update) (n int, err error) {
	err = c.with(ctx, func(col *mgo.Collection) error {
		info, err := col.UpdateAll(q.selector(), u.bson())
		if err != nil {
			return err
		}
		n = info.Updated
		return nil
	})
	return
}

func (c mongoCollection) RemoveId(ctx context.Context, id string) error {
	return c.with(ctx, func(col *mgo.Collection) error {
		return col.RemoveId(id)
	})
}

func (c mongoCollection) RemoveAll(ctx context.Context, q Query) (n int, err error) {
	err = c.with(ctx, func(col *mgo.Collection) error {
		info, err := col.RemoveAll(q.selector())
		if err != nil {
			return err
		}
		n = info.Removed
		return nil
	})
	return
}
