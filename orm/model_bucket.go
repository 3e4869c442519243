/*
Package orm provides an easy to use db wrapper.

It breaks the state space into prefixed sections called Buckets.
Each bucket contains only one type of model, addressed by a primary
key. There are no secondary indexes; the registry needs direct lookups
only, so buckets operate straight on the KVStore.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/goldtix/registry"
	"github.com/goldtix/registry/errors"
)

const (
	// SeqID is a constant to use to get a default ID sequence.
	SeqID = "id"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Model is implemented by any entity that can be stored in a ModelBucket.
type Model interface {
	registry.Persistent
	Validate() error
}

// ModelBucket stores models of a single type under a shared key prefix.
//
// This is a generic building block that should generally be embedded in a
// type-safe wrapper to ensure all data is of the same type.
type ModelBucket struct {
	name   string
	prefix []byte
}

// NewModelBucket creates a bucket to store models under the given name.
// Panics on invalid bucket name as this is a programming error.
func NewModelBucket(name string) ModelBucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("illegal bucket name: %q", name))
	}
	return ModelBucket{
		name:   name,
		prefix: []byte(name + ":"),
	}
}

// Name returns the name of the bucket.
func (b ModelBucket) Name() string {
	return b.name
}

// DBKey is the full key we store in the db, including the bucket prefix.
func (b ModelBucket) DBKey(key []byte) []byte {
	return append(b.prefix, key...)
}

// One queries the database for a single model instance. Lookup is done by
// the primary key. The result is loaded into the given destination model.
//
// This method returns ErrNotFound if the entity does not exist in the
// database.
func (b ModelBucket) One(db registry.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot load from the store")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "cannot unmarshal into %T", dest)
	}
	return nil
}

// Has returns true if an entity with the given primary key exists.
func (b ModelBucket) Has(db registry.ReadOnlyKVStore, key []byte) (bool, error) {
	ok, err := db.Has(b.DBKey(key))
	if err != nil {
		return false, errors.Wrap(err, "cannot query the store")
	}
	return ok, nil
}

// Put saves the given model in the database. The model is validated before
// it is persisted.
func (b ModelBucket) Put(db registry.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrapf(err, "cannot marshal %T", m)
	}
	if err := db.Set(b.DBKey(key), raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

// Delete removes an entity with the given primary key from the database.
// It returns ErrNotFound if an entity with the given key does not exist.
func (b ModelBucket) Delete(db registry.KVStore, key []byte) error {
	ok, err := b.Has(db, key)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "no entity under key %X", key)
	}
	return db.Delete(b.DBKey(key))
}

// Sequence returns a named sequence scoped to this bucket.
func (b ModelBucket) Sequence(name string) Sequence {
	return NewSequence(b.name, name)
}
