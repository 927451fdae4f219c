// Package book implements an address book that stores the addresses of the
// deployed contracts by name.
package book

import (
	"sort"

	"go.dedis.ch/zilliqa/scilla"
	"go.dedis.ch/zilliqa/store/kv"
	"golang.org/x/xerrors"
)

// BucketName is the name of the bucket of the entries.
var BucketName = []byte("contracts")

// Entry is a named address.
type Entry struct {
	Name    string
	Address scilla.Address
}

// Book is an address book persisted in a key/value database.
type Book struct {
	db kv.DB
}

// NewBook returns a book using the database.
func NewBook(db kv.DB) (Book, error) {
	err := db.Update(BucketName, func(kv.Bucket) error { return nil })
	if err != nil {
		return Book{}, xerrors.Errorf("failed to create bucket: %v", err)
	}

	return Book{db: db}, nil
}

// Add stores the address under the name. An existing entry is replaced.
func (b Book) Add(name string, addr scilla.Address) error {
	if name == "" {
		return xerrors.New("empty name")
	}

	err := b.db.Update(BucketName, func(bucket kv.Bucket) error {
		return bucket.Set([]byte(name), addr[:])
	})
	if err != nil {
		return xerrors.Errorf("failed to store entry: %v", err)
	}

	return nil
}

// Get returns the address of the name.
func (b Book) Get(name string) (scilla.Address, error) {
	var addr scilla.Address

	err := b.db.View(BucketName, func(bucket kv.Bucket) error {
		value := bucket.Get([]byte(name))
		if value == nil {
			return xerrors.Errorf("entry '%s' not found", name)
		}

		var err error
		addr, err = scilla.AddressFromBytes(value)

		return err
	})
	if err != nil {
		return addr, xerrors.Errorf("failed to read entry: %v", err)
	}

	return addr, nil
}

// Resolve returns the address of the name, or parses the name if it is an
// address.
func (b Book) Resolve(nameOrAddr string) (scilla.Address, error) {
	addr, err := scilla.ParseAddress(nameOrAddr)
	if err == nil {
		return addr, nil
	}

	return b.Get(nameOrAddr)
}

// Remove deletes the entry of the name.
func (b Book) Remove(name string) error {
	err := b.db.Update(BucketName, func(bucket kv.Bucket) error {
		return bucket.Delete([]byte(name))
	})
	if err != nil {
		return xerrors.Errorf("failed to delete entry: %v", err)
	}

	return nil
}

// List returns the entries sorted by name.
func (b Book) List() ([]Entry, error) {
	var entries []Entry

	err := b.db.View(BucketName, func(bucket kv.Bucket) error {
		return bucket.ForEach(func(k, v []byte) error {
			addr, err := scilla.AddressFromBytes(v)
			if err != nil {
				return xerrors.Errorf("invalid entry '%s': %v", k, err)
			}

			entries = append(entries, Entry{Name: string(k), Address: addr})

			return nil
		})
	})
	if err != nil {
		return nil, xerrors.Errorf("failed to read entries: %v", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	return entries, nil
}
