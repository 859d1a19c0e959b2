// Package directory enforces the rules every front-end applies to the contact
// store: the capacity bound, empty-directory and not-found checks, and the
// menu command table.
package directory

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/smileynet/addressbook/internal/contact"
	"github.com/smileynet/addressbook/internal/store"
)

// DefaultCapacity is the maximum number of contacts unless configured otherwise.
const DefaultCapacity = 1000

// Sentinel errors for conditions reported back to the user. None is fatal.
var (
	ErrEmptyDirectory   = errors.New("directory: directory is empty")
	ErrNotFound         = errors.New("directory: contact not found")
	ErrCapacityExceeded = errors.New("directory: capacity exceeded")
	ErrInvalidSelection = errors.New("directory: invalid menu selection")
	ErrInvalidIndex     = errors.New("directory: invalid match index")
)

// Directory owns a contact store for the lifetime of a session.
type Directory struct {
	store    *store.Store
	capacity int
	log      *zap.Logger
}

// Option configures a Directory.
type Option func(*Directory)

// WithCapacity sets the maximum number of contacts. Non-positive values are ignored.
func WithCapacity(n int) Option {
	return func(d *Directory) {
		if n > 0 {
			d.capacity = n
		}
	}
}

// WithLogger sets the logger used for mutation records.
func WithLogger(l *zap.Logger) Option {
	return func(d *Directory) {
		if l != nil {
			d.log = l
		}
	}
}

// New creates a Directory over s.
func New(s *store.Store, opts ...Option) *Directory {
	d := &Directory{
		store:    s,
		capacity: DefaultCapacity,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Capacity returns the configured maximum size.
func (d *Directory) Capacity() int {
	return d.capacity
}

// Size returns the number of contacts held.
func (d *Directory) Size() int {
	return d.store.Size()
}

// CheckCapacity reports ErrCapacityExceeded when no further contact fits.
// Front-ends call it before collecting a new record.
func (d *Directory) CheckCapacity() error {
	if d.store.Size() >= d.capacity {
		d.log.Info("add rejected", zap.Int("size", d.store.Size()), zap.Int("capacity", d.capacity))
		return fmt.Errorf("%w: limit is %d", ErrCapacityExceeded, d.capacity)
	}
	return nil
}

// Add appends c unless the directory is full.
func (d *Directory) Add(c contact.Contact) error {
	if err := d.CheckCapacity(); err != nil {
		return err
	}
	d.store.Add(c)
	d.log.Debug("contact added", zap.String("name", c.Name), zap.Int("size", d.store.Size()))
	return nil
}

// List returns every contact in insertion order.
func (d *Directory) List() ([]contact.Contact, error) {
	if d.store.Size() == 0 {
		return nil, ErrEmptyDirectory
	}
	return d.store.All(), nil
}

// Remove deletes every contact named name.
func (d *Directory) Remove(name string) error {
	if d.store.Size() == 0 {
		return ErrEmptyDirectory
	}
	before := d.store.Size()
	if !d.store.Remove(name) {
		d.log.Info("remove found nothing", zap.String("name", name))
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	d.log.Debug("contacts removed",
		zap.String("name", name),
		zap.Int("removed", before-d.store.Size()),
		zap.Int("size", d.store.Size()))
	return nil
}

// Search returns the contacts named name. The matches stay valid for
// Overwrite until the next Remove or Clear.
func (d *Directory) Search(name string) ([]store.Match, error) {
	if d.store.Size() == 0 {
		return nil, ErrEmptyDirectory
	}
	matches := d.store.Search(name)
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return matches, nil
}

// Overwrite replaces the record behind m with c, keeping its position.
func (d *Directory) Overwrite(m store.Match, c contact.Contact) error {
	if err := d.store.Replace(m, c); err != nil {
		return fmt.Errorf("directory: overwrite: %w", err)
	}
	d.log.Debug("contact modified", zap.Int("index", m.Index), zap.String("name", c.Name))
	return nil
}

// Clear removes every contact.
func (d *Directory) Clear() {
	n := d.store.Size()
	d.store.Clear()
	d.log.Debug("directory cleared", zap.Int("removed", n))
}

// Pick resolves a 1-based index typed during modify disambiguation.
// The sentinel -1 returns done=true.
func Pick(matches []store.Match, text string) (m store.Match, done bool, err error) {
	n, convErr := strconv.Atoi(strings.TrimSpace(text))
	if convErr != nil {
		return store.Match{}, false, fmt.Errorf("%w: %q", ErrInvalidIndex, text)
	}
	if n == -1 {
		return store.Match{}, true, nil
	}
	if n < 1 || n > len(matches) {
		return store.Match{}, false, fmt.Errorf("%w: %d not in 1..%d", ErrInvalidIndex, n, len(matches))
	}
	return matches[n-1], false, nil
}
