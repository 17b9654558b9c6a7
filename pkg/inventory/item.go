// Package inventory holds the inventory item aggregate.
package inventory

import (
	"errors"

	"github.com/yreynhout/aggregatesource/pkg/aggregate"
)

var (
	ErrEmptyName          = errors.New("we need a name, not an empty piece of string")
	ErrNonPositiveCount   = errors.New("count must be greater than 0")
	ErrAlreadyDeactivated = errors.New("item is already deactivated")
	ErrNotCreated         = errors.New("item has not been created")
)

// Item is an event-sourced inventory item. Its fields are written only
// by the when* handlers.
type Item struct {
	root aggregate.Root

	created     bool
	id          ItemID
	name        string
	count       int
	deactivated bool
}

// New returns an item with no state, ready to be initialized from history.
func New() *Item {
	it := &Item{}
	aggregate.Route(&it.root, InventoryItemCreatedName, it.whenCreated)
	aggregate.Route(&it.root, InventoryItemRenamedName, it.whenRenamed)
	aggregate.Route(&it.root, ItemsCheckedInToInventoryName, it.whenCheckedIn)
	aggregate.Route(&it.root, ItemsRemovedFromInventoryName, it.whenRemoved)
	aggregate.Route(&it.root, InventoryItemDeactivatedName, it.whenDeactivated)
	return it
}

// CreateItem creates a new item. The creation is its first pending change.
func CreateItem(id ItemID, name string) (*Item, error) {
	it := New()
	if err := it.root.Apply(NewInventoryItemCreated(id, name)); err != nil {
		return nil, err
	}
	return it, nil
}

// ChangeName renames the item.
func (it *Item) ChangeName(newName string) error {
	if !it.created {
		return aggregate.Reject(ErrNotCreated)
	}
	if len(newName) == 0 {
		return aggregate.Reject(ErrEmptyName)
	}
	return it.root.Apply(NewInventoryItemRenamed(it.id, newName))
}

// CheckIn adds count items to the inventory.
func (it *Item) CheckIn(count int) error {
	if !it.created {
		return aggregate.Reject(ErrNotCreated)
	}
	if count <= 0 {
		return aggregate.Reject(ErrNonPositiveCount)
	}
	return it.root.Apply(NewItemsCheckedInToInventory(it.id, count))
}

// Remove takes count items out of the inventory. The resulting count is
// not floored at zero.
func (it *Item) Remove(count int) error {
	if !it.created {
		return aggregate.Reject(ErrNotCreated)
	}
	if count <= 0 {
		return aggregate.Reject(ErrNonPositiveCount)
	}
	return it.root.Apply(NewItemsRemovedFromInventory(it.id, count))
}

// Deactivate marks the item as no longer in use. It can happen only once.
func (it *Item) Deactivate() error {
	if !it.created {
		return aggregate.Reject(ErrNotCreated)
	}
	if it.deactivated {
		return aggregate.Reject(ErrAlreadyDeactivated)
	}
	return it.root.Apply(NewInventoryItemDeactivated(it.id))
}

func (it *Item) ID() ItemID        { return it.id }
func (it *Item) Name() string      { return it.name }
func (it *Item) Count() int        { return it.count }
func (it *Item) Deactivated() bool { return it.deactivated }

func (it *Item) Initialize(events []aggregate.Event) error { return it.root.Initialize(events) }
func (it *Item) HasChanges() bool                          { return it.root.HasChanges() }
func (it *Item) Changes() []aggregate.Event                { return it.root.Changes() }
func (it *Item) ClearChanges()                             { it.root.ClearChanges() }

func (it *Item) whenCreated(e InventoryItemCreated) {
	it.created = true
	it.id = e.ID
	it.name = e.Name
	it.count = 0
	it.deactivated = false
}

func (it *Item) whenRenamed(e InventoryItemRenamed) {
	it.name = e.NewName
}

func (it *Item) whenCheckedIn(e ItemsCheckedInToInventory) {
	it.count += e.Count
}

func (it *Item) whenRemoved(e ItemsRemovedFromInventory) {
	it.count -= e.Count
}

func (it *Item) whenDeactivated(InventoryItemDeactivated) {
	it.deactivated = true
}
