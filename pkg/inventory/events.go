package inventory

import (
	"strconv"

	"github.com/yreynhout/aggregatesource/pkg/aggregate"
)

// Event names as they appear in stores and on the wire.
const (
	InventoryItemCreatedName      = "inventory-item-created"
	InventoryItemRenamedName      = "inventory-item-renamed"
	ItemsCheckedInToInventoryName = "items-checked-into-inventory"
	ItemsRemovedFromInventoryName = "items-removed-from-inventory"
	InventoryItemDeactivatedName  = "inventory-item-deactivated"
)

// ItemID identifies an inventory item.
type ItemID int64

func (id ItemID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

type InventoryItemCreated struct {
	ID   ItemID `json:"Id"`
	Name string `json:"Name"`
}

type InventoryItemRenamed struct {
	ID      ItemID `json:"Id"`
	NewName string `json:"NewName"`
}

type ItemsCheckedInToInventory struct {
	ID    ItemID `json:"Id"`
	Count int    `json:"Count"`
}

type ItemsRemovedFromInventory struct {
	ID    ItemID `json:"Id"`
	Count int    `json:"Count"`
}

type InventoryItemDeactivated struct {
	ID ItemID `json:"Id"`
}

func NewInventoryItemCreated(id ItemID, name string) aggregate.Event {
	return aggregate.NewEvent(InventoryItemCreatedName, InventoryItemCreated{ID: id, Name: name})
}

func NewInventoryItemRenamed(id ItemID, newName string) aggregate.Event {
	return aggregate.NewEvent(InventoryItemRenamedName, InventoryItemRenamed{ID: id, NewName: newName})
}

func NewItemsCheckedInToInventory(id ItemID, count int) aggregate.Event {
	return aggregate.NewEvent(ItemsCheckedInToInventoryName, ItemsCheckedInToInventory{ID: id, Count: count})
}

func NewItemsRemovedFromInventory(id ItemID, count int) aggregate.Event {
	return aggregate.NewEvent(ItemsRemovedFromInventoryName, ItemsRemovedFromInventory{ID: id, Count: count})
}

func NewInventoryItemDeactivated(id ItemID) aggregate.Event {
	return aggregate.NewEvent(InventoryItemDeactivatedName, InventoryItemDeactivated{ID: id})
}
