package inventory

import "github.com/yreynhout/aggregatesource/pkg/repository"

// NewRepository returns a repository of items over es with every item
// event registered.
func NewRepository(es repository.EventStream, opts ...repository.Option) *repository.Repository[*Item] {
	opts = append([]repository.Option{
		repository.WithEvent[InventoryItemCreated](InventoryItemCreatedName),
		repository.WithEvent[InventoryItemRenamed](InventoryItemRenamedName),
		repository.WithEvent[ItemsCheckedInToInventory](ItemsCheckedInToInventoryName),
		repository.WithEvent[ItemsRemovedFromInventory](ItemsRemovedFromInventoryName),
		repository.WithEvent[InventoryItemDeactivated](InventoryItemDeactivatedName),
	}, opts...)
	return repository.New(es, New, opts...)
}
