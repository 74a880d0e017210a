package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/dberzins/stockroom/internal/client/models"
)

// Groups prints every cached inventory group.
func (a *App) Groups(ctx context.Context) error {
	groups := a.coordinator.ListGroups()
	if len(groups) == 0 {
		printlnFn("No groups cached. Try 'refresh' (or 'demo' for sample data).")
		return nil
	}
	for _, g := range groups {
		printlnFn(fmt.Sprintf("%s  %s", g.ID, g.Name))
	}
	return nil
}

// Items prints the cached records of one group: items <group>.
func (a *App) Items(ctx context.Context, args []string) error {
	if len(args) < 1 {
		printlnFn("Usage: items <group>")
		return nil
	}
	records := a.coordinator.ListRecords(args[0])
	if len(records) == 0 {
		printlnFn("No items in this group.")
		return nil
	}
	for _, r := range records {
		printlnFn(fmt.Sprintf("%s  %-20s qty=%d  loc=%s", r.ItemID, r.Name, r.Quantity, r.Location))
	}
	return nil
}

// Show prints one record in full: show <group> <item>.
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) < 2 {
		printlnFn("Usage: show <group> <item>")
		return nil
	}
	r, err := a.coordinator.GetRecord(args[0], args[1])
	if err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("ID:        %s", r.ItemID))
	printlnFn(fmt.Sprintf("Name:      %s", r.Name))
	printlnFn(fmt.Sprintf("Quantity:  %d", r.Quantity))
	printlnFn(fmt.Sprintf("Location:  %s", r.Location))
	printlnFn(fmt.Sprintf("Threshold: %d", r.AlertThreshold))
	printlnFn(fmt.Sprintf("Group:     %s (%s)", r.GroupName, r.GroupID))
	return nil
}

// Refresh forces a full refetch regardless of staleness.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.coordinator.Refresh(ctx); err != nil {
		log.Printf("Refresh failed: %s", err.Error())
		return err
	}
	printlnFn("Refreshed.")
	return nil
}

// Demo loads records from the local database into the cache: the whole
// snapshot, or one group when given as an argument. Fresh installs carry a
// bundled sample inventory, and every successful refresh overwrites the
// snapshot, so this doubles as offline browsing of the last fetched data.
func (a *App) Demo(ctx context.Context, args []string) error {
	var (
		records []models.Record
		err     error
	)
	if len(args) > 0 {
		records, err = a.items.GetByGroup(ctx, args[0])
	} else {
		records, err = a.items.GetAll(ctx)
	}
	if err != nil {
		log.Printf("error loading local data: %s", err.Error())
		return err
	}
	a.coordinator.LoadLocal(records)
	printlnFn(fmt.Sprintf("Loaded %d items from the local store.", len(records)))
	return nil
}
