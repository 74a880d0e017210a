package cli

import (
	"context"
	"log"
	"os"
	"strconv"

	"github.com/dberzins/stockroom/internal/client/models"
)

func (a *App) promptInt(prompt string, fallback int) (int, error) {
	text, err := getSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return 0, err
	}
	if text == "" {
		return fallback, nil
	}
	return strconv.Atoi(text)
}

// Add creates a new item in a group: add <group>. Name, quantity, location
// and alert threshold are prompted interactively.
func (a *App) Add(ctx context.Context, args []string) error {
	if len(args) < 1 {
		printlnFn("Usage: add <group>")
		return nil
	}
	groupID := args[0]

	name, err := getSimpleText(a.reader, "Item name", os.Stdout)
	if err != nil {
		return err
	}
	quantity, err := a.promptInt("Quantity", 0)
	if err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}
	location, err := getSimpleText(a.reader, "Location (optional)", os.Stdout)
	if err != nil {
		return err
	}
	threshold, err := a.promptInt("Alert threshold (optional)", 0)
	if err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}

	record := models.Record{
		Name:           name,
		Quantity:       quantity,
		Location:       location,
		AlertThreshold: threshold,
		GroupID:        groupID,
	}

	if err := a.coordinator.CreateRecord(ctx, record); err != nil {
		log.Printf("error adding item: %s", err.Error())
		return err
	}
	printlnFn("Added.")
	return nil
}

// Edit rewrites an item's fields: edit <group> <item>. Current values are
// kept when the user presses Enter without typing anything.
func (a *App) Edit(ctx context.Context, args []string) error {
	if len(args) < 2 {
		printlnFn("Usage: edit <group> <item>")
		return nil
	}

	record, err := a.coordinator.GetRecord(args[0], args[1])
	if err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}

	name, err := getSimpleText(a.reader, "Item name ["+record.Name+"]", os.Stdout)
	if err != nil {
		return err
	}
	if name != "" {
		record.Name = name
	}

	quantity, err := a.promptInt("Quantity ["+strconv.Itoa(record.Quantity)+"]", record.Quantity)
	if err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}
	record.Quantity = quantity

	location, err := getSimpleText(a.reader, "Location ["+record.Location+"]", os.Stdout)
	if err != nil {
		return err
	}
	if location != "" {
		record.Location = location
	}

	threshold, err := a.promptInt("Alert threshold ["+strconv.Itoa(record.AlertThreshold)+"]", record.AlertThreshold)
	if err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}
	record.AlertThreshold = threshold

	if err := a.coordinator.UpdateRecord(ctx, record); err != nil {
		log.Printf("error editing item: %s", err.Error())
		return err
	}
	printlnFn("Updated.")
	return nil
}

// Qty adjusts an item's quantity by a signed delta: qty <group> <item> <n>.
func (a *App) Qty(ctx context.Context, args []string) error {
	if len(args) < 3 {
		printlnFn("Usage: qty <group> <item> <delta>")
		return nil
	}
	delta, err := strconv.Atoi(args[2])
	if err != nil {
		printlnFn("Delta must be an integer, e.g. 'qty g1 i1 -2'")
		return nil
	}
	if err := a.coordinator.AdjustQuantity(ctx, args[0], args[1], delta); err != nil {
		log.Printf("error adjusting quantity: %s", err.Error())
		return err
	}
	printlnFn("Adjusted.")
	return nil
}

// Delete removes one item: del <group> <item>.
func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) < 2 {
		printlnFn("Usage: del <group> <item>")
		return nil
	}
	if err := a.coordinator.DeleteRecord(ctx, args[0], args[1]); err != nil {
		log.Printf("error deleting item: %s", err.Error())
		return err
	}
	printlnFn("Deleted.")
	return nil
}
