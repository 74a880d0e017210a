package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/dberzins/stockroom/internal/client/models"
)

// NewGroup creates an empty inventory group with a prompted name.
func (a *App) NewGroup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Group name", os.Stdout)
	if err != nil {
		return err
	}
	if name == "" {
		printlnFn("Group name must not be empty.")
		return nil
	}

	id, err := a.coordinator.CreateGroup(ctx, name)
	if err != nil {
		log.Printf("error creating group: %s", err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Created group %s (%s).", name, id))
	return nil
}

// DeleteGroup removes a whole group and every item in it: delgroup <group>.
func (a *App) DeleteGroup(ctx context.Context, args []string) error {
	if len(args) < 1 {
		printlnFn("Usage: delgroup <group>")
		return nil
	}
	if err := a.coordinator.DeleteGroup(ctx, args[0]); err != nil {
		log.Printf("error deleting group: %s", err.Error())
		return err
	}
	printlnFn("Deleted.")
	return nil
}

// Import creates a new group from pasted item lines. Each line is
// "name,quantity[,location[,threshold]]"; parsing stops at the first empty
// line. Lines that fail to parse abort the import before anything is sent.
func (a *App) Import(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Group name", os.Stdout)
	if err != nil {
		return err
	}
	if name == "" {
		printlnFn("Group name must not be empty.")
		return nil
	}

	lines, err := GetLines(a.reader, "Items, one per line: name,quantity[,location[,threshold]]", os.Stdout)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		printlnFn("Nothing to import.")
		return nil
	}

	records := make([]models.Record, 0, len(lines))
	for i, line := range lines {
		r, err := parseImportLine(line)
		if err != nil {
			printlnFn(fmt.Sprintf("Line %d: %s", i+1, err.Error()))
			return err
		}
		records = append(records, r)
	}

	id, err := a.coordinator.ImportGroup(ctx, name, records)
	if err != nil {
		log.Printf("import finished with errors: %s", err.Error())
	}
	if imported := a.coordinator.ListRecords(id); len(imported) > 0 {
		printlnFn(fmt.Sprintf("Imported group %s (%s), %d items.", name, id, len(imported)))
	}
	return err
}

func parseImportLine(line string) (models.Record, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 2 {
		return models.Record{}, fmt.Errorf("expected at least name,quantity, got %q", line)
	}

	name := strings.TrimSpace(fields[0])
	if name == "" {
		return models.Record{}, fmt.Errorf("item name must not be empty")
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return models.Record{}, fmt.Errorf("bad quantity %q", fields[1])
	}

	r := models.Record{Name: name, Quantity: quantity}

	if len(fields) > 2 {
		r.Location = strings.TrimSpace(fields[2])
	}
	if len(fields) > 3 {
		threshold, err := strconv.Atoi(strings.TrimSpace(fields[3]))
		if err != nil {
			return models.Record{}, fmt.Errorf("bad threshold %q", fields[3])
		}
		r.AlertThreshold = threshold
	}

	return r, nil
}
