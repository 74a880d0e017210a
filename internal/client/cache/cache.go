// Package cache holds the in-memory, grouped copy of inventory records that
// the UI reads from. It is a pure container: no locking and no network
// access. The sync coordinator owns the single instance and serializes all
// access to it.
package cache

import (
	"github.com/dberzins/stockroom/internal/client/models"
)

// Cache maps group id -> ordered records. Group order is the order in which
// group ids were first seen; record order within a group is whatever order
// records were inserted or replaced in.
type Cache struct {
	records map[string][]models.Record
	order   []string
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{records: make(map[string][]models.Record)}
}

// Groups derives one Group per distinct group id present, in first-seen
// order. A group's display name is taken from its first member record; if
// member records disagree on the group name the result is whichever member
// happens to be first. That looseness is part of the contract — callers must
// not rely on the name when members diverge.
func (c *Cache) Groups() []models.Group {
	groups := make([]models.Group, 0, len(c.order))
	for _, id := range c.order {
		members := c.records[id]
		if len(members) == 0 {
			continue
		}
		groups = append(groups, models.Group{ID: id, Name: members[0].GroupName})
	}
	return groups
}

// Records returns the records of one group. The returned slice is a copy;
// mutating it does not affect the cache.
func (c *Cache) Records(groupID string) []models.Record {
	members, ok := c.records[groupID]
	if !ok {
		return nil
	}
	out := make([]models.Record, len(members))
	copy(out, members)
	return out
}

// Record looks up one record by id within a group.
func (c *Cache) Record(groupID, itemID string) (models.Record, bool) {
	for _, r := range c.records[groupID] {
		if r.ItemID == itemID {
			return r, true
		}
	}
	return models.Record{}, false
}

// Contains reports whether the group is present in the cache.
func (c *Cache) Contains(groupID string) bool {
	members, ok := c.records[groupID]
	return ok && len(members) > 0
}

// Upsert replaces the record with the same item id in place, or appends it
// when the group has no such record yet. New groups are added at the end of
// the group order.
func (c *Cache) Upsert(groupID string, record models.Record) {
	members, ok := c.records[groupID]
	if !ok {
		c.order = append(c.order, groupID)
	}
	for i, r := range members {
		if r.ItemID == record.ItemID {
			members[i] = record
			return
		}
	}
	c.records[groupID] = append(members, record)
}

// RemoveRecord drops one record by id. Removing the last record of a group
// removes the group itself — empty groups cannot exist in the cache.
func (c *Cache) RemoveRecord(groupID, itemID string) {
	members, ok := c.records[groupID]
	if !ok {
		return
	}
	for i, r := range members {
		if r.ItemID == itemID {
			c.records[groupID] = append(members[:i], members[i+1:]...)
			break
		}
	}
	if len(c.records[groupID]) == 0 {
		c.RemoveGroup(groupID)
	}
}

// RemoveGroup drops a whole group.
func (c *Cache) RemoveGroup(groupID string) {
	if _, ok := c.records[groupID]; !ok {
		return
	}
	delete(c.records, groupID)
	for i, id := range c.order {
		if id == groupID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// ReplaceAll clears the cache and regroups the given records by group id, in
// the order provided. Callers sort the records before grouping when display
// order matters.
func (c *Cache) ReplaceAll(records []models.Record) {
	c.records = make(map[string][]models.Record, len(records))
	c.order = nil
	for _, r := range records {
		if _, ok := c.records[r.GroupID]; !ok {
			c.order = append(c.order, r.GroupID)
		}
		c.records[r.GroupID] = append(c.records[r.GroupID], r)
	}
}

// Clear empties the cache.
func (c *Cache) Clear() {
	c.records = make(map[string][]models.Record)
	c.order = nil
}

// Len returns the total number of records across all groups.
func (c *Cache) Len() int {
	n := 0
	for _, members := range c.records {
		n += len(members)
	}
	return n
}
