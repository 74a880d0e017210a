// Package sync implements the client-side synchronization layer between the
// UI and the backend: an optimistically updated in-memory cache, merge of
// asynchronous network outcomes back into it, and a global staleness policy
// deciding when the whole data set is refetched.
package sync

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	gosync "sync"
	"time"

	"github.com/dberzins/stockroom/internal/client/cache"
	"github.com/dberzins/stockroom/internal/client/models"
	"github.com/dberzins/stockroom/internal/client/remote"
	"github.com/dberzins/stockroom/internal/client/session"
	"github.com/dberzins/stockroom/internal/common"
	"github.com/dberzins/stockroom/internal/logging"
	"github.com/google/uuid"
)

// DefaultStaleAfter is the staleness window: once this much time passes
// after the last successful full refetch, mutating calls trigger a
// best-effort background refetch.
const DefaultStaleAfter = 60 * time.Second

// ErrNotCached is the local-precondition failure for operations that require
// the target to already be present in the cache.
var ErrNotCached = errors.New("record not in local cache")

// LocalStore persists snapshots of the fetched data set on the device, so
// the 'demo' browsing path has the last known inventory to fall back on.
type LocalStore interface {
	ReplaceAll(ctx context.Context, records []models.Record) error
}

// Coordinator exposes every operation the UI performs and owns the cache.
//
// All cache, notifier and staleness mutation happens under one mutex, the
// moral equivalent of confining state to a single UI thread. Network calls
// run outside the lock; their completions
// re-acquire it before touching shared state. Ordering across independent
// operations is last-completion-wins, and no operation is cancelled once
// started — callers must tolerate late notifications.
//
// Known consistency gap, preserved on purpose: UpdateRecord applies its edit
// locally before the network round-trip and never rolls back on failure. A
// rejected update leaves the cache ahead of the server until the staleness
// window forces a refetch.
type Coordinator struct {
	mu       gosync.Mutex
	cache    *cache.Cache
	client   remote.Client
	session  *session.Store
	notifier *Notifier
	logger   logging.Logger
	local    LocalStore

	lastFullFetch time.Time
	staleAfter    time.Duration
	refreshing    bool

	// Test seams.
	now      func() time.Time
	dispatch func(func())
}

// NewCoordinator wires the coordinator to its collaborators. The cache
// starts empty; nothing is fetched until Refresh or a staleness trigger.
func NewCoordinator(client remote.Client, sess *session.Store, logger logging.Logger) *Coordinator {
	return &Coordinator{
		cache:      cache.New(),
		client:     client,
		session:    sess,
		notifier:   NewNotifier(),
		logger:     logger,
		staleAfter: DefaultStaleAfter,
		now:        time.Now,
		dispatch:   func(f func()) { go f() },
	}
}

// SetLocalStore attaches an on-device snapshot store. Each successful full
// refetch is written through to it in the background. Must be called before
// the coordinator is in use.
func (c *Coordinator) SetLocalStore(local LocalStore) {
	c.local = local
}

// SetStaleAfter overrides the staleness window. Non-positive values are
// ignored.
func (c *Coordinator) SetStaleAfter(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.staleAfter = d
}

// Subscribe registers the single change listener. See Notifier.
func (c *Coordinator) Subscribe() <-chan struct{} {
	return c.notifier.Subscribe()
}

// Unsubscribe drops the current change listener.
func (c *Coordinator) Unsubscribe() {
	c.notifier.Unsubscribe()
}

// ListGroups returns the groups currently cached. An empty cache yields an
// empty list; no fetch is triggered.
func (c *Coordinator) ListGroups() []models.Group {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Groups()
}

// ListRecords returns the cached records of one group.
func (c *Coordinator) ListRecords(groupID string) []models.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Records(groupID)
}

// GetRecord returns one cached record, or common.ErrorNotFound when the
// group or id is unknown locally. It never fetches from the network.
func (c *Coordinator) GetRecord(groupID, itemID string) (models.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.cache.Record(groupID, itemID)
	if !ok {
		return models.Record{}, common.ErrorNotFound
	}
	return r, nil
}

// Refresh fetches every record of the current organization and replaces the
// cache with the result, sorted case-insensitively by name before grouping
// (a display nicety, the sort is stable). On success the staleness clock
// resets, the notifier fires, and the snapshot is written through to the
// local store when one is attached. On failure the cache is untouched and
// the error is returned; no retry is scheduled.
func (c *Coordinator) Refresh(ctx context.Context) error {
	sess, ok := c.session.Get()
	if !ok {
		return common.ErrNoSession
	}

	records, err := c.client.FetchOrganizationRecords(ctx, sess.OrganizationID)
	if err != nil {
		return fmt.Errorf("fetching organization records: %w", err)
	}

	sortRecordsByName(records)

	c.mu.Lock()
	c.cache.ReplaceAll(records)
	c.lastFullFetch = c.now()
	c.mu.Unlock()

	if c.local != nil {
		persistCtx := context.WithoutCancel(ctx)
		c.dispatch(func() {
			if err := c.local.ReplaceAll(persistCtx, records); err != nil {
				c.logger.Warn(persistCtx, "persisting local snapshot failed", "error", err)
			}
		})
	}

	c.logger.Info(ctx, "cache refreshed", "records", len(records))
	c.notifier.Notify()
	return nil
}

// CreateRecord inserts a record on the server and, on success, adds the
// server-returned payload to the cache. Unlike UpdateRecord this is not
// optimistic — there is no local copy to mutate until the server assigns
// one. Triggers the staleness check as a side effect.
func (c *Coordinator) CreateRecord(ctx context.Context, record models.Record) error {
	c.maybeRefreshStale()

	sess, ok := c.session.Get()
	if !ok {
		return common.ErrNoSession
	}
	if record.OrganizationID == "" {
		record.OrganizationID = sess.OrganizationID
	}

	created, err := c.client.InsertRecords(ctx, []models.Record{record})
	if err != nil {
		c.logger.Error(ctx, "create record failed", "group_id", record.GroupID, "error", err)
		return fmt.Errorf("creating record: %w", err)
	}

	c.mu.Lock()
	for _, r := range created {
		c.cache.Upsert(r.GroupID, r)
	}
	c.mu.Unlock()

	c.notifier.Notify()
	return nil
}

// UpdateRecord replaces every field of a cached record except quantity
// semantics handled by AdjustQuantity. The cached copy is replaced and the
// notifier fired before the network call runs; the call itself is issued in
// the background purely to persist the change, and its completion only logs.
// A failure does NOT roll the local edit back — the cache stays ahead of the
// server until the next full refetch (see the type comment).
//
// If the group or record is unknown locally the operation aborts with
// ErrNotCached, triggers the staleness check, and never contacts the
// network.
func (c *Coordinator) UpdateRecord(ctx context.Context, record models.Record) error {
	c.maybeRefreshStale()

	if _, ok := c.session.Get(); !ok {
		return common.ErrNoSession
	}

	c.mu.Lock()
	if _, found := c.cache.Record(record.GroupID, record.ItemID); !found {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s/%s", ErrNotCached, record.GroupID, record.ItemID)
	}
	c.cache.Upsert(record.GroupID, record)
	c.mu.Unlock()

	c.notifier.Notify()

	c.dispatch(func() {
		ctx := context.WithoutCancel(ctx)
		if _, err := c.client.UpdateRecord(ctx, record.GroupID, record.ItemID, record); err != nil {
			c.logger.Error(ctx, "persisting record update failed, local edit kept",
				"group_id", record.GroupID, "item_id", record.ItemID, "error", err)
			return
		}
		c.logger.Debug(ctx, "record update persisted",
			"group_id", record.GroupID, "item_id", record.ItemID)
	})

	return nil
}

// AdjustQuantity asks the server to change a record's quantity by delta (the
// server computes the new value). Only after success is the same delta
// mirrored onto the cached copy — the asymmetry with UpdateRecord is
// deliberate and must stay. On failure the cached quantity is untouched.
// Triggers the staleness check as a side effect.
func (c *Coordinator) AdjustQuantity(ctx context.Context, groupID, itemID string, delta int) error {
	c.maybeRefreshStale()

	if _, ok := c.session.Get(); !ok {
		return common.ErrNoSession
	}

	if err := c.client.AdjustQuantity(ctx, groupID, itemID, delta); err != nil {
		c.logger.Error(ctx, "quantity adjustment failed",
			"group_id", groupID, "item_id", itemID, "delta", delta, "error", err)
		return fmt.Errorf("adjusting quantity: %w", err)
	}

	c.mu.Lock()
	if r, found := c.cache.Record(groupID, itemID); found {
		r.Quantity += delta
		c.cache.Upsert(groupID, r)
	}
	c.mu.Unlock()

	c.notifier.Notify()
	return nil
}

// DeleteRecord removes one record remotely, then locally. The cached copy
// stays until success is observed; a failure leaves it in place.
func (c *Coordinator) DeleteRecord(ctx context.Context, groupID, itemID string) error {
	if _, ok := c.session.Get(); !ok {
		return common.ErrNoSession
	}

	if err := c.client.DeleteRecord(ctx, groupID, itemID); err != nil {
		c.logger.Error(ctx, "delete record failed",
			"group_id", groupID, "item_id", itemID, "error", err)
		return fmt.Errorf("deleting record: %w", err)
	}

	c.mu.Lock()
	c.cache.RemoveRecord(groupID, itemID)
	c.mu.Unlock()

	c.notifier.Notify()
	return nil
}

// DeleteGroup removes every record of a group (a delete with no record-id
// filter on the wire), then drops the whole group entry from the cache.
func (c *Coordinator) DeleteGroup(ctx context.Context, groupID string) error {
	if _, ok := c.session.Get(); !ok {
		return common.ErrNoSession
	}

	if err := c.client.DeleteRecord(ctx, groupID, ""); err != nil {
		c.logger.Error(ctx, "delete group failed", "group_id", groupID, "error", err)
		return fmt.Errorf("deleting group: %w", err)
	}

	c.mu.Lock()
	c.cache.RemoveGroup(groupID)
	c.mu.Unlock()

	c.notifier.Notify()
	return nil
}

// CreateGroup generates a new group id locally and creates the group as one
// placeholder record carrying only group metadata. Until real records are
// added or imported, the placeholder is the group. Returns the new id.
func (c *Coordinator) CreateGroup(ctx context.Context, name string) (string, error) {
	groupID, err := common.MakeGroupID()
	if err != nil {
		return "", fmt.Errorf("generating group id: %w", err)
	}

	placeholder := models.Record{
		ItemID:    newItemID(),
		Name:      name,
		GroupID:   groupID,
		GroupName: name,
	}
	if err := c.CreateRecord(ctx, placeholder); err != nil {
		return "", err
	}
	return groupID, nil
}

// ImportGroup creates a new group from parsed records: one generated id,
// every record stamped with it, the group name and the organization, then
// inserted sequentially. Successes accumulate in the cache even when later
// inserts fail — a partial import keeps the subset that made it, there is no
// all-or-nothing transaction. The notifier fires once after the batch.
// Imports are creates, so the staleness check fires here too.
// Returns the new group id and the error of the first failed insert, if any.
func (c *Coordinator) ImportGroup(ctx context.Context, name string, records []models.Record) (string, error) {
	c.maybeRefreshStale()

	sess, ok := c.session.Get()
	if !ok {
		return "", common.ErrNoSession
	}

	groupID, err := common.MakeGroupID()
	if err != nil {
		return "", fmt.Errorf("generating group id: %w", err)
	}

	var imported []models.Record
	var failures []error
	for _, r := range records {
		r.GroupID = groupID
		r.GroupName = name
		r.OrganizationID = sess.OrganizationID
		if r.ItemID == "" {
			r.ItemID = newItemID()
		}

		created, err := c.client.InsertRecords(ctx, []models.Record{r})
		if err != nil {
			c.logger.Error(ctx, "import: inserting record failed",
				"group_id", groupID, "name", r.Name, "error", err)
			failures = append(failures, err)
			continue
		}
		imported = append(imported, created...)
	}

	if len(imported) > 0 {
		c.mu.Lock()
		for _, r := range imported {
			c.cache.Upsert(r.GroupID, r)
		}
		c.mu.Unlock()
		c.notifier.Notify()
	}

	if len(failures) > 0 {
		return groupID, fmt.Errorf("import: %d of %d records failed: %w",
			len(failures), len(records), errors.Join(failures...))
	}
	return groupID, nil
}

// LoadLocal replaces the cache with records from a local source (the bundled
// demo dataset). The staleness clock is deliberately not touched: local data
// is not a substitute for a server fetch.
func (c *Coordinator) LoadLocal(records []models.Record) {
	sortRecordsByName(records)

	c.mu.Lock()
	c.cache.ReplaceAll(records)
	c.mu.Unlock()

	c.notifier.Notify()
}

// Reset empties the cache and the staleness clock. Called on logout; any
// in-flight operation keeps the credentials it captured at start and is left
// to fail naturally.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	c.cache.Clear()
	c.lastFullFetch = time.Time{}
	c.mu.Unlock()

	c.notifier.Notify()
}

// maybeRefreshStale launches a background full refetch when the staleness
// window has passed (or nothing was ever fetched). Best-effort: failures are
// only logged, concurrent triggers collapse into one, and a refetch may
// overwrite very recent optimistic state the server has not reflected yet.
func (c *Coordinator) maybeRefreshStale() {
	c.mu.Lock()
	stale := c.lastFullFetch.IsZero() || c.now().Sub(c.lastFullFetch) > c.staleAfter
	if !stale || c.refreshing {
		c.mu.Unlock()
		return
	}
	c.refreshing = true
	c.mu.Unlock()

	c.dispatch(func() {
		ctx := context.Background()
		defer func() {
			c.mu.Lock()
			c.refreshing = false
			c.mu.Unlock()
		}()
		if err := c.Refresh(ctx); err != nil {
			c.logger.Warn(ctx, "background refresh failed", "error", err)
		}
	})
}

// sortRecordsByName sorts case-insensitively by name, stable.
func sortRecordsByName(records []models.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return strings.ToLower(records[i].Name) < strings.ToLower(records[j].Name)
	})
}

// newItemID returns an id for records created client-side (placeholders and
// imports). The backend keeps whatever id it is given on insert.
func newItemID() string { return uuid.NewString() }
