package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/peterbourgon/diskv/v3"

	"github.com/comitanigiacomo/kanso-dashboard/internal/core/domain"
)

// LocalBlobKey names the single document holding every day of habit state.
const LocalBlobKey = "habitData"

var _ domain.HabitLogRepository = (*LocalHabitLogRepository)(nil)

// LocalHabitLogRepository keeps all records in one JSON document mapping a
// day key to that day's habit states. Every write replaces the document with
// one day changed. It serves a single local user, so the user id is not part
// of the document; config.Load refuses local storage when tokens are enabled.
type LocalHabitLogRepository struct {
	d     *diskv.Diskv
	icons map[string]string

	mu sync.Mutex
}

type blobEntry struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
	Topic     string `json:"topic,omitempty"`
	Icon      string `json:"icon"`
}

func NewLocalHabitLogRepository(basePath string) *LocalHabitLogRepository {
	icons := make(map[string]string)
	for _, def := range domain.DefaultHabits() {
		icons[def.ID] = def.Icon
	}

	return &LocalHabitLogRepository{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			Transform:    func(string) []string { return []string{} },
			CacheSizeMax: 1024 * 1024,
		}),
		icons: icons,
	}
}

// readDocument must be called with r.mu held. Day lists stay raw so a write
// can replace one day and write every other key back unchanged.
func (r *LocalHabitLogRepository) readDocument() (map[string]json.RawMessage, error) {
	doc := make(map[string]json.RawMessage)

	val, err := r.d.Read(LocalBlobKey)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return nil, fmt.Errorf("read %s: %w", LocalBlobKey, err)
	}
	if len(val) == 0 {
		return doc, nil
	}

	if err := json.Unmarshal(val, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", LocalBlobKey, err)
	}
	return doc, nil
}

// recordsFor decodes one day list leniently. Keys that are not day keys,
// lists that are not arrays and entries without an id yield nothing.
func (r *LocalHabitLogRepository) recordsFor(userID string, dateKey string, raw json.RawMessage) []domain.HabitRecord {
	day, err := domain.ParseDayKey(dateKey)
	if err != nil {
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	records := make([]domain.HabitRecord, 0, len(items))
	for _, item := range items {
		var fields map[string]any
		if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
			continue
		}
		rec, ok := domain.NormalizeRecord(fields)
		if !ok {
			continue
		}
		rec.UserID = userID
		rec.Date = day
		records = append(records, rec)
	}
	return records
}

func (r *LocalHabitLogRepository) Get(ctx context.Context, userID string, day domain.DayKey) ([]domain.HabitRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.readDocument()
	if err != nil {
		return nil, err
	}
	return r.recordsFor(userID, day.String(), doc[day.String()]), nil
}

func (r *LocalHabitLogRepository) ListRange(ctx context.Context, userID string, from, to domain.DayKey) ([]domain.HabitRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.readDocument()
	if err != nil {
		return nil, err
	}

	days := make([]string, 0, len(doc))
	for k := range doc {
		days = append(days, k)
	}
	sort.Strings(days)

	var records []domain.HabitRecord
	for _, k := range days {
		if k < from.String() || k > to.String() {
			continue
		}
		records = append(records, r.recordsFor(userID, k, doc[k])...)
	}
	return records, nil
}

// Upsert rewrites only the record's day. Within that day the entry with the
// same id is replaced in place and every other entry, readable or not, is
// kept as stored.
func (r *LocalHabitLogRepository) Upsert(ctx context.Context, record domain.HabitRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.readDocument()
	if err != nil {
		return err
	}

	key := record.Date.String()
	var items []json.RawMessage
	if raw, ok := doc[key]; ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &items); err != nil {
			return fmt.Errorf("decode %s[%s]: %w", LocalBlobKey, key, err)
		}
	}

	entry, err := json.Marshal(r.toEntry(record))
	if err != nil {
		return fmt.Errorf("encode %s: %w", LocalBlobKey, err)
	}

	replaced := false
	for i, item := range items {
		var head struct {
			ID any `json:"id"`
		}
		if json.Unmarshal(item, &head) != nil {
			continue
		}
		if id, ok := head.ID.(string); ok && strings.TrimSpace(id) == record.HabitID {
			items[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, entry)
	}

	day, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", LocalBlobKey, err)
	}
	doc[key] = day

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", LocalBlobKey, err)
	}
	if err := r.d.Write(LocalBlobKey, data); err != nil {
		return fmt.Errorf("write %s: %w", LocalBlobKey, err)
	}
	return nil
}

func (r *LocalHabitLogRepository) toEntry(rec domain.HabitRecord) blobEntry {
	icon, ok := r.icons[rec.HabitID]
	if !ok {
		icon = domain.CustomHabitIcon
	}
	return blobEntry{
		ID:        rec.HabitID,
		Name:      rec.Name,
		Completed: rec.Completed,
		Topic:     rec.Topic,
		Icon:      icon,
	}
}
