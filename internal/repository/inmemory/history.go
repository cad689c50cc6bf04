package inmemory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/Mateodiet/Project-Tool-Management/internal/models"
)

func (r *HistoryStorage) Create(ctx context.Context, entry *models.TaskHistory) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	r.s.history[entry.HistoryID] = entry
	r.s.historyIDs = append(r.s.historyIDs, entry.HistoryID)
	return nil
}

func (r *HistoryStorage) GetByTask(ctx context.Context, taskID uuid.UUID) ([]*models.TaskHistory, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	entries := []*models.TaskHistory{}
	for _, id := range r.s.historyIDs {
		if r.s.history[id].TaskID == taskID {
			entries = append(entries, r.s.history[id])
		}
	}

	// newest first
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ChangedAt.After(entries[j].ChangedAt)
	})
	return entries, nil
}
