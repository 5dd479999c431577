package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ecodeclub/ekit/slice"

	"communication-platform/internal/domain"
	"communication-platform/internal/errs"
)

// MemoryPreferenceRepository 进程内偏好仓储，单测与本地运行用
type MemoryPreferenceRepository struct {
	mu    sync.RWMutex
	prefs map[string]domain.UserPreference
}

func NewMemoryPreferenceRepository() *MemoryPreferenceRepository {
	return &MemoryPreferenceRepository{prefs: make(map[string]domain.UserPreference)}
}

func (r *MemoryPreferenceRepository) Find(_ context.Context, userID string) (domain.UserPreference, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pref, ok := r.prefs[userID]
	if !ok {
		return domain.UserPreference{}, fmt.Errorf("%w: userID = %s", errs.ErrPreferenceNotFound, userID)
	}
	return pref, nil
}

func (r *MemoryPreferenceRepository) Save(_ context.Context, pref domain.UserPreference) (domain.UserPreference, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UnixMilli()
	if existing, ok := r.prefs[pref.UserID]; ok {
		pref.Ctime = existing.Ctime
	} else {
		pref.Ctime = now
	}
	pref.Utime = now
	r.prefs[pref.UserID] = pref
	return pref, nil
}

// MemoryChannelIdentifierRepository 进程内渠道标识仓储
type MemoryChannelIdentifierRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[string][]domain.ChannelIdentifier
}

func NewMemoryChannelIdentifierRepository() *MemoryChannelIdentifierRepository {
	return &MemoryChannelIdentifierRepository{items: make(map[string][]domain.ChannelIdentifier)}
}

func (r *MemoryChannelIdentifierRepository) FindByUser(_ context.Context, userID string) ([]domain.ChannelIdentifier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slice.Map(r.items[userID], func(_ int, src domain.ChannelIdentifier) domain.ChannelIdentifier {
		return src
	}), nil
}

func (r *MemoryChannelIdentifierRepository) Find(_ context.Context, userID string, channel domain.ChannelType, identifier string) (domain.ChannelIdentifier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, ci := range r.items[userID] {
		if ci.Channel == channel && ci.Identifier == identifier {
			return ci, nil
		}
	}
	return domain.ChannelIdentifier{}, fmt.Errorf("%w: userID = %s, channel = %s", errs.ErrIdentifierNotFound, userID, channel)
}

func (r *MemoryChannelIdentifierRepository) Create(_ context.Context, ci domain.ChannelIdentifier) (domain.ChannelIdentifier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	ci.ID = r.nextID
	ci.Ctime = time.Now().UnixMilli()
	r.items[ci.UserID] = append(r.items[ci.UserID], ci)
	return ci, nil
}

func (r *MemoryChannelIdentifierRepository) Update(_ context.Context, ci domain.ChannelIdentifier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cis := r.items[ci.UserID]
	for i := range cis {
		if cis[i].ID == ci.ID {
			ci.Ctime = cis[i].Ctime
			cis[i] = ci
			return nil
		}
	}
	return fmt.Errorf("%w: id = %d", errs.ErrIdentifierNotFound, ci.ID)
}

func (r *MemoryChannelIdentifierRepository) Delete(_ context.Context, userID string, channel domain.ChannelType, identifier string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cis := r.items[userID]
	for i := range cis {
		if cis[i].Channel == channel && cis[i].Identifier == identifier {
			r.items[userID] = append(cis[:i], cis[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: userID = %s, channel = %s", errs.ErrIdentifierNotFound, userID, channel)
}
