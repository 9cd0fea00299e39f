package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/meetingtax/meetingtax/pkg/domain/model"
)

type settingRepository struct {
	mu       sync.RWMutex
	settings map[string]*model.Setting
}

func newSettingRepository() *settingRepository {
	return &settingRepository{
		settings: make(map[string]*model.Setting),
	}
}

func copySetting(s *model.Setting) *model.Setting {
	copied := *s
	return &copied
}

func (r *settingRepository) Get(ctx context.Context, key string) (*model.Setting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	setting, exists := r.settings[key]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "setting not found", goerr.V("key", key))
	}
	return copySetting(setting), nil
}

func (r *settingRepository) Put(ctx context.Context, setting *model.Setting) (*model.Setting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	stored := copySetting(setting)
	if existing, exists := r.settings[setting.Key]; exists {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	r.settings[stored.Key] = stored
	return copySetting(stored), nil
}
