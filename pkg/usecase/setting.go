package usecase

import (
	"context"
	"errors"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/meetingtax/meetingtax/pkg/domain/interfaces"
	"github.com/meetingtax/meetingtax/pkg/domain/model"
	"github.com/meetingtax/meetingtax/pkg/utils/logging"
)

// SettingUseCase reads and writes the key/value settings store. Today
// the only known key is the cost threshold.
type SettingUseCase struct {
	repo             interfaces.Repository
	defaultThreshold int64
}

func NewSettingUseCase(repo interfaces.Repository, defaultThreshold int64) *SettingUseCase {
	if defaultThreshold <= 0 {
		defaultThreshold = model.DefaultCostThresholdCents
	}
	return &SettingUseCase{
		repo:             repo,
		defaultThreshold: defaultThreshold,
	}
}

func (uc *SettingUseCase) Get(ctx context.Context, key string) (*model.Setting, error) {
	setting, err := uc.repo.Setting().Get(ctx, key)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrNotFound, "setting not found", goerr.V("key", key))
		}
		return nil, goerr.Wrap(err, "failed to get setting", goerr.V("key", key))
	}
	return setting, nil
}

func (uc *SettingUseCase) Set(ctx context.Context, actor *model.User, key, value string) (*model.Setting, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if key == "" {
		return nil, goerr.Wrap(ErrValidation, "setting key is required")
	}

	if key == model.SettingCostThreshold {
		cents, err := strconv.ParseInt(value, 10, 64)
		if err != nil || cents <= 0 {
			return nil, goerr.Wrap(ErrValidation, "threshold must be a positive integer of cents", goerr.V("value", value))
		}
	}

	setting, err := uc.repo.Setting().Put(ctx, &model.Setting{Key: key, Value: value})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to put setting", goerr.V("key", key))
	}

	logging.From(ctx).Info("setting updated",
		"actorID", actor.ID, "key", key, "value", value)
	return setting, nil
}

// CostThreshold returns the configured flagging threshold in cents,
// falling back to the default when unset or unparsable.
func (uc *SettingUseCase) CostThreshold(ctx context.Context) (int64, error) {
	setting, err := uc.repo.Setting().Get(ctx, model.SettingCostThreshold)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return uc.defaultThreshold, nil
		}
		return 0, goerr.Wrap(err, "failed to get cost threshold")
	}

	cents, err := strconv.ParseInt(setting.Value, 10, 64)
	if err != nil || cents <= 0 {
		logging.From(ctx).Warn("stored cost threshold is invalid, using default",
			"value", setting.Value)
		return uc.defaultThreshold, nil
	}
	return cents, nil
}
