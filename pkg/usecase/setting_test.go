package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/meetingtax/meetingtax/pkg/domain/model"
	"github.com/meetingtax/meetingtax/pkg/repository/memory"
	"github.com/meetingtax/meetingtax/pkg/usecase"
)

func TestCostThreshold(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	t.Run("built-in default when unset", func(t *testing.T) {
		cents, err := f.uc.Setting.CostThreshold(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, cents).Equal(model.DefaultCostThresholdCents)
	})

	t.Run("stored value wins", func(t *testing.T) {
		_, err := f.uc.Setting.Set(ctx, f.admin, model.SettingCostThreshold, "50000")
		gt.NoError(t, err).Required()

		cents, err := f.uc.Setting.CostThreshold(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, cents).Equal(50000)
	})

	t.Run("configured fallback", func(t *testing.T) {
		uc := usecase.New(memory.New(), usecase.WithDefaultThreshold(75000))
		cents, err := uc.Setting.CostThreshold(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, cents).Equal(75000)
	})
}

func TestSettingSet(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	t.Run("admin only", func(t *testing.T) {
		_, err := f.uc.Setting.Set(ctx, f.employee, model.SettingCostThreshold, "50000")
		gt.Bool(t, errors.Is(err, usecase.ErrNotAuthorized)).True()
	})

	t.Run("threshold must be a positive integer", func(t *testing.T) {
		for _, value := range []string{"", "abc", "-5", "0", "12.5"} {
			_, err := f.uc.Setting.Set(ctx, f.admin, model.SettingCostThreshold, value)
			gt.Bool(t, errors.Is(err, usecase.ErrValidation)).True()
		}
	})

	t.Run("round trip", func(t *testing.T) {
		_, err := f.uc.Setting.Set(ctx, f.admin, model.SettingCostThreshold, "120000")
		gt.NoError(t, err).Required()

		setting, err := f.uc.Setting.Get(ctx, model.SettingCostThreshold)
		gt.NoError(t, err).Required()
		gt.Value(t, setting.Value).Equal("120000")
	})

	t.Run("unknown key reads as not found", func(t *testing.T) {
		_, err := f.uc.Setting.Get(ctx, "no_such_key")
		gt.Bool(t, errors.Is(err, usecase.ErrNotFound)).True()
	})
}
