package usecase

import (
	"github.com/meetingtax/meetingtax/pkg/domain/interfaces"
	"github.com/meetingtax/meetingtax/pkg/service/cost"
)

type UseCases struct {
	repo      interfaces.Repository
	threshold int64

	Auth      *AuthUseCase
	User      *UserUseCase
	Reference *ReferenceUseCase
	Rate      *RateUseCase
	Meeting   *MeetingUseCase
	Report    *ReportUseCase
	Setting   *SettingUseCase
}

type Option func(*UseCases)

// WithDefaultThreshold overrides the built-in fallback threshold used
// when no cost_threshold setting has been stored.
func WithDefaultThreshold(cents int64) Option {
	return func(uc *UseCases) {
		uc.threshold = cents
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	engine := cost.NewEngine(repo.Rate())

	uc.Auth = NewAuthUseCase(repo)
	uc.User = NewUserUseCase(repo, uc.Auth.cache)
	uc.Reference = NewReferenceUseCase(repo)
	uc.Rate = NewRateUseCase(repo)
	uc.Setting = NewSettingUseCase(repo, uc.threshold)
	uc.Meeting = NewMeetingUseCase(repo, engine, uc.Setting)
	uc.Report = NewReportUseCase(repo, engine)

	return uc
}
