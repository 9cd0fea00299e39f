package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/meetingtax/meetingtax/pkg/cli/config"
	"github.com/meetingtax/meetingtax/pkg/domain/interfaces"
	"github.com/meetingtax/meetingtax/pkg/domain/model"
	"github.com/meetingtax/meetingtax/pkg/domain/types"
	"github.com/meetingtax/meetingtax/pkg/usecase"
	"github.com/meetingtax/meetingtax/pkg/utils/logging"
	"github.com/meetingtax/meetingtax/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdSeed() *cli.Command {
	var seedPath string
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "seed-file",
			Usage:       "Path to TOML seed file",
			Value:       "seed.toml",
			Sources:     cli.EnvVars("MEETINGTAX_SEED_FILE"),
			Destination: &seedPath,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "seed",
		Usage: "Load reference data (departments, roles, rates, threshold) into the store",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := config.LoadSeedConfig(seedPath)
			if err != nil {
				return err
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			return runSeed(ctx, repo, cfg)
		},
	}
}

// runSeed applies the seed file idempotently: departments and roles
// are matched by slug, rates by (role, department) key and the
// threshold by its setting key. Existing records are left alone
// except rates, whose amount is updated.
func runSeed(ctx context.Context, repo interfaces.Repository, cfg *config.SeedConfig) error {
	created := color.New(color.FgGreen).SprintFunc()
	updated := color.New(color.FgYellow).SprintFunc()
	skipped := color.New(color.FgHiBlack).SprintFunc()

	deptIDs := make(map[string]types.DepartmentID, len(cfg.Departments))
	for _, d := range cfg.Departments {
		slug := usecase.Slugify(d.Name)
		existing, err := repo.Department().GetBySlug(ctx, slug)
		if err == nil {
			deptIDs[d.Name] = existing.ID
			fmt.Println(skipped("skip"), "department", d.Name)
			continue
		}
		if !errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(err, "failed to check department", goerr.V("slug", slug))
		}

		dept, err := repo.Department().Create(ctx, &model.Department{
			ID:   types.NewDepartmentID(),
			Name: d.Name,
			Slug: slug,
		})
		if err != nil {
			return goerr.Wrap(err, "failed to create department", goerr.V("name", d.Name))
		}
		deptIDs[d.Name] = dept.ID
		fmt.Println(created("create"), "department", d.Name)
	}

	roleIDs := make(map[string]types.JobRoleID, len(cfg.JobRoles))
	for _, r := range cfg.JobRoles {
		slug := usecase.Slugify(r.Name)
		existing, err := repo.JobRole().GetBySlug(ctx, slug)
		if err == nil {
			roleIDs[r.Name] = existing.ID
			fmt.Println(skipped("skip"), "role", r.Name)
			continue
		}
		if !errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(err, "failed to check job role", goerr.V("slug", slug))
		}

		role, err := repo.JobRole().Create(ctx, &model.JobRole{
			ID:   types.NewJobRoleID(),
			Name: r.Name,
			Slug: slug,
		})
		if err != nil {
			return goerr.Wrap(err, "failed to create job role", goerr.V("name", r.Name))
		}
		roleIDs[r.Name] = role.ID
		fmt.Println(created("create"), "role", r.Name)
	}

	for _, r := range cfg.Rates {
		roleID := roleIDs[r.Role]
		var deptID types.DepartmentID
		if r.Department != "" {
			deptID = deptIDs[r.Department]
		}

		existing, err := repo.Rate().GetByKey(ctx, roleID, deptID)
		if err == nil {
			if existing.RateCents == r.RateCents {
				fmt.Println(skipped("skip"), "rate", r.Role+"/"+r.Department)
				continue
			}
			existing.RateCents = r.RateCents
			if _, err := repo.Rate().Update(ctx, existing); err != nil {
				return goerr.Wrap(err, "failed to update rate", goerr.V("role", r.Role))
			}
			fmt.Println(updated("update"), "rate", r.Role+"/"+r.Department)
			continue
		}
		if !errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(err, "failed to check rate", goerr.V("role", r.Role))
		}

		if _, err := repo.Rate().Create(ctx, &model.HourlyRate{
			ID:           types.NewRateID(),
			RoleID:       roleID,
			DepartmentID: deptID,
			RateCents:    r.RateCents,
		}); err != nil {
			return goerr.Wrap(err, "failed to create rate", goerr.V("role", r.Role))
		}
		fmt.Println(created("create"), "rate", r.Role+"/"+r.Department)
	}

	if cfg.ThresholdCents > 0 {
		if _, err := repo.Setting().Put(ctx, &model.Setting{
			Key:   model.SettingCostThreshold,
			Value: strconv.FormatInt(cfg.ThresholdCents, 10),
		}); err != nil {
			return goerr.Wrap(err, "failed to store cost threshold")
		}
		fmt.Println(updated("set"), "threshold", strconv.FormatInt(cfg.ThresholdCents, 10))
	}

	logging.Default().Info("Seed completed",
		"departments", len(cfg.Departments),
		"roles", len(cfg.JobRoles),
		"rates", len(cfg.Rates))
	return nil
}
