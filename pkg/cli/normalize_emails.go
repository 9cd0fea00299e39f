package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/meetingtax/meetingtax/pkg/cli/config"
	"github.com/meetingtax/meetingtax/pkg/domain/interfaces"
	"github.com/meetingtax/meetingtax/pkg/domain/model"
	"github.com/meetingtax/meetingtax/pkg/utils/logging"
	"github.com/meetingtax/meetingtax/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdNormalizeEmails() *cli.Command {
	var dryRun bool
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Report records that would change without writing",
			Destination: &dryRun,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "normalize-emails",
		Usage: "One-time migration lowercasing legacy credential and user emails",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			return runNormalizeEmails(ctx, repo, dryRun)
		},
	}
}

func runNormalizeEmails(ctx context.Context, repo interfaces.Repository, dryRun bool) error {
	logger := logging.Default()
	var changed int

	users, err := repo.User().List(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to list users")
	}
	for _, u := range users {
		normalized := model.NormalizeEmail(u.Email)
		if normalized == u.Email {
			continue
		}
		changed++
		logger.Info("normalizing user email", "userID", u.ID, "dryRun", dryRun)
		if dryRun {
			continue
		}
		u.Email = normalized
		if _, err := repo.User().Update(ctx, u); err != nil {
			return goerr.Wrap(err, "failed to update user", goerr.V("userID", u.ID))
		}
	}

	creds, err := repo.Credential().List(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to list credentials")
	}
	for _, cred := range creds {
		normalized := model.NormalizeEmail(cred.Email)
		if normalized == cred.Email {
			continue
		}
		changed++
		logger.Info("normalizing credential email", "credentialID", cred.ID, "dryRun", dryRun)
		if dryRun {
			continue
		}
		cred.Email = normalized
		if _, err := repo.Credential().Update(ctx, cred); err != nil {
			return goerr.Wrap(err, "failed to update credential", goerr.V("credentialID", cred.ID))
		}
	}

	logger.Info("Email normalization completed", "changed", changed, "dryRun", dryRun)
	return nil
}
