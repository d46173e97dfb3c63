package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"droscher.com/BeerCritic/configs"
	"droscher.com/BeerCritic/pkg/auth"
	"droscher.com/BeerCritic/pkg/model"
	"droscher.com/BeerCritic/pkg/notify"
	"droscher.com/BeerCritic/pkg/repository"
	"droscher.com/BeerCritic/pkg/service"
)

type UserCmd struct {
	Promote PromoteCmd `cmd:"" help:"Change the role of an account"`
}

type PromoteCmd struct {
	ConfigFile string `default:".BeerCritic.toml" help:"Path to config file" short:"c"`
	Email      string `help:"Email of the account"                            required:""`
	Role       string `default:"admin"            enum:"admin,reader"         help:"Role to give"`
}

func (p *PromoteCmd) Run(ctx *Context) error {
	logger := newLogger(ctx, false)
	defer logger.Sync() //nolint:errcheck // we don't care about logger sync errors

	conf, err := configs.GetConfig(p.ConfigFile, logger)
	if err != nil {
		logger.Error("error loading config", zap.Error(err))

		return err
	}

	role, ok := model.ParseRole(p.Role)
	if !ok {
		return fmt.Errorf("unknown role %q", p.Role)
	}

	repo, err := repository.Open(conf, logger)
	if err != nil {
		logger.Error("error connecting to database", zap.Error(err))

		return err
	}
	defer repo.Close()

	users := service.NewUserService(repo, auth.NewTokens(conf.Auth), notify.NewLogMailer(logger), conf.Server.BaseURL, logger)

	user, err := users.SetRoleByEmail(context.Background(), p.Email, role)
	if err != nil {
		logger.Error("error changing role", zap.String("email", p.Email), zap.Error(err))

		return err
	}

	fmt.Printf("%s is now %s\n", user.Email, user.Role) //nolint:forbidigo // command output

	return nil
}
