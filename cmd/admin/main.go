// Command admin is the administrative channel of the microblog server.
// It grants or revokes the admin flag and force-activates accounts directly
// against the server database.
//
// Usage:
//
//	admin -grant-admin 5
//	admin -activate 7 -- -d postgres://localhost/microblog
//
// Arguments after "--" are configuration flags of the server; environment
// variables and the JSON config file are honoured as well.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/MKhiriev/go-microblog/internal/config"
	"github.com/MKhiriev/go-microblog/internal/logger"
	"github.com/MKhiriev/go-microblog/internal/service"
	"github.com/MKhiriev/go-microblog/internal/store"
	"github.com/MKhiriev/go-microblog/models"
)

var errNoAction = errors.New("exactly one of -grant-admin, -revoke-admin or -activate is required")

type action struct {
	grantAdmin  int64
	revokeAdmin int64
	activate    int64
}

func main() {
	fs := flag.NewFlagSet("admin", flag.ExitOnError)

	var act action
	fs.Int64Var(&act.grantAdmin, "grant-admin", 0, "Grant the admin flag to the account with this id")
	fs.Int64Var(&act.revokeAdmin, "revoke-admin", 0, "Revoke the admin flag from the account with this id")
	fs.Int64Var(&act.activate, "activate", 0, "Activate the account with this id")
	_ = fs.Parse(os.Args[1:])

	log := logger.NewLogger("microblog-admin")

	if err := act.validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		os.Exit(2)
	}

	cfg, err := config.GetStructuredConfigFromArgs(fs.Args())
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services, err := service.NewServices(storages, cfg.App, models.NewAppBuildInfo("admin", "", ""), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	user, err := act.run(ctx, services.UserService)
	if err != nil {
		log.Err(err).Msg("admin action failed")
		storages.Close()
		os.Exit(1)
	}

	fmt.Printf("user %d (%s): admin=%t activated=%t\n", user.ID, user.Email, user.Admin, user.Activated)
}

func (a action) validate() error {
	set := 0
	for _, id := range []int64{a.grantAdmin, a.revokeAdmin, a.activate} {
		if id < 0 {
			return fmt.Errorf("invalid account id %d", id)
		}
		if id > 0 {
			set++
		}
	}
	if set != 1 {
		return errNoAction
	}
	return nil
}

func (a action) run(ctx context.Context, users service.UserService) (models.User, error) {
	switch {
	case a.grantAdmin > 0:
		return users.SetAdmin(ctx, a.grantAdmin, true)
	case a.revokeAdmin > 0:
		return users.SetAdmin(ctx, a.revokeAdmin, false)
	default:
		return users.Activate(ctx, a.activate)
	}
}
