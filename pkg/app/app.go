package app

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dinero-app/dinero/pkg/config"
	"github.com/dinero-app/dinero/pkg/provider"
	"github.com/dinero-app/dinero/pkg/repository"
	"github.com/dinero-app/dinero/pkg/service/account"
	"github.com/dinero-app/dinero/pkg/service/auth"
	"github.com/dinero-app/dinero/pkg/service/link"
	"github.com/dinero-app/dinero/pkg/service/transaction"
	"github.com/dinero-app/dinero/pkg/service/user"
)

// ErrUnknownAuthStrategy is returned for an AUTH_STRATEGY other than jwt or basic.
var ErrUnknownAuthStrategy = errors.New("unknown auth strategy")

// Deps contains the infrastructure the services are built on.
type Deps struct {
	Uow        repository.UnitOfWork
	Aggregator provider.Aggregator
	Logger     *slog.Logger
}

type App struct {
	Deps               *Deps
	Config             *config.App
	AuthService        *auth.Service
	UserService        *user.Service
	AccountService     *account.Service
	TransactionService *transaction.Service
	LinkService        *link.Service
}

// New wires the services. The auth strategy is chosen by cfg.Auth.Strategy,
// matched case-insensitively; an empty strategy means jwt.
func New(deps *Deps, cfg *config.App) (*App, error) {
	app := &App{
		Deps:   deps,
		Config: cfg,
	}

	authMap := map[string]func() (*auth.Service, error){
		"jwt": func() (*auth.Service, error) {
			var jwtCfg *config.Jwt
			if cfg.Auth != nil {
				jwtCfg = cfg.Auth.Jwt
			}
			return auth.NewWithJWT(deps.Uow, jwtCfg, deps.Logger)
		},
		"basic": func() (*auth.Service, error) {
			return auth.NewWithBasic(deps.Uow, deps.Logger), nil
		},
	}
	strategy := "jwt"
	if cfg.Auth != nil && strings.TrimSpace(cfg.Auth.Strategy) != "" {
		strategy = strings.ToLower(strings.TrimSpace(cfg.Auth.Strategy))
	}
	authFactory, ok := authMap[strategy]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAuthStrategy, cfg.Auth.Strategy)
	}
	svc, err := authFactory()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth: %w", err)
	}
	app.AuthService = svc

	app.UserService = user.New(deps.Uow, deps.Logger)
	app.AccountService = account.New(deps.Uow, deps.Logger)
	app.TransactionService = transaction.New(deps.Uow, deps.Logger)

	clientName := ""
	if cfg.Plaid != nil {
		clientName = cfg.Plaid.ClientName
	}
	app.LinkService = link.New(
		deps.Aggregator,
		app.AccountService,
		app.UserService,
		clientName,
		deps.Logger,
	)
	return app, nil
}
