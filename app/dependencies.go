package app

import (
	"context"
	"fmt"

	"github.com/upb/equipment-portal/config"
	"github.com/upb/equipment-portal/middleware"
	"github.com/upb/equipment-portal/repositories"
	"github.com/upb/equipment-portal/repositories/postgres"
	"github.com/upb/equipment-portal/services/equipment"
	"github.com/upb/equipment-portal/services/users"
	"github.com/upb/equipment-portal/token"
	"go.uber.org/zap"
)

const Name = "equipment-portal"

// Version is overridden at build time with -ldflags "-X .../app.Version=..."
var Version = "dev"

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Logger *zap.Logger

	// Repository Factory
	RepoFactory *postgres.RepositoryFactory

	// Repositories
	Users      repositories.UserRepository
	Equipment  repositories.EquipmentRepository
	Principals repositories.PrincipalStore

	// Services
	UserService      *users.Service
	EquipmentService *equipment.Service

	// Auth
	TokenVerifier *token.Verifier
	Identity      *middleware.IdentityMiddleware
	Authorizer    *middleware.Authorizer
}

// NewDependencies creates and wires up all application dependencies
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	factory, err := postgres.NewRepositoryFactory(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	deps, err := newDependencies(cfg, factory, logger)
	if err != nil {
		_ = factory.Close()
		return nil, err
	}

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// NewDependenciesFromDB wires dependencies around an already opened database
func NewDependenciesFromDB(cfg *config.Config, db *postgres.DB, logger *zap.Logger) (*Dependencies, error) {
	return newDependencies(cfg, postgres.NewRepositoryFactoryFromDB(db, logger), logger)
}

func newDependencies(cfg *config.Config, factory *postgres.RepositoryFactory, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config:      cfg,
		Logger:      logger,
		RepoFactory: factory,
		DB:          factory.GetDB(),
	}

	deps.initRepositories()
	deps.initServices()

	if err := deps.initAuth(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize auth: %w", err)
	}

	return deps, nil
}

// initRepositories initializes all repository instances
func (d *Dependencies) initRepositories() {
	repos := d.RepoFactory.NewRepositories()

	d.Users = repos.Users
	d.Equipment = repos.Equipment
	d.Principals = repos.Principals

	d.Logger.Debug("repositories initialized")
}

func (d *Dependencies) initServices() {
	d.UserService = users.NewService(d.Users, d.Logger.Named("users"))
	d.EquipmentService = equipment.NewService(d.Equipment, d.Users, d.Logger.Named("equipment"))
}

// initAuth builds the token verifier once; the secret is fixed for the life of the process
func (d *Dependencies) initAuth(cfg *config.Config) error {
	verifier, err := token.NewVerifier([]byte(cfg.Auth.TokenSecret))
	if err != nil {
		return err
	}

	if cfg.UsesDevelopmentSecret() {
		d.Logger.Warn("TOKEN_SECRET not set, using the development secret")
	}

	authLogger := d.Logger.Named("auth")
	d.TokenVerifier = verifier
	d.Identity = middleware.NewIdentityMiddleware(verifier, d.Principals, cfg.Auth.CookieName, authLogger)
	d.Authorizer = middleware.NewAuthorizer(authLogger)
	return nil
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	if d.RepoFactory != nil {
		if err := d.RepoFactory.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		} else {
			d.Logger.Info("database connection closed")
		}
	}

	_ = d.Logger.Sync()

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}
