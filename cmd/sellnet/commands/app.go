package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/heronet/sellnet/internal/core/domain"
	"github.com/heronet/sellnet/internal/core/ports"
	"github.com/heronet/sellnet/internal/core/service"
	"github.com/heronet/sellnet/internal/infrastructure/config"
	"github.com/heronet/sellnet/internal/infrastructure/db/mongo"
	"github.com/heronet/sellnet/internal/infrastructure/refdata"
	"github.com/heronet/sellnet/pkg/logger"
)

const disconnectTimeout = 5 * time.Second

// app holds what every command needs: configuration, logging, Mongo and the
// account services built on it.
type app struct {
	cfg *config.Config
	log zerolog.Logger

	client *mongodriver.Client
	db     *mongodriver.Database

	suppliers  *mongo.SupplierRepository
	roles      *mongo.RoleRepository
	products   *mongo.ProductRepository
	categories *mongo.CategoryRepository

	store     *service.CredentialStore
	tokens    *service.TokenService
	locations ports.LocationProvider
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "sellnet",
	})

	tokens, err := service.NewTokenService(cfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	locations := refdata.Default()
	if cfg.RefDataFile != "" {
		locations, err = refdata.Load(cfg.RefDataFile)
		if err != nil {
			return nil, err
		}
		log.Info().Str("file", cfg.RefDataFile).Msg("reference data loaded")
	}

	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

	a := &app{
		cfg:        cfg,
		log:        log,
		client:     client,
		db:         db,
		suppliers:  mongo.NewSupplierRepository(db),
		roles:      mongo.NewRoleRepository(db),
		products:   mongo.NewProductRepository(db),
		categories: mongo.NewCategoryRepository(db),
		tokens:     tokens,
		locations:  locations,
	}
	a.store = service.NewCredentialStore(a.suppliers)

	if err := mongo.EnsureIndexes(ctx, a.suppliers, a.roles, a.products, a.categories); err != nil {
		a.close()
		return nil, err
	}
	for _, role := range []string{domain.RoleMember, domain.RoleAdmin} {
		if err := a.roles.Ensure(ctx, role); err != nil {
			a.close()
			return nil, fmt.Errorf("ensure role %s: %w", role, err)
		}
	}

	return a, nil
}

func (a *app) accountService() *service.AccountService {
	return service.NewAccountService(a.store, a.roles, a.tokens, a.locations, logger.Component("accounts"))
}

func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()
	if err := a.client.Disconnect(ctx); err != nil {
		a.log.Warn().Err(err).Msg("mongo disconnect failed")
	}
}
