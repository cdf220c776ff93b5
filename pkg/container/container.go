// Package container wires the application's dependency graph in one place.
package container

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"library-backend/internal/config"
	authorrepo "library-backend/internal/domains/author/repository"
	authorservice "library-backend/internal/domains/author/service"
	bookmodel "library-backend/internal/domains/book/model"
	bookrepo "library-backend/internal/domains/book/repository"
	bookservice "library-backend/internal/domains/book/service"
	userrepo "library-backend/internal/domains/user/repository"
	userservice "library-backend/internal/domains/user/service"
	appgraphql "library-backend/internal/graphql"
	"library-backend/internal/infrastructure/database"
	"library-backend/internal/shared/pubsub"
	"library-backend/pkg/jwt"
)

// bookAddedChannel is the Redis channel carrying bookAdded events when the
// redis broker is selected.
const bookAddedChannel = "library:book_added"

// Container holds every long-lived dependency of the application.
// Initialization order matters: config, then infrastructure, then
// repositories, services and the GraphQL layer.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Redis      *redis.Client
	JWTManager *jwt.Manager
	Broker     pubsub.Broker[*bookmodel.Book]

	AuthorService authorservice.Service
	BookService   bookservice.Service
	UserService   userservice.Service

	GraphQLHandler *appgraphql.Handler
	StreamHandler  *appgraphql.StreamHandler
}

// NewContainer builds the full dependency graph.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("Config loaded")

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	c.DB = db
	log.Info().Msg("Database connected")

	if err := c.initBroker(); err != nil {
		return nil, err
	}

	c.JWTManager = jwt.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)

	if err := c.initServices(); err != nil {
		return nil, err
	}

	if err := c.initGraphQL(); err != nil {
		return nil, err
	}

	log.Info().Msg("Container initialized")
	return c, nil
}

// initBroker selects the bookAdded notification broker from config. The
// in-memory broker serves a single process; redis fans out across instances.
func (c *Container) initBroker() error {
	switch c.Config.PubSub.Driver {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     c.Config.Redis.Host,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}

		c.Redis = client
		c.Broker = pubsub.NewRedisBroker[*bookmodel.Book](client, bookAddedChannel)
		log.Info().Str("channel", bookAddedChannel).Msg("Redis broker initialized")

	default:
		c.Broker = pubsub.NewMemoryBroker[*bookmodel.Book]()
		log.Info().Msg("In-memory broker initialized")
	}

	return nil
}

func (c *Container) initServices() error {
	pool := c.DB.Pool

	authors := authorrepo.NewPostgresRepository(pool)
	books := bookrepo.NewPostgresRepository(pool)
	users := userrepo.NewPostgresRepository(pool)

	c.AuthorService = authorservice.NewService(authors)
	c.BookService = bookservice.NewService(books, c.Broker)

	userSvc, err := userservice.NewService(users, c.JWTManager, c.Config.Auth.LoginPassword)
	if err != nil {
		return fmt.Errorf("failed to init user service: %w", err)
	}
	c.UserService = userSvc

	return nil
}

func (c *Container) initGraphQL() error {
	resolvers := appgraphql.NewResolvers(c.AuthorService, c.BookService, c.UserService)

	schema, err := appgraphql.NewSchema(resolvers)
	if err != nil {
		return fmt.Errorf("failed to build schema: %w", err)
	}

	c.GraphQLHandler = appgraphql.NewHandler(schema)
	c.StreamHandler = appgraphql.NewStreamHandler(schema, c.BookService)

	return nil
}

// Cleanup releases container resources during graceful shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
		log.Info().Msg("Database connections closed")
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close redis client")
		} else {
			log.Info().Msg("Redis connection closed")
		}
	}
}
