package mongodb

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/alimikegami/storefront-service/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
)

var (
	once     sync.Once
	instance *mongo.Database
	connErr  error
)

// GetDBInstance connects on first use and hands every later caller the same handle. A failed
// first attempt is remembered: the process is expected to exit and be restarted.
func GetDBInstance(ctx context.Context, cfg config.MongoDBConfig) (*mongo.Database, error) {
	once.Do(func() {
		instance, connErr = connect(ctx, cfg)
	})

	return instance, connErr
}

func connect(ctx context.Context, cfg config.MongoDBConfig) (*mongo.Database, error) {
	if cfg.URI == "" {
		return nil, errors.New("MONGODB_URI is not set")
	}

	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetMonitor(otelmongo.NewMonitor())

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	return client.Database(cfg.Database), nil
}

func Disconnect(ctx context.Context) error {
	if instance == nil {
		return nil
	}
	return instance.Client().Disconnect(ctx)
}
