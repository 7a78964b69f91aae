package database

import (
	"context"
	"fmt"
	"time"

	"estatehub/config"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/valkey-io/valkey-go"
)

// Valkey database indexes, one per cache category.
const (
	// GENERAL_CACHE_INDEX (DB 0) - catalog lists and miscellaneous lookups
	GENERAL_CACHE_INDEX = iota

	// PROPERTY_CACHE_INDEX (DB 1) - listings by slug
	PROPERTY_CACHE_INDEX

	// USER_CACHE_INDEX (DB 2) - authenticated users by id
	USER_CACHE_INDEX

	// EVENTS_CACHE_INDEX (DB 3) - pub/sub for realtime notifications
	EVENTS_CACHE_INDEX
)

func (s *DB) initializeCacheDB(config config.Config) error {
	log := s.log.Function("initializeCacheDB")
	log.Info("initializing cache database")

	address := config.DatabaseCacheAddress
	port := config.DatabaseCachePort
	if address == "" || port == 0 {
		return log.Errorf("failed to initialize cache database", "address or port is empty")
	}

	newClient := func(index int, name string) (CacheClient, error) {
		client, err := valkey.NewClient(valkey.ClientOption{
			InitAddress: []string{fmt.Sprintf("%s:%d", address, port)},
			SelectDB:    index,
		})
		if err != nil {
			return nil, log.Err("failed to create valkey client", err, "cache", name)
		}
		return client, nil
	}

	var cacheDB Cache
	var err error
	if cacheDB.General, err = newClient(GENERAL_CACHE_INDEX, "general"); err != nil {
		return err
	}
	if cacheDB.Property, err = newClient(PROPERTY_CACHE_INDEX, "property"); err != nil {
		return err
	}
	if cacheDB.User, err = newClient(USER_CACHE_INDEX, "user"); err != nil {
		return err
	}
	if cacheDB.Events, err = newClient(EVENTS_CACHE_INDEX, "events"); err != nil {
		return err
	}

	s.Cache = cacheDB

	if config.DatabaseCacheReset != -1 {
		go clearCacheDB(config.DatabaseCacheReset, cacheDB)
	}

	return nil
}

func clearCacheDB(index int, cacheDB Cache) {
	log := logger.New("database").File("cache.database").Function("clearCacheDB")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var client CacheClient
	var dbName string

	switch index {
	case GENERAL_CACHE_INDEX:
		client, dbName = cacheDB.General, "General"
	case PROPERTY_CACHE_INDEX:
		client, dbName = cacheDB.Property, "Property"
	case USER_CACHE_INDEX:
		client, dbName = cacheDB.User, "User"
	case EVENTS_CACHE_INDEX:
		client, dbName = cacheDB.Events, "Events"
	default:
		log.Warn("Invalid cache database index", "index", index)
		return
	}

	if err := client.Do(ctx, client.B().Flushdb().Build()).Error(); err != nil {
		log.Er("Failed to clear cache database", err, "index", index, "dbName", dbName)
		return
	}

	log.Info("Successfully cleared cache database", "index", index, "dbName", dbName)
}
