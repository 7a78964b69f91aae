package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestCacheConstants(t *testing.T) {
	assert.Equal(t, 0, GENERAL_CACHE_INDEX)
	assert.Equal(t, 1, PROPERTY_CACHE_INDEX)
	assert.Equal(t, 2, USER_CACHE_INDEX)
	assert.Equal(t, 3, EVENTS_CACHE_INDEX)
}

func TestCacheBuilder_Keys(t *testing.T) {
	assert.Equal(t, "property:sea-view-flat", NewCacheBuilder(nil, "sea-view-flat").WithHash("property").Key())
	assert.Equal(t, "user:42", NewCacheBuilder(nil, uint(42)).WithHash("user").Key())
	assert.Equal(t, "plain", NewCacheBuilder(nil, "plain").WithHash("").Key())
}

func TestCacheBuilder_NilClientIsNoop(t *testing.T) {
	ctx := context.Background()

	err := NewCacheBuilder(nil, "key").WithContext(ctx).WithStruct(map[string]int{"a": 1}).Set()
	assert.NoError(t, err)

	var result map[string]int
	found, err := NewCacheBuilder(nil, "key").WithContext(ctx).Get(&result)
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, result)

	assert.NoError(t, NewCacheBuilder(nil, "key").Delete())
	assert.NoError(t, NewCacheBuilder(nil, "channel").WithValue("payload").Publish())
}

func TestCacheBuilder_MarshalErrorSurfaces(t *testing.T) {
	err := NewCacheBuilder(nil, "key").WithStruct(make(chan int)).Set()
	assert.Error(t, err)
}

func TestAutoMigrate_Sqlite(t *testing.T) {
	sql, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), GormConfig())
	require.NoError(t, err)

	require.NoError(t, AutoMigrate(sql))

	for _, table := range []string{
		"users", "locations", "property_types", "amenities", "properties",
		"property_images", "property_amenities", "property_updates",
		"notifications", "email_deliveries", "reason_reports", "reviews",
	} {
		assert.True(t, sql.Migrator().HasTable(table), table)
	}

	db := NewWithSQL(sql)
	assert.NoError(t, db.CreateIndexes())
	assert.NoError(t, db.Close())
}
