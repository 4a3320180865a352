package persistence

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMemoryDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	return &Database{DB: db}
}

func TestDatabase_Ping(t *testing.T) {
	db := newMemoryDatabase(t)
	assert.NoError(t, db.Ping())
	require.NoError(t, db.Close())
	assert.Error(t, db.Ping())
}

func TestDatabase_TransactionCommits(t *testing.T) {
	db := newMemoryDatabase(t)

	type row struct {
		ID   uint `gorm:"primaryKey"`
		Name string
	}
	require.NoError(t, db.DB.AutoMigrate(&row{}))

	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&row{Name: "kept"}).Error
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.DB.Model(&row{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDatabase_TransactionRollsBack(t *testing.T) {
	db := newMemoryDatabase(t)

	type row struct {
		ID   uint `gorm:"primaryKey"`
		Name string
	}
	require.NoError(t, db.DB.AutoMigrate(&row{}))

	boom := errors.New("boom")
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row{Name: "discarded"}).Error; err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, db.DB.Model(&row{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
