package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuditTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(&AuditLog{})
	assert.NoError(t, err)

	return db
}

func TestAuditLogModel_Create(t *testing.T) {
	db := setupAuditTestDB(t)

	entry := AuditLog{
		EventType: "FETCH_FAILURE",
		IP:        "192.168.1.1",
		Message:   "Fetch from http://localhost:8000 failed",
		Details:   datatypes.JSON([]byte(`{"status":502}`)),
	}

	err := db.Create(&entry).Error
	assert.NoError(t, err)
	assert.NotZero(t, entry.ID)
}

func TestAuditLogModel_QueryByEventType(t *testing.T) {
	db := setupAuditTestDB(t)

	db.Create(&AuditLog{EventType: "EXPORT_CSV", Message: "Exported anomalies_2025-06-10.csv"})
	db.Create(&AuditLog{EventType: "FETCH_SUCCESS", Message: "Fetched 42 anomalies"})
	db.Create(&AuditLog{EventType: "EXPORT_CSV", Message: "Exported anomalies_2025-06-11.csv"})

	var exports []AuditLog
	err := db.Where("event_type = ?", "EXPORT_CSV").Find(&exports).Error
	assert.NoError(t, err)
	assert.Len(t, exports, 2)
}
