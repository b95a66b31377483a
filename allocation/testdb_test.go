package allocation

import (
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fundadmin/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Structure{},
		&models.Investor{},
		&models.StructureInvestor{},
		&models.CapitalCall{},
		&models.Allocation{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedStructure(t *testing.T, db *gorm.DB, gpPercentage string) *models.Structure {
	t.Helper()
	structure := models.Structure{
		Name:         "Test Fund I",
		Currency:     "USD",
		GpPercentage: dec(gpPercentage),
		Status:       "Active",
	}
	if err := db.Create(&structure).Error; err != nil {
		t.Fatalf("seed structure: %v", err)
	}
	return &structure
}

func seedInvestorRecord(t *testing.T, db *gorm.DB, structureID, investorID uint, ownership, commitment, discount string, vatExempt bool) {
	t.Helper()
	record := models.StructureInvestor{
		StructureID:      structureID,
		InvestorID:       investorID,
		OwnershipPercent: dec(ownership),
		CommitmentAmount: dec(commitment),
		FeeDiscount:      dec(discount),
		VatExempt:        vatExempt,
	}
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("seed investor record: %v", err)
	}
}

var refCounter atomic.Int64

func seedCall(t *testing.T, db *gorm.DB, call *models.CapitalCall) *models.CapitalCall {
	t.Helper()
	if call.Reference == "" {
		call.Reference = fmt.Sprintf("CC-TEST-%d", refCounter.Add(1))
	}
	if call.Status == "" {
		call.Status = models.CallStatusDraft
	}
	if call.CallDate.IsZero() {
		call.CallDate = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	}
	if call.DueDate.IsZero() {
		call.DueDate = call.CallDate.AddDate(0, 0, 14)
	}
	if err := db.Create(call).Error; err != nil {
		t.Fatalf("seed call: %v", err)
	}
	return call
}
