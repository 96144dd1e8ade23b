package database

import (
	"path/filepath"
	"testing"
)

type widget struct {
	ID   int64 `gorm:"primaryKey;autoIncrement"`
	Name string
}

func TestOpen_MigratesModels(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"), &widget{})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer Close(db)

	if !db.Migrator().HasTable(&widget{}) {
		t.Fatal("expected widgets table to be created")
	}

	w := &widget{Name: "first"}
	if err := db.Create(w).Error; err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if w.ID == 0 {
		t.Error("expected ID to be assigned")
	}
}

func TestOpen_MemoryIsShared(t *testing.T) {
	db, err := Open(":memory:", &widget{})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer Close(db)

	for i := 0; i < 3; i++ {
		if err := db.Create(&widget{Name: "w"}).Error; err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	var count int64
	if err := db.Model(&widget{}).Count(&count).Error; err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 widgets, got %d", count)
	}
}

func TestOpen_EmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Error("expected error for empty path, got nil")
	}
}
