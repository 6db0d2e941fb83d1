package Scheduler

import (
	"fmt"
	"testing"
	"time"

	"HomeSked/Models"
)

// testClock is the fixed instant all engine tests run at.
var testClock = time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

// newTestEngine opens a fresh in-memory database, keyed by test name so
// parallel packages never share state, and pins the engine clock.
func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := Models.Connect(dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	engine := NewEngine(db)
	engine.Now = func() time.Time { return testClock }
	return engine
}

// seedEquipment creates a home, a room, and one piece of equipment with
// the given usage reading (nil for no reading yet).
func seedEquipment(t *testing.T, e *Engine, usage *int64) *Models.Equipment {
	t.Helper()
	home := Models.Home{Name: "Test Home", CreatedBy: 1}
	if err := e.DB.Create(&home).Error; err != nil {
		t.Fatalf("failed to seed home: %v", err)
	}
	room := Models.Room{HomeID: home.ID, Name: "Garage"}
	if err := e.DB.Create(&room).Error; err != nil {
		t.Fatalf("failed to seed room: %v", err)
	}
	equipment := Models.Equipment{
		RoomID:       room.ID,
		Name:         "Test Vehicle",
		CurrentUsage: usage,
		UsageUnit:    "miles",
	}
	if err := e.DB.Create(&equipment).Error; err != nil {
		t.Fatalf("failed to seed equipment: %v", err)
	}
	return &equipment
}

func int64Ptr(v int64) *int64        { return &v }
func timePtr(v time.Time) *time.Time { return &v }
