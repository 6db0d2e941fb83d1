// Package Scheduler implements the task scheduling engine: due-date
// calculation, status classification, and the history-driven resync that
// keeps a task's cached due fields consistent with its completion ledger.
//
// Due status is never recomputed in the background. It is derived lazily
// at read time (Classify/Annotate) and recomputed synchronously on every
// ledger write (Resync). There is no locking around the read-modify-write
// sequence; concurrent writes to the same task are last-resync-wins,
// which is acceptable at single-household write rates.
package Scheduler

import (
	"time"

	"gorm.io/gorm"
)

// Engine executes all scheduling operations against a database handle.
// Now is the clock used for default completion timestamps and status
// classification; tests replace it with a fixed function.
type Engine struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{DB: db, Now: time.Now}
}
