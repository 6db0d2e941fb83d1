package CronJobs

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
)

// LogJanitor prunes old request log files on a daily schedule. It is
// pure housekeeping: it never touches task due state, which is only
// recomputed when the completion ledger changes.
type LogJanitor struct {
	cronScheduler *cron.Cron
	logDir        string
	maxAge        time.Duration
	jobID         cron.EntryID
}

// NewLogJanitor creates a janitor for the given log directory, removing
// files older than maxAge.
func NewLogJanitor(logDir string, maxAge time.Duration) *LogJanitor {
	return &LogJanitor{
		cronScheduler: cron.New(cron.WithSeconds()),
		logDir:        logDir,
		maxAge:        maxAge,
	}
}

// Start initiates the daily cleanup job
func (j *LogJanitor) Start() error {
	var err error
	j.jobID, err = j.cronScheduler.AddFunc("0 0 1 * * *", func() {
		log.Println("Running scheduled log cleanup")
		j.runCleanup()
	})

	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}

	j.cronScheduler.Start()
	log.Println("Log cleanup scheduler started - will run daily at 1:00 AM")
	return nil
}

// Stop terminates the janitor
func (j *LogJanitor) Stop() {
	if j.cronScheduler != nil {
		j.cronScheduler.Stop()
		log.Println("Log cleanup scheduler stopped")
	}
}

// UpdateSchedule changes the cleanup schedule
// Format: "0 0 1 * * *" = At 01:00:00 AM every day
func (j *LogJanitor) UpdateSchedule(schedule string) error {
	j.cronScheduler.Remove(j.jobID)

	var err error
	j.jobID, err = j.cronScheduler.AddFunc(schedule, func() {
		log.Println("Running scheduled log cleanup")
		j.runCleanup()
	})

	if err != nil {
		return fmt.Errorf("error updating schedule: %w", err)
	}

	log.Printf("Log cleanup schedule updated to: %s\n", schedule)
	return nil
}

// RunManualCleanup executes a cleanup outside the schedule
func (j *LogJanitor) RunManualCleanup() {
	log.Println("Running manual log cleanup")
	j.runCleanup()
}

func (j *LogJanitor) runCleanup() {
	entries, err := os.ReadDir(j.logDir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Error reading log directory: %v\n", err)
		}
		return
	}

	cutoff := time.Now().Add(-j.maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(j.logDir, entry.Name())
		if err := os.Remove(path); err != nil {
			log.Printf("Error removing old log file %s: %v\n", path, err)
			continue
		}
		removed++
	}

	if removed > 0 {
		log.Printf("Log cleanup removed %d file(s) older than %s\n", removed, j.maxAge)
	} else {
		log.Println("Log cleanup found nothing to remove")
	}
}
