// Package logger provides the structured logging interface used across the
// reel scraper.
//
// It wraps zerolog with a small interface that supports leveled messages,
// inherited fields and error attachment. Console output is colored;
// when a log file is configured, JSON lines are appended to it as well.
//
// Basic Usage:
//
//	err := logger.Initialize(&config.LoggingConfig{Level: "info"})
//	log := logger.GetLogger().WithField("run_id", runID)
//	log.InfoWithFields("page scraped", map[string]interface{}{"reels": 12})
//
// Tests use NewTestLogger to capture messages or NewNopLogger to drop them.
package logger
