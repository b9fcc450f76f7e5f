package history

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"avdesign-hq/meridian/pkg/rules/engine"
)

// Config contains configuration for the history recorder.
type Config struct {
	// Enabled enables history recording.
	Enabled bool

	// AsyncBuffer is the size of the async write channel buffer.
	// Default: 256
	AsyncBuffer int

	// WriteTimeout is the timeout for writing a record to storage.
	// Default: 5 seconds
	WriteTimeout time.Duration
}

// DefaultConfig returns the default recorder configuration.
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		AsyncBuffer:  256,
		WriteTimeout: 5 * time.Second,
	}
}

// Recorder archives validation passes asynchronously so recording
// never blocks a pass.
type Recorder struct {
	storage    Storage
	config     *Config
	recordChan chan *Record
	wg         sync.WaitGroup
	done       chan struct{}
	logger     *slog.Logger
}

// NewRecorder creates a history recorder over the given storage and
// starts its background writer.
func NewRecorder(storage Storage, config *Config) *Recorder {
	if config == nil {
		config = DefaultConfig()
	}
	if config.AsyncBuffer <= 0 {
		config.AsyncBuffer = DefaultConfig().AsyncBuffer
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = DefaultConfig().WriteTimeout
	}

	r := &Recorder{
		storage:    storage,
		config:     config,
		recordChan: make(chan *Record, config.AsyncBuffer),
		done:       make(chan struct{}),
		logger:     slog.Default().With("component", "history.recorder"),
	}

	r.wg.Add(1)
	go r.worker()

	r.logger.Info("history recorder initialized",
		"async_buffer", config.AsyncBuffer,
		"write_timeout", config.WriteTimeout,
	)
	return r
}

// RecordPass enqueues one validation pass for archival and returns
// immediately. A full buffer or a shutdown in progress drops the
// record with an error rather than blocking the caller.
func (r *Recorder) RecordPass(ctx context.Context, projectID, roomID string, design *engine.DesignContext, result *engine.ValidationResult) error {
	if !r.config.Enabled || result == nil {
		return nil
	}

	record := &Record{
		ID:              uuid.New().String(),
		ProjectID:       projectID,
		RoomID:          roomID,
		IsValid:         result.IsValid,
		ErrorCount:      len(result.Errors),
		WarningCount:    len(result.Warnings),
		SuggestionCount: len(result.Suggestions),
		EvaluatedRules:  result.EvaluatedRules,
		SkippedRules:    result.SkippedRules,
		Duration:        result.Duration,
		RecordedAt:      time.Now().UTC(),
	}
	if design != nil {
		record.Dimensions = design.Dimensions
	}

	select {
	case r.recordChan <- record:
		r.logger.Debug("validation pass enqueued",
			"record_id", record.ID,
			"is_valid", record.IsValid,
			"error_count", record.ErrorCount,
		)
		return nil
	case <-r.done:
		r.logger.Warn("recorder shutting down, dropping record",
			"record_id", record.ID,
		)
		return NewRecorderError(record.ID, context.Canceled)
	default:
		r.logger.Error("history channel full, dropping record",
			"record_id", record.ID,
			"channel_capacity", r.config.AsyncBuffer,
		)
		return NewRecorderError(record.ID, context.DeadlineExceeded)
	}
}

// Close shuts the recorder down, draining queued records into storage
// before returning.
func (r *Recorder) Close() error {
	r.logger.Info("shutting down history recorder")
	close(r.done)
	r.wg.Wait()
	r.logger.Info("history recorder shut down")
	return nil
}

func (r *Recorder) worker() {
	defer r.wg.Done()

	for {
		select {
		case record := <-r.recordChan:
			r.writeRecord(record)

		case <-r.done:
			r.logger.Info("draining history channel before shutdown",
				"pending_count", len(r.recordChan),
			)
			for {
				select {
				case record := <-r.recordChan:
					r.writeRecord(record)
				default:
					return
				}
			}
		}
	}
}

func (r *Recorder) writeRecord(record *Record) {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.WriteTimeout)
	defer cancel()

	if err := r.storage.Store(ctx, record); err != nil {
		r.logger.Error("failed to store history record",
			"record_id", record.ID,
			"error", err,
		)
		return
	}

	r.logger.Debug("validation pass recorded",
		"record_id", record.ID,
		"project_id", record.ProjectID,
		"room_id", record.RoomID,
		"is_valid", record.IsValid,
	)
}
