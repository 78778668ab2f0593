package database

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	coreport "github.com/amirhossein-jamali/imagify/internal/domain/port/core"
)

// PoolObserver receives each pool sample, typically to export it as metrics
type PoolObserver func(stats sql.DBStats)

// ConnectionPoolMonitor samples database/sql pool statistics
type ConnectionPoolMonitor struct {
	db       *Manager
	logger   coreport.Logger
	observe  PoolObserver
	mutex    sync.RWMutex
	last     sql.DBStats
	stopOnce sync.Once
	stopChan chan struct{}
}

// NewConnectionPoolMonitor creates a new connection pool monitor
func NewConnectionPoolMonitor(db *Manager, logger coreport.Logger, observe PoolObserver) *ConnectionPoolMonitor {
	return &ConnectionPoolMonitor{
		db:       db,
		logger:   logger,
		observe:  observe,
		stopChan: make(chan struct{}),
	}
}

// Start takes a first sample and then one per interval until Stop
func (m *ConnectionPoolMonitor) Start(interval time.Duration) error {
	if err := m.collect(); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := m.collect(); err != nil {
					m.logger.Error("Failed to collect connection pool metrics", map[string]any{
						"error": err.Error(),
					})
				}
			case <-m.stopChan:
				return
			}
		}
	}()

	return nil
}

// Stop stops the monitoring
func (m *ConnectionPoolMonitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopChan) })
}

// Last returns the most recent sample
func (m *ConnectionPoolMonitor) Last() sql.DBStats {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.last
}

func (m *ConnectionPoolMonitor) collect() error {
	if m.db.DB() == nil {
		return fmt.Errorf("database not connected")
	}
	sqlDB, err := m.db.DB().DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	stats := sqlDB.Stats()

	m.mutex.Lock()
	m.last = stats
	m.mutex.Unlock()

	if m.observe != nil {
		m.observe(stats)
	}

	threshold := float64(stats.MaxOpenConnections) * 0.8
	if stats.MaxOpenConnections > 0 && float64(stats.InUse) > threshold {
		m.logger.Warn("Database connection pool nearly exhausted", map[string]any{
			"in_use":     stats.InUse,
			"max_open":   stats.MaxOpenConnections,
			"idle":       stats.Idle,
			"wait_count": stats.WaitCount,
			"wait_time":  stats.WaitDuration.String(),
		})
	}

	return nil
}
