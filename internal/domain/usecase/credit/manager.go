package credit

import (
	"context"
	"sync"
	"time"

	"github.com/amirhossein-jamali/imagify/internal/domain/entity"
	errs "github.com/amirhossein-jamali/imagify/internal/domain/error"
	coreport "github.com/amirhossein-jamali/imagify/internal/domain/port/core"
)

const (
	defaultQueueSize   = 100
	defaultIdleTimeout = 2 * time.Minute
)

// Operation is a balance mutation run on a user's queue
type Operation func(ctx context.Context) (*entity.User, error)

// Manager provides sequential processing of credit operations per user
type Manager struct {
	logger      coreport.Logger
	queueSize   int
	idleTimeout time.Duration

	mu     sync.Mutex
	queues map[string]*userQueue
	closed bool

	done           chan struct{}
	queueWaitGroup sync.WaitGroup
}

// userQueue is one user's FIFO; pending counts requests committed to it
type userQueue struct {
	ch      chan *operationRequest
	pending int
}

// operationRequest represents a queued operation
type operationRequest struct {
	ctx        context.Context
	op         Operation
	resultChan chan *operationResult
}

// operationResult represents the result of a processed operation
type operationResult struct {
	user *entity.User
	err  error
}

// NewManager creates a new queue manager
func NewManager(logger coreport.Logger) *Manager {
	return &Manager{
		logger:      logger,
		queueSize:   defaultQueueSize,
		idleTimeout: defaultIdleTimeout,
		queues:      make(map[string]*userQueue),
		done:        make(chan struct{}),
	}
}

// WithIdleTimeout sets how long a user's worker waits for work before it retires
func (m *Manager) WithIdleTimeout(d time.Duration) *Manager {
	if d > 0 {
		m.idleTimeout = d
	}
	return m
}

// WithQueueSize sets how many operations may wait on one user's queue
func (m *Manager) WithQueueSize(n int) *Manager {
	if n > 0 {
		m.queueSize = n
	}
	return m
}

// Enqueue runs op after every operation already queued for the same user
func (m *Manager) Enqueue(ctx context.Context, userID string, op Operation) (*entity.User, error) {
	queue, err := m.reserve(userID)
	if err != nil {
		return nil, err
	}

	req := &operationRequest{
		ctx:        ctx,
		op:         op,
		resultChan: make(chan *operationResult, 1),
	}

	select {
	case queue.ch <- req:
		m.logger.Debug("Credit operation enqueued", map[string]any{
			"user_id": userID,
		})
	case <-ctx.Done():
		m.release(queue)
		m.logger.Warn("Context canceled while enqueueing credit operation", map[string]any{
			"user_id": userID,
			"error":   ctx.Err().Error(),
		})
		return nil, ctx.Err()
	}

	select {
	case result := <-req.resultChan:
		return result.user, result.err
	case <-ctx.Done():
		m.logger.Warn("Context canceled while waiting for credit operation", map[string]any{
			"user_id": userID,
			"error":   ctx.Err().Error(),
		})
		return nil, ctx.Err()
	}
}

// reserve returns the user's queue, starting a worker if needed, and counts one pending request
func (m *Manager) reserve(userID string) (*userQueue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, errs.ErrInternalServer
	}

	queue, ok := m.queues[userID]
	if !ok {
		queue = &userQueue{ch: make(chan *operationRequest, m.queueSize)}
		m.queues[userID] = queue

		m.logger.Debug("Starting credit queue worker for user", map[string]any{
			"user_id": userID,
		})
		m.queueWaitGroup.Add(1)
		go m.processUserQueue(userID, queue)
	}
	queue.pending++
	return queue, nil
}

func (m *Manager) release(queue *userQueue) {
	m.mu.Lock()
	queue.pending--
	m.mu.Unlock()
}

// retire removes an idle queue; it fails while requests are still pending
func (m *Manager) retire(userID string, queue *userQueue) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if queue.pending > 0 {
		return false
	}
	delete(m.queues, userID)
	return true
}

// processUserQueue handles the worker goroutine for a user's queue
func (m *Manager) processUserQueue(userID string, queue *userQueue) {
	defer m.queueWaitGroup.Done()

	idle := time.NewTimer(m.idleTimeout)
	defer idle.Stop()

	for {
		select {
		case req := <-queue.ch:
			m.run(queue, req)
			resetTimer(idle, m.idleTimeout)

		case <-idle.C:
			if m.retire(userID, queue) {
				m.logger.Debug("Credit queue worker retired", map[string]any{
					"user_id": userID,
				})
				return
			}
			idle.Reset(m.idleTimeout)

		case <-m.done:
			m.drain(userID, queue)
			return
		}
	}
}

// drain finishes every request committed before shutdown
func (m *Manager) drain(userID string, queue *userQueue) {
	for !m.retire(userID, queue) {
		select {
		case req := <-queue.ch:
			m.run(queue, req)
		case <-time.After(50 * time.Millisecond):
		}
	}
}

func (m *Manager) run(queue *userQueue, req *operationRequest) {
	defer m.release(queue)

	if err := req.ctx.Err(); err != nil {
		req.resultChan <- &operationResult{err: err}
		return
	}

	user, err := req.op(req.ctx)
	req.resultChan <- &operationResult{user: user, err: err}
}

func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}

// ActiveQueues reports how many users currently have a worker
func (m *Manager) ActiveQueues() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queues)
}

// Shutdown stops accepting work and waits for queued operations to finish
func (m *Manager) Shutdown() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.mu.Unlock()

	m.logger.Info("Shutting down credit queue manager", nil)
	close(m.done)

	m.queueWaitGroup.Wait()
	m.logger.Info("Credit queue manager shut down successfully", nil)
}
