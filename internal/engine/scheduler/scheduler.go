// Package scheduler executes planned build tasks in dependency order.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/pax/internal/core/ports"
	"go.trai.ch/zerr"
)

// TaskStatus represents the status of a task.
type TaskStatus string

const (
	// StatusPending indicates the task is waiting to be executed.
	StatusPending TaskStatus = "pending"
	// StatusRunning indicates the task is currently executing.
	StatusRunning TaskStatus = "running"
	// StatusCompleted indicates the task has finished successfully.
	StatusCompleted TaskStatus = "completed"
	// StatusFailed indicates the task execution failed.
	StatusFailed TaskStatus = "failed"
	// StatusCached indicates the task was skipped because its inputs and outputs were unchanged.
	StatusCached TaskStatus = "cached"
)

// Options tune a single run.
type Options struct {
	// Parallelism is the maximum number of tasks executing at once. Values below one mean one.
	Parallelism int
	// Root is the directory relative task inputs and outputs are resolved against.
	Root string
}

// Scheduler manages the execution of tasks in the dependency graph.
type Scheduler struct {
	executor  ports.Executor
	hasher    ports.Hasher
	verifier  ports.OutputVerifier
	telemetry ports.Telemetry
	metrics   ports.Metrics
	logger    ports.Logger

	mu         sync.RWMutex
	taskStatus map[domain.InternedString]TaskStatus
}

// NewScheduler creates a new Scheduler.
func NewScheduler(
	executor ports.Executor,
	hasher ports.Hasher,
	verifier ports.OutputVerifier,
	telemetry ports.Telemetry,
	metrics ports.Metrics,
	logger ports.Logger,
) *Scheduler {
	return &Scheduler{
		executor:   executor,
		hasher:     hasher,
		verifier:   verifier,
		telemetry:  telemetry,
		metrics:    metrics,
		logger:     logger,
		taskStatus: make(map[domain.InternedString]TaskStatus),
	}
}

func (s *Scheduler) initTaskStatuses(graph *domain.Graph) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.taskStatus = make(map[domain.InternedString]TaskStatus, graph.TaskCount())
	for task := range graph.Walk() {
		s.taskStatus[task.Name] = StatusPending
	}
}

func (s *Scheduler) updateStatus(name domain.InternedString, status TaskStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taskStatus[name] = status
}

func (s *Scheduler) getStatus(name domain.InternedString) TaskStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.taskStatus[name]
}

// Run executes every task of graph. A task starts once all its dependencies completed;
// dependents of a failed task never start. When store is non-nil, tasks whose input hash
// and output hash match the stored build info are skipped.
func (s *Scheduler) Run(ctx context.Context, graph *domain.Graph, store ports.BuildInfoStore, opts Options) error {
	if err := graph.Validate(); err != nil {
		return err
	}
	s.initTaskStatuses(graph)

	state := s.newRunState(ctx, graph, store, opts)

	for !state.isDone() {
		state.schedule()

		if state.isDone() {
			break
		}

		if state.ctx.Err() != nil && state.active == 0 {
			return errors.Join(state.errs, state.ctx.Err())
		}

		select {
		case res := <-state.resultsCh:
			state.handleResult(res)
		case <-state.ctx.Done():
		}
	}

	if state.ctx.Err() != nil {
		state.errs = errors.Join(state.errs, state.ctx.Err())
	}

	return state.errs
}

type result struct {
	task domain.InternedString
	err  error
}

type runState struct {
	s           *Scheduler
	graph       *domain.Graph
	store       ports.BuildInfoStore
	root        string
	inDegree    map[domain.InternedString]int
	tasks       map[domain.InternedString]domain.Task
	ready       []domain.InternedString
	active      int
	resultsCh   chan result
	errs        error
	ctx         context.Context
	parallelism int
}

func (s *Scheduler) newRunState(
	ctx context.Context,
	graph *domain.Graph,
	store ports.BuildInfoStore,
	opts Options,
) *runState {
	parallelism := max(opts.Parallelism, 1)
	taskCount := graph.TaskCount()
	inDegree := make(map[domain.InternedString]int, taskCount)
	tasks := make(map[domain.InternedString]domain.Task, taskCount)

	// Walk yields dependencies first, so the ready queue starts in a deterministic order.
	var ready []domain.InternedString
	for task := range graph.Walk() {
		tasks[task.Name] = task
		inDegree[task.Name] = len(task.Dependencies)
		if len(task.Dependencies) == 0 {
			ready = append(ready, task.Name)
		}
	}

	return &runState{
		s:           s,
		graph:       graph,
		store:       store,
		root:        opts.Root,
		inDegree:    inDegree,
		tasks:       tasks,
		ready:       ready,
		resultsCh:   make(chan result, parallelism),
		ctx:         ctx,
		parallelism: parallelism,
	}
}

func (state *runState) isDone() bool {
	return state.active == 0 && len(state.ready) == 0
}

func (state *runState) schedule() {
	for len(state.ready) > 0 && state.active < state.parallelism && state.ctx.Err() == nil {
		taskName := state.ready[0]
		state.ready = state.ready[1:]

		state.active++
		state.s.updateStatus(taskName, StatusRunning)

		go func(t domain.Task) {
			state.resultsCh <- result{task: t.Name, err: state.executeTaskWithCache(state.ctx, &t)}
		}(state.tasks[taskName])
	}
}

func (state *runState) executeTaskWithCache(ctx context.Context, task *domain.Task) error {
	ctx, vertex := state.s.telemetry.Record(ctx, task.Name.String())

	inputHash, err := state.s.hasher.ComputeInputHash(task, task.Environment, state.root)
	if err != nil {
		vertex.Complete(err)
		return err
	}

	if state.checkCacheHit(task, inputHash) {
		vertex.Cached()
		return nil
	}

	err = state.s.executor.Execute(ctx, task, vertex.Stdout(), vertex.Stderr())
	if err == nil {
		err = state.updateCache(task, inputHash)
	}
	vertex.Complete(err)
	return err
}

func outputPaths(task *domain.Task) []string {
	return domain.Strings(task.Outputs)
}

func (state *runState) checkCacheHit(task *domain.Task, inputHash string) bool {
	if state.store == nil {
		return false
	}

	info, err := state.store.Get(task.Name.String())
	if err != nil {
		state.s.logger.Debug(fmt.Sprintf("ignoring build info of %s: %v", task.Name, err))
		return false
	}
	if !info.MatchesInputs(inputHash) {
		return false
	}

	outputs := outputPaths(task)
	present, err := state.s.verifier.VerifyOutputs(state.root, outputs)
	if err != nil || !present {
		return false
	}

	// Outputs modified since the last run invalidate the entry.
	outputHash, err := state.s.hasher.ComputeOutputHash(outputs, state.root)
	if err != nil || !info.MatchesOutputs(outputHash) {
		return false
	}

	state.s.updateStatus(task.Name, StatusCached)
	return true
}

func (state *runState) updateCache(task *domain.Task, inputHash string) error {
	if state.store == nil {
		return nil
	}

	outputHash, err := state.s.hasher.ComputeOutputHash(outputPaths(task), state.root)
	if err != nil {
		return zerr.Wrap(err, "failed to hash task outputs")
	}

	return state.store.Put(domain.NewBuildInfo(task, inputHash, outputHash, time.Now()))
}

func (state *runState) handleResult(res result) {
	state.active--
	if res.err != nil {
		wrappedErr := zerr.With(zerr.Wrap(res.err, "task execution failed"), "task", res.task.String())
		state.errs = errors.Join(state.errs, wrappedErr)
		state.s.updateStatus(res.task, StatusFailed)
		state.s.metrics.CountTask(string(StatusFailed))
		return
	}

	status := state.s.getStatus(res.task)
	if status != StatusCached {
		status = StatusCompleted
		state.s.updateStatus(res.task, status)
	}
	state.s.metrics.CountTask(string(status))

	for _, dep := range state.graph.Dependents(res.task) {
		state.inDegree[dep]--
		if state.inDegree[dep] == 0 {
			state.ready = append(state.ready, dep)
		}
	}
}
