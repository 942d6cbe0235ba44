package scheduler_test

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/pax/internal/core/ports"
	"go.trai.ch/pax/internal/core/ports/mocks"
	"go.trai.ch/pax/internal/engine/scheduler"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	exec    *mocks.MockExecutor
	hasher  *mocks.MockHasher
	metrics *mocks.MockMetrics
	store   *mocks.MockBuildInfoStore
	s       *scheduler.Scheduler
	// missing marks outputs the verifier reports as absent.
	missing map[string]bool
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	vertex := mocks.NewMockVertex(ctrl)
	vertex.EXPECT().Stdout().Return(io.Discard).AnyTimes()
	vertex.EXPECT().Stderr().Return(io.Discard).AnyTimes()
	vertex.EXPECT().Complete(gomock.Any()).AnyTimes()
	vertex.EXPECT().Cached().AnyTimes()

	telemetry := mocks.NewMockTelemetry(ctrl)
	telemetry.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Vertex) { return ctx, vertex },
	).AnyTimes()

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()

	f := &fixture{
		exec:    mocks.NewMockExecutor(ctrl),
		hasher:  mocks.NewMockHasher(ctrl),
		metrics: mocks.NewMockMetrics(ctrl),
		store:   mocks.NewMockBuildInfoStore(ctrl),
		missing: make(map[string]bool),
	}
	verifier := mocks.NewMockOutputVerifier(ctrl)
	verifier.EXPECT().VerifyOutputs(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ string, outputs []string) (bool, error) {
			for _, o := range outputs {
				if f.missing[o] {
					return false, nil
				}
			}
			return true, nil
		},
	).AnyTimes()
	f.hasher.EXPECT().ComputeInputHash(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(task *domain.Task, _ map[string]string, _ string) (string, error) {
			return "in-" + task.Name.String(), nil
		},
	).AnyTimes()
	f.s = scheduler.NewScheduler(f.exec, f.hasher, verifier, telemetry, f.metrics, log)
	return f
}

func task(name string, deps ...string) *domain.Task {
	t := &domain.Task{Name: domain.NewInternedString(name)}
	for _, d := range deps {
		t.Dependencies = append(t.Dependencies, domain.NewInternedString(d))
	}
	return t
}

func graphOf(t *testing.T, tasks ...*domain.Task) *domain.Graph {
	t.Helper()
	g := domain.NewGraph()
	for _, tk := range tasks {
		require.NoError(t, g.AddTask(tk))
	}
	return g
}

func status(s *scheduler.Scheduler, name string) scheduler.TaskStatus {
	return s.GetTaskStatusMap()[domain.NewInternedString(name)]
}

func TestScheduler_Run_Diamond(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.metrics.EXPECT().CountTask(gomock.Any()).AnyTimes()

		// A depends on B and C, which both depend on D.
		g := graphOf(t, task("A", "B", "C"), task("B", "D"), task("C", "D"), task("D"))

		dStarted := make(chan struct{})
		dProceed := make(chan struct{})
		bStarted := make(chan struct{})
		bProceed := make(chan struct{})
		cStarted := make(chan struct{})
		cProceed := make(chan struct{})

		f.exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, task *domain.Task, _, _ io.Writer) error {
				switch task.Name.String() {
				case "D":
					close(dStarted)
					<-dProceed
					return nil
				case "B":
					close(bStarted)
					<-bProceed
					return errors.New("B failed")
				case "C":
					close(cStarted)
					<-cProceed
					return nil
				default:
					t.Errorf("unexpected task: %s", task.Name)
					return nil
				}
			}).AnyTimes()

		errCh := make(chan error)
		go func() {
			errCh <- f.s.Run(context.Background(), g, nil, scheduler.Options{Parallelism: 2})
		}()

		synctest.Wait()
		select {
		case <-dStarted:
		default:
			t.Fatal("D did not start")
		}
		select {
		case <-bStarted:
			t.Fatal("B started before D finished")
		default:
		}

		close(dProceed)
		<-bStarted
		<-cStarted

		close(bProceed)
		close(cProceed)

		err := <-errCh
		require.Error(t, err)
		assert.Contains(t, err.Error(), "B failed")

		assert.Equal(t, scheduler.StatusCompleted, status(f.s, "D"))
		assert.Equal(t, scheduler.StatusFailed, status(f.s, "B"))
		assert.Equal(t, scheduler.StatusCompleted, status(f.s, "C"))
		assert.Equal(t, scheduler.StatusPending, status(f.s, "A"))
	})
}

func TestScheduler_Run_Parallelism(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.metrics.EXPECT().CountTask("completed").Times(5)

		g := graphOf(t, task("a"), task("b"), task("c"), task("d"), task("e"))

		var active, peak atomic.Int32
		f.exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(context.Context, *domain.Task, io.Writer, io.Writer) error {
				n := active.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(time.Second)
				active.Add(-1)
				return nil
			}).Times(5)

		require.NoError(t, f.s.Run(context.Background(), g, nil, scheduler.Options{Parallelism: 2}))
		assert.Equal(t, int32(2), peak.Load())
	})
}

func TestScheduler_Run_ZeroParallelismRunsSerially(t *testing.T) {
	f := newFixture(t)
	f.metrics.EXPECT().CountTask("completed").Times(2)
	f.exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

	g := graphOf(t, task("a"), task("b", "a"))
	require.NoError(t, f.s.Run(context.Background(), g, nil, scheduler.Options{}))
}

func TestScheduler_Run_CacheHit(t *testing.T) {
	f := newFixture(t)
	tk := task("compile:App")
	tk.Outputs = []domain.InternedString{domain.NewInternedString("App.o")}

	f.store.EXPECT().Get("compile:App").Return(&domain.BuildInfo{
		TaskName: "compile:App", InputHash: "in-compile:App", OutputHash: "out",
	}, nil)
	f.hasher.EXPECT().ComputeOutputHash([]string{"App.o"}, "/pkg").Return("out", nil)
	f.metrics.EXPECT().CountTask("cached")

	require.NoError(t, f.s.Run(context.Background(), graphOf(t, tk), f.store, scheduler.Options{Parallelism: 1, Root: "/pkg"}))
	assert.Equal(t, scheduler.StatusCached, status(f.s, "compile:App"))
}

func TestScheduler_Run_CacheMiss(t *testing.T) {
	tests := []struct {
		name   string
		stored *domain.BuildInfo
		// outputHash is returned for the cache check, when the check reaches the outputs.
		outputHash string
		outputErr  error
		missing    bool
	}{
		{name: "never built"},
		{name: "inputs changed", stored: &domain.BuildInfo{InputHash: "stale", OutputHash: "out"}},
		{name: "outputs changed", stored: &domain.BuildInfo{InputHash: "in-link:app", OutputHash: "out"}, outputHash: "other"},
		{name: "outputs deleted", stored: &domain.BuildInfo{InputHash: "in-link:app", OutputHash: "out"}, missing: true},
		{name: "outputs unreadable", stored: &domain.BuildInfo{InputHash: "in-link:app", OutputHash: "out"}, outputErr: errors.New("denied")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tk := task("link:app")
			tk.Kind = domain.TaskLink
			tk.Outputs = []domain.InternedString{domain.NewInternedString("app")}

			f.missing["app"] = tt.missing
			f.store.EXPECT().Get("link:app").Return(tt.stored, nil)
			if tt.stored != nil && tt.stored.InputHash == "in-link:app" && !tt.missing {
				f.hasher.EXPECT().ComputeOutputHash([]string{"app"}, "").Return(tt.outputHash, tt.outputErr)
			}
			f.exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			f.hasher.EXPECT().ComputeOutputHash([]string{"app"}, "").Return("fresh", nil)
			f.store.EXPECT().Put(gomock.Any()).DoAndReturn(func(info domain.BuildInfo) error {
				assert.Equal(t, "link:app", info.TaskName)
				assert.Equal(t, domain.TaskLink, info.Kind)
				assert.Equal(t, "in-link:app", info.InputHash)
				assert.Equal(t, "fresh", info.OutputHash)
				assert.False(t, info.Timestamp.IsZero())
				return nil
			})
			f.metrics.EXPECT().CountTask("completed")

			require.NoError(t, f.s.Run(context.Background(), graphOf(t, tk), f.store, scheduler.Options{Parallelism: 1}))
			assert.Equal(t, scheduler.StatusCompleted, status(f.s, "link:app"))
		})
	}
}

func TestScheduler_Run_StoreReadErrorRebuilds(t *testing.T) {
	f := newFixture(t)
	f.store.EXPECT().Get("a").Return(nil, errors.New("corrupt"))
	f.exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.hasher.EXPECT().ComputeOutputHash(gomock.Any(), gomock.Any()).Return("h", nil)
	f.store.EXPECT().Put(gomock.Any()).Return(nil)
	f.metrics.EXPECT().CountTask("completed")

	require.NoError(t, f.s.Run(context.Background(), graphOf(t, task("a")), f.store, scheduler.Options{Parallelism: 1}))
}

func TestScheduler_Run_EnvironmentIsHashed(t *testing.T) {
	ctrl := gomock.NewController(t)
	hasher := mocks.NewMockHasher(ctrl)
	exec := mocks.NewMockExecutor(ctrl)
	metrics := mocks.NewMockMetrics(ctrl)
	vertex := mocks.NewMockVertex(ctrl)
	telemetry := mocks.NewMockTelemetry(ctrl)

	tk := task("compile")
	tk.Environment = map[string]string{"SDKROOT": "/sdk"}

	telemetry.EXPECT().Record(gomock.Any(), "compile").Return(context.Background(), vertex)
	hasher.EXPECT().ComputeInputHash(gomock.Any(), map[string]string{"SDKROOT": "/sdk"}, "/root").Return("", errors.New("boom"))
	vertex.EXPECT().Complete(gomock.Any())
	metrics.EXPECT().CountTask("failed")

	s := scheduler.NewScheduler(exec, hasher, mocks.NewMockOutputVerifier(ctrl), telemetry, metrics, mocks.NewMockLogger(ctrl))
	err := s.Run(context.Background(), graphOf(t, tk), nil, scheduler.Options{Parallelism: 1, Root: "/root"})
	require.Error(t, err)
	assert.Equal(t, scheduler.StatusFailed, status(s, "compile"))
}

func TestScheduler_Run_Cycle(t *testing.T) {
	f := newFixture(t)
	err := f.s.Run(context.Background(), graphOf(t, task("a", "b"), task("b", "a")), nil, scheduler.Options{Parallelism: 1})
	require.ErrorIs(t, err, domain.ErrCycleDetected)
}

func TestScheduler_Run_Cancelled(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.s.Run(ctx, graphOf(t, task("a")), nil, scheduler.Options{Parallelism: 1})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, scheduler.StatusPending, status(f.s, "a"))
}

func TestScheduler_Run_CancelledWhileRunning(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.metrics.EXPECT().CountTask(gomock.Any()).AnyTimes()
		ctx, cancel := context.WithCancel(context.Background())

		f.exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, _ *domain.Task, _, _ io.Writer) error {
				cancel()
				<-ctx.Done()
				return ctx.Err()
			})

		err := f.s.Run(ctx, graphOf(t, task("a"), task("b", "a")), nil, scheduler.Options{Parallelism: 1})
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, scheduler.StatusPending, status(f.s, "b"))
	})
}
