package meshing

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
	"sync/atomic"
	"time"

	"voxmesh/internal/profiling"
	"voxmesh/internal/voxel"

	"go.uber.org/zap"
)

// MaxLevelOfDetail bounds the LOD divisor to 2^MaxLevelOfDetail.
const MaxLevelOfDetail = 16

// State is the lifecycle of a task.
type State int32

const (
	StatePending State = iota
	StateRunning
	StateCompleted
	// stateFailed is terminal and never reported as completed.
	stateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	default:
		return "failed"
	}
}

// Handle is the consumer's view of a submitted task: poll Completed (or wait
// on Done), then read Geometry once.
type Handle interface {
	ID() uint64
	Completed() bool
	Done() <-chan struct{}
	Geometry() (*Mesh, error)
}

// Task is a unit of work for the GenerationQueue.
type Task interface {
	Handle
	// Run generates the geometry. Failures are logged and leave the task
	// incomplete.
	Run()
}

var taskIDs atomic.Uint64

// taskCore holds the state machine and result shared by all task kinds.
type taskCore struct {
	id       uint64
	kind     string
	log      *zap.Logger
	state    atomic.Int32
	done     chan struct{}
	mesh     *Mesh
	consumed atomic.Bool

	// onComplete, when set, sees the mesh right after completion.
	onComplete func(*Mesh)
}

func (c *taskCore) init(kind string, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	c.id = taskIDs.Add(1)
	c.kind = kind
	c.log = log.With(zap.Uint64("task", c.id), zap.String("kind", kind))
	c.done = make(chan struct{})
}

func (c *taskCore) ID() uint64 { return c.id }

// State returns the current lifecycle state.
func (c *taskCore) State() State { return State(c.state.Load()) }

// Completed reports whether geometry is ready.
func (c *taskCore) Completed() bool { return c.State() == StateCompleted }

// Done is closed when the task completes. A failed task never closes it.
func (c *taskCore) Done() <-chan struct{} { return c.done }

// Geometry returns the mesh once, after completion.
func (c *taskCore) Geometry() (*Mesh, error) {
	if !c.Completed() {
		return nil, ErrNotCompleted
	}
	if !c.consumed.CompareAndSwap(false, true) {
		return nil, ErrConsumed
	}
	return c.mesh, nil
}

// execute runs fn once, moving Pending -> Running -> Completed. Errors and
// panics are logged and leave the task failed.
func (c *taskCore) execute(fn func() (*Mesh, error)) {
	if !c.state.CompareAndSwap(int32(StatePending), int32(StateRunning)) {
		return
	}
	start := time.Now()
	mesh, err := guard(fn)
	if err != nil {
		c.state.Store(int32(stateFailed))
		c.log.Error("mesh generation failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return
	}
	c.mesh = mesh
	if c.onComplete != nil {
		c.onComplete(mesh)
	}
	c.state.Store(int32(StateCompleted))
	close(c.done)
	c.log.Debug("mesh generated",
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("quads", mesh.QuadCount()),
		zap.Duration("elapsed", time.Since(start)))
}

func guard(fn func() (*Mesh, error)) (m *Mesh, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v\n%s", ErrTaskPanicked, r, debug.Stack())
		}
	}()
	return fn()
}

// Options configures a MeshTask.
type Options struct {
	// LevelOfDetail subsamples every 2^LevelOfDetail-th voxel.
	LevelOfDetail int
	// ParallelPlanes meshes each axis plane concurrently instead of the
	// single sweep.
	ParallelPlanes bool
	// PlaneWorkers limits concurrent plane goroutines; <= 0 uses GOMAXPROCS.
	PlaneWorkers int
	Logger       *zap.Logger
}

// MeshTask meshes one volume snapshot.
type MeshTask struct {
	taskCore

	volume *voxel.Volume
	layout *voxel.AtlasLayout
	frame  frame
	opts   Options

	timings profiling.Recorder
}

// NewMeshTask snapshots vol and layout so later edits by the caller cannot
// reach the running task. layout may be nil for color-only volumes.
func NewMeshTask(vol *voxel.Volume, layout *voxel.AtlasLayout, opts Options) (*MeshTask, error) {
	if vol == nil {
		return nil, errors.New("meshing: nil volume")
	}
	if opts.LevelOfDetail < 0 || opts.LevelOfDetail > MaxLevelOfDetail {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLOD, opts.LevelOfDetail)
	}
	t := &MeshTask{
		layout: layout.Clone(),
		frame:  newFrame(vol.Dims(), 1<<opts.LevelOfDetail, vol.Scale()),
		opts:   opts,
	}
	t.init("voxel", opts.Logger)
	stop := t.timings.Track("copy")
	snap, err := vol.Downsample(opts.LevelOfDetail)
	stop()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLOD, err)
	}
	t.volume = snap
	return t, nil
}

// Run generates the mesh. It is a no-op after the first call.
func (t *MeshTask) Run() {
	t.execute(t.createMesh)
}

// Timings returns the stage durations recorded so far.
func (t *MeshTask) Timings() []profiling.Stage {
	return t.timings.Stages()
}

func (t *MeshTask) createMesh() (*Mesh, error) {
	var (
		mesh *Mesh
		err  error
	)
	if t.opts.ParallelPlanes {
		stop := t.timings.Track("planes")
		mesh, err = t.planes()
		stop()
	} else {
		stop := t.timings.Track("sweep")
		mesh, err = t.sweep()
		stop()
	}
	if err != nil {
		return nil, err
	}

	stop := t.timings.Track("tangents")
	mesh.Tangents, err = SolveTangents(mesh.Vertices, mesh.Normals, mesh.UV0, mesh.Triangles)
	stop()
	if err != nil {
		return nil, err
	}
	t.log.Debug("stage timings", zap.String("stages", t.timings.TopN(4)))
	return mesh, nil
}

func (t *MeshTask) sweep() (*Mesh, error) {
	b := newBuilder(t.frame, t.layout)
	var err error
	sweepQuads(t.volume, func(q Quad) {
		if err == nil {
			err = b.add(q)
		}
	})
	if err != nil {
		return nil, err
	}
	return b.mesh, nil
}

func (t *MeshTask) planes() (*Mesh, error) {
	workers := t.opts.planeWorkers()
	parts, err := planeParts(t.volume, workers)
	if err != nil {
		return nil, err
	}
	return buildParts(parts, t.frame, t.layout, workers)
}

func (o Options) planeWorkers() int {
	if o.PlaneWorkers > 0 {
		return o.PlaneWorkers
	}
	return runtime.GOMAXPROCS(0)
}
