package meshing

import (
	"errors"
	"testing"

	"voxmesh/internal/voxel"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func TestTaskStateMachine(t *testing.T) {
	vol := newVolume(t, 2, 2, 2, solid(stone))
	task, err := NewMeshTask(vol, nil, Options{Logger: zaptest.NewLogger(t)})
	if err != nil {
		t.Fatalf("NewMeshTask: %v", err)
	}
	if task.State() != StatePending || task.Completed() {
		t.Fatalf("new task: state %v", task.State())
	}
	if _, err := task.Geometry(); !errors.Is(err, ErrNotCompleted) {
		t.Fatalf("Geometry before run: got %v", err)
	}

	task.Run()
	if !task.Completed() {
		t.Fatalf("task not completed after Run, state %v", task.State())
	}
	select {
	case <-task.Done():
	default:
		t.Fatalf("Done not closed after completion")
	}
	if _, err := task.Geometry(); err != nil {
		t.Fatalf("first Geometry: %v", err)
	}
	if _, err := task.Geometry(); !errors.Is(err, ErrConsumed) {
		t.Fatalf("second Geometry: got %v, want ErrConsumed", err)
	}
	// a second run is ignored
	task.Run()
	if task.State() != StateCompleted {
		t.Fatalf("state after second run: %v", task.State())
	}

	stages := map[string]bool{}
	for _, s := range task.Timings() {
		stages[s.Name] = true
	}
	for _, name := range []string{"copy", "sweep", "tangents"} {
		if !stages[name] {
			t.Fatalf("missing stage %q in %v", name, task.Timings())
		}
	}
}

func TestTaskSnapshotIsolation(t *testing.T) {
	vol := newVolume(t, 3, 3, 3, nil)
	_ = vol.Set(1, 1, 1, stone)
	task, err := NewMeshTask(vol, nil, Options{})
	if err != nil {
		t.Fatalf("NewMeshTask: %v", err)
	}
	// edits after construction must not reach the task
	vol.Fill(solid(grass))
	task.Run()
	m, _ := task.Geometry()
	if m.QuadCount() != 6 {
		t.Fatalf("got %d quads, want 6", m.QuadCount())
	}
	if m.Colors[0] != (mgl32.Vec4{0.5, 0.5, 0.5, 1}) {
		t.Fatalf("color %v leaked from live volume", m.Colors[0])
	}
}

func TestTaskFailureIsLogged(t *testing.T) {
	layout := voxel.NewAtlasLayout(voxel.UniformFaces(0), voxel.UniformFaces(1))
	vx, err := voxel.NewAtlas(layout, 1, 1)
	if err != nil {
		t.Fatalf("NewAtlas: %v", err)
	}
	vol := newVolume(t, 2, 2, 2, solid(vx))

	core, logs := observer.New(zapcore.ErrorLevel)
	// the task sees a layout missing entry 1
	task, err := NewMeshTask(vol, voxel.NewAtlasLayout(voxel.UniformFaces(0)), Options{Logger: zap.New(core)})
	if err != nil {
		t.Fatalf("NewMeshTask: %v", err)
	}
	task.Run()

	if task.Completed() {
		t.Fatalf("failed task reported completed")
	}
	select {
	case <-task.Done():
		t.Fatalf("Done closed for a failed task")
	default:
	}
	if _, err := task.Geometry(); !errors.Is(err, ErrNotCompleted) {
		t.Fatalf("Geometry: got %v", err)
	}
	entries := logs.FilterMessage("mesh generation failed").All()
	if len(entries) != 1 {
		t.Fatalf("got %d failure logs, want 1", len(entries))
	}
	if entries[0].ContextMap()["task"] != task.ID() {
		t.Fatalf("failure log task id: got %v, want %d", entries[0].ContextMap()["task"], task.ID())
	}
}

func TestInvalidLOD(t *testing.T) {
	vol := newVolume(t, 2, 2, 2, nil)
	for _, lod := range []int{-1, MaxLevelOfDetail + 1} {
		if _, err := NewMeshTask(vol, nil, Options{LevelOfDetail: lod}); !errors.Is(err, ErrInvalidLOD) {
			t.Fatalf("lod %d: got %v", lod, err)
		}
	}
}

func TestLODKeepsBounds(t *testing.T) {
	vol, err := voxel.NewVolume(5, 7, 3, 0.5)
	if err != nil {
		t.Fatalf("NewVolume: %v", err)
	}
	vol.Fill(solid(stone))
	base := generate(t, vol, nil, Options{})
	lo0, hi0, ok := base.Bounds()
	if !ok {
		t.Fatalf("empty LOD 0 mesh")
	}
	if want := (mgl32.Vec3{1.25, 1.75, 0.75}); !hi0.ApproxEqual(want) {
		t.Fatalf("LOD 0 max: got %v, want %v", hi0, want)
	}
	for lod := 1; lod <= 3; lod++ {
		m := generate(t, vol, nil, Options{LevelOfDetail: lod})
		lo, hi, _ := m.Bounds()
		if !lo.ApproxEqual(lo0) || !hi.ApproxEqual(hi0) {
			t.Fatalf("LOD %d bounds %v-%v, want %v-%v", lod, lo, hi, lo0, hi0)
		}
		if m.QuadCount() != 6 {
			t.Fatalf("LOD %d: got %d quads", lod, m.QuadCount())
		}
	}
}
