package app

import (
	"context"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/gostruct/internal/scene"
	"github.com/philipparndt/gostruct/pkg/analysis"
	"github.com/philipparndt/gostruct/pkg/geometry"
	"github.com/philipparndt/gostruct/pkg/model"
	"github.com/philipparndt/gostruct/pkg/store"
	"github.com/philipparndt/gostruct/pkg/watcher"
)

// CameraState holds the orbit camera
type CameraState struct {
	camera        rl.Camera3D
	distance      float32
	angleX        float32
	angleY        float32
	target        rl.Vector3 // Current camera target (can be panned)
	defaultDist   float32    // Default camera distance (for reset)
	defaultAngleX float32    // Default camera angle X (for reset)
	defaultAngleY float32    // Default camera angle Y (for reset)
}

// gpuMesh is an uploaded proxy mesh and the proxy state it was baked from
type gpuMesh struct {
	mesh      rl.Mesh
	revision  uint64
	highlight scene.Highlight
	rotation  geometry.Euler

	// Backing arrays stay referenced for as long as the mesh is uploaded
	vertices []float32
	normals  []float32
	colors   []uint8
}

// SceneState holds the store, the engine and what was last drawn
type SceneState struct {
	store    *store.Store
	engine   *scene.Engine
	snapshot *model.Snapshot
	revision uint64 // store revision the snapshot was taken at
	synced   bool
	meshes   map[string]*gpuMesh
	material rl.Material
}

// ViewSettings holds display settings
type ViewSettings struct {
	showGrid   bool
	showAxes   bool
	showGlyphs bool
}

// InteractionState holds mouse state that is not owned by the engine
type InteractionState struct {
	lastMousePos rl.Vector2
	isOrbiting   bool
	isPanning    bool
}

// FileWatchState holds the results file watcher
type FileWatchState struct {
	projectFile string
	resultsFile string
	fileWatcher *watcher.FileWatcher
	results     chan *model.ResultField // written by the watcher, drained by the frame loop
}

// SolveState tracks a mock solve running in the background
type SolveState struct {
	running   bool
	cancel    context.CancelFunc
	progress  chan analysis.Stage
	results   chan *model.ResultField
	failures  chan error
	lastStage analysis.Stage
}

// UIState holds UI-related state
type UIState struct {
	font        rl.Font
	status      string
	statusTime  time.Time
	statusError bool
	cursor      scene.Cursor
}
