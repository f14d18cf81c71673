// Package model owns the top-level ModelData: the loaded space, the
// observer's kinematic state, and the host-settable display flags, all
// mutated only under a single exclusive lock (spec §5).
package model

import (
	"context"
	"io"
	"sync"

	"github.com/kjirou/curvedspaces/dirichlet"
	"github.com/kjirou/curvedspaces/genfile"
	"github.com/kjirou/curvedspaces/geom"
	"github.com/kjirou/curvedspaces/holonomy"
	"github.com/kjirou/curvedspaces/honeycomb"
	"github.com/kjirou/curvedspaces/mesh"
	"github.com/kjirou/curvedspaces/observer"
)

// DefaultMaxSpeed and DefaultSpeedIncrement are spec §6's environment
// defaults, overridable per ModelData via WithMaxSpeed/WithSpeedIncrement.
const (
	DefaultMaxSpeed       = 0.25
	DefaultSpeedIncrement = 0.02
)

// Centerpiece selects the small fixed-topology decoration drawn at the
// user's start position (spec §4.G, §6).
type Centerpiece int8

const (
	CenterpieceNone Centerpiece = iota
	CenterpieceObserver
	CenterpieceGyroscope
	CenterpieceCube
)

// Mesh builds the fixed-topology decoration for c, or nil for
// CenterpieceNone — the host draws this at the observer's start position
// each frame a centerpiece is selected (spec §4.G, §6).
func (c Centerpiece) Mesh() *mesh.VertexBuffer {
	switch c {
	case CenterpieceObserver:
		return mesh.Observer()
	case CenterpieceGyroscope:
		return mesh.Gyroscope()
	case CenterpieceCube:
		return mesh.Cube()
	default:
		return nil
	}
}

// defaultHorizon implements spec §6's curvature/space-family switch:
// 3.15 spherical, 11 flat, 3.0 hyperbolic normally or 7.0 for the
// "large volume" spaces genfile's magic comments flag.
func defaultHorizon(c geom.Curvature, largeVolume bool) float64 {
	switch c {
	case geom.Spherical:
		return 3.15
	case geom.Flat:
		return 11
	case geom.Hyperbolic:
		if largeVolume {
			return 7.0
		}
		return 3.0
	default:
		return 0
	}
}

// ModelData is the single owner of the loaded Dirichlet domain, its
// honeycomb tiling, and the observer's placement/motion state (spec §5).
// Every exported method takes the lock itself; callers never need to
// coordinate locking externally.
type ModelData struct {
	mu  sync.RWMutex
	cfg *config

	curvature     geom.Curvature
	horizonRadius float64
	domain        *dirichlet.Polyhedron
	tiling        *honeycomb.Honeycomb
	observer      *observer.Observer

	centerpiece       Centerpiece
	cliffordParallels bool
	showFog           bool
	showColorCoding   bool
	showObserver      bool
	showVertexFigures bool

	changeCounter uint64
}

// New returns a ModelData in the clean "no space" state: curvature None,
// null domain/honeycomb, identity placement, zero speed (spec §7).
func New(opts ...Option) *ModelData {
	cfg := newConfig(opts...)
	return &ModelData{
		cfg:             cfg,
		observer:        observer.New(cfg.initialAperture),
		showColorCoding: true,
	}
}

// Load parses r as a generator file, builds the holonomy group and its
// Dirichlet domain and honeycomb, and installs them under lock. Any
// failure along the way leaves ModelData in the clean "no space" state
// New returns — the previous scene is never restored (spec §5, §7).
func (m *ModelData) Load(ctx context.Context, r io.Reader) error {
	if r == nil {
		m.clear()
		return ErrNilReader
	}

	f, err := genfile.Parse(r)
	if err != nil {
		m.clear()
		return err
	}

	horizon := m.horizonFor(f.Curvature, f.Horizon)

	group, err := holonomy.BuildGroup(ctx, f.Matrices[1:], f.Curvature, horizon)
	if err != nil {
		m.clear()
		return err
	}

	domain, err := dirichlet.Build(ctx, group)
	if err != nil {
		m.clear()
		return err
	}

	var tiling *honeycomb.Honeycomb
	if domain != nil {
		tiling = honeycomb.Build(group)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.curvature = f.Curvature
	m.horizonRadius = horizon
	m.domain = domain
	m.tiling = tiling
	m.observer = observer.New(m.cfg.initialAperture)
	m.bumpLocked()
	return nil
}

func (m *ModelData) horizonFor(c geom.Curvature, hint genfile.HorizonHint) float64 {
	if r, ok := m.cfg.horizonOverride[c]; ok {
		return r
	}
	return defaultHorizon(c, hint == genfile.HorizonLargeVolume)
}

// clear resets to the clean "no space" state spec §7 requires after any
// load failure.
func (m *ModelData) clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.curvature = geom.None
	m.horizonRadius = 0
	m.domain = nil
	m.tiling = nil
	m.observer = observer.New(m.cfg.initialAperture)
	m.bumpLocked()
}

func (m *ModelData) bumpLocked() { m.changeCounter++ }

// ChangeCounter returns the monotonic counter a renderer polls to decide
// whether a redraw is needed; it wraps harmlessly (spec §5).
func (m *ModelData) ChangeCounter() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.changeCounter
}

// Curvature returns the currently loaded space's curvature, or None if
// no space is loaded.
func (m *ModelData) Curvature() geom.Curvature {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.curvature
}

// Advance applies one frame of forward motion to the observer (spec
// §4.F, §5).
func (m *ModelData) Advance(deltaT float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observer.Advance(m.curvature, m.domain, deltaT)
	m.bumpLocked()
}

// Rotate applies one frame of mouse-drag rotation to the observer and
// re-orthogonalizes the placement.
func (m *ModelData) Rotate(theta float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observer.Rotate(theta)
	m.observer.Placement = geom.FastGramSchmidt(m.curvature, m.observer.Placement)
	m.bumpLocked()
}

// Pinch adjusts wall aperture by a pinch gesture, bumping the change
// counter only when the aperture (and therefore the wall mesh) actually
// changed.
func (m *ModelData) Pinch(scale float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.observer.Pinch(scale) {
		m.bumpLocked()
	}
}

// Tap toggles motion via a tap gesture (spec §4.F).
func (m *ModelData) Tap() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observer.Tap()
	m.bumpLocked()
}

// SetSpeed sets the observer's forward speed, clamped to
// [0, maxSpeed] (spec §6).
func (m *ModelData) SetSpeed(speed float64) {
	if speed < 0 {
		speed = 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if speed > m.cfg.maxSpeed {
		speed = m.cfg.maxSpeed
	}
	m.observer.Speed = speed
	m.bumpLocked()
}

// AdjustSpeed nudges the observer's speed by n speed increments (n may be
// negative), clamped to [0, maxSpeed].
func (m *ModelData) AdjustSpeed(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	speed := m.observer.Speed + float64(n)*m.cfg.speedIncrement
	if speed < 0 {
		speed = 0
	} else if speed > m.cfg.maxSpeed {
		speed = m.cfg.maxSpeed
	}
	m.observer.Speed = speed
	m.bumpLocked()
}

// SetCenterpiece selects the decoration drawn at the user's start
// position.
func (m *ModelData) SetCenterpiece(c Centerpiece) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.centerpiece = c
	m.bumpLocked()
}

// SetFlags updates the boolean display flags spec §6 lists (fog,
// color-coding, show-observer, show-vertex-figures) in one locked
// section.
func (m *ModelData) SetFlags(fog, colorCoding, showObserver, showVertexFigures bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.showFog = fog
	m.showColorCoding = colorCoding
	m.showObserver = showObserver
	m.showVertexFigures = showVertexFigures
	m.bumpLocked()
}

// SetCliffordParallels toggles the spherical-only Clifford-parallels
// decoration flag.
func (m *ModelData) SetCliffordParallels(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cliffordParallels = enabled
	m.bumpLocked()
}

// Snapshot is the subset of ModelData a display-link callback reads under
// lock before releasing it and building GPU buffers off-lock (spec §5).
type Snapshot struct {
	Curvature         geom.Curvature
	HorizonRadius     float64
	Domain            *dirichlet.Polyhedron
	Tiling            *honeycomb.Honeycomb
	Placement         geom.Matrix
	Speed             float64
	Aperture          float64
	Centerpiece       Centerpiece
	CliffordParallels bool
	ShowFog           bool
	ShowColorCoding   bool
	ShowObserver      bool
	ShowVertexFigures bool
	ChangeCounter     uint64
}

// Snapshot copies every field a renderer needs for one frame while
// holding only a read lock, mirroring the display-link pattern spec §5
// describes.
func (m *ModelData) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{
		Curvature:         m.curvature,
		HorizonRadius:     m.horizonRadius,
		Domain:            m.domain,
		Tiling:            m.tiling,
		Placement:         m.observer.Placement,
		Speed:             m.observer.Speed,
		Aperture:          m.observer.Aperture,
		Centerpiece:       m.centerpiece,
		CliffordParallels: m.cliffordParallels,
		ShowFog:           m.showFog,
		ShowColorCoding:   m.showColorCoding,
		ShowObserver:      m.showObserver,
		ShowVertexFigures: m.showVertexFigures,
		ChangeCounter:     m.changeCounter,
	}
}
