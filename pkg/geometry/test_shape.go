package geometry

import (
	"sync"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// RayRecorder captures the last object-space ray a TestShape received
type RayRecorder struct {
	mu    sync.Mutex
	ray   core.Ray
	saved bool
}

// Record stores ray as the most recent one
func (r *RayRecorder) Record(ray core.Ray) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ray = ray
	r.saved = true
}

// Last returns the most recent ray and whether one was recorded
func (r *RayRecorder) Last() (core.Ray, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ray, r.saved
}

// TestShape never intersects; it records the local ray it was given and
// echoes local points back as normals
type TestShape struct {
	Recorder *RayRecorder
}

// LocalIntersect records ray and reports no hits
func (s TestShape) LocalIntersect(ray core.Ray) []float64 {
	if s.Recorder != nil {
		s.Recorder.Record(ray)
	}
	return nil
}

// LocalNormalAt returns point as a vector
func (TestShape) LocalNormalAt(point core.Tuple) core.Tuple {
	return core.Vector(point.X, point.Y, point.Z)
}

func (TestShape) primitive() {}
