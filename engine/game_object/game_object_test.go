package game_object

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-fractal/common"
	"github.com/Carmen-Shannon/oxy-fractal/engine/fractal"
	"github.com/Carmen-Shannon/oxy-fractal/engine/publisher"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type drawRecorder struct {
	levels int
	draws  []publisher.DrawCall
}

func (r *drawRecorder) CreateLevelBuffers(sizes []uint64) error {
	r.levels = len(sizes)
	return nil
}

func (r *drawRecorder) WriteLevel(w publisher.BufferWrite) error {
	if w.Level >= r.levels {
		return publisher.ErrNotAllocated
	}
	return nil
}

func (r *drawRecorder) SubmitDraw(call publisher.DrawCall) error {
	r.draws = append(r.draws, call)
	return nil
}

func (r *drawRecorder) Release() {
	r.levels = 0
}

func flatStyles(depth int) []publisher.LevelStyle {
	return make([]publisher.LevelStyle, depth)
}

func newTestObject(t *testing.T, depth int, options ...GameObjectBuilderOption) (GameObject, *drawRecorder) {
	t.Helper()
	rec := &drawRecorder{}
	pub := publisher.NewPublisher(rec)
	f := fractal.NewFractal(fractal.WithSeed(2), fractal.WithWorkers(1), fractal.WithLevelAllocator(pub))
	t.Cleanup(func() { _ = f.Close() })
	cfg := fractal.DefaultConfig()
	cfg.Depth = depth
	require.NoError(t, f.Activate(cfg))

	options = append([]GameObjectBuilderOption{
		WithID(7),
		WithFractal(f),
		WithPublisher(pub, flatStyles),
	}, options...)
	return NewGameObject(options...), rec
}

func TestNewGameObjectDefaults(t *testing.T) {
	obj := NewGameObject()
	assert.True(t, obj.Enabled())
	assert.Equal(t, common.IdentityTransform(), obj.Transform())
	assert.Nil(t, obj.Fractal())
	assert.Nil(t, obj.Publisher())

	frame, err := obj.Update(0.1)
	require.NoError(t, err)
	assert.Empty(t, frame.Levels)
}

func TestGameObjectUpdateTicksAndPublishes(t *testing.T) {
	obj, rec := newTestObject(t, 3, WithPosition(1, 2, 3), WithScale(2))
	assert.Equal(t, uint64(7), obj.ID())

	frame, err := obj.Update(1.0 / 60)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), frame.Tick)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, frame.RootPosition)
	assert.Equal(t, float32(2), frame.ObjectScale)

	require.Len(t, rec.draws, 3)
	assert.True(t, rec.draws[2].Leaf)
	assert.Equal(t, common.NewCubeBounds(mgl32.Vec3{1, 2, 3}, 6), rec.draws[0].Bounds)
}

func TestGameObjectSkipsWhenDisabled(t *testing.T) {
	obj, rec := newTestObject(t, 2, WithEnabled(false))
	assert.False(t, obj.Enabled())

	frame, err := obj.Update(0.1)
	require.NoError(t, err)
	assert.Empty(t, frame.Levels)
	assert.Empty(t, rec.draws)

	obj.SetEnabled(true)
	_, err = obj.Update(0.1)
	require.NoError(t, err)
	assert.Len(t, rec.draws, 2)
}

func TestGameObjectSkipsInactiveFractal(t *testing.T) {
	obj, rec := newTestObject(t, 2)
	require.NoError(t, obj.Fractal().Deactivate())

	_, err := obj.Update(0.1)
	require.NoError(t, err)
	assert.Empty(t, rec.draws)
}

func TestGameObjectRegeneratesStylesOnReconfigure(t *testing.T) {
	obj, rec := newTestObject(t, 2)
	_, err := obj.Update(0.1)
	require.NoError(t, err)

	cfg := obj.Fractal().Config()
	cfg.Depth = 4
	require.NoError(t, obj.Fractal().Reconfigure(cfg))

	_, err = obj.Update(0.1)
	require.NoError(t, err)
	assert.Len(t, rec.draws, 2+4)
}

func TestGameObjectRotationSpeed(t *testing.T) {
	obj, _ := newTestObject(t, 1, WithRotationSpeed(90))

	_, err := obj.Update(1)
	require.NoError(t, err)

	// A quarter turn around up carries +X onto -Z.
	got := obj.Transform().Rotation.Rotate(mgl32.Vec3{1, 0, 0})
	assert.InDelta(t, 0, got[0], 1e-5)
	assert.InDelta(t, -1, got[2], 1e-5)
}

func TestGameObjectSetters(t *testing.T) {
	obj := NewGameObject()
	obj.SetPosition(4, 5, 6)
	obj.SetScale(3)
	obj.SetRotation(mgl32.Quat{W: 2})

	tr := obj.Transform()
	assert.Equal(t, mgl32.Vec3{4, 5, 6}, tr.Position)
	assert.Equal(t, float32(3), tr.Scale)
	assert.InDelta(t, 1, tr.Rotation.W, 1e-6)
}
