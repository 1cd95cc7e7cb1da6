package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestVector3Arithmetic(t *testing.T) {
	a := NewVector3(1, 2, 3)
	b := NewVector3(4, 5, 6)

	assert.Equal(t, NewVector3(5, 7, 9), a.Add(b))
	assert.Equal(t, NewVector3(3, 3, 3), b.Sub(a))
	assert.Equal(t, NewVector3(2, 4, 6), a.Mul(2))
	assert.Equal(t, NewVector3(-1, -2, -3), a.Negate())
	assert.Equal(t, 32.0, a.Dot(b))
}

func TestVector3Cross(t *testing.T) {
	assert.Equal(t, UnitZ, UnitX.Cross(UnitY))
	assert.Equal(t, UnitX, UnitY.Cross(UnitZ))
	assert.Equal(t, UnitZ.Negate(), UnitY.Cross(UnitX))
}

func TestVector3Length(t *testing.T) {
	assert.InDelta(t, 5.0, NewVector3(3, 4, 0).Length(), 1e-12)
	assert.InDelta(t, 5.0, NewVector3(0, 0, 0).Distance(NewVector3(0, 3, 4)), 1e-12)
}

func TestVector3Normalize(t *testing.T) {
	n := NewVector3(0, 0, 7).Normalize()
	assert.True(t, n.NearlyEqual(UnitZ, 1e-12))
	assert.Equal(t, Vector3{}, Vector3{}.Normalize())
}

func TestVector3Ground(t *testing.T) {
	assert.Equal(t, NewVector3(1, 0, 3), NewVector3(1, 2, 3).Ground())
}

func TestVector3MinMax(t *testing.T) {
	a := NewVector3(1, 5, -2)
	b := NewVector3(3, -1, 0)
	assert.Equal(t, NewVector3(1, -1, -2), a.Min(b))
	assert.Equal(t, NewVector3(3, 5, 0), a.Max(b))
}

func TestVector3YAML(t *testing.T) {
	v := NewVector3(1, 2.5, -3)
	out, err := yaml.Marshal(v)
	require.NoError(t, err)

	var back Vector3
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, v, back)

	// hand-written files use plain keys
	var parsed Vector3
	require.NoError(t, yaml.Unmarshal([]byte("x: 1\ny: 2.5\nz: -3\n"), &parsed))
	assert.Equal(t, v, parsed)
}
