package sonartel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAsyncBufferWrapsAndFindsNearest(t *testing.T) {
	b := NewAsyncBuffer(3)
	b.Push(AsyncSample{Epoch: 1, Value: "a"})
	b.Push(AsyncSample{Epoch: 2, Value: "b"})
	b.Push(AsyncSample{Epoch: 3, Value: "c"})
	require.Equal(t, 3, b.Len())

	// Overflows the oldest sample out.
	b.Push(AsyncSample{Epoch: 4, Value: "d"})
	require.Equal(t, 3, b.Len())

	latest, ok := b.Latest()
	require.True(t, ok)
	require.Equal(t, "d", latest.Value)

	nearest, ok := b.Nearest(2.9)
	require.True(t, ok)
	require.Equal(t, "c", nearest.Value)

	samples := b.Drain()
	require.Equal(t, []float64{2, 3, 4}, []float64{samples[0].Epoch, samples[1].Epoch, samples[2].Epoch})
	require.Equal(t, 0, b.Len())
}

func TestAsyncBuffersObserveRoutesByRecordType(t *testing.T) {
	a := NewAsyncBuffers(4)
	a.Observe(RecordPosition, 10, "pos")
	a.Observe(RecordDepth, 10, "depth")
	a.Observe(RecordHeading, 10, "heading")
	a.Observe(RecordAltitude, 10, "alt")
	a.Observe(RecordSVP, 10, "svp")
	a.Observe(RecordRollPitchHeave, 10, "att")

	for _, tc := range []struct {
		cat  AsyncCategory
		want string
	}{
		{AsyncPosition, "pos"},
		{AsyncDepth, "depth"},
		{AsyncHeading, "heading"},
		{AsyncAltitude, "alt"},
		{AsyncSVP, "svp"},
		{AsyncAttitude, "att"},
	} {
		s, ok := a.Buffer(tc.cat).Latest()
		require.True(t, ok)
		require.Equal(t, tc.want, s.Value)
	}
}
