package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewAnnotation_Unlabeled(t *testing.T) {
	a := NewAnnotation("/data/a.png")
	require.False(t, a.IsAnnotated)
	require.Equal(t, LabelUnlabeled, a.Label())
	require.ErrorIs(t, a.AddPoint(Point{X: 1, Y: 1}), ErrNotBad)
	require.Empty(t, a.Polygon)
}

func TestAnnotation_MarkGoodClearsPolygon(t *testing.T) {
	a := NewAnnotation("a.png")
	a.MarkBad()
	require.NoError(t, a.AddPoint(Point{X: 1, Y: 2}))
	require.NoError(t, a.AddPoint(Point{X: 3, Y: 4}))
	require.NoError(t, a.Finish())

	a.MarkGood()
	require.True(t, a.IsAnnotated)
	require.True(t, a.IsGood)
	require.False(t, a.Finished)
	require.Empty(t, a.Polygon)
	require.Equal(t, LabelGood, a.Label())
	require.ErrorIs(t, a.AddPoint(Point{}), ErrNotBad)
}

func TestAnnotation_MarkBadDiscardsPoints(t *testing.T) {
	a := NewAnnotation("a.png")
	a.MarkBad()
	require.NoError(t, a.AddPoint(Point{X: 1, Y: 2}))
	require.NoError(t, a.AddPoint(Point{X: 3, Y: 4}))

	a.MarkBad()
	require.Len(t, a.Polygon, 0)
	require.Equal(t, LabelBad, a.Label())
}

func TestAnnotation_FinishNeedsTwoPoints(t *testing.T) {
	a := NewAnnotation("a.png")
	a.MarkBad()
	require.NoError(t, a.AddPoint(Point{X: 5, Y: 5}))

	require.ErrorIs(t, a.Finish(), ErrTooFewPoints)
	require.False(t, a.Finished)
	require.Len(t, a.Polygon, 1)

	require.NoError(t, a.AddPoint(Point{X: 9, Y: 5}))
	require.NoError(t, a.Finish())
	require.True(t, a.Finished)
	require.False(t, a.IsGood)
}

func TestAnnotation_FinishOnGoodIsRejected(t *testing.T) {
	a := NewAnnotation("a.png")
	a.MarkGood()
	require.ErrorIs(t, a.Finish(), ErrNotBad)
	require.False(t, a.Finished)
}

func TestAnnotation_ResetOnlyForBad(t *testing.T) {
	a := NewAnnotation("a.png")
	a.MarkGood()
	require.ErrorIs(t, a.Reset(), ErrNotBad)

	a.MarkBad()
	require.NoError(t, a.AddPoint(Point{X: 1, Y: 1}))
	require.NoError(t, a.AddPoint(Point{X: 2, Y: 2}))
	require.NoError(t, a.Finish())
	require.NoError(t, a.Reset())
	require.Empty(t, a.Polygon)
	require.False(t, a.Finished)
	require.True(t, a.IsBad())
}

func TestAnnotation_SegmentsCloseWhenFinished(t *testing.T) {
	a := NewAnnotation("a.png")
	a.MarkBad()
	for _, p := range []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}} {
		require.NoError(t, a.AddPoint(p))
	}
	require.Len(t, a.Segments(), 2)

	require.NoError(t, a.Finish())
	segs := a.Segments()
	require.Len(t, segs, 3)
	require.Equal(t, Segment{From: Point{X: 10, Y: 10}, To: Point{X: 0, Y: 0}}, segs[2])
}
