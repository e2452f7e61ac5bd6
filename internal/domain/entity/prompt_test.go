package entity

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPromptCollector_ClickAddsPositivePoint(t *testing.T) {
	c := NewPromptCollector()
	c.Press(image.Pt(10, 20))
	require.Equal(t, ModeDragging, c.Mode)
	require.True(t, c.Release(image.Pt(10, 20)))

	require.Equal(t, ModeIdle, c.Mode)
	require.Equal(t, []ClickPoint{{X: 10, Y: 20, Label: PointPositive}}, c.Prompts.Points)
	require.Empty(t, c.Prompts.Boxes)
}

func TestPromptCollector_DragAddsBox(t *testing.T) {
	c := NewPromptCollector()
	c.Press(image.Pt(10, 20))

	_, ok := c.Move(image.Pt(13, 22))
	require.False(t, ok)

	preview, ok := c.Move(image.Pt(40, 60))
	require.True(t, ok)
	require.Equal(t, Box{Start: image.Pt(10, 20), End: image.Pt(40, 60)}, preview)

	require.True(t, c.Release(image.Pt(40, 60)))
	require.Equal(t, []Box{{Start: image.Pt(10, 20), End: image.Pt(40, 60)}}, c.Prompts.Boxes)
	require.Empty(t, c.Prompts.Points)
}

func TestPromptCollector_ReleaseWithoutPress(t *testing.T) {
	c := NewPromptCollector()
	require.False(t, c.Release(image.Pt(1, 1)))
	_, ok := c.Move(image.Pt(100, 100))
	require.False(t, ok)
	require.True(t, c.Prompts.Empty())
}

func TestPromptCollector_SecondaryAndReset(t *testing.T) {
	c := NewPromptCollector()
	c.Secondary(image.Pt(5, 6))
	c.Press(image.Pt(0, 0))
	c.Release(image.Pt(30, 30))
	require.Equal(t, PointNegative, c.Prompts.Points[0].Label)
	require.Len(t, c.Prompts.Boxes, 1)

	c.Reset()
	require.True(t, c.Prompts.Empty())
	require.Equal(t, ModeIdle, c.Mode)
}

func TestBox_RectIsNormalized(t *testing.T) {
	b := Box{Start: image.Pt(40, 60), End: image.Pt(10, 20)}
	require.Equal(t, image.Rect(10, 20, 40, 60), b.Rect())
}
