package telegram

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	app "dlsdk-demos/internal/application"
	"dlsdk-demos/internal/domain/entity"
)

func TestTaskList_ContainsEveryTask(t *testing.T) {
	list := taskList()
	for _, task := range entity.Tasks {
		require.Contains(t, list, "• "+string(task))
	}
}

func TestFormatReport(t *testing.T) {
	out := &app.InferenceOutput{
		Result: &entity.DetectionResult{
			Kind:       entity.TaskObjectDetection,
			Detections: []entity.Detection{{ClassID: 2, Label: "crack", Confidence: 0.5}},
		},
		Elapsed: 42 * time.Millisecond,
	}

	text := formatReport(entity.TaskObjectDetection, out)
	require.Contains(t, text, "object_detection (42 мс)")
	require.Contains(t, text, "Label: crack")
}

func TestFormatReport_Empty(t *testing.T) {
	out := &app.InferenceOutput{Result: &entity.DetectionResult{Kind: entity.TaskObjectDetection}}
	require.Equal(t, msgNothingFound, formatReport(entity.TaskObjectDetection, out))
}
