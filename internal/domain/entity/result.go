package entity

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Task тип задачи модели.
type Task string

const (
	TaskClassification       Task = "classification"
	TaskObjectDetection      Task = "object_detection"
	TaskInstanceSegmentation Task = "instance_segmentation"
	TaskOCR                  Task = "ocr"
	TaskKeypointDetection    Task = "keypoint_detection"
	TaskPositioning          Task = "positioning"
	TaskPresenceChecking     Task = "presence_checking"
	TaskRotatedDetection     Task = "rotated_object_detection"
	TaskMixedModel           Task = "mixed_model"
	TaskSupervisedDefect     Task = "supervised_defect_segmentation"
	TaskUnsupervisedDefect   Task = "unsupervised_defect_segmentation"
	TaskAutoSegmentation     Task = "auto_segmentation"
)

// Tasks все поддерживаемые задачи.
var Tasks = []Task{
	TaskClassification,
	TaskObjectDetection,
	TaskInstanceSegmentation,
	TaskOCR,
	TaskKeypointDetection,
	TaskPositioning,
	TaskPresenceChecking,
	TaskRotatedDetection,
	TaskMixedModel,
	TaskSupervisedDefect,
	TaskUnsupervisedDefect,
	TaskAutoSegmentation,
}

// ParseTask разбирает название задачи.
func ParseTask(s string) (Task, error) {
	t := Task(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Tasks {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown task %q", s)
}

// Result общий интерфейс результатов инференса.
type Result interface {
	// Task возвращает задачу, которой принадлежит результат
	Task() Task
	// Confidences возвращает уверенности по найденным объектам
	Confidences() []float64
	// Summary формирует текст для консоли
	Summary() string
}

// BBox ограничивающая рамка.
type BBox struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// RotatedBox повёрнутая рамка, угол в градусах.
type RotatedBox struct {
	CX     float64 `json:"cx"`
	CY     float64 `json:"cy"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Angle  float64 `json:"angle"`
}

// Mask маска объекта в виде полигонов.
type Mask struct {
	Width    int       `json:"width"`
	Height   int       `json:"height"`
	Polygons [][]Point `json:"polygons"`
}

// Detection один найденный объект.
type Detection struct {
	ClassID    int     `json:"class_id"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Box        BBox    `json:"box"`
	Angle      float64 `json:"angle,omitempty"` // для позиционирования
}

// ClassScore метка класса с уверенностью.
type ClassScore struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// ClassificationResult результат классификации.
type ClassificationResult struct {
	Scores []ClassScore `json:"scores"`
}

func (r *ClassificationResult) Task() Task { return TaskClassification }

func (r *ClassificationResult) Confidences() []float64 {
	out := make([]float64, len(r.Scores))
	for i, s := range r.Scores {
		out[i] = s.Confidence
	}
	return out
}

func (r *ClassificationResult) Summary() string {
	var b strings.Builder
	for _, s := range r.Scores {
		fmt.Fprintf(&b, "  Label: %s, Confidence: %.4f\n", s.Label, s.Confidence)
	}
	return b.String()
}

// DetectionResult результат детекции: обычной, позиционирования или проверки наличия.
type DetectionResult struct {
	Kind       Task        `json:"-"`
	Detections []Detection `json:"detections"`
	Decision   string      `json:"decision,omitempty"` // для проверки наличия
}

func (r *DetectionResult) Task() Task {
	if r.Kind == "" {
		return TaskObjectDetection
	}
	return r.Kind
}

func (r *DetectionResult) Confidences() []float64 {
	return detectionConfidences(r.Detections)
}

func (r *DetectionResult) Summary() string {
	var b strings.Builder
	if r.Decision != "" {
		fmt.Fprintf(&b, "  Decision: %s\n", r.Decision)
	}
	writeDetections(&b, r.Detections)
	return b.String()
}

// RotatedDetection объект с повёрнутой рамкой.
type RotatedDetection struct {
	ClassID    int        `json:"class_id"`
	Label      string     `json:"label"`
	Confidence float64    `json:"confidence"`
	Box        RotatedBox `json:"box"`
}

// RotatedDetectionResult результат детекции повёрнутых объектов.
type RotatedDetectionResult struct {
	Detections []RotatedDetection `json:"detections"`
}

func (r *RotatedDetectionResult) Task() Task { return TaskRotatedDetection }

func (r *RotatedDetectionResult) Confidences() []float64 {
	out := make([]float64, len(r.Detections))
	for i, d := range r.Detections {
		out[i] = d.Confidence
	}
	return out
}

func (r *RotatedDetectionResult) Summary() string {
	var b strings.Builder
	for _, d := range r.Detections {
		fmt.Fprintf(&b, "  Class ID: %d, Label: %s, Confidence: %.4f, Center: (%.1f, %.1f), Size: %.1fx%.1f, Angle: %.1f\n",
			d.ClassID, d.Label, d.Confidence, d.Box.CX, d.Box.CY, d.Box.Width, d.Box.Height, d.Box.Angle)
	}
	return b.String()
}

// SegmentedObject объект с маской.
type SegmentedObject struct {
	Detection
	Mask Mask `json:"mask"`
}

// SegmentationResult результат сегментации: экземпляров, брака с учителем или автосегментации.
type SegmentationResult struct {
	Kind    Task              `json:"-"`
	Objects []SegmentedObject `json:"objects"`
}

func (r *SegmentationResult) Task() Task {
	if r.Kind == "" {
		return TaskInstanceSegmentation
	}
	return r.Kind
}

func (r *SegmentationResult) Confidences() []float64 {
	out := make([]float64, len(r.Objects))
	for i, o := range r.Objects {
		out[i] = o.Confidence
	}
	return out
}

func (r *SegmentationResult) Summary() string {
	var b strings.Builder
	for i, o := range r.Objects {
		fmt.Fprintf(&b, "  Object %d: Label: %s, Confidence: %.4f, Box: (%.1f, %.1f, %.1f, %.1f), Polygons: %d\n",
			i+1, o.Label, o.Confidence, o.Box.X1, o.Box.Y1, o.Box.X2, o.Box.Y2, len(o.Mask.Polygons))
	}
	return b.String()
}

// TextItem распознанная строка.
type TextItem struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Polygon    []Point `json:"polygon"`
}

// OCRResult результат распознавания текста.
type OCRResult struct {
	Items []TextItem `json:"items"`
}

func (r *OCRResult) Task() Task { return TaskOCR }

func (r *OCRResult) Confidences() []float64 {
	out := make([]float64, len(r.Items))
	for i, it := range r.Items {
		out[i] = it.Confidence
	}
	return out
}

func (r *OCRResult) Summary() string {
	var b strings.Builder
	for _, it := range r.Items {
		fmt.Fprintf(&b, "  Text: %q, Confidence: %.4f\n", it.Text, it.Confidence)
	}
	return b.String()
}

// Keypoint ключевая точка.
type Keypoint struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Confidence float64 `json:"confidence"`
}

// KeypointObject объект с набором ключевых точек.
type KeypointObject struct {
	Detection
	Keypoints []Keypoint `json:"keypoints"`
}

// KeypointResult результат детекции ключевых точек.
type KeypointResult struct {
	Objects []KeypointObject `json:"objects"`
}

func (r *KeypointResult) Task() Task { return TaskKeypointDetection }

func (r *KeypointResult) Confidences() []float64 {
	out := make([]float64, len(r.Objects))
	for i, o := range r.Objects {
		out[i] = o.Confidence
	}
	return out
}

func (r *KeypointResult) Summary() string {
	var b strings.Builder
	for i, o := range r.Objects {
		fmt.Fprintf(&b, "  Object %d: Label: %s, Confidence: %.4f, Keypoints: %d\n",
			i+1, o.Label, o.Confidence, len(o.Keypoints))
		for j, k := range o.Keypoints {
			fmt.Fprintf(&b, "    #%d (%.1f, %.1f) %.3f\n", j, k.X, k.Y, k.Confidence)
		}
	}
	return b.String()
}

// MixedObject объект мультиметочной модели.
type MixedObject struct {
	Detection
	Flags map[string]float64 `json:"flags"` // дополнительные метки с уверенностью
}

// MixedResult результат смешанной модели.
type MixedResult struct {
	Objects []MixedObject `json:"objects"`
}

func (r *MixedResult) Task() Task { return TaskMixedModel }

func (r *MixedResult) Confidences() []float64 {
	out := make([]float64, len(r.Objects))
	for i, o := range r.Objects {
		out[i] = o.Confidence
	}
	return out
}

func (r *MixedResult) Summary() string {
	var b strings.Builder
	for i, o := range r.Objects {
		fmt.Fprintf(&b, "  Object %d: Label: %s, Confidence: %.4f, Flags: %v\n", i+1, o.Label, o.Confidence, o.Flags)
	}
	return b.String()
}

// DefectResult результат сегментации брака без учителя.
type DefectResult struct {
	Decision       string  `json:"decision"` // good или bad
	DeviationScore float64 `json:"ai_deviation_score"`
	Mask           Mask    `json:"mask"`
}

func (r *DefectResult) Task() Task { return TaskUnsupervisedDefect }

func (r *DefectResult) Confidences() []float64 {
	return []float64{r.DeviationScore}
}

func (r *DefectResult) Summary() string {
	return fmt.Sprintf("  Decision: %s, Deviation score: %.4f, Polygons: %d\n",
		r.Decision, r.DeviationScore, len(r.Mask.Polygons))
}

func detectionConfidences(ds []Detection) []float64 {
	out := make([]float64, len(ds))
	for i, d := range ds {
		out[i] = d.Confidence
	}
	return out
}

func writeDetections(b *strings.Builder, ds []Detection) {
	for _, d := range ds {
		fmt.Fprintf(b, "  Class ID: %d, Label: %s, Confidence: %.4f, Box: (%.1f, %.1f) - (%.1f, %.1f)\n",
			d.ClassID, d.Label, d.Confidence, d.Box.X1, d.Box.Y1, d.Box.X2, d.Box.Y2)
	}
}

type resultEnvelope struct {
	Task   Task            `json:"task"`
	Result json.RawMessage `json:"result"`
}

// MarshalResult сериализует результат вместе с названием задачи.
func MarshalResult(r Result) ([]byte, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal %s result: %w", r.Task(), err)
	}
	return json.MarshalIndent(resultEnvelope{Task: r.Task(), Result: body}, "", "  ")
}

// UnmarshalResult восстанавливает результат нужного типа по названию задачи.
func UnmarshalResult(data []byte) (Result, error) {
	var env resultEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode result envelope: %w", err)
	}

	r, err := newResult(env.Task)
	if err != nil {
		return nil, err
	}
	if len(env.Result) > 0 {
		if err := json.Unmarshal(env.Result, r); err != nil {
			return nil, fmt.Errorf("decode %s result: %w", env.Task, err)
		}
	}
	return r, nil
}

func newResult(task Task) (Result, error) {
	switch task {
	case TaskClassification:
		return &ClassificationResult{}, nil
	case TaskObjectDetection, TaskPositioning, TaskPresenceChecking:
		return &DetectionResult{Kind: task}, nil
	case TaskRotatedDetection:
		return &RotatedDetectionResult{}, nil
	case TaskInstanceSegmentation, TaskSupervisedDefect, TaskAutoSegmentation:
		return &SegmentationResult{Kind: task}, nil
	case TaskOCR:
		return &OCRResult{}, nil
	case TaskKeypointDetection:
		return &KeypointResult{}, nil
	case TaskMixedModel:
		return &MixedResult{}, nil
	case TaskUnsupervisedDefect:
		return &DefectResult{}, nil
	default:
		return nil, fmt.Errorf("unknown task %q", task)
	}
}
