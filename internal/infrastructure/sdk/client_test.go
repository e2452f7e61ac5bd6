package sdk

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"dlsdk-demos/internal/domain/entity"
	"dlsdk-demos/internal/domain/port"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/models", func(w http.ResponseWriter, r *http.Request) {
		var req loadRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.ModelPath == "missing.dwm" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"model file not found"}`))
			return
		}
		require.Equal(t, "CPU", req.Device)
		_ = json.NewEncoder(w).Encode(loadResponse{ModelID: string(req.Task) + "-1"})
	})

	mux.HandleFunc("POST /api/v1/models/{id}/inference", func(w http.ResponseWriter, r *http.Request) {
		var req inferenceRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		img, err := base64.StdEncoding.DecodeString(req.Image)
		require.NoError(t, err)

		switch r.PathValue("id") {
		case "auto_segmentation-1":
			require.Len(t, req.Points, 1)
			require.Len(t, req.Boxes, 1)
			_, _ = w.Write([]byte(`{"task":"auto_segmentation","result":{"objects":[{"label":"mask","confidence":1}]}}`))
		case "ocr-1":
			_, _ = w.Write([]byte(`{"task":"ocr","result":{"items":[{"text":"` + string(img) + `","confidence":0.99}]}}`))
		default:
			_, _ = w.Write([]byte(`{"task":"ocr","result":{}}`))
		}
	})

	mux.HandleFunc("DELETE /api/v1/models/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("POST /api/v1/components", func(w http.ResponseWriter, r *http.Request) {
		var req componentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "screw", req.Name)
		require.Len(t, req.Good, 2)
		_ = json.NewEncoder(w).Encode(componentResponse{Path: req.SavePath})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_LoadAndInference(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL+"/", "CPU", zap.NewNop())
	ctx := context.Background()

	m, err := c.Load(ctx, entity.TaskOCR, "ocr.dwm")
	require.NoError(t, err)
	require.Equal(t, entity.TaskOCR, m.Task())

	res, err := m.Inference(ctx, port.InferenceRequest{Image: []byte("LOT-42")})
	require.NoError(t, err)
	ocr, ok := res.(*entity.OCRResult)
	require.True(t, ok)
	require.Equal(t, "LOT-42", ocr.Items[0].Text)

	require.NoError(t, m.Close())
}

func TestClient_InferenceWithPrompts(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL, "CPU", zap.NewNop())
	ctx := context.Background()

	m, err := c.Load(ctx, entity.TaskAutoSegmentation, "auto_segment.dwm")
	require.NoError(t, err)

	prompts := &entity.PromptSet{
		Points: []entity.ClickPoint{{X: 1, Y: 2, Label: entity.PointPositive}},
		Boxes:  []entity.Box{{Start: image.Pt(0, 0), End: image.Pt(5, 5)}},
	}
	res, err := m.Inference(ctx, port.InferenceRequest{Image: []byte("img"), Prompts: prompts})
	require.NoError(t, err)
	require.Equal(t, entity.TaskAutoSegmentation, res.Task())
}

func TestClient_TaskMismatch(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL, "CPU", zap.NewNop())
	ctx := context.Background()

	m, err := c.Load(ctx, entity.TaskClassification, "cls.dwm")
	require.NoError(t, err)

	_, err = m.Inference(ctx, port.InferenceRequest{Image: []byte("img")})
	require.ErrorContains(t, err, "expected classification result")
}

func TestClient_LoadError(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL, "CPU", zap.NewNop())

	_, err := c.Load(context.Background(), entity.TaskOCR, "missing.dwm")
	require.ErrorContains(t, err, "model file not found")
}

func TestClient_CreateComponent(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL, "CPU", zap.NewNop())

	path, err := c.CreateComponent(context.Background(), port.ComponentRequest{
		Name:      "screw",
		GoodPaths: []string{"g1.png", "g2.png"},
		BadPaths:  []string{"b1.png"},
		MaskPaths: []string{"b1_mask.png"},
		SavePath:  "/data/component_1.pth",
	})
	require.NoError(t, err)
	require.Equal(t, "/data/component_1.pth", path)
}
