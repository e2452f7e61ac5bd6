// Package sdk обращается к локальному сервису инференса DaoAI по HTTP.
package sdk

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"dlsdk-demos/internal/domain/entity"
	"dlsdk-demos/internal/domain/port"
)

const defaultTimeout = 2 * time.Minute

// Client клиент сервиса инференса
type Client struct {
	baseURL string
	device  string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient создаёт клиента. device — GPU или CPU.
func NewClient(baseURL, device string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		device:  device,
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  logger,
	}
}

type loadRequest struct {
	Task      entity.Task `json:"task"`
	ModelPath string      `json:"model_path"`
	Device    string      `json:"device"`
}

type loadResponse struct {
	ModelID string `json:"model_id"`
}

type inferenceRequest struct {
	Image  string              `json:"image"`
	Points []entity.ClickPoint `json:"points,omitempty"`
	Boxes  []entity.Box        `json:"boxes,omitempty"`
}

type componentRequest struct {
	Name     string   `json:"name"`
	Good     []string `json:"good"`
	Bad      []string `json:"bad"`
	Masks    []string `json:"masks"`
	SavePath string   `json:"save_path"`
	Device   string   `json:"device"`
}

type componentResponse struct {
	Path string `json:"path"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Load загружает модель на сервисе
func (c *Client) Load(ctx context.Context, task entity.Task, modelPath string) (port.Model, error) {
	var resp loadResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/models", loadRequest{Task: task, ModelPath: modelPath, Device: c.device}, &resp)
	if err != nil {
		return nil, fmt.Errorf("load %s model %s: %w", task, modelPath, err)
	}
	if resp.ModelID == "" {
		return nil, fmt.Errorf("load %s model %s: empty model id", task, modelPath)
	}
	c.logger.Debug("model loaded", zap.String("task", string(task)), zap.String("model_id", resp.ModelID))
	return &Model{client: c, id: resp.ModelID, task: task}, nil
}

// CreateComponent строит компонент сегментации брака без учителя
func (c *Client) CreateComponent(ctx context.Context, req port.ComponentRequest) (string, error) {
	var resp componentResponse
	body := componentRequest{
		Name:     req.Name,
		Good:     req.GoodPaths,
		Bad:      req.BadPaths,
		Masks:    req.MaskPaths,
		SavePath: req.SavePath,
		Device:   c.device,
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/components", body, &resp); err != nil {
		return "", fmt.Errorf("create component %s: %w", req.Name, err)
	}
	if resp.Path == "" {
		resp.Path = req.SavePath
	}
	return resp.Path, nil
}

// Model модель, загруженная на сервисе
type Model struct {
	client *Client
	id     string
	task   entity.Task
}

// Task возвращает задачу модели
func (m *Model) Task() entity.Task {
	return m.task
}

// Inference отправляет изображение в base64 и разбирает результат
func (m *Model) Inference(ctx context.Context, req port.InferenceRequest) (entity.Result, error) {
	body := inferenceRequest{Image: base64.StdEncoding.EncodeToString(req.Image)}
	if req.Prompts != nil {
		body.Points = req.Prompts.Points
		body.Boxes = req.Prompts.Boxes
	}

	var raw json.RawMessage
	if err := m.client.do(ctx, http.MethodPost, "/api/v1/models/"+url.PathEscape(m.id)+"/inference", body, &raw); err != nil {
		return nil, fmt.Errorf("inference: %w", err)
	}

	result, err := entity.UnmarshalResult(raw)
	if err != nil {
		return nil, err
	}
	if result.Task() != m.task {
		return nil, fmt.Errorf("inference: expected %s result, got %s", m.task, result.Task())
	}
	return result, nil
}

// Close выгружает модель
func (m *Model) Close() error {
	return m.client.do(context.Background(), http.MethodDelete, "/api/v1/models/"+url.PathEscape(m.id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e errorResponse
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			return fmt.Errorf("service returned %d: %s", resp.StatusCode, e.Error)
		}
		return fmt.Errorf("service returned %d", resp.StatusCode)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Проверка реализации интерфейсов
var (
	_ port.ModelLoader      = (*Client)(nil)
	_ port.ComponentTrainer = (*Client)(nil)
	_ port.Model            = (*Model)(nil)
)
