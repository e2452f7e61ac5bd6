package app

import (
	"context"
	"errors"
	"sync"

	"dlsdk-demos/internal/domain/entity"
	"dlsdk-demos/internal/domain/port"
)

type fakeModel struct {
	task   entity.Task
	result entity.Result
	err    error

	mu       sync.Mutex
	calls    int
	requests []port.InferenceRequest
	closed   bool
}

func (m *fakeModel) Task() entity.Task { return m.task }

func (m *fakeModel) Inference(ctx context.Context, req port.InferenceRequest) (entity.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *fakeModel) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

type fakeLoader struct {
	mu     sync.Mutex
	loads  int
	fail   map[int]error // номер загрузки -> ошибка
	newFn  func(task entity.Task) *fakeModel
	models []*fakeModel
	gate   func(modelPath string) // вызывается до захвата mu
}

func (l *fakeLoader) Load(ctx context.Context, task entity.Task, modelPath string) (port.Model, error) {
	if l.gate != nil {
		l.gate(modelPath)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	n := l.loads
	l.loads++
	if err, ok := l.fail[n]; ok {
		return nil, err
	}
	m := l.newFn(task)
	l.models = append(l.models, m)
	return m, nil
}

type fakeVisualizer struct {
	err error
}

func (v *fakeVisualizer) Visualize(imageData []byte, result entity.Result) ([]byte, error) {
	if v.err != nil {
		return nil, v.err
	}
	return append([]byte("vis:"), imageData...), nil
}

type fakeTrainer struct {
	req port.ComponentRequest
	err error
}

func (t *fakeTrainer) CreateComponent(ctx context.Context, req port.ComponentRequest) (string, error) {
	t.req = req
	if t.err != nil {
		return "", t.err
	}
	return req.SavePath, nil
}

var errBoom = errors.New("boom")
