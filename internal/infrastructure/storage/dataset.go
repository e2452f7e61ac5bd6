package storage

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"dlsdk-demos/internal/domain/port"
	"dlsdk-demos/internal/infrastructure/mask"
)

// MaskSuffix суффикс имени файла маски.
const MaskSuffix = "_mask.png"

// FileDatasetWriter выгружает разметку в <root>/good, <root>/bad и <root>/masks
type FileDatasetWriter struct {
	root string
}

// NewFileDatasetWriter создаёт каталоги выгрузки
func NewFileDatasetWriter(root string) (*FileDatasetWriter, error) {
	for _, b := range []port.Bucket{port.BucketGood, port.BucketBad, port.BucketMasks} {
		if err := os.MkdirAll(filepath.Join(root, string(b)), 0o755); err != nil {
			return nil, fmt.Errorf("create %s dir: %w", b, err)
		}
	}
	return &FileDatasetWriter{root: root}, nil
}

// Root возвращает корень выгрузки
func (w *FileDatasetWriter) Root() string {
	return w.root
}

// CopyToBucket копирует файл без изменений
func (w *FileDatasetWriter) CopyToBucket(srcPath string, bucket port.Bucket) (string, error) {
	dst := filepath.Join(w.root, string(bucket), filepath.Base(srcPath))
	if err := copyFile(srcPath, dst); err != nil {
		return "", fmt.Errorf("copy %s to %s: %w", srcPath, bucket, err)
	}
	return dst, nil
}

// WriteMask сохраняет маску как <stem>_mask.png
func (w *FileDatasetWriter) WriteMask(srcPath string, m *image.Gray) (string, error) {
	data, err := mask.EncodePNG(m)
	if err != nil {
		return "", fmt.Errorf("encode mask: %w", err)
	}
	dst := filepath.Join(w.root, string(port.BucketMasks), MaskName(srcPath))
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("write mask: %w", err)
	}
	return dst, nil
}

// List возвращает отсортированные файлы каталога
func (w *FileDatasetWriter) List(bucket port.Bucket) ([]string, error) {
	dir := filepath.Join(w.root, string(bucket))
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(out)
	return out, nil
}

// MaskName возвращает имя файла маски для исходного изображения
func MaskName(srcPath string) string {
	base := filepath.Base(srcPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + MaskSuffix
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Проверка реализации интерфейса
var _ port.DatasetWriter = (*FileDatasetWriter)(nil)
