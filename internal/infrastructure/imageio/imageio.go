// Package imageio читает и записывает изображения поддерживаемых форматов.
package imageio

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Extensions поддерживаемые расширения файлов изображений.
var Extensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".tiff", ".tif"}

// IsImage сообщает, похож ли файл на изображение по расширению.
func IsImage(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Discover возвращает отсортированный список изображений каталога (без подкаталогов).
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !IsImage(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Load открывает изображение с учётом EXIF-ориентации.
func Load(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	return img, nil
}

// Decode декодирует изображение из памяти.
func Decode(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// Size возвращает размер изображения с учётом EXIF-ориентации, как его видит Load.
func Size(path string) (image.Point, error) {
	img, err := Load(path)
	if err != nil {
		return image.Point{}, err
	}
	return img.Bounds().Size(), nil
}

// Encode кодирует изображение в формат по расширению имени файла.
func Encode(img image.Image, name string) ([]byte, error) {
	format, err := imaging.FormatFromFilename(name)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(90)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save сохраняет изображение, создавая каталог при необходимости.
func Save(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return imaging.Save(img, path, imaging.JPEGQuality(90))
}
