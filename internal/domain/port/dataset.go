package port

import "image"

// Bucket каталог выгрузки размеченных изображений
type Bucket string

const (
	BucketGood  Bucket = "good"
	BucketBad   Bucket = "bad"
	BucketMasks Bucket = "masks"
)

// DatasetWriter записывает результаты разметки и инференса на диск
type DatasetWriter interface {
	// CopyToBucket копирует исходный файл в каталог и возвращает путь копии
	CopyToBucket(srcPath string, bucket Bucket) (string, error)

	// WriteMask сохраняет маску как PNG и возвращает путь
	WriteMask(srcPath string, mask *image.Gray) (string, error)

	// List возвращает файлы каталога
	List(bucket Bucket) ([]string, error)

	// Root возвращает корень выгрузки
	Root() string
}
