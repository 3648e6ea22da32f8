package keyscrow

import "strings"

// Category is a coarse content grouping derived from a listing's file
// type. It is local display metadata, not ledger state.
type Category string

const (
	CategoryImages    Category = "images"
	CategoryVideos    Category = "videos"
	CategoryDocuments Category = "documents"
	CategoryAudio     Category = "audio"
	Category3DModels  Category = "3d-models"
	CategoryDatasets  Category = "datasets"
	CategoryCode      Category = "code"
	CategoryOther     Category = "other"
)

// Categories lists every known category in display order.
func Categories() []Category {
	return []Category{
		CategoryImages,
		CategoryVideos,
		CategoryDocuments,
		CategoryAudio,
		Category3DModels,
		CategoryDatasets,
		CategoryCode,
		CategoryOther,
	}
}

var categoryByExtension = map[string]Category{
	"png":  CategoryImages,
	"jpg":  CategoryImages,
	"jpeg": CategoryImages,
	"gif":  CategoryImages,
	"webp": CategoryImages,
	"svg":  CategoryImages,
	"bmp":  CategoryImages,
	"tiff": CategoryImages,

	"mp4":  CategoryVideos,
	"webm": CategoryVideos,
	"mov":  CategoryVideos,
	"avi":  CategoryVideos,
	"mkv":  CategoryVideos,

	"pdf":  CategoryDocuments,
	"doc":  CategoryDocuments,
	"docx": CategoryDocuments,
	"txt":  CategoryDocuments,
	"md":   CategoryDocuments,
	"epub": CategoryDocuments,

	"mp3":  CategoryAudio,
	"wav":  CategoryAudio,
	"flac": CategoryAudio,
	"ogg":  CategoryAudio,
	"m4a":  CategoryAudio,

	"obj":   Category3DModels,
	"fbx":   Category3DModels,
	"glb":   Category3DModels,
	"gltf":  Category3DModels,
	"stl":   Category3DModels,
	"blend": Category3DModels,

	"csv":     CategoryDatasets,
	"json":    CategoryDatasets,
	"xml":     CategoryDatasets,
	"parquet": CategoryDatasets,
	"sqlite":  CategoryDatasets,
	"xlsx":    CategoryDatasets,

	"go":  CategoryCode,
	"py":  CategoryCode,
	"js":  CategoryCode,
	"ts":  CategoryCode,
	"rs":  CategoryCode,
	"sol": CategoryCode,
	"zip": CategoryCode,
	"tar": CategoryCode,
}

// CategoryForFileType maps a file type or extension to its category.
// Unknown and empty types map to CategoryOther; the function is total.
func CategoryForFileType(fileType string) Category {
	ext := strings.ToLower(strings.TrimPrefix(fileType, "."))
	// Accept MIME-style types like "image/png" as well.
	if i := strings.LastIndexByte(ext, '/'); i >= 0 {
		ext = ext[i+1:]
	}
	if c, ok := categoryByExtension[ext]; ok {
		return c
	}
	return CategoryOther
}
