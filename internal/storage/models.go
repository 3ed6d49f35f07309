package storage

// FileType identifies the original document format a chunk was extracted from.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeTXT  FileType = "txt"
	FileTypeCSV  FileType = "csv"
	FileTypeHTML FileType = "html"
)

// ParseFileType maps a file extension (with or without the leading dot) to a
// FileType. Unknown extensions default to txt so plain-text extraction still
// has a valid label.
func ParseFileType(ext string) FileType {
	if len(ext) > 0 && ext[0] == '.' {
		ext = ext[1:]
	}
	switch ext {
	case "pdf":
		return FileTypePDF
	case "csv":
		return FileTypeCSV
	case "html", "htm":
		return FileTypeHTML
	default:
		return FileTypeTXT
	}
}

// Chunk is one immutable unit of ingested document text.
// Chunks are created during ingestion and only ever removed by a full reindex.
type Chunk struct {
	ID          string   // UUID (doubles as the vector point ID)
	Content     string   // Chunk text content
	SourcePath  string   // Original file path or URL
	Filename    string   // Base name of the source
	FileType    FileType // pdf, txt, csv or html
	Category    string   // Content category assigned at ingestion
	ChunkIndex  int      // Index within the source document (starts at 0)
	TotalChunks int      // Number of chunks the source produced
}
