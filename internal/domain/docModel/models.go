package docModel

import "time"

// FileUpload is one document handed to the ingestor: the original file
// name plus the raw bytes. The driving surface owns reading them in.
type FileUpload struct {
	Name string
	Data []byte
}

type Document struct {
	Name       string    `json:"doc_name"`
	SizeBytes  int64     `json:"size_bytes"`
	HashPrefix string    `json:"hash_prefix"`
	IngestedAt time.Time `json:"ingested_at"`
}

// Chunk is an immutable span of extracted text. Ids are deterministic:
// {hashPrefix}_para_{index}, unique within the store barring hash-prefix
// collisions across documents.
type Chunk struct {
	Id          string `json:"chunk_id"`
	Text        string `json:"content"`
	SourceFile  string `json:"source_file"`
	ChunkIndex  int    `json:"chunk_index"`
	TotalChunks int    `json:"total_chunks"`
	SourceRef   string `json:"source_ref"`
}

// RetrievedResult is ephemeral, never persisted. Distance is the store's
// native metric (lower = closer, domain [0,2]); SimilarityPercent is the
// derived human-readable transform.
type RetrievedResult struct {
	ChunkId           string  `json:"chunk_id"`
	Text              string  `json:"-"`
	Preview           string  `json:"preview"`
	SourceFile        string  `json:"source_file"`
	ChunkIndex        int     `json:"chunk_index"`
	TotalChunks       int     `json:"total_chunks"`
	Distance          float32 `json:"distance"`
	SimilarityPercent float64 `json:"similarity_percent"`
}

type FileOutcome struct {
	FileName  string `json:"file_name"`
	SizeBytes int64  `json:"size_bytes"`
	Chunks    int    `json:"chunks"`
	Succeeded bool   `json:"succeeded"`
	Reason    string `json:"reason,omitempty"`
}

// IngestReport accumulates ordered per-file outcomes and batch totals.
// One file failing never halts the files after it.
type IngestReport struct {
	Outcomes    []FileOutcome `json:"outcomes"`
	TotalFiles  int           `json:"total_files"`
	ValidFiles  int           `json:"valid_files"`
	TotalBytes  int64         `json:"total_bytes"`
	TotalChunks int           `json:"total_chunks"`
	StartedAt   time.Time     `json:"started_at"`
	FinishedAt  time.Time     `json:"finished_at"`
}

type ConversationTurn struct {
	UserMessage       string `json:"user_message"`
	AssistantResponse string `json:"assistant_response"`
}
