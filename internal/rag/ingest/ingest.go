package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/researchkit/researcherAPI/internal/config"
	"github.com/researchkit/researcherAPI/internal/domain/docModel"
	"github.com/researchkit/researcherAPI/internal/metrics"
	"github.com/researchkit/researcherAPI/internal/rag/chunker"
	"github.com/researchkit/researcherAPI/internal/rag/vectorDB"
	"github.com/researchkit/researcherAPI/pkg/logger_i"
)

const pdfExtension = ".pdf"

type Ingestor struct {
	extractor  TextExtractor
	chunker    *chunker.Chunker
	store      vectorDB.Store
	collection string
	logger     *logger_i.Logger
}

func New(extractor TextExtractor, splitter *chunker.Chunker, store vectorDB.Store, collection string) *Ingestor {
	return &Ingestor{
		extractor:  extractor,
		chunker:    splitter,
		store:      store,
		collection: collection,
		logger:     logger_i.NewLogger("Document Ingestion"),
	}
}

// Ingest processes every file in order, isolating per-file failures so
// one bad document never halts the rest of the batch. Cancellation stops
// between files and the partial report is returned, never swallowed.
func (ing *Ingestor) Ingest(ctx context.Context, files []docModel.FileUpload) docModel.IngestReport {
	report := docModel.IngestReport{StartedAt: time.Now()}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			report.Outcomes = append(report.Outcomes, docModel.FileOutcome{
				FileName:  file.Name,
				SizeBytes: int64(len(file.Data)),
				Reason:    fmt.Sprintf("cancelled before processing: %v", err),
			})
			report.TotalFiles++
			continue
		}

		outcome := ing.ingestFile(ctx, file)
		report.Outcomes = append(report.Outcomes, outcome)
		report.TotalFiles++
		report.TotalBytes += outcome.SizeBytes
		if outcome.Succeeded {
			report.ValidFiles++
			report.TotalChunks += outcome.Chunks
			metrics.IncrementDocumentsIngested()
			metrics.AddChunksIndexed(outcome.Chunks)
		}
	}

	report.FinishedAt = time.Now()
	return report
}

func (ing *Ingestor) ingestFile(ctx context.Context, file docModel.FileUpload) docModel.FileOutcome {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("document_ingestion", time.Since(start)) }()

	log := ing.logger.With("file", file.Name)
	outcome := docModel.FileOutcome{
		FileName:  file.Name,
		SizeBytes: int64(len(file.Data)),
	}

	if !strings.HasSuffix(strings.ToLower(file.Name), pdfExtension) {
		outcome.Reason = "not a PDF file"
		return outcome
	}

	pages, err := ing.extractor.Extract(ctx, file.Data)
	if err != nil {
		log.Error("extraction failed", "error", err)
		outcome.Reason = fmt.Sprintf("extraction failed: %v", err)
		return outcome
	}

	text := strings.Join(pages, "\n")
	if strings.TrimSpace(text) == "" {
		outcome.Reason = "no extractable text"
		return outcome
	}

	segments := ing.chunker.Split(text)
	if len(segments) == 0 {
		outcome.Reason = "no paragraphs extracted"
		return outcome
	}

	chunks := buildChunks(file.Name, segments)
	log.Debug("prepared chunks", "count", len(chunks))

	if written, err := ing.storeChunks(ctx, chunks); err != nil {
		log.Error("store write failed", "written", written, "error", err)
		// The store gives no batch atomicity; earlier batches are
		// already indexed. Report it rather than hiding it.
		outcome.Reason = fmt.Sprintf("store write failed (index holds %d of %d chunks): %v", written, len(chunks), err)
		return outcome
	}

	outcome.Chunks = len(chunks)
	outcome.Succeeded = true
	return outcome
}

// buildChunks assigns deterministic ids {hashPrefix}_para_{index} with
// sequential indexes and a shared total.
func buildChunks(fileName string, segments []string) []docModel.Chunk {
	prefix := hashPrefix(fileName)
	chunks := make([]docModel.Chunk, len(segments))
	for i, text := range segments {
		chunks[i] = docModel.Chunk{
			Id:          fmt.Sprintf("%s_para_%d", prefix, i),
			Text:        text,
			SourceFile:  fileName,
			ChunkIndex:  i,
			TotalChunks: len(segments),
			SourceRef:   fileName,
		}
	}
	return chunks
}

// storeChunks writes in sub-batches because the embedding API behind
// the store caps batch inputs. Returns how many chunks made it in
// before any failure.
func (ing *Ingestor) storeChunks(ctx context.Context, chunks []docModel.Chunk) (int, error) {
	collection, err := ing.store.GetOrCreateCollection(ctx, ing.collection)
	if err != nil {
		return 0, err
	}

	now := time.Now().Unix()
	for batchStart := 0; batchStart < len(chunks); batchStart += config.IngestBatchSize {
		batchEnd := batchStart + config.IngestBatchSize
		if batchEnd > len(chunks) {
			batchEnd = len(chunks)
		}
		batch := chunks[batchStart:batchEnd]

		ids := make([]string, len(batch))
		documents := make([]string, len(batch))
		metadatas := make([]map[string]any, len(batch))
		for i, chunk := range batch {
			ids[i] = chunk.Id
			documents[i] = chunk.Text
			metadatas[i] = map[string]any{
				"chunk_id":     chunk.Id,
				"source_file":  chunk.SourceFile,
				"chunk_index":  chunk.ChunkIndex,
				"total_chunks": chunk.TotalChunks,
				"source_ref":   chunk.SourceRef,
				"ingested_at":  now,
			}
		}
		if err := collection.Add(ctx, ids, documents, metadatas); err != nil {
			return batchStart, err
		}
	}
	return len(chunks), nil
}

// hashPrefix derives the 8-hex-char id prefix from the file name. Two
// distinct documents sharing a name collide; accepted at this scale.
func hashPrefix(fileName string) string {
	sum := sha256.Sum256([]byte(fileName))
	return hex.EncodeToString(sum[:4])
}
