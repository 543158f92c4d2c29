package answer

import (
	"fmt"
	"strings"

	"github.com/researchkit/researcherAPI/internal/domain/docModel"
)

const entryDelimiter = "\n\n----------------------------------------\n\n"

// assembleContext joins the full untruncated texts under attribution
// headers. No length cap here; prompt budgeting is the composer's
// problem, not the assembler's.
func assembleContext(results []docModel.RetrievedResult) string {
	entries := make([]string, 0, len(results))
	for _, res := range results {
		header := fmt.Sprintf("[Source: %s | Chunk %d of %d | Relevance: %.1f%%]",
			res.SourceFile, res.ChunkIndex+1, res.TotalChunks, res.SimilarityPercent)
		entries = append(entries, header+"\n"+res.Text)
	}
	return strings.Join(entries, entryDelimiter)
}

func distinctSources(results []docModel.RetrievedResult) int {
	seen := make(map[string]struct{}, len(results))
	for _, res := range results {
		seen[res.SourceFile] = struct{}{}
	}
	return len(seen)
}
