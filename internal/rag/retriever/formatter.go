package retriever

import (
	"fmt"
	"strings"

	"github.com/researchkit/researcherAPI/internal/domain/docModel"
)

// FormatResults renders the ranked result list as display text. This is
// the raw body the Enhance mode passes through untouched when no
// credential is supplied.
func FormatResults(query string, results []docModel.RetrievedResult) string {
	if len(results) == 0 {
		return fmt.Sprintf("No relevant passages found for: %q", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d relevant passage(s) for: %q\n", len(results), query)
	for i, res := range results {
		fmt.Fprintf(&b, "\n%d. [%s | chunk %d/%d | %.1f%% match]\n%s\n",
			i+1, res.SourceFile, res.ChunkIndex+1, res.TotalChunks, res.SimilarityPercent, res.Preview)
	}
	return b.String()
}
