package qdrantDB

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"github.com/researchkit/researcherAPI/internal/config"
)

func initCacheCollection(ctx context.Context, client *qdrant.Client) {
	if err := createCollection(ctx, client, config.CacheCollectionName); err != nil {
		logger.Error("Semantic cache collection creation failed", "error", err)
	}
}

// CachedAnswer embeds the query and looks for a previously stored answer
// whose query sits above the similarity cutoff.
func (db *ClientHolder) CachedAnswer(ctx context.Context, query string) (string, bool, error) {
	loggr := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	vector, err := db.embedder.GetEmbedding(ctx, query)
	if err != nil {
		return "", false, err
	}

	searchResult, err := db.QObj.Query(ctx, &qdrant.QueryPoints{
		CollectionName: config.CacheCollectionName,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(1)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		loggr.Error("Cache query failed", "error", err)
		return "", false, err
	}
	if len(searchResult) == 0 {
		return "", false, nil
	}

	loggr.Debug("Nearest cached query", "semantic similarity score", searchResult[0].Score)
	if searchResult[0].Score < config.CacheSimilarityCutoff {
		return "", false, nil
	}

	loggr.Info("---------------cache hit---------------------")
	answer := searchResult[0].Payload["answer"].GetStringValue()
	return answer, true, nil
}

// SaveAnswer stores the answer under a point id derived from the query
// text, so re-asking the exact question overwrites rather than piling
// up entries.
func (db *ClientHolder) SaveAnswer(ctx context.Context, query string, answer string) error {
	loggr := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	vector, err := db.embedder.GetEmbedding(ctx, query)
	if err != nil {
		return err
	}

	loggr.Debug("Saving answer to cache")
	_, err = db.QObj.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: config.CacheCollectionName,
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewID(uuid.NewSHA1(uuid.NameSpaceOID, []byte(query)).String()),
				Vectors: qdrant.NewVectors(vector...),
				Payload: qdrant.NewValueMap(map[string]any{
					"query":     query,
					"answer":    answer,
					"timestamp": time.Now().Unix(),
				}),
			},
		},
	})
	if err != nil {
		loggr.Error("Saving answer to cache failed", "error", err)
	}
	return err
}
