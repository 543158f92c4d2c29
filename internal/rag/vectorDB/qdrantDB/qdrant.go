package qdrantDB

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"github.com/researchkit/researcherAPI/internal/config"
	"github.com/researchkit/researcherAPI/internal/domain/ragErrors"
	"github.com/researchkit/researcherAPI/internal/rag/embedding"
	"github.com/researchkit/researcherAPI/internal/rag/vectorDB"
	"github.com/researchkit/researcherAPI/pkg/logger_i"
)

var logger *logger_i.Logger
var qdrantInstance *qdrant.Client
var once sync.Once
var dimension = uint64(config.EmbeddingOutputDimensionality)

// ClientHolder implements vectorDB.Store on top of Qdrant. It owns the
// text-to-vector step: callers hand it plain text, it embeds via the
// configured Embedder before upserting or querying.
type ClientHolder struct {
	QObj     *qdrant.Client
	embedder embedding.Embedder
}

func GetQdrantStore(ctx context.Context, embedder embedding.Embedder) vectorDB.Store {
	once.Do(func() {
		logger = logger_i.NewLogger("Qdrant")
		res := newClient(ctx)
		if res != nil {
			qdrantInstance = res
			initCacheCollection(ctx, qdrantInstance)
			go closeQdrant(ctx, qdrantInstance)
		}
	})

	if qdrantInstance == nil {
		return nil
	}
	return &ClientHolder{QObj: qdrantInstance, embedder: embedder}
}

func newClient(ctx context.Context) *qdrant.Client {
	host, port := config.QdrantAddr()

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     host,
		Port:     port,
		UseTLS:   config.QdrantUseTLS,
		PoolSize: uint(config.QdrantPoolSize),
	})
	if err != nil {
		logger.Error("could not instantiate qdrant client", "error", err)
		return nil
	}
	return client
}

func closeQdrant(ctx context.Context, qi *qdrant.Client) {
	<-ctx.Done()
	logger.Info("Shutting down Qdrant")
	if err := qi.Close(); err != nil {
		logger.Error("could not close Qdrant", "error", err)
	}
}

func (db *ClientHolder) GetOrCreateCollection(ctx context.Context, name string) (vectorDB.Collection, error) {
	if err := createCollection(ctx, db.QObj, name); err != nil {
		return nil, &ragErrors.StoreError{Op: "create collection", Err: err}
	}
	return &collection{name: name, db: db}, nil
}

func (db *ClientHolder) Collection(ctx context.Context, name string) (vectorDB.Collection, error) {
	exists, err := db.QObj.CollectionExists(ctx, name)
	if err != nil {
		return nil, &ragErrors.StoreError{Op: "collection lookup", Err: err}
	}
	if !exists {
		return nil, ragErrors.ErrNotInitialized
	}
	return &collection{name: name, db: db}, nil
}

type collection struct {
	name string
	db   *ClientHolder
}

func (c *collection) Add(ctx context.Context, ids []string, documents []string, metadatas []map[string]any) error {
	if len(ids) != len(documents) || len(ids) != len(metadatas) {
		return &ragErrors.StoreError{
			Op:  "add",
			Err: fmt.Errorf("mismatch: %d ids, %d documents, %d metadatas", len(ids), len(documents), len(metadatas)),
		}
	}

	vectors, err := c.db.embedder.BatchEmbedding(ctx, documents)
	if err != nil {
		return &ragErrors.StoreError{Op: "embed batch", Err: err}
	}
	if len(vectors) != len(documents) {
		return &ragErrors.StoreError{
			Op:  "embed batch",
			Err: fmt.Errorf("mismatch: got %d vectors for %d documents", len(vectors), len(documents)),
		}
	}

	points := make([]*qdrant.PointStruct, len(ids))
	for i := range ids {
		payload := map[string]any{"content": documents[i]}
		for k, v := range metadatas[i] {
			payload[k] = v
		}
		points[i] = &qdrant.PointStruct{
			// Qdrant point ids must be uint64 or UUID; derive a stable
			// UUID from the chunk id so re-written ids land on the same
			// point.
			Id:      qdrant.NewID(uuid.NewSHA1(uuid.NameSpaceOID, []byte(ids[i])).String()),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(payload),
		}
	}

	_, err = c.db.QObj.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: c.name,
		Points:         points,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return &ragErrors.StoreError{Op: "upsert", Err: err}
	}
	return nil
}

func (c *collection) Query(ctx context.Context, queryText string, nResults int) (vectorDB.QueryResult, error) {
	vector, err := c.db.embedder.GetEmbedding(ctx, queryText)
	if err != nil {
		return vectorDB.QueryResult{}, &ragErrors.StoreError{Op: "embed query", Err: err}
	}

	hits, err := c.db.QObj.Query(ctx, &qdrant.QueryPoints{
		CollectionName: c.name,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(nResults)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return vectorDB.QueryResult{}, &ragErrors.StoreError{Op: "query", Err: err}
	}

	result := vectorDB.QueryResult{
		Documents: make([]string, 0, len(hits)),
		Metadatas: make([]map[string]any, 0, len(hits)),
		Distances: make([]float32, 0, len(hits)),
	}
	for _, hit := range hits {
		metadata := make(map[string]any, len(hit.Payload))
		for k, v := range hit.Payload {
			switch k {
			case "chunk_index", "total_chunks", "ingested_at":
				metadata[k] = v.GetIntegerValue()
			default:
				metadata[k] = v.GetStringValue()
			}
		}
		result.Documents = append(result.Documents, hit.Payload["content"].GetStringValue())
		result.Metadatas = append(result.Metadatas, metadata)
		// Qdrant reports cosine similarity in [-1,1]; flip it into the
		// [0,2] cosine-distance domain the contract promises.
		result.Distances = append(result.Distances, 1-hit.Score)
	}
	return result, nil
}

func createCollection(ctx context.Context, client *qdrant.Client, collectionName string) error {
	if collectionName == "" {
		return errors.New("empty collection name")
	}

	exists, err := client.CollectionExists(ctx, collectionName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
}
