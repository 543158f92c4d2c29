package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/researchkit/researcherAPI/internal/config"
	"github.com/researchkit/researcherAPI/internal/data/redisStore"
	"github.com/researchkit/researcherAPI/internal/data/store"
	"github.com/researchkit/researcherAPI/internal/domain/docModel"
)

func TestRedisReportStore_Lifecycle(t *testing.T) {
	// 1. Start miniredis
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	internalStore := redisStore.NewTestStore(client)
	reportStore := store.TestReportStore(internalStore)

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
	reportID := "report_abc_123"

	testReport := docModel.IngestReport{
		Outcomes: []docModel.FileOutcome{
			{FileName: "paper.pdf", SizeBytes: 2048, Chunks: 7, Succeeded: true},
			{FileName: "image.png", Reason: "not a PDF file"},
		},
		TotalFiles:  2,
		ValidFiles:  1,
		TotalBytes:  2048,
		TotalChunks: 7,
		StartedAt:   time.Now().Add(-time.Second),
		FinishedAt:  time.Now(),
	}

	t.Run("Save and Get Roundtrip", func(t *testing.T) {
		err := reportStore.SaveReport(ctx, reportID, testReport)
		if err != nil {
			t.Fatalf("SaveReport failed: %v", err)
		}

		retrieved, found := reportStore.GetReport(ctx, reportID)
		if !found {
			t.Fatal("Report was saved but not found in Redis")
		}

		if retrieved.TotalChunks != testReport.TotalChunks {
			t.Errorf("Data mismatch! Got %d chunks, want %d",
				retrieved.TotalChunks, testReport.TotalChunks)
		}
		if len(retrieved.Outcomes) != 2 || retrieved.Outcomes[1].Reason != "not a PDF file" {
			t.Errorf("Outcomes mismatch: %+v", retrieved.Outcomes)
		}
	})

	t.Run("Get Non-Existent Report", func(t *testing.T) {
		_, found := reportStore.GetReport(ctx, "ghost-id")
		if found {
			t.Error("Expected found=false for non-existent key")
		}
	})

	t.Run("Expiry", func(t *testing.T) {
		mr.FastForward(config.RedisReportTTL + time.Minute)
		_, found := reportStore.GetReport(ctx, reportID)
		if found {
			t.Error("Report survived past its TTL")
		}
	})

	t.Run("Delete Report", func(t *testing.T) {
		if err := reportStore.SaveReport(ctx, reportID, testReport); err != nil {
			t.Fatalf("SaveReport failed: %v", err)
		}
		reportStore.DeleteReport(ctx, reportID)

		if mr.Exists(reportID) {
			t.Error("Report still exists in Redis after DeleteReport call")
		}
	})
}

func TestInMemoryReportStore_Fallback(t *testing.T) {
	reportStore := store.InitInMemoryReportStore()
	ctx := context.Background()

	report := docModel.IngestReport{TotalFiles: 1, ValidFiles: 1}

	if err := reportStore.SaveReport(ctx, "mem-1", report); err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}

	got, found := reportStore.GetReport(ctx, "mem-1")
	if !found || got.TotalFiles != 1 {
		t.Errorf("GetReport got %+v found=%v", got, found)
	}

	reportStore.DeleteReport(ctx, "mem-1")
	if _, found := reportStore.GetReport(ctx, "mem-1"); found {
		t.Error("report still present after delete")
	}
}

func TestSessionStore_ClearKeepsIdValid(t *testing.T) {
	sessions := store.InitSessionStore()
	ctx := context.Background()

	history := sessions.GetOrInitSession(ctx, "chat-1")
	history.Append(docModel.ConversationTurn{UserMessage: "hi", AssistantResponse: "hello"})

	sessions.ClearSession(ctx, "chat-1")

	again, found := sessions.Session(ctx, "chat-1")
	if !found {
		t.Fatal("session id invalidated by clear")
	}
	if again.Len() != 0 {
		t.Errorf("history has %d turns after clear, want 0", again.Len())
	}
	if again != history {
		t.Error("clear replaced the history instance instead of resetting it")
	}
}
