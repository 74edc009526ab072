package services_test

import (
	"context"
	"testing"

	"soundguard/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithUploadID(ctx, "upl-42")
	ctx = services.WithStage(ctx, "recognition")
	ctx = services.WithRequestID(ctx, "req-123")

	if id, ok := services.UploadIDFromContext(ctx); !ok || id != "upl-42" {
		t.Fatalf("unexpected upload id: %v %v", id, ok)
	}
	if stage, ok := services.StageFromContext(ctx); !ok || stage != "recognition" {
		t.Fatalf("unexpected stage: %v %v", stage, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithStage(ctx, "")
	ctx = services.WithUploadID(ctx, "")
	if _, ok := services.StageFromContext(ctx); ok {
		t.Fatal("expected no stage value")
	}
	if _, ok := services.UploadIDFromContext(ctx); ok {
		t.Fatal("expected no upload id value")
	}
}
