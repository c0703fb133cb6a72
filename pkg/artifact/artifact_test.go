package artifact

import (
	"context"
	"testing"

	"github.com/infogen/core/pkg/metering"
	"github.com/infogen/core/pkg/store"
)

func TestPutThenGetRoundTrips(t *testing.T) {
	s := NewStore(store.NewMemory(), []byte("test-secret"))
	ctx := context.Background()
	plan := metering.Plan{ArtifactTTLHours: 24}

	hash := ContentHash("a brief", "v1", FormatSVG)
	ref, err := s.Put(ctx, hash, []byte("<svg/>"), plan)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	data, err := s.Get(ctx, ref)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("got %q", data)
	}
}

func TestGetRejectsTamperedSignature(t *testing.T) {
	s := NewStore(store.NewMemory(), []byte("test-secret"))
	ctx := context.Background()
	plan := metering.Plan{ArtifactTTLHours: 24}

	ref, err := s.Put(ctx, ContentHash("b", "v1", FormatSlide), []byte("data"), plan)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	ref.Signature = "deadbeef"

	if _, err := s.Get(ctx, ref); err == nil {
		t.Error("expected a tampered signature to be rejected")
	}
}

func TestContentHashStableForIdenticalInputs(t *testing.T) {
	a := ContentHash("brief text", "v1", FormatSVG)
	b := ContentHash("brief text", "v1", FormatSVG)
	if a != b {
		t.Errorf("expected identical inputs to hash the same: %q != %q", a, b)
	}
	c := ContentHash("brief text", "v1", FormatSlide)
	if a == c {
		t.Error("expected different formats to hash differently")
	}
}
