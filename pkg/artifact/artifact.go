// Package artifact persists rendered output bytes to object storage and
// hands back a signed reference, per §4.9 step 9. It is a thin layer over
// the same store.Store capability the gateway's cache and the metering
// package's counters share: content-addressed by the hash of (Brief,
// theme included + archetype version + output format) so re-rendering
// identical input lands on the same key (each Put still rewrites the
// bytes and refreshes the TTL), with a per-plan TTL and a
// google/uuid-salted signature so references can't be guessed or forged.
package artifact

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/infogen/core/pkg/metering"
	"github.com/infogen/core/pkg/store"
)

// Format names the renderer that produced an artifact's bytes.
type Format string

const (
	FormatSVG   Format = "svg"
	FormatSlide Format = "slide"
)

// Ref is the signed, opaque pointer a caller receives in place of the
// artifact's raw bytes. Salt is not secret — it's folded into Signature
// so two Put calls for the same content hash (a legitimate cache hit)
// never mint the same token twice.
type Ref struct {
	Key       string
	Salt      string
	Signature string
	ExpiresAt time.Time
}

// String renders ref as the single token callers pass back to fetch the
// artifact, so a Ref survives round-tripping through a GenerationRecord
// or a client response body.
func (r Ref) String() string {
	return fmt.Sprintf("%s.%s.%d.%s", r.Key, r.Salt, r.ExpiresAt.Unix(), r.Signature)
}

// Store persists rendered artifacts and mints signed references for
// them. It is backed by the same store.Store implementation the gateway
// cache and metering counters use, selected once at the composition root.
type Store struct {
	backing store.Store
	hmacKey []byte
}

// NewStore wraps backing. hmacKey signs references; it should be a
// deployment secret, not derived from request data.
func NewStore(backing store.Store, hmacKey []byte) *Store {
	return &Store{backing: backing, hmacKey: hmacKey}
}

// ContentHash derives the content-addressing key from the inputs that
// fully determine a rendered artifact's bytes: the Brief's canonical
// string form, the archetype solver's version tag, and the output
// format. Two requests that hash identically are the same artifact.
func ContentHash(briefString, archetypeVersion string, format Format) string {
	h := sha256.New()
	h.Write([]byte(briefString))
	h.Write([]byte{0})
	h.Write([]byte(archetypeVersion))
	h.Write([]byte{0})
	h.Write([]byte(format))
	return hex.EncodeToString(h.Sum(nil))
}

// Put writes data under its content hash, expiring after the plan's
// artifact TTL, and returns a signed Ref. A salt from google/uuid is
// folded into the signature so repeated Put calls for the same content
// hash (a legitimate cache hit) don't leak a predictable signature.
func (s *Store) Put(ctx context.Context, contentHash string, data []byte, plan metering.Plan) (Ref, error) {
	ttl := time.Duration(plan.ArtifactTTLHours) * time.Hour
	if err := s.backing.SetWithTTL(ctx, objectKey(contentHash), data, ttl); err != nil {
		return Ref{}, fmt.Errorf("artifact: writing %s: %w", contentHash, err)
	}
	expiresAt := time.Now().Add(ttl)
	salt := uuid.New().String()
	return Ref{
		Key:       contentHash,
		Salt:      salt,
		Signature: s.sign(contentHash, salt, expiresAt),
		ExpiresAt: expiresAt,
	}, nil
}

// Get returns the bytes stored under ref, after verifying its signature
// and expiry.
func (s *Store) Get(ctx context.Context, ref Ref) ([]byte, error) {
	if !hmac.Equal([]byte(s.sign(ref.Key, ref.Salt, ref.ExpiresAt)), []byte(ref.Signature)) {
		return nil, fmt.Errorf("artifact: reference for %s failed signature verification", ref.Key)
	}
	if time.Now().After(ref.ExpiresAt) {
		return nil, fmt.Errorf("artifact: reference for %s expired at %s", ref.Key, ref.ExpiresAt)
	}
	data, ok, err := s.backing.Get(ctx, objectKey(ref.Key))
	if err != nil {
		return nil, fmt.Errorf("artifact: reading %s: %w", ref.Key, err)
	}
	if !ok {
		return nil, fmt.Errorf("artifact: %s not found (expired or evicted)", ref.Key)
	}
	return data, nil
}

func objectKey(contentHash string) string {
	return "artifact:" + contentHash
}

func (s *Store) sign(contentHash, salt string, expiresAt time.Time) string {
	mac := hmac.New(sha256.New, s.hmacKey)
	fmt.Fprintf(mac, "%s|%d|%s", contentHash, expiresAt.Unix(), salt)
	return hex.EncodeToString(mac.Sum(nil))
}
