package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/infogen/core/pkg/apperr"
	"github.com/infogen/core/pkg/artifact"
	"github.com/infogen/core/pkg/brief"
	"github.com/infogen/core/pkg/classifier"
	"github.com/infogen/core/pkg/gateway"
	"github.com/infogen/core/pkg/layout"
	"github.com/infogen/core/pkg/measure"
	"github.com/infogen/core/pkg/metering"
	"github.com/infogen/core/pkg/reasoning"
	"github.com/infogen/core/pkg/render/slide"
	"github.com/infogen/core/pkg/render/svg"
	"github.com/infogen/core/pkg/themes"
)

// archetypeVersion is folded into an artifact's content hash so a future
// change to a solver's placement rules invalidates previously cached
// output for the same Brief, per §4.9 step 8.
const archetypeVersion = "v1"

// Timeouts, per §5.
const (
	DefaultReasoningTimeout = 20 * time.Second
	DefaultTotalBudget      = 45 * time.Second
)

// GenerateRequest is the orchestrator's entry point, mirroring §3's
// GenerateRequest entity.
type GenerateRequest struct {
	CallerID string
	PlanTier metering.PlanTier

	Prompt              string
	DiagramTypeHint     string
	EntityCountHint     int
	Palette             []string // caller-supplied hex, with or without '#'
	LogoBytes           []byte
	ReferenceImageBytes []byte
	TemplateBytes       []byte
	Images              []gateway.ImageInput

	OutputFormats []metering.OutputFormat
	Language      string

	// BrandPresetName, when non-empty, is looked up via Pipeline's
	// ThemeLoader and merged into the reasoning request, per §4.6.
	BrandPresetName string
}

// Artifacts maps each produced output format to its signed reference.
type Artifacts map[metering.OutputFormat]artifact.Ref

// GenerateResult is everything a caller gets back from one successful
// Generate call.
type GenerateResult struct {
	GenerationID string
	Brief        *brief.Brief
	Layout       *layout.PositionedLayout
	Artifacts    Artifacts
	Record       metering.GenerationRecord
	Warnings     []layout.Warning
}

// Pipeline is the composition root wiring every stage for one request,
// per §4.9. Every field is an injected collaborator; Pipeline holds no
// process-wide state of its own beyond what its fields already carry.
type Pipeline struct {
	Reasoning     *reasoning.Service
	RateLimiter   *metering.RateLimiter
	QuotaTracker  *metering.QuotaTracker
	Plans         map[metering.PlanTier]metering.Plan
	ArtifactStore *artifact.Store
	Records       metering.RecordStore
	ThemeLoader   *themes.Loader // nil disables brand-preset lookup
	Logger        *zap.Logger

	FontFamily       string
	ReasoningTimeout time.Duration
	TotalBudget      time.Duration
}

// New returns a Pipeline with the given required collaborators and
// package defaults for everything else. Callers override fields directly
// (Go's usual "construct, then configure" idiom) before first use.
func New(reasoningSvc *reasoning.Service, rateLimiter *metering.RateLimiter, quota *metering.QuotaTracker, artifacts *artifact.Store, records metering.RecordStore) *Pipeline {
	return &Pipeline{
		Reasoning:        reasoningSvc,
		RateLimiter:      rateLimiter,
		QuotaTracker:     quota,
		Plans:            metering.DefaultPlans,
		ArtifactStore:    artifacts,
		Records:          records,
		Logger:           zap.NewNop(),
		FontFamily:       measure.RoleLatin,
		ReasoningTimeout: DefaultReasoningTimeout,
		TotalBudget:      DefaultTotalBudget,
	}
}

// Generate runs the full pipeline for one request, per §4.9 steps 1-10.
// A GenerationRecord is persisted exactly once before returning,
// regardless of success or failure (step 10; §5's idempotence and §7's
// "the record shows Timeout" on deadline expiry).
func (p *Pipeline) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	genID := uuid.New().String()
	startedAt := time.Now()

	rec := metering.GenerationRecord{
		GenerationID: genID,
		CallerID:     req.CallerID,
		PlanTier:     req.PlanTier,
		Archetype:    req.DiagramTypeHint,
		StartedAt:    startedAt,
	}

	budget := p.TotalBudget
	if budget <= 0 {
		budget = DefaultTotalBudget
	}
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	result, err := p.run(ctx, genID, req, &rec)

	rec.FinishedAt = time.Now()
	rec.Succeeded = err == nil
	rec.Kind = apperr.KindOf(err)
	if putErr := p.Records.Put(ctx, rec); putErr != nil {
		p.Logger.Warn("orchestrator: failed to persist generation record",
			zap.String("generation_id", genID), zap.Error(putErr))
	}

	if err != nil {
		return nil, err
	}
	result.Record = rec
	return result, nil
}

// run implements the actual step sequence; Generate wraps it to
// guarantee the record is always written.
func (p *Pipeline) run(ctx context.Context, genID string, req GenerateRequest, rec *metering.GenerationRecord) (*GenerateResult, error) {
	plan, ok := p.Plans[req.PlanTier]
	if !ok {
		return nil, apperr.Newf("orchestrator", apperr.InputInvalid, "unknown plan tier %q", req.PlanTier)
	}

	now := time.Now()

	// Step 1: rate limiter.
	if err := p.RateLimiter.Allow(ctx, req.CallerID, plan, now); err != nil {
		return nil, mapTimeout("orchestrator", err)
	}

	// Step 2: generations-per-month quota.
	if err := p.QuotaTracker.Allow(ctx, req.CallerID, plan, now); err != nil {
		return nil, mapTimeout("orchestrator", err)
	}

	// Step 3: preprocess inputs.
	reasonReq, warnings, err := p.preprocess(req)
	if err != nil {
		return nil, err
	}

	// Pre-classify so a forbidden tier is rejected before any gateway
	// call, per §4.8/§4.9 step 1 and scenario S6. classifier.Classify is
	// pure (§8 property 7), so this mirrors exactly what reasoning.Generate
	// will compute internally a moment later.
	tier := classifier.Classify(classifier.Request{
		Prompt:          req.Prompt,
		HasImages:       len(reasonReq.Images) > 0,
		DiagramTypeHint: req.DiagramTypeHint,
		EntityCountHint: req.EntityCountHint,
	})
	if err := plan.CheckModelTier(tier); err != nil {
		return nil, err
	}

	// Step 4: Reasoning Service.
	reasoningCtx := ctx
	if p.ReasoningTimeout > 0 {
		var rcancel context.CancelFunc
		reasoningCtx, rcancel = context.WithTimeout(ctx, p.ReasoningTimeout)
		defer rcancel()
	}
	result, err := p.Reasoning.Generate(reasoningCtx, req.CallerID, *reasonReq)
	if err != nil {
		return nil, mapTimeout("reasoning", err)
	}
	b := result.Brief

	rec.Archetype = string(b.DiagramType)
	rec.InputTokens = result.Response.InputTokens
	rec.OutputTokens = result.Response.OutputTokens
	rec.CostUSD = result.Response.CostUSD

	// Step 5: plan entity-count cap.
	if err := plan.CheckEntityCount(len(b.Entities)); err != nil {
		return nil, err
	}

	// Steps 6-7: layout solving (measurement is invoked internally by the
	// solver per entity, since it needs the per-block width the solver
	// itself computes — see pkg/layout's EstimateBlockSize).
	positioned, err := layout.Run(b, layout.Deps{FontFamily: p.FontFamily})
	if err != nil {
		return nil, mapTimeout("layout", err)
	}
	warnings = append(warnings, positioned.Warnings...)

	// Step 8: render each plan-allowed requested format, in parallel
	// (renderers share nothing mutable, per §5).
	formats := plan.FilterOutputFormats(req.OutputFormats)
	briefJSON, err := json.Marshal(b)
	if err != nil {
		return nil, apperr.New("orchestrator", apperr.InternalError, err)
	}

	artifacts, err := p.renderAndStore(ctx, string(briefJSON), positioned, formats, plan)
	if err != nil {
		return nil, err
	}

	return &GenerateResult{
		GenerationID: genID,
		Brief:        b,
		Layout:       positioned,
		Artifacts:    artifacts,
		Warnings:     warnings,
	}, nil
}

// renderOutput is one format's rendered bytes, produced concurrently and
// collected under a mutex.
type renderOutput struct {
	format metering.OutputFormat
	data   []byte
}

func (p *Pipeline) renderAndStore(ctx context.Context, briefJSON string, positioned *layout.PositionedLayout, formats []metering.OutputFormat, plan metering.Plan) (Artifacts, error) {
	var (
		mu      sync.Mutex
		outputs []renderOutput
		combErr error
	)

	var wg sync.WaitGroup
	for _, format := range formats {
		format := format
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, err := renderFormat(format, positioned)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				combErr = multierr.Append(combErr, fmt.Errorf("%s: %w", format, err))
				return
			}
			outputs = append(outputs, renderOutput{format: format, data: data})
		}()
	}
	wg.Wait()

	if combErr != nil {
		return nil, apperr.New("render", apperr.InternalError, combErr)
	}

	artifacts := make(Artifacts, len(outputs))
	for _, out := range outputs {
		contentHash := artifact.ContentHash(briefJSON, archetypeVersion, artifact.Format(out.format))
		ref, err := p.ArtifactStore.Put(ctx, contentHash, out.data, plan)
		if err != nil {
			return nil, apperr.New("artifact", apperr.InternalError, err)
		}
		artifacts[out.format] = ref
	}
	return artifacts, nil
}

func renderFormat(format metering.OutputFormat, positioned *layout.PositionedLayout) ([]byte, error) {
	switch format {
	case metering.FormatSVG:
		return svg.Render(positioned)
	case metering.FormatSlide:
		var buf bytes.Buffer
		if err := slide.Render(positioned, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// preprocess implements §4.9 step 3: normalize the caller's palette,
// extract dominant colors from an uploaded logo, merge a saved brand
// preset, and fold in a shallow template theme snapshot, building the
// Reasoning Service's Request. Failures here are soft: an unusable logo
// or template degrades to "no hint from this source" with a warning,
// never InputInvalid — only a caller-supplied palette hex the validator
// would reject is silently dropped (normalizePalette), since §3 treats
// every one of these sources as a hint, not a contract.
func (p *Pipeline) preprocess(req GenerateRequest) (*reasoning.Request, []layout.Warning, error) {
	var warnings []layout.Warning
	palette := normalizePalette(req.Palette)

	if len(req.LogoBytes) > 0 {
		logoColors, err := extractLogoPalette(req.LogoBytes)
		if err != nil {
			warnings = append(warnings, layout.Warning{
				Stage: "orchestrator", Code: "logo_palette_unavailable", Message: err.Error(),
			})
		} else {
			palette = append(palette, logoColors...)
			if len(palette) > maxPaletteColors {
				palette = palette[:maxPaletteColors]
			}
		}
	}

	var brandPreset *reasoning.BrandPreset
	if req.BrandPresetName != "" && p.ThemeLoader != nil {
		bp, err := p.ThemeLoader.Load(req.CallerID, req.BrandPresetName)
		if err != nil {
			warnings = append(warnings, layout.Warning{
				Stage: "orchestrator", Code: "brand_preset_unavailable", Message: err.Error(),
			})
		} else {
			brandPreset = &bp
		}
	}

	if len(req.TemplateBytes) > 0 {
		if snap, ok := extractTemplateTheme(req.TemplateBytes); ok {
			brandPreset = mergeTemplateSnapshot(brandPreset, snap)
		} else {
			warnings = append(warnings, layout.Warning{
				Stage: "orchestrator", Code: "template_theme_unavailable",
				Message: "template upload carried no recognizable theme part",
			})
		}
	}

	return &reasoning.Request{
		Prompt:          req.Prompt,
		DiagramTypeHint: req.DiagramTypeHint,
		EntityCountHint: req.EntityCountHint,
		Palette:         palette,
		BrandPreset:     brandPreset,
		Images:          req.Images,
		Language:        req.Language,
	}, warnings, nil
}

// mergeTemplateSnapshot folds a shallow template theme read into an
// existing brand preset (or starts a fresh one), filling only fields the
// preset left blank so an explicit brand preset always wins over a
// template upload.
func mergeTemplateSnapshot(existing *reasoning.BrandPreset, snap *templateSnapshot) *reasoning.BrandPreset {
	bp := existing
	if bp == nil {
		bp = &reasoning.BrandPreset{}
	}
	if bp.Theme.Primary == "" {
		bp.Theme.Primary = snap.Primary
	}
	if bp.Theme.Accent == "" {
		bp.Theme.Accent = snap.Accent
	}
	if bp.Theme.Background == "" {
		bp.Theme.Background = snap.Background
	}
	if bp.Theme.FontFamily == "" {
		bp.Theme.FontFamily = snap.FontFamily
	}
	return bp
}

func mapTimeout(stage string, err error) error {
	if err == nil {
		return nil
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return ae
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperr.New(stage, apperr.Timeout, err)
	}
	return apperr.New(stage, apperr.InternalError, err)
}
