package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/infogen/core/pkg/artifact"
	"github.com/infogen/core/pkg/config"
	"github.com/infogen/core/pkg/gateway"
	"github.com/infogen/core/pkg/gateway/providers"
	"github.com/infogen/core/pkg/genlog"
	"github.com/infogen/core/pkg/metering"
	"github.com/infogen/core/pkg/orchestrator"
	"github.com/infogen/core/pkg/reasoning"
	"github.com/infogen/core/pkg/store"
	"github.com/infogen/core/pkg/themes"
)

const version = "1.0.0"

// CLI flags
var (
	configPath  = flag.String("config", "", "Path to YAML configuration file (optional; built-in defaults apply when omitted)")
	prompt      = flag.String("prompt", "", "Natural-language description of the diagram to generate (required)")
	outputDir   = flag.String("output", ".", "Output directory for generated artifacts")
	planTier    = flag.String("plan", "free", "Plan tier: free, pro, business, or enterprise")
	callerID    = flag.String("caller", "cli", "Caller id the plan limits and rate limits are tracked against")
	formats     = flag.String("formats", "svg", "Comma-separated output formats: svg, slide, or both")
	diagramHint = flag.String("diagram-type", "", "Optional archetype hint (e.g. process-flow, marketecture)")
	brandPreset = flag.String("brand-preset", "", "Optional saved brand preset name to apply")
	presetsDir  = flag.String("presets-dir", "./presets", "Base directory brand presets are loaded from")
	verbose     = flag.Bool("verbose", false, "Enable verbose output")
	versionF    = flag.Bool("version", false, "Print version and exit")
	help        = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *versionF {
		fmt.Printf("infogen version %s\n", version)
		os.Exit(0)
	}

	if *help {
		printHelp()
		os.Exit(0)
	}

	if *prompt == "" {
		fmt.Fprintln(os.Stderr, "Error: -prompt flag is required")
		printUsage()
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	logLevel := genlog.LevelInfo
	if *verbose {
		logLevel = genlog.LevelDebug
	}
	logger, err := genlog.New(genlog.Options{Level: logLevel})
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if *verbose {
		fmt.Printf("Using plan tier: %s\n", *planTier)
		fmt.Printf("Output formats: %s\n", *formats)
	}

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	pipeline, err := buildPipeline(cfg, logger)
	if err != nil {
		return err
	}

	req := orchestrator.GenerateRequest{
		CallerID:        *callerID,
		PlanTier:        metering.PlanTier(*planTier),
		Prompt:          *prompt,
		DiagramTypeHint: *diagramHint,
		OutputFormats:   parseFormats(*formats),
		BrandPresetName: *brandPreset,
	}

	start := time.Now()
	if *verbose {
		fmt.Println("Generating diagram...")
	}

	result, err := pipeline.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}
	elapsed := time.Since(start)

	if *verbose {
		fmt.Printf("Generation completed in %v\n", elapsed)
		printStats(result)
	}

	for format, ref := range result.Artifacts {
		data, err := pipeline.ArtifactStore.Get(ctx, ref)
		if err != nil {
			return fmt.Errorf("failed to fetch %s artifact: %w", format, err)
		}
		if err := writeArtifact(result.GenerationID, string(format), data); err != nil {
			return err
		}
	}

	fmt.Printf("Successfully generated %s diagram (id=%s) in %v\n", result.Brief.DiagramType, result.GenerationID, elapsed)
	return nil
}

func loadConfig() (*config.Config, error) {
	if *configPath == "" {
		return &config.Config{}, nil
	}
	if *verbose {
		fmt.Printf("Loading configuration from %s\n", *configPath)
	}
	return config.Load(*configPath)
}

// buildPipeline wires the composition root: providers registered per
// available API key, a config-driven gateway, and in-memory metering,
// artifact, and record stores. Deployments that need Redis-backed
// sharing across replicas swap store.NewMemory() for store.NewRedis(...)
// here — nothing downstream of the store.Store interface changes.
func buildPipeline(cfg *config.Config, logger *zap.Logger) (*orchestrator.Pipeline, error) {
	registerProviders(logger)

	gw := gateway.New()
	gw.Logger = logger
	if chains := cfg.GatewayChains(); len(chains) > 0 {
		gw.ChainsByTier = chains
	}

	hmacKey := []byte(os.Getenv("INFOGEN_ARTIFACT_HMAC_KEY"))
	if len(hmacKey) == 0 {
		hmacKey = []byte("infogen-cli-dev-key")
	}

	rl := metering.NewRateLimiter(store.NewMemory())
	qt := metering.NewQuotaTracker(store.NewMemory())
	gw.CostTracker = metering.NewCostTracker(store.NewMemory())
	artifacts := artifact.NewStore(store.NewMemory(), hmacKey)
	records := metering.NewMemoryRecordStore()

	pipeline := orchestrator.New(reasoning.New(gw), rl, qt, artifacts, records)
	pipeline.Logger = logger
	pipeline.ThemeLoader = themes.NewLoader(*presetsDir)

	if overrides := planOverrides(cfg); len(overrides) > 0 {
		pipeline.Plans = overrides
	}

	return pipeline, nil
}

// registerProviders registers a gateway.Provider for each upstream SDK
// this process has credentials for; a tier's chain naming an
// unregistered provider is simply skipped by Complete.
func registerProviders(logger *zap.Logger) {
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		gateway.RegisterProvider(providers.NewAnthropic(key))
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		gateway.RegisterProvider(providers.NewOpenAI(key))
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		gemini, err := providers.NewGemini(context.Background(), key)
		if err != nil {
			logger.Warn("infogen: failed to initialize gemini provider", zap.Error(err))
		} else {
			gateway.RegisterProvider(gemini)
		}
	}
}

func planOverrides(cfg *config.Config) map[metering.PlanTier]metering.Plan {
	if len(cfg.PlanLimits) == 0 {
		return nil
	}
	out := make(map[metering.PlanTier]metering.Plan, len(metering.DefaultPlans))
	for tier, plan := range metering.DefaultPlans {
		out[tier] = plan
	}
	for _, pl := range cfg.PlanLimits {
		tier := metering.PlanTier(pl.Tier)
		base := out[tier]
		base.Tier = tier
		base.GenerationsPerMonth = pl.GenerationsPerMonth
		base.MaxEntitiesPerDiagram = pl.MaxEntitiesPerDiagram
		base.ArtifactTTLHours = pl.ArtifactTTLHours
		base.AllowedModelTiers = nil
		for _, t := range pl.AllowedModelTiers {
			base.AllowedModelTiers = append(base.AllowedModelTiers, gatewayTier(t))
		}
		base.AllowedOutputFormats = nil
		for _, f := range pl.AllowedOutputFormats {
			base.AllowedOutputFormats = append(base.AllowedOutputFormats, metering.OutputFormat(f))
		}
		out[tier] = base
	}
	return out
}

func gatewayTier(name string) gateway.Tier {
	switch name {
	case "fast":
		return gateway.FAST
	case "standard":
		return gateway.STANDARD
	case "premium":
		return gateway.PREMIUM
	case "vision":
		return gateway.VISION
	}
	return gateway.FAST
}

func parseFormats(raw string) []metering.OutputFormat {
	var out []metering.OutputFormat
	for _, f := range strings.Split(raw, ",") {
		f = strings.TrimSpace(f)
		switch f {
		case "svg":
			out = append(out, metering.FormatSVG)
		case "slide":
			out = append(out, metering.FormatSlide)
		}
	}
	return out
}

func writeArtifact(generationID, format string, data []byte) error {
	ext := format
	filename := filepath.Join(*outputDir, fmt.Sprintf("infogen_%s.%s", generationID, ext))
	if *verbose {
		fmt.Printf("Writing %s to %s\n", format, filename)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s artifact: %w", format, err)
	}
	if *verbose {
		fmt.Printf("  Wrote %d bytes\n", len(data))
	}
	return nil
}

func printStats(result *orchestrator.GenerateResult) {
	fmt.Println("\nDiagram Statistics:")
	fmt.Printf("  Archetype: %s\n", result.Brief.DiagramType)
	fmt.Printf("  Entities: %d\n", len(result.Brief.Entities))
	fmt.Printf("  Connections: %d\n", len(result.Brief.Connections))
	fmt.Printf("  Cost: $%.4f\n", result.Record.CostUSD)
	if len(result.Warnings) > 0 {
		fmt.Printf("  Warnings: %d\n", len(result.Warnings))
		for _, w := range result.Warnings {
			fmt.Printf("    [%s] %s: %s\n", w.Stage, w.Code, w.Message)
		}
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "\nUsage: infogen -prompt \"<description>\" [options]")
	fmt.Fprintln(os.Stderr, "\nRun 'infogen -help' for detailed help")
}

func printHelp() {
	fmt.Printf("infogen version %s\n\n", version)
	fmt.Println("A command-line tool for turning a natural-language prompt into an editable corporate infographic.")
	fmt.Println("\nUsage:")
	fmt.Println("  infogen -prompt \"<description>\" [options]")
	fmt.Println("\nRequired Flags:")
	fmt.Println("  -prompt string")
	fmt.Println("        Natural-language description of the diagram to generate")
	fmt.Println("\nOptional Flags:")
	fmt.Println("  -config string")
	fmt.Println("        Path to YAML configuration file")
	fmt.Println("  -output string")
	fmt.Println("        Output directory for generated artifacts (default: current directory)")
	fmt.Println("  -plan string")
	fmt.Println("        Plan tier: free, pro, business, or enterprise (default: free)")
	fmt.Println("  -caller string")
	fmt.Println("        Caller id plan limits and rate limits are tracked against (default: cli)")
	fmt.Println("  -formats string")
	fmt.Println("        Comma-separated output formats: svg, slide (default: svg)")
	fmt.Println("  -diagram-type string")
	fmt.Println("        Optional archetype hint (e.g. process-flow, marketecture)")
	fmt.Println("  -brand-preset string")
	fmt.Println("        Optional saved brand preset name to apply")
	fmt.Println("  -presets-dir string")
	fmt.Println("        Base directory brand presets are loaded from (default: ./presets)")
	fmt.Println("  -verbose")
	fmt.Println("        Enable verbose output")
	fmt.Println("  -version")
	fmt.Println("        Print version and exit")
	fmt.Println("  -help")
	fmt.Println("        Show this help message")
	fmt.Println("\nEnvironment:")
	fmt.Println("  ANTHROPIC_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY")
	fmt.Println("        Provider credentials; a provider with no key set is simply skipped.")
	fmt.Println("  INFOGEN_ARTIFACT_HMAC_KEY")
	fmt.Println("        Signing key for artifact references (a dev default is used if unset).")
	fmt.Println("\nExamples:")
	fmt.Println("  # Generate an SVG for a quick process diagram")
	fmt.Println("  infogen -prompt \"Show our customer onboarding flow in four steps\"")
	fmt.Println("\n  # Generate both formats on the business plan, verbosely")
	fmt.Println("  infogen -prompt \"Compare our three pricing tiers\" -plan business -formats svg,slide -verbose")
}
