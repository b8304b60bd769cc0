package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	iofs "io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/WilliamPinto-Olmos/prime-vue-mcp/pkg/dataset"
	"github.com/WilliamPinto-Olmos/prime-vue-mcp/pkg/docs"
	"github.com/WilliamPinto-Olmos/prime-vue-mcp/pkg/httpapi"
	"github.com/WilliamPinto-Olmos/prime-vue-mcp/pkg/logic"
	mcpserver "github.com/WilliamPinto-Olmos/prime-vue-mcp/pkg/mcp"
	"github.com/WilliamPinto-Olmos/prime-vue-mcp/pkg/mcplog"
	"github.com/WilliamPinto-Olmos/prime-vue-mcp/pkg/merge"
	"github.com/WilliamPinto-Olmos/prime-vue-mcp/pkg/scanner"
	"github.com/WilliamPinto-Olmos/prime-vue-mcp/pkg/tokens"
	"github.com/WilliamPinto-Olmos/prime-vue-mcp/pkg/util"
)

const version = "0.2.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := loadProjectConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid project config: %v\n", err)
		os.Exit(1)
	}
	if cfg == nil {
		cfg = &ProjectConfig{}
	}

	command := os.Args[1]
	args := os.Args[2:]

	var cmdErr error
	switch command {
	case "extract-api":
		cmdErr = cmdExtractAPI(cfg, args)
	case "fetch-docs":
		cmdErr = cmdFetchDocs(cfg, args)
	case "extract-logic":
		cmdErr = cmdExtractLogic(cfg, args)
	case "extract-tokens":
		cmdErr = cmdExtractTokens(cfg, args)
	case "merge":
		cmdErr = cmdMerge(cfg, args)
	case "pipeline":
		cmdErr = cmdPipeline(cfg, args)
	case "watch":
		cmdErr = cmdWatch(cfg, args)
	case "serve-http":
		cmdErr = cmdServeHTTP(cfg, args)
	case "serve-mcp":
		cmdErr = cmdServeMCP(cfg, args)
	case "version":
		fmt.Printf("primevue-mcp %s\n", version)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if cmdErr != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", command, cmdErr)
		os.Exit(1)
	}
}

// setupLogger builds the process logger from the fallback chain and makes
// it the slog default.
func setupLogger(cfg *ProjectConfig, levelFlag string) {
	lc := util.DefaultLoggerConfig()
	lc.Level = util.LogLevel(resolve(levelFlag, cfg.LogLevel, defaultLogLevel))
	util.SetDefault(util.NewLogger(lc))
}

func cmdExtractAPI(cfg *ProjectConfig, args []string) error {
	fs := flag.NewFlagSet("extract-api", flag.ExitOnError)
	componentsFlag := fs.String("components", "", "component library root directory")
	outFlag := fs.String("out", "", "output JSON file")
	workers := fs.Int("workers", 0, "worker count override")
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	setupLogger(cfg, *logLevel)

	root := resolve(*componentsFlag, cfg.ComponentsPath, defaultComponentsPath)
	out := resolve(*outFlag, "", filepath.Join(outputDir(cfg), "api.json"))

	sc := scanner.NewScanner(nil)
	defer sc.Close()

	scanCfg := scanner.DefaultExtractConfig()
	if *workers > 0 {
		scanCfg.Workers = *workers
	} else if cfg.Workers > 0 {
		scanCfg.Workers = cfg.Workers
	}

	apis, _, err := sc.Run(root, scanCfg)
	if err != nil {
		return err
	}
	return scanner.WriteOutput(out, apis)
}

func cmdFetchDocs(cfg *ProjectConfig, args []string) error {
	fs := flag.NewFlagSet("fetch-docs", flag.ExitOnError)
	componentsFlag := fs.String("components", "", "component library root directory")
	apiFlag := fs.String("api", "", "signature output file naming the components to fetch")
	outFlag := fs.String("out", "", "output JSON file")
	baseURL := fs.String("base-url", "", "documentation site root")
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	setupLogger(cfg, *logLevel)

	out := resolve(*outFlag, "", filepath.Join(outputDir(cfg), "docs.json"))

	// Fetch the components the signature extractor actually produced; fall
	// back to directory discovery when its output does not exist yet.
	apiPath := resolve(*apiFlag, "", filepath.Join(outputDir(cfg), "api.json"))
	names, err := docs.NamesFromAPIFile(apiPath)
	if errors.Is(err, iofs.ErrNotExist) {
		root := resolve(*componentsFlag, cfg.ComponentsPath, defaultComponentsPath)
		dirs, derr := scanner.DiscoverComponents(root, scanner.DefaultExtractConfig().Exclude)
		if derr != nil {
			return derr
		}
		names = make([]string, 0, len(dirs))
		for _, d := range dirs {
			names = append(names, d.Name)
		}
	} else if err != nil {
		return err
	}

	fetcher := docs.NewFetcher(resolve(*baseURL, cfg.DocsBaseURL, docs.DefaultBaseURL), nil)
	entries := fetcher.FetchAll(names)
	return docs.WriteOutput(out, entries)
}

func cmdExtractLogic(cfg *ProjectConfig, args []string) error {
	fs := flag.NewFlagSet("extract-logic", flag.ExitOnError)
	componentsFlag := fs.String("components", "", "component library root directory")
	outFlag := fs.String("out", "", "output JSON file")
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	setupLogger(cfg, *logLevel)

	root := resolve(*componentsFlag, cfg.ComponentsPath, defaultComponentsPath)
	out := resolve(*outFlag, "", filepath.Join(outputDir(cfg), "logic.json"))

	extractor := logic.NewExtractor(nil)
	defer extractor.Close()

	signals, err := extractor.Run(root, scanner.DefaultExtractConfig().Exclude)
	if err != nil {
		return err
	}
	return logic.WriteOutput(out, signals)
}

func cmdExtractTokens(cfg *ProjectConfig, args []string) error {
	fs := flag.NewFlagSet("extract-tokens", flag.ExitOnError)
	rootsFlag := fs.String("roots", "", "comma-separated source roots, scanned in order")
	outFlag := fs.String("out", "", "output JSON file")
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	setupLogger(cfg, *logLevel)

	roots := resolveList(splitList(*rootsFlag), cfg.TokenRoots, defaultTokenRoots)
	out := resolve(*outFlag, "", filepath.Join(outputDir(cfg), "tokens.json"))

	extractor := tokens.NewExtractor(nil)
	defer extractor.Close()

	tm, err := extractor.Run(roots, scanner.DefaultExtractConfig().Exclude)
	if err != nil {
		return err
	}
	return tokens.WriteOutput(out, tm)
}

func cmdMerge(cfg *ProjectConfig, args []string) error {
	fs := flag.NewFlagSet("merge", flag.ExitOnError)
	in, out, logLevel := mergeFlags(cfg, fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	setupLogger(cfg, *logLevel)
	return merge.Run(*in, resolveDataset(cfg, *out), nil)
}

// cmdPipeline runs all four extractors and the merge in one shot.
func cmdPipeline(cfg *ProjectConfig, args []string) error {
	fs := flag.NewFlagSet("pipeline", flag.ExitOnError)
	componentsFlag := fs.String("components", "", "component library root directory")
	rootsFlag := fs.String("token-roots", "", "comma-separated token source roots")
	skipDocs := fs.Bool("skip-docs", false, "skip the network documentation fetch")
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	setupLogger(cfg, *logLevel)

	dir := outputDir(cfg)
	steps := []struct {
		name string
		run  func() error
	}{
		{"extract-api", func() error {
			return cmdExtractAPI(cfg, []string{
				"-components", resolve(*componentsFlag, cfg.ComponentsPath, defaultComponentsPath),
				"-out", filepath.Join(dir, "api.json"),
			})
		}},
		{"fetch-docs", func() error {
			if *skipDocs {
				return nil
			}
			return cmdFetchDocs(cfg, []string{
				"-components", resolve(*componentsFlag, cfg.ComponentsPath, defaultComponentsPath),
				"-api", filepath.Join(dir, "api.json"),
				"-out", filepath.Join(dir, "docs.json"),
			})
		}},
		{"extract-logic", func() error {
			return cmdExtractLogic(cfg, []string{
				"-components", resolve(*componentsFlag, cfg.ComponentsPath, defaultComponentsPath),
				"-out", filepath.Join(dir, "logic.json"),
			})
		}},
		{"extract-tokens", func() error {
			flags := []string{"-out", filepath.Join(dir, "tokens.json")}
			if *rootsFlag != "" {
				flags = append(flags, "-roots", *rootsFlag)
			}
			return cmdExtractTokens(cfg, flags)
		}},
		{"merge", func() error {
			return cmdMerge(cfg, nil)
		}},
	}

	for _, step := range steps {
		stepStart := time.Now()
		if err := step.run(); err != nil {
			return fmt.Errorf("%s failed: %w", step.name, err)
		}
		slog.Info("pipeline step complete", "step", step.name, "ms", time.Since(stepStart).Milliseconds())
	}
	return nil
}

func cmdWatch(cfg *ProjectConfig, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	in, out, logLevel := mergeFlags(cfg, fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	setupLogger(cfg, *logLevel)

	watcher, err := merge.NewWatcher(*in, resolveDataset(cfg, *out), 0, nil)
	if err != nil {
		return err
	}
	if err := watcher.Start(); err != nil {
		return err
	}
	defer watcher.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	return nil
}

func cmdServeHTTP(cfg *ProjectConfig, args []string) error {
	fs := flag.NewFlagSet("serve-http", flag.ExitOnError)
	dataFlag := fs.String("data", "", "merged dataset file")
	addrFlag := fs.String("addr", "", "listen address")
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	setupLogger(cfg, *logLevel)

	svc := dataset.NewService(resolveDataset(cfg, *dataFlag), nil)
	srv := httpapi.NewServer(svc, version, nil)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(resolve(*addrFlag, cfg.HTTPAddr, defaultHTTPAddr))
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return srv.Shutdown(context.Background())
	}
}

func cmdServeMCP(cfg *ProjectConfig, args []string) error {
	fs := flag.NewFlagSet("serve-mcp", flag.ExitOnError)
	dataFlag := fs.String("data", "", "merged dataset file")
	logFile := fs.String("log-file", "", "JSONL tool-call log file (empty disables)")
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	setupLogger(cfg, *logLevel)

	toolLogger, err := mcplog.NewLogger(resolve(*logFile, cfg.MCPLogPath, ""))
	if err != nil {
		return err
	}
	if toolLogger != nil {
		defer toolLogger.Close()
	}

	svc := dataset.NewService(resolveDataset(cfg, *dataFlag), nil)
	srv, err := mcpserver.NewServer(svc, version, toolLogger)
	if err != nil {
		return err
	}
	return srv.ServeStdio()
}

// mergeFlags registers the four input flags shared by merge and watch.
func mergeFlags(cfg *ProjectConfig, fs *flag.FlagSet) (*merge.Inputs, *string, *string) {
	dir := outputDir(cfg)
	in := &merge.Inputs{}
	fs.StringVar(&in.APIPath, "api", filepath.Join(dir, "api.json"), "signature extractor output")
	fs.StringVar(&in.DocsPath, "docs", filepath.Join(dir, "docs.json"), "documentation fetcher output")
	fs.StringVar(&in.LogicPath, "logic", filepath.Join(dir, "logic.json"), "logic extractor output")
	fs.StringVar(&in.TokensPath, "tokens", filepath.Join(dir, "tokens.json"), "token extractor output")
	out := fs.String("out", "", "merged dataset file")
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error)")
	return in, out, logLevel
}

func outputDir(cfg *ProjectConfig) string {
	return resolve("", cfg.OutputDir, defaultOutputDir)
}

func resolveDataset(cfg *ProjectConfig, flagValue string) string {
	return resolve(flagValue, cfg.DatasetPath, defaultDatasetPath)
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func printUsage() {
	fmt.Println("Usage: primevue-mcp <command> [flags]")
	fmt.Println()
	fmt.Println("Extraction commands:")
	fmt.Println("  extract-api      Parse declaration files into props/emits/slots JSON")
	fmt.Println("  fetch-docs       Scrape documentation pages into docs JSON")
	fmt.Println("  extract-logic    Collect composables, imports, methods, emits from sources")
	fmt.Println("  extract-tokens   Collect design token references from theme sources")
	fmt.Println("  merge            Combine the four extractor outputs into one dataset")
	fmt.Println("  pipeline         Run every extractor and the merge in sequence")
	fmt.Println("  watch            Re-run the merge whenever an extractor output changes")
	fmt.Println()
	fmt.Println("Server commands:")
	fmt.Println("  serve-http       Serve the dataset over a JSON HTTP API")
	fmt.Println("  serve-mcp        Serve the dataset over MCP on stdin/stdout")
	fmt.Println()
	fmt.Println("  version          Print version")
	fmt.Println("  help             Show this help message")
}
