// Command nth-prime prints the n-th prime for each index given on the command line.
//
//	nth-prime [flags] <n> [<n> ...]
//
// Results are printed one per line in argument order, and only when every
// lookup succeeded. Settings come from NTHPRIME_* environment variables, an
// optional .env file, and flags, in increasing order of precedence.
//
// Exit codes: 0 success, 1 other failure, 2 usage or invalid input,
// 3 resource exhausted, 4 bound estimate violated.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/primesieve/internal/config"
	"github.com/katalvlaran/primesieve/internal/logging"
	"github.com/katalvlaran/primesieve/internal/metrics"
	"github.com/katalvlaran/primesieve/sieve"
)

const (
	exitOK       = 0
	exitFailure  = 1
	exitUsage    = 2
	exitResource = 3
	exitBound    = 4
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("nth-prime", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: nth-prime [flags] <n> [<n> ...]")
		fs.PrintDefaults()
	}

	envFile := fs.String("env-file", "", "dotenv file to load (default: ./.env if present)")
	strict := fs.Bool("strict", false, "reject n < 1 instead of answering 2")
	mode := fs.String("mode", "", "marking buffer: bitset or bytes")
	maxBytes := fs.Int64("max-buffer-bytes", 0, "largest marking buffer to allocate, in bytes")
	maxWidenings := fs.Int("max-widenings", 0, "bound doublings allowed after an undershoot")
	jobs := fs.Int("jobs", 0, "indices computed concurrently")
	metricsFile := fs.String("metrics-file", "", "write Prometheus textfile metrics here")
	logLevel := fs.String("log-level", "", "debug, info, warn or error")
	logFormat := fs.String("log-format", "", "console or json")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(stderr, "nth-prime: %v\n", err)
		return exitUsage
	}

	// flags given explicitly override the environment
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "strict":
			cfg.Strict = *strict
		case "mode":
			cfg.BufferMode = *mode
		case "max-buffer-bytes":
			cfg.MaxBufferBytes = *maxBytes
		case "max-widenings":
			cfg.MaxWidenings = *maxWidenings
		case "jobs":
			cfg.Jobs = *jobs
		case "metrics-file":
			cfg.MetricsFile = *metricsFile
		case "log-level":
			cfg.LogLevel = *logLevel
		case "log-format":
			cfg.LogFormat = *logFormat
		}
	})
	if err := config.Validate(&cfg); err != nil {
		fmt.Fprintf(stderr, "nth-prime: %v\n", err)
		return exitUsage
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}
	indices, err := parseIndices(fs.Args())
	if err != nil {
		fmt.Fprintf(stderr, "nth-prime: %s: %v\n", sieve.ErrorKind(err), err)
		return exitUsage
	}

	rec := metrics.NewRecorder()
	lc := cfg.LoggingConfig()
	lc.Output = zapcore.AddSync(stderr)
	lc.Entries = rec.LogEntries
	logger, err := logging.NewLogger(lc)
	if err != nil {
		fmt.Fprintf(stderr, "nth-prime: %v\n", err)
		return exitUsage
	}
	defer func() { _ = logger.Sync() }()

	opts, err := cfg.SieveOptions()
	if err != nil {
		fmt.Fprintf(stderr, "nth-prime: %v\n", err)
		return exitUsage
	}

	primes, findErr := findAll(context.Background(), indices, cfg.Jobs, opts, logger, rec)

	code := exitCode(findErr)
	if findErr != nil {
		fmt.Fprintf(stderr, "nth-prime: %s: %v\n", sieve.ErrorKind(findErr), findErr)
	} else {
		for _, p := range primes {
			fmt.Fprintln(stdout, p)
		}
	}

	if cfg.MetricsFile != "" {
		if err := rec.WriteTextfile(cfg.MetricsFile); err != nil {
			fmt.Fprintf(stderr, "nth-prime: writing metrics: %v\n", err)
			if code == exitOK {
				code = exitFailure
			}
		}
	}
	return code
}

// parseIndices converts each argument to an int index.
func parseIndices(args []string) ([]int, error) {
	indices := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer index", sieve.ErrInvalidInput, a)
		}
		indices[i] = n
	}
	return indices, nil
}

// findAll looks up every index with at most jobs lookups in flight.
// The first failure cancels lookups that have not started yet.
func findAll(ctx context.Context, indices []int, jobs int, opts []sieve.Option, logger *zap.Logger, rec *metrics.Recorder) ([]int, error) {
	primes := make([]int, len(indices))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, n := range indices {
		i, n := i, n
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			log := logger.With(zap.Int("n", n))
			onWiden := sieve.WithOnWiden(func(from, to int) {
				log.Info("bound undershot, widening", zap.Int("from", from), zap.Int("to", to))
			})

			start := time.Now()
			res, err := sieve.Find(n, append(opts[:len(opts):len(opts)], onWiden)...)
			elapsed := time.Since(start)
			rec.Observe(res, err, elapsed)
			if err != nil {
				log.Debug("lookup failed", zap.String("kind", sieve.ErrorKind(err)), zap.Error(err))
				return err
			}

			log.Debug("lookup done",
				zap.Int("prime", res.Prime),
				zap.Int("limit", res.Limit),
				zap.Int("widenings", res.Widenings),
				zap.Int64("buffer_bytes", res.BufferBytes),
				zap.Stringer("mode", res.Mode),
				zap.Duration("elapsed", elapsed),
			)
			primes[i] = res.Prime
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return primes, nil
}

// exitCode maps a lookup error to the process exit status.
func exitCode(err error) int {
	switch sieve.ErrorKind(err) {
	case sieve.KindOK:
		return exitOK
	case sieve.KindInvalidInput:
		return exitUsage
	case sieve.KindResourceExhausted:
		return exitResource
	case sieve.KindBoundEstimateViolated:
		return exitBound
	default:
		return exitFailure
	}
}
