package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/primesieve/internal/logging"
	"github.com/katalvlaran/primesieve/internal/metrics"
	"github.com/katalvlaran/primesieve/sieve"
)

// runCLI runs the command and returns exit code, stdout and stderr.
func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Success(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"Single", []string{"6"}, "13\n"},
		{"First", []string{"1"}, "2\n"},
		{"Many", []string{"1", "2", "3", "10"}, "2\n3\n5\n29\n"},
		{"Concurrent", []string{"-jobs", "3", "100", "1", "1000"}, "541\n2\n7919\n"},
		{"BytesMode", []string{"-mode", "bytes", "10000"}, "104729\n"},
		{"ZeroIsFirstPrime", []string{"0"}, "2\n"},
		{"NegativeIsFirstPrime", []string{"--", "-5"}, "2\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, out, errOut := runCLI(tc.args...)
			assert.Equal(t, exitOK, code, "stderr: %s", errOut)
			assert.Equal(t, tc.want, out)
			assert.Empty(t, errOut, "default log level must keep stderr quiet")
		})
	}
}

func TestRun_Failures(t *testing.T) {
	cases := []struct {
		name   string
		args   []string
		code   int
		stderr string
	}{
		{"NoArgs", nil, exitUsage, "usage: nth-prime"},
		{"NotAnInteger", []string{"seven"}, exitUsage, "invalid_input"},
		{"Overflow", []string{"99999999999999999999999"}, exitUsage, "invalid_input"},
		{"StrictZero", []string{"-strict", "0"}, exitUsage, "invalid_input"},
		{"StrictNegative", []string{"-strict", "--", "-5"}, exitUsage, "invalid_input"},
		{"BadMode", []string{"-mode", "roaring", "5"}, exitUsage, "buffer_mode"},
		{"BadJobs", []string{"-jobs", "0", "5"}, exitUsage, "jobs"},
		{"BadFlag", []string{"-nope", "5"}, exitUsage, "flag provided but not defined"},
		{"OverBudget", []string{"-max-buffer-bytes", "1024", "100000"}, exitResource, "resource_exhausted"},
		{"Huge", []string{"2147483647"}, exitResource, "resource_exhausted"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, out, errOut := runCLI(tc.args...)
			assert.Equal(t, tc.code, code)
			assert.Empty(t, out, "nothing may be printed on failure")
			assert.Contains(t, errOut, tc.stderr)
		})
	}
}

func TestRun_PartialFailurePrintsNothing(t *testing.T) {
	code, out, errOut := runCLI("-max-buffer-bytes", "2048", "-jobs", "2", "10", "100000", "3")
	assert.Equal(t, exitResource, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "resource_exhausted")
}

func TestRun_Help(t *testing.T) {
	code, out, errOut := runCLI("-h")
	assert.Equal(t, exitOK, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "-max-buffer-bytes")
}

func TestRun_DebugLogging(t *testing.T) {
	code, out, errOut := runCLI("-log-level", "debug", "-log-format", "json", "6")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "13\n", out)
	assert.Contains(t, errOut, `"msg":"lookup done"`)
	assert.Contains(t, errOut, `"prime":13`)
	assert.Contains(t, errOut, `"mode":"bitset"`)
}

func TestRun_EnvironmentConfig(t *testing.T) {
	t.Setenv("NTHPRIME_BUFFER_MODE", "bytes")
	t.Setenv("NTHPRIME_LOG_LEVEL", "debug")
	t.Setenv("NTHPRIME_LOG_FORMAT", "json")

	code, out, errOut := runCLI("6")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "13\n", out)
	assert.Contains(t, errOut, `"mode":"bytes"`)

	// flags win over the environment
	code, _, errOut = runCLI("-mode", "bitset", "6")
	require.Equal(t, exitOK, code)
	assert.Contains(t, errOut, `"mode":"bitset"`)
}

func TestRun_EnvStrict(t *testing.T) {
	t.Setenv("NTHPRIME_STRICT", "true")
	code, _, _ := runCLI("0")
	assert.Equal(t, exitUsage, code)

	code, out, _ := runCLI("-strict=false", "0")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "2\n", out)
}

func TestRun_MissingEnvFile(t *testing.T) {
	code, _, errOut := runCLI("-env-file", filepath.Join(t.TempDir(), "absent.env"), "6")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, errOut, "absent.env")
}

func TestRun_MetricsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nthprime.prom")
	code, out, _ := runCLI("-metrics-file", path, "10", "100")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "29\n541\n", out)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `nthprime_calls_total{result="ok"} 2`)
}

func TestRun_MetricsFileOnFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nthprime.prom")
	code, _, _ := runCLI("-metrics-file", path, "-max-buffer-bytes", "8", "1000")
	require.Equal(t, exitResource, code)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `nthprime_calls_total{result="resource_exhausted"} 1`)
}

func TestRun_MetricsFileUnwritable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "nthprime.prom")
	code, out, errOut := runCLI("-metrics-file", path, "6")
	assert.Equal(t, exitFailure, code)
	assert.Equal(t, "13\n", out)
	assert.Contains(t, errOut, "writing metrics")
}

func TestParseIndices(t *testing.T) {
	got, err := parseIndices([]string{"1", "-3", "0", "42"})
	require.NoError(t, err)
	assert.Equal(t, []int{1, -3, 0, 42}, got)

	_, err = parseIndices([]string{"4", "2.5"})
	assert.ErrorIs(t, err, sieve.ErrInvalidInput)
}

func TestFindAll_WidenIsObserved(t *testing.T) {
	rec := metrics.NewRecorder()
	opts := []sieve.Option{sieve.WithBoundFunc(func(int) float64 { return 4 })}

	primes, err := findAll(context.Background(), []int{50, 6}, 2, opts, logging.Nop(), rec)
	require.NoError(t, err)
	assert.Equal(t, []int{229, 13}, primes)
	assert.Equal(t, 8.0, testutil.ToFloat64(rec.Widenings), "6 widenings for n=50, 2 for n=6")
	assert.Equal(t, 2.0, testutil.ToFloat64(rec.Calls.WithLabelValues(sieve.KindOK)))
}

func TestFindAll_BoundViolated(t *testing.T) {
	opts := []sieve.Option{
		sieve.WithBoundFunc(func(int) float64 { return 4 }),
		sieve.WithMaxWidenings(1),
	}
	_, err := findAll(context.Background(), []int{50}, 1, opts, logging.Nop(), metrics.NewRecorder())
	assert.ErrorIs(t, err, sieve.ErrBoundEstimateViolated)
	assert.Equal(t, exitBound, exitCode(err))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitOK, exitCode(nil))
	assert.Equal(t, exitUsage, exitCode(fmt.Errorf("%w: x", sieve.ErrInvalidInput)))
	assert.Equal(t, exitResource, exitCode(sieve.ErrResourceExhausted))
	assert.Equal(t, exitBound, exitCode(sieve.ErrBoundEstimateViolated))
	assert.Equal(t, exitFailure, exitCode(errors.New("boom")))
}
