package harness

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v4/process"
)

// SubprocessHarness delivers injections by substituting the wrapped payload
// into a command template at the single occurrence of an injection marker,
// running it, and extracting the response between two response markers from
// combined stdout+stderr.
type SubprocessHarness struct {
	template        []string
	injectionMarker string
	responseMarker  string
	responseRe      *regexp.Regexp

	logger      zerolog.Logger
	diagnostics bool
}

// Option configures a SubprocessHarness at construction time.
type Option func(*SubprocessHarness)

// WithLogger attaches a structured logger used for oracle-call diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(h *SubprocessHarness) { h.logger = logger }
}

// WithDiagnostics enables best-effort child-process resource sampling
// (verbosity level 3 in the CLI), per SPEC_FULL.md §4.15.
func WithDiagnostics(enabled bool) Option {
	return func(h *SubprocessHarness) { h.diagnostics = enabled }
}

// NewSubprocessHarness validates that the injection marker occurs exactly
// once across all template tokens and builds the response-extraction regex. Mirrors
// SubprocessInjectionHarness.build_args's "found_marker" bookkeeping, except
// the count is validated once up front instead of on every send.
func NewSubprocessHarness(template []string, injectionMarker, responseMarker string, opts ...Option) (*SubprocessHarness, error) {
	if injectionMarker == "" {
		return nil, fmt.Errorf("harness: injection marker must not be empty")
	}
	if responseMarker == "" {
		return nil, fmt.Errorf("harness: response marker must not be empty")
	}

	occurrences := 0
	for _, tok := range template {
		occurrences += strings.Count(tok, injectionMarker)
	}
	if occurrences == 0 {
		return nil, fmt.Errorf("harness: no occurrences of injection marker %q found in command template", injectionMarker)
	}
	if occurrences > 1 {
		return nil, fmt.Errorf("harness: %d occurrences of injection marker %q found in command template; exactly one is required", occurrences, injectionMarker)
	}

	re, err := regexp.Compile("(?s)" + regexp.QuoteMeta(responseMarker) + "(.*?)" + regexp.QuoteMeta(responseMarker))
	if err != nil {
		return nil, fmt.Errorf("harness: compiling response regex: %w", err)
	}

	h := &SubprocessHarness{
		template:        template,
		injectionMarker: injectionMarker,
		responseMarker:  responseMarker,
		responseRe:      re,
		logger:          zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// ResponseMarker returns the marker used to frame and extract payload
// responses. Engine state keys its own copy off this value.
func (h *SubprocessHarness) ResponseMarker() string { return h.responseMarker }

// buildArgs substitutes the wrapped payload into the single template token
// that carries the injection marker.
func (h *SubprocessHarness) buildArgs(wrapped string) []string {
	args := make([]string, len(h.template))
	for i, tok := range h.template {
		if strings.Contains(tok, h.injectionMarker) {
			args[i] = strings.Replace(tok, h.injectionMarker, wrapped, 1)
		} else {
			args[i] = tok
		}
	}
	return args
}

// wrap surrounds payload with response markers and braces it as a format()
// replacement field: "<marker>{<payload>}<marker>".
func (h *SubprocessHarness) wrap(payload string) string {
	return h.responseMarker + "{" + payload + "}" + h.responseMarker
}

// SendInjection runs the templated command once with payload substituted in
// and returns the extracted response, or ("", false) if no response could be
// extracted (command failure, decode issues, and absent markers are all
// folded into this same "nothing" result).
func (h *SubprocessHarness) SendInjection(ctx context.Context, payload string) (string, bool) {
	args := h.buildArgs(h.wrap(payload))

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	result, ok := h.run(cmd, &out)
	h.logger.Debug().
		Str("payload", payload).
		Bool("matched", ok).
		Msg("oracle round trip")
	return result, ok
}

func (h *SubprocessHarness) run(cmd *exec.Cmd, out *bytes.Buffer) (string, bool) {
	if !h.diagnostics {
		_ = cmd.Run()
		return h.extract(out.String())
	}

	if err := cmd.Start(); err != nil {
		return "", false
	}

	done := make(chan struct{})
	var sample diagnosticSample
	if proc, err := process.NewProcess(int32(cmd.Process.Pid)); err == nil {
		go h.sampleDiagnostics(proc, done, &sample)
	}

	_ = cmd.Wait()
	close(done)

	if sample.taken {
		h.logDiagnostics(sample)
	}

	return h.extract(out.String())
}

type diagnosticSample struct {
	taken      bool
	rssBytes   uint64
	cpuPercent float64
}

// sampleDiagnostics polls the oracle subprocess's resident memory and CPU
// usage until it exits, keeping the last successful sample. Best effort: a
// process that exits before the first tick simply yields no sample. This
// exists purely to help an operator triage a target that is hanging, since
// the engine itself has no internal timeout.
func (h *SubprocessHarness) sampleDiagnostics(proc *process.Process, done <-chan struct{}, out *diagnosticSample) {
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			mem, err := proc.MemoryInfo()
			if err != nil {
				continue
			}
			cpu, err := proc.CPUPercent()
			if err != nil {
				continue
			}
			out.taken = true
			out.rssBytes = mem.RSS
			out.cpuPercent = cpu
		}
	}
}

func (h *SubprocessHarness) logDiagnostics(sample diagnosticSample) {
	h.logger.Debug().
		Str("rss", humanize.Bytes(sample.rssBytes)).
		Float64("cpu_percent", sample.cpuPercent).
		Msg("oracle subprocess resource usage")
}

// extract implements AbstractInjectionHarness._parse_response: a non-greedy,
// dotall search for the response-marker-delimited capture group. An empty
// capture is treated the same as no match at all.
func (h *SubprocessHarness) extract(rawOutput string) (string, bool) {
	m := h.responseRe.FindStringSubmatch(rawOutput)
	if m == nil || m[1] == "" {
		return "", false
	}
	return m[1], true
}
