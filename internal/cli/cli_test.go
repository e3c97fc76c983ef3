package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/SmitUplenchwar2687/macrokey/internal/codec"
	"github.com/SmitUplenchwar2687/macrokey/internal/config"
	"github.com/SmitUplenchwar2687/macrokey/internal/event"
	"github.com/SmitUplenchwar2687/macrokey/internal/library"
)

const fixture = `Key Press|||KeyA|||0.001
Key Release|||KeyA|||0.002
Key Press|||ZZZ|||abc
Button Press Left|||100, 200|||0.003
Mouse Wheel|||0, -1|||0.004
`

func writeMacroFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "macro.txt")
	if err := os.WriteFile(path, []byte(fixture), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

// execute runs the command tree with logging quieted to errors.
func execute(t *testing.T, b Backend, args ...string) (string, error) {
	t.Helper()
	return executeRaw(t, b, append(args, "--log-level", "error")...)
}

// executeRaw runs the command tree with args exactly as given.
func executeRaw(t *testing.T, b Backend, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd(b)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNewRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd(Backend{})
	want := map[string]bool{"run": false, "play": false, "inspect": false, "generate": false, "library": false}
	for _, sub := range cmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestRunCmd_RequiresPlatform(t *testing.T) {
	_, err := execute(t, Backend{}, "run")
	if !errors.Is(err, ErrNoPlatform) {
		t.Fatalf("run error = %v, want ErrNoPlatform", err)
	}
}

func TestRunCmd_RequiresPointer(t *testing.T) {
	b := Backend{
		NewHook: func(*zap.Logger) InputSource { return nil },
		Synth:   &recordingSynth{},
	}
	_, err := execute(t, b, "run")
	if !errors.Is(err, ErrNoPlatform) {
		t.Fatalf("run error = %v, want ErrNoPlatform", err)
	}
}

func TestPlayCmd_RequiresFile(t *testing.T) {
	if _, err := execute(t, Backend{}, "play", "--dry-run"); err == nil {
		t.Fatal("expected error without --file")
	}
}

func TestPlayCmd_RequiresSynthesizer(t *testing.T) {
	path := writeMacroFixture(t)
	_, err := execute(t, Backend{}, "play", "--file", path)
	if !errors.Is(err, ErrNoPlatform) {
		t.Fatalf("play error = %v, want ErrNoPlatform", err)
	}
}

type playOutput struct {
	Summary struct {
		Total  int `json:"total"`
		Played int `json:"played"`
		Failed int `json:"failed"`
	} `json:"summary"`
	Skipped int `json:"skipped"`
}

func TestPlayCmd_DryRunJSON(t *testing.T) {
	path := writeMacroFixture(t)

	out, err := execute(t, Backend{}, "play", "--file", path, "--dry-run", "--json")
	if err != nil {
		t.Fatalf("play failed: %v", err)
	}

	var got playOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if got.Summary.Total != 4 || got.Summary.Played != 4 || got.Summary.Failed != 0 {
		t.Errorf("summary = %+v, want 4 played", got.Summary)
	}
	if got.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", got.Skipped)
	}
}

func TestPlayCmd_KindsFilter(t *testing.T) {
	path := writeMacroFixture(t)

	out, err := execute(t, Backend{}, "play", "--file", path, "--dry-run", "--json", "--kinds", "key-press,Wheel")
	if err != nil {
		t.Fatalf("play failed: %v", err)
	}
	var got playOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if got.Summary.Played != 2 {
		t.Errorf("played = %d, want 2", got.Summary.Played)
	}
}

func TestPlayCmd_UsesBackendSynth(t *testing.T) {
	path := writeMacroFixture(t)
	synth := &recordingSynth{}

	out, err := execute(t, Backend{Synth: synth}, "play", "--file", path)
	if err != nil {
		t.Fatalf("play failed: %v", err)
	}
	// The button event is preceded by a pointer move.
	if n := len(synth.inputs); n != 5 {
		t.Errorf("synthesized %d inputs, want 5", n)
	}
	if !strings.Contains(out, "Playback Summary") {
		t.Errorf("output missing summary:\n%s", out)
	}
}

type recordingSynth struct {
	inputs []event.Input
}

func (s *recordingSynth) Synthesize(ev event.Input) error {
	s.inputs = append(s.inputs, ev)
	return nil
}

func TestPlayCmd_LoadsConfigFile(t *testing.T) {
	path := writeMacroFixture(t)
	configPath := filepath.Join(t.TempDir(), "macrokey.json")
	cfg := `{
  "playback": {
    "yield": false
  },
  "log": {
    "level": "warn"
  }
}`
	if err := os.WriteFile(configPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := execute(t, Backend{}, "play", "--file", path, "--config", configPath, "--dry-run", "--json"); err != nil {
		t.Fatalf("play command with config failed: %v", err)
	}
}

func TestPlayCmd_InvalidConfig(t *testing.T) {
	path := writeMacroFixture(t)
	configPath := filepath.Join(t.TempDir(), "macrokey.json")
	if err := os.WriteFile(configPath, []byte(`{"log": {"level": "loud"}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := executeRaw(t, Backend{}, "play", "--file", path, "--config", configPath, "--dry-run")
	if err == nil {
		t.Fatal("expected error for invalid log level")
	}
	if !strings.Contains(err.Error(), "invalid log level") {
		t.Errorf("error = %v, want invalid log level", err)
	}

	// An explicit --log-level takes precedence over the file.
	if _, err := execute(t, Backend{}, "play", "--file", path, "--config", configPath, "--dry-run"); err != nil {
		t.Errorf("--log-level should override the config file: %v", err)
	}
}

func TestParseKinds(t *testing.T) {
	got, err := parseKinds([]string{"KeyPress", "button_release", "wheel"})
	if err != nil {
		t.Fatal(err)
	}
	want := []event.Kind{event.KindKeyPress, event.KindButtonRelease, event.KindWheel}
	if len(got) != len(want) {
		t.Fatalf("parseKinds() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("kind %d = %v, want %v", i, got[i], want[i])
		}
	}

	if _, err := parseKinds([]string{"MouseMove"}); err == nil {
		t.Error("MouseMove should be rejected")
	}
}

func TestInspectCmd(t *testing.T) {
	path := writeMacroFixture(t)

	out, err := execute(t, Backend{}, "inspect", "--file", path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Key Press", "Button Press Left", "4 events", "1 lines skipped", "line 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestInspectCmd_JSON(t *testing.T) {
	path := writeMacroFixture(t)

	out, err := execute(t, Backend{}, "inspect", "--file", path, "--json")
	if err != nil {
		t.Fatal(err)
	}
	var report struct {
		Events []struct {
			Kind  string `json:"kind"`
			Value string `json:"value"`
		} `json:"events"`
		Skipped []skippedJSON `json:"skipped"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(report.Events) != 4 || report.Events[3].Kind != "Mouse Wheel" {
		t.Errorf("events = %+v", report.Events)
	}
	if len(report.Skipped) != 1 || report.Skipped[0].Line != 3 {
		t.Errorf("skipped = %+v", report.Skipped)
	}
}

func TestTypeText(t *testing.T) {
	events, skipped := typeText("Hi!é", 10*time.Millisecond)
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1", skipped)
	}

	want := []event.Input{
		event.KeyPress(event.KeyShiftLeft),
		event.KeyPress(event.KeyH),
		event.KeyRelease(event.KeyH),
		event.KeyRelease(event.KeyShiftLeft),
		event.KeyPress(event.KeyI),
		event.KeyRelease(event.KeyI),
		event.KeyPress(event.KeyShiftLeft),
		event.KeyPress(event.KeyNum1),
		event.KeyRelease(event.KeyNum1),
		event.KeyRelease(event.KeyShiftLeft),
	}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i := range want {
		if events[i].Event != want[i] {
			t.Errorf("event %d = %v, want %v", i, events[i].Event, want[i])
		}
		if i > 0 && events[i].Offset <= events[i-1].Offset {
			t.Errorf("offsets not increasing at %d", i)
		}
	}
	if events[1].Value != "KeyH" {
		t.Errorf("value = %q, want KeyH", events[1].Value)
	}
}

func TestGenerateMacroCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello.txt")

	if _, err := execute(t, Backend{}, "generate", "macro", "--text", "ab c", "--output", path); err != nil {
		t.Fatal(err)
	}
	events, skipped, err := codec.LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(skipped) != 0 {
		t.Errorf("generated file has malformed lines: %+v", skipped)
	}
	if len(events) != 8 {
		t.Errorf("got %d events, want 8", len(events))
	}
}

func TestGenerateConfigCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "macrokey.json")

	if _, err := execute(t, Backend{}, "generate", "config", "--output", path); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("generated config invalid: %v", err)
	}
}

func TestPushPullMacro(t *testing.T) {
	store := library.NewMemoryStore()
	ctx := context.Background()
	src := writeMacroFixture(t)

	n, err := pushMacro(ctx, store, "demo", src, zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Errorf("pushed %d events, want 4", n)
	}

	dst := filepath.Join(t.TempDir(), "demo.txt")
	if err := pullMacro(ctx, store, "demo", dst); err != nil {
		t.Fatal(err)
	}
	events, skipped, err := codec.LoadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 4 || len(skipped) != 0 {
		t.Errorf("pulled %d events, %d skipped", len(events), len(skipped))
	}

	if err := pullMacro(ctx, store, "missing", dst); !errors.Is(err, library.ErrNotFound) {
		t.Errorf("pull missing error = %v, want ErrNotFound", err)
	}
	if _, err := pushMacro(ctx, store, "", src, zaptest.NewLogger(t)); err == nil {
		t.Error("expected error for empty name")
	}
}

func TestLibraryCmd_ListMemory(t *testing.T) {
	out, err := execute(t, Backend{}, "library", "list")
	if err != nil {
		t.Fatal(err)
	}
	if out != "" {
		t.Errorf("fresh memory library listed %q", out)
	}
}

func TestNormalizeRedisHostPort(t *testing.T) {
	host, port, err := normalizeRedisHostPort("localhost:6380", 6379)
	if err != nil {
		t.Fatalf("normalizeRedisHostPort() error = %v", err)
	}
	if host != "localhost" || port != 6380 {
		t.Fatalf("normalizeRedisHostPort() = %s:%d, want localhost:6380", host, port)
	}

	host, port, err = normalizeRedisHostPort("redis.internal", 6379)
	if err != nil {
		t.Fatalf("normalizeRedisHostPort() error = %v", err)
	}
	if host != "redis.internal" || port != 6379 {
		t.Fatalf("normalizeRedisHostPort() = %s:%d, want redis.internal:6379", host, port)
	}
}

func TestNormalizeRedisHostPort_Invalid(t *testing.T) {
	if _, _, err := normalizeRedisHostPort("", 6379); err == nil {
		t.Fatal("expected error for empty host")
	}
	if _, _, err := normalizeRedisHostPort("localhost", 0); err == nil {
		t.Fatal("expected error for non-positive port")
	}
}

func TestLibraryOptions_ApplyConfigIfUnset(t *testing.T) {
	o := defaultLibraryOptions()
	cmd := &cobra.Command{Use: "x"}
	o.addFlags(cmd)
	if err := cmd.ParseFlags([]string{"--redis-port", "7000"}); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default().Library
	cfg.Backend = library.BackendRedis
	cfg.Redis.Host = "cache.internal"
	cfg.Redis.Port = 6390
	o.applyConfigIfUnset(cmd, &cfg)

	got := o.toConfig()
	if got.Backend != library.BackendRedis || got.Redis.Host != "cache.internal" {
		t.Errorf("config values not applied: %+v", got)
	}
	if got.Redis.Port != 7000 {
		t.Errorf("explicit flag overridden: port = %d, want 7000", got.Redis.Port)
	}
}
