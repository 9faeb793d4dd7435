package main

import (
	"bytes"
	"flag"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	generatedFixture = "../../testdata/genesis2_module.sv"
	plainFixture     = "../../testdata/mini_module.sv"
)

// TestMain doubles as the subprocess entry point: with BE_SVCHEF set the
// test binary hands the remaining command line to the real program.
// Each case re-executes the binary so cobra's flag state starts fresh.
func TestMain(t *testing.T) {
	if os.Getenv("BE_SVCHEF") == "1" {
		os.Args = append([]string{"svchef"}, flag.Args()...)
		main()
		os.Exit(0)
	}

	tests := []struct {
		name     string
		args     []string
		wantExit int
		wantOut  []string
		notOut   []string
		wantErr  []string
		emptyOut bool
	}{
		{
			name: "markdown to stdout",
			args: []string{"fetchif", generatedFixture},
			wantOut: []string{
				"# Module stream_ep",
				"| src_data | outer_stream_s | stream_if.src_mp output |  |  |  | outbound stream |",
				"| src_valid | logic | output |  |  |  |  |",
				"| src_ready | logic | input |  |  |  |  |",
				"| snk_data | wrapped_stream_s | input |  |  |  |  |",
				"| clk | logic | input |  |  |  | core clock |",
				"| &nbsp;&nbsp;&nbsp;&nbsp;trans | inner_trans_s |  |  |  |  | payload channel |",
				"| Generic Name | Type | Range of Values | Default Value | Description |",
			},
			notOut: []string{"dbg_count", "GENESIS2", "var "},
		},
		{
			name: "csv format",
			args: []string{"fetchif", generatedFixture, "--format", "csv"},
			wantOut: []string{
				"Signal Name,Direction,Reset Value,Default Value,clk Domain,Type Level 1,Type Level 2,Type Level 3,Type Level 4,Description",
				"src_data,stream_if.src_mp output,,,,outer_stream_s,,,,outbound stream",
				",inner_trans_s trans,",
				"logic [63:0] data",
			},
			notOut: []string{"dbg_count"},
		},
		{
			name: "html format",
			args: []string{"fetchif", generatedFixture, "--format", "html"},
			wantOut: []string{
				"<!DOCTYPE html>",
				"<title>stream_ep Interface</title>",
				"<h1>stream_ep</h1>",
				`<span class="signal-direction dir-output">stream_if.src_mp output</span>`,
				`<p class="no-params">No parameters</p>`,
			},
		},
		{
			name: "plain module via lrm strategy",
			args: []string{"fetchif", plainFixture, "--strategy", "lrm"},
			wantOut: []string{
				"# Module mini_stream",
				"| in_stream | stream_s | input |  |  |  | ingress beat |",
				"| &nbsp;&nbsp;&nbsp;&nbsp;trans | trans_s |  |  |  |  | transfer beat |",
				"| &nbsp;&nbsp;&nbsp;&nbsp;&nbsp;&nbsp;&nbsp;&nbsp;data | logic [63:0] |  |  |  |  | payload word |",
				"| DEPTH | int unsigned |  | 4 | buffer depth in beats |",
				"| INIT_CREDIT | logic [7:0] |  | 8'h04 |  |",
			},
		},
		{
			name:     "lrm strategy rejects generated header import",
			args:     []string{"fetchif", generatedFixture, "--strategy", "lrm"},
			wantExit: 1,
			wantErr:  []string{"Error:", "genesis2 strategy"},
			emptyOut: true,
		},
		{
			name:    "exclude filters matching ports",
			args:    []string{"fetchif", generatedFixture, "--exclude", "^src_"},
			wantOut: []string{"# Module stream_ep", "snk_data"},
			notOut:  []string{"src_data", "src_valid", "src_ready"},
		},
		{
			name:     "malformed exclude pattern",
			args:     []string{"fetchif", generatedFixture, "--exclude", "(["},
			wantExit: 1,
			wantErr:  []string{"invalid exclude pattern"},
			emptyOut: true,
		},
		{
			name:     "module not in design",
			args:     []string{"fetchif", generatedFixture, "--module", "nope"},
			wantExit: 1,
			wantErr:  []string{`module "nope" not found in design`},
			emptyOut: true,
		},
		{
			name:     "unknown format",
			args:     []string{"fetchif", generatedFixture, "--format", "pdf"},
			wantExit: 1,
			wantErr:  []string{`unknown format "pdf" (available: csv, html, markdown)`},
			emptyOut: true,
		},
		{
			name:     "unknown strategy",
			args:     []string{"fetchif", generatedFixture, "--strategy", "fast"},
			wantExit: 1,
			wantErr:  []string{`unknown strategy "fast" (available: genesis2, lrm)`},
			emptyOut: true,
		},
		{
			name:     "missing input file",
			args:     []string{"fetchif", "../../testdata/absent.sv"},
			wantExit: 1,
			wantErr:  []string{"reading", "absent.sv"},
			emptyOut: true,
		},
		{
			name:     "missing config file",
			args:     []string{"fetchif", generatedFixture, "--config", "../../testdata/absent.yaml"},
			wantExit: 1,
			wantErr:  []string{"reading config"},
			emptyOut: true,
		},
		{
			name:     "no command",
			args:     nil,
			wantExit: 1,
			wantOut:  []string{"Usage:"},
			wantErr:  []string{"Error: no command given"},
		},
		{
			name:    "fetchif help",
			args:    []string{"fetchif", "--help"},
			wantOut: []string{"fetchif FILE", "--strategy", "--exclude", "--include-dir", "--module"},
		},
		{
			name:    "verbose logs to stderr",
			args:    []string{"fetchif", generatedFixture, "--verbose"},
			wantOut: []string{"# Module stream_ep"},
			wantErr: []string{"design inputs resolved"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, exit := runSvchef(t, tt.args...)

			assert.Equal(t, tt.wantExit, exit, "stderr: %s", stderr)
			if tt.emptyOut {
				assert.Empty(t, stdout)
			}
			for _, want := range tt.wantOut {
				assert.Contains(t, stdout, want)
			}
			for _, not := range tt.notOut {
				assert.NotContains(t, stdout, not)
			}
			for _, want := range tt.wantErr {
				assert.Contains(t, stderr, want)
			}
		})
	}
}

// runSvchef re-executes the test binary as the svchef CLI with the given
// arguments and reports what the run produced.
func runSvchef(t *testing.T, args ...string) (stdout, stderr string, exit int) {
	t.Helper()
	cmd := exec.Command(os.Args[0], append([]string{"-test.run=TestMain"}, args...)...)
	cmd.Env = append(os.Environ(), "BE_SVCHEF=1")
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		require.ErrorAs(t, err, &exitErr)
		exit = exitErr.ExitCode()
	}
	return outBuf.String(), errBuf.String(), exit
}

func TestRootHelp(t *testing.T) {
	if os.Getenv("BE_SVCHEF_HELP") == "1" {
		os.Args = []string{"svchef", "--help"}
		main()
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestRootHelp")
	cmd.Env = append(os.Environ(), "BE_SVCHEF_HELP=1")
	out, err := cmd.Output()

	require.NoError(t, err)
	assert.Contains(t, string(out), "svchef extracts module interface documentation")
	assert.Contains(t, string(out), "fetchif")
}

func TestFetchIfOutputFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "stream_ep.md")

	stdout, stderr, exit := runSvchef(t, "fetchif", generatedFixture, "--output", out)

	require.Zero(t, exit, "stderr: %s", stderr)
	assert.Empty(t, stdout, "document goes to the file, not stdout")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# Module stream_ep\n\n"))
	assert.Contains(t, string(data), "| snk_data | wrapped_stream_s | input |")
}

func TestFetchIfOutputUntouchedOnFailure(t *testing.T) {
	out := filepath.Join(t.TempDir(), "stream_ep.md")

	_, stderr, exit := runSvchef(t, "fetchif", generatedFixture, "--module", "nope", "--output", out)

	assert.Equal(t, 1, exit)
	assert.Contains(t, stderr, `module "nope" not found in design`)
	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err), "failed runs must not create the output file")
}

const farSrc = `module far_ep
import mini_pkg::*;(
    output var outer_stream_s data
);
endmodule
`

func TestFetchIfIncludeDir(t *testing.T) {
	src := filepath.Join(t.TempDir(), "far_ep.sv")
	require.NoError(t, os.WriteFile(src, []byte(farSrc), 0o644))

	t.Run("unresolved import leaves the type opaque", func(t *testing.T) {
		stdout, stderr, exit := runSvchef(t, "fetchif", src)

		require.Zero(t, exit, "stderr: %s", stderr)
		assert.Contains(t, stdout, "| data | outer_stream_s | output |")
		assert.NotContains(t, stdout, "&nbsp;", "no package, no fields to expand")
	})

	t.Run("include dir resolves the package", func(t *testing.T) {
		stdout, stderr, exit := runSvchef(t, "fetchif", src, "--include-dir", "../../testdata")

		require.Zero(t, exit, "stderr: %s", stderr)
		assert.Contains(t, stdout, "| &nbsp;&nbsp;&nbsp;&nbsp;trans | inner_trans_s |  |  |  |  | payload channel |")
	})
}

func TestFetchIfConfigFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "svchef.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("format: html\nexclude: \"^src_\"\n"), 0o644))

	t.Run("file supplies format and filter", func(t *testing.T) {
		stdout, stderr, exit := runSvchef(t, "fetchif", generatedFixture, "--config", cfgPath)

		require.Zero(t, exit, "stderr: %s", stderr)
		assert.Contains(t, stdout, "<!DOCTYPE html>")
		assert.Contains(t, stdout, "snk_data")
		assert.NotContains(t, stdout, "src_valid")
	})

	t.Run("explicit flag beats the file", func(t *testing.T) {
		stdout, stderr, exit := runSvchef(t, "fetchif", generatedFixture, "--config", cfgPath, "--format", "csv")

		require.Zero(t, exit, "stderr: %s", stderr)
		assert.True(t, strings.HasPrefix(stdout, "Signal Name,Direction,"))
		assert.NotContains(t, stdout, "src_valid", "the file's exclude still applies")
	})
}
