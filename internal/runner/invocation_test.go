package runner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ThatCatDev/llamalaunch/internal/config"
)

func testServerConfig() config.Server {
	cfg := config.DefaultServer()
	cfg.Model = "/data/model.gguf"
	return cfg
}

func testVisionConfig() config.Vision {
	cfg := config.DefaultVision()
	cfg.Model = "/data/model.gguf"
	cfg.MMProj = "/data/mmproj.gguf"
	cfg.Image = "/data/page 1.png"
	cfg.Prompt = "Extract rows."
	return cfg
}

func TestBuildServerArgs(t *testing.T) {
	cfg := testServerConfig()
	cfg.CtxSize = 16384

	want := []string{
		"-m", "/data/model.gguf",
		"--port", "4000",
		"-ngl", "48",
		"-c", "16384",
		"-b", "512",
		"-ub", "128",
		"-ctk", "q5_1",
		"-ctv", "q5_1",
		"-fa",
		"--mlock",
	}
	assert.Equal(t, want, buildServerArgs(cfg))
}

func TestServerInvocation(t *testing.T) {
	inv := ServerInvocation(testServerConfig())

	assert.Equal(t, "llama-server", inv.Argv()[0])
	assert.Equal(t, Stream, inv.Mode)
	assert.Equal(t, []RequiredFile{{Option: config.KeyModel, Path: "/data/model.gguf"}}, inv.Files)
	assert.NotEmpty(t, inv.Hint)
}

func TestBuildVisionArgs(t *testing.T) {
	cfg := testVisionConfig()
	cfg.NPredict = 2048

	want := []string{
		"-m", "/data/model.gguf",
		"--mmproj", "/data/mmproj.gguf",
		"--image", "/data/page 1.png",
		"-p", "Extract rows.",
		"-ngl", "34",
		"--threads", "3",
		"-c", "16384",
		"-n", "2048",
		"--temp", "0.3",
		"-ctk", "q4_1",
		"-ctv", "q4_1",
		"-fa",
		"--mlock",
	}
	assert.Equal(t, want, buildVisionArgs(cfg))

	inv := VisionInvocation(cfg)
	assert.Equal(t, Capture, inv.Mode)
	assert.Len(t, inv.Files, 3)
}

func TestTogglesArePresenceOnly(t *testing.T) {
	tests := []struct {
		name         string
		flash, mlock bool
		want         []string
		absent       []string
	}{
		{name: "both", flash: true, mlock: true, want: []string{"-fa", "--mlock"}},
		{name: "flash only", flash: true, want: []string{"-fa"}, absent: []string{"--mlock"}},
		{name: "mlock only", mlock: true, want: []string{"--mlock"}, absent: []string{"-fa"}},
		{name: "neither", absent: []string{"-fa", "--mlock"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testVisionConfig()
			cfg.FlashAttention = tt.flash
			cfg.MLock = tt.mlock
			args := buildVisionArgs(cfg)

			for _, flag := range tt.want {
				assert.Contains(t, args, flag)
			}
			for _, flag := range tt.absent {
				assert.NotContains(t, args, flag)
			}
			assert.NotContains(t, args, "true")
			assert.NotContains(t, args, "false")
		})
	}
}

func TestEachFlagRenderedOnce(t *testing.T) {
	for name, args := range map[string][]string{
		"server": buildServerArgs(testServerConfig()),
		"vision": buildVisionArgs(testVisionConfig()),
	} {
		seen := map[string]int{}
		for _, a := range args {
			if strings.HasPrefix(a, "-") {
				seen[a]++
			}
		}
		for flag, n := range seen {
			assert.Equal(t, 1, n, "%s: flag %s rendered %d times", name, flag, n)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "0.3", formatFloat(0.3))
	assert.Equal(t, "1", formatFloat(1))
	assert.Equal(t, "0.05", formatFloat(0.05))
}

func TestWatchInvocation(t *testing.T) {
	inv := WatchInvocation(config.DefaultWatch())
	assert.Equal(t, []string{"watch", "-n", "1", "nvidia-smi"}, inv.Argv())
	assert.Equal(t, []string{"nvidia-smi"}, inv.Requires)
	assert.Equal(t, "watch -n 1 nvidia-smi", inv.String())

	cfg := config.DefaultWatch()
	cfg.Interval = 0.5
	assert.Equal(t, []string{"watch", "-n", "0.5", "nvidia-smi"}, WatchInvocation(cfg).Argv())
}

func TestInvocationStringQuotes(t *testing.T) {
	inv := VisionInvocation(testVisionConfig())
	s := inv.String()
	assert.True(t, strings.HasPrefix(s, "llama-gemma3-cli -m /data/model.gguf"))
	assert.Contains(t, s, `'/data/page 1.png'`)
	assert.Contains(t, s, `'Extract rows.'`)
}
