package runner

import (
	"strconv"

	"github.com/kballard/go-shellquote"

	"github.com/ThatCatDev/llamalaunch/internal/config"
)

// Mode selects how the child's standard streams are handled.
type Mode int

const (
	// Stream inherits the caller's stdin, stdout and stderr.
	Stream Mode = iota
	// Capture buffers stdout and stderr until the child exits.
	Capture
)

func (m Mode) String() string {
	if m == Capture {
		return "capture"
	}
	return "stream"
}

const (
	llamaHint = "Please ensure llama.cpp is built and its binaries are in your PATH."
	watchHint = "Please ensure 'watch' and NVIDIA drivers/tools are installed and in your PATH."
)

// RequiredFile is a path-valued option that must name an existing regular
// file before anything is spawned.
type RequiredFile struct {
	Option string
	Path   string
}

// Invocation is a fully rendered external command.
type Invocation struct {
	Label      string // log name, e.g. "llama-server"
	Executable string
	BinDir     string // when set, Executable is resolved inside it
	Args       []string
	Files      []RequiredFile
	Requires   []string // other executables that must be on PATH
	Hint       string   // guidance printed when an executable is missing
	Mode       Mode
}

// Argv returns the executable followed by its arguments.
func (inv Invocation) Argv() []string {
	argv := make([]string, 0, len(inv.Args)+1)
	argv = append(argv, inv.Executable)
	return append(argv, inv.Args...)
}

// String renders the command line with shell quoting, for display only.
func (inv Invocation) String() string {
	return shellquote.Join(inv.Argv()...)
}

// ServerInvocation renders the llama-server command for the chat launcher.
func ServerInvocation(cfg config.Server) Invocation {
	return Invocation{
		Label:      "llama-server",
		Executable: cfg.Executable,
		BinDir:     cfg.BinDir,
		Args:       buildServerArgs(cfg),
		Files:      []RequiredFile{{Option: config.KeyModel, Path: cfg.Model}},
		Hint:       llamaHint,
		Mode:       Stream,
	}
}

func buildServerArgs(cfg config.Server) []string {
	args := []string{
		"-m", cfg.Model,
		"--port", strconv.Itoa(cfg.Port),
		"-ngl", strconv.Itoa(cfg.GPULayers),
		"-c", strconv.Itoa(cfg.CtxSize),
		"-b", strconv.Itoa(cfg.BatchSize),
		"-ub", strconv.Itoa(cfg.UBatchSize),
		"-ctk", cfg.CacheTypeK,
		"-ctv", cfg.CacheTypeV,
	}
	return appendToggles(args, cfg.FlashAttention, cfg.MLock)
}

// VisionInvocation renders the multimodal CLI command for an OCR launcher.
func VisionInvocation(cfg config.Vision) Invocation {
	return Invocation{
		Label:      "llama-cli",
		Executable: cfg.Executable,
		BinDir:     cfg.BinDir,
		Args:       buildVisionArgs(cfg),
		Files: []RequiredFile{
			{Option: config.KeyModel, Path: cfg.Model},
			{Option: config.KeyMMProj, Path: cfg.MMProj},
			{Option: config.KeyImage, Path: cfg.Image},
		},
		Hint: llamaHint,
		Mode: Capture,
	}
}

func buildVisionArgs(cfg config.Vision) []string {
	args := []string{
		"-m", cfg.Model,
		"--mmproj", cfg.MMProj,
		"--image", cfg.Image,
		"-p", cfg.Prompt,
		"-ngl", strconv.Itoa(cfg.GPULayers),
		"--threads", strconv.Itoa(cfg.Threads),
		"-c", strconv.Itoa(cfg.CtxSize),
		"-n", strconv.Itoa(cfg.NPredict),
		"--temp", formatFloat(cfg.Temperature),
		"-ctk", cfg.CacheTypeK,
		"-ctv", cfg.CacheTypeV,
	}
	return appendToggles(args, cfg.FlashAttention, cfg.MLock)
}

// WatchInvocation renders the periodic GPU status command.
func WatchInvocation(cfg config.Watch) Invocation {
	return Invocation{
		Label:      "watch",
		Executable: cfg.Executable,
		Args:       []string{"-n", formatFloat(cfg.Interval), cfg.Target},
		Requires:   []string{cfg.Target},
		Hint:       watchHint,
		Mode:       Stream,
	}
}

// appendToggles adds presence-only switches; llama.cpp takes no value for
// either.
func appendToggles(args []string, flashAttn, mlock bool) []string {
	if flashAttn {
		args = append(args, "-fa")
	}
	if mlock {
		args = append(args, "--mlock")
	}
	return args
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
