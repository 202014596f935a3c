package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// flagAliases maps the short spellings llama.cpp users type to canonical
// option keys.
var flagAliases = map[string]string{
	"ngl":         KeyGPULayers,
	"ctx":         KeyCtxSize,
	"ctk":         KeyCacheTypeK,
	"ctv":         KeyCacheTypeV,
	"fa":          KeyFlashAttn,
	"no-fa":       "no-" + KeyFlashAttn,
	"temperature": KeyTemperature,
	"ub":          KeyUBatchSize,
}

// NormalizeFlagName is a pflag normalization func that folds aliases and
// underscores onto canonical option keys.
func NormalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	name = strings.ReplaceAll(name, "_", "-")
	if canonical, ok := flagAliases[name]; ok {
		name = canonical
	}
	return pflag.NormalizedName(name)
}

// decimalInt is an int flag that only accepts base-10 input. pflag's own Int
// guesses the base from a prefix, which would turn "-c 010" into 8.
type decimalInt int

func (d *decimalInt) Set(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*d = decimalInt(n)
	return nil
}

func (d *decimalInt) String() string { return strconv.Itoa(int(*d)) }

func (d *decimalInt) Type() string { return "int" }

func intFlag(fs *pflag.FlagSet, name, shorthand string, def int, usage string) {
	v := decimalInt(def)
	fs.VarP(&v, name, shorthand, usage)
}

func toggleFlags(fs *pflag.FlagSet, key, what string, def bool) {
	fs.Bool(key, def, fmt.Sprintf("enable %s", what))
	fs.Bool("no-"+key, false, fmt.Sprintf("disable %s", what))
}

// RegisterServerFlags defines the chat launcher flags on fs with defaults
// taken from d.
func RegisterServerFlags(fs *pflag.FlagSet, d Server) {
	fs.String(KeyDataDir, "", "directory holding model files (default: data/ next to the executable)")
	fs.String(KeyExecutable, d.Executable, "llama-server executable name or path")
	fs.String(KeyBinDir, "", "directory containing llama.cpp binaries (default: search PATH)")
	fs.StringP(KeyModel, "m", "", "path to the GGUF model file (default: $DATA_DIR/"+DefaultModelFile+")")
	intFlag(fs, KeyPort, "", d.Port, "port to listen on")
	intFlag(fs, KeyGPULayers, "", d.GPULayers, "number of layers to offload to GPU")
	intFlag(fs, KeyCtxSize, "c", d.CtxSize, "context size")
	intFlag(fs, KeyBatchSize, "b", d.BatchSize, "batch size for prompt processing")
	intFlag(fs, KeyUBatchSize, "", d.UBatchSize, "physical maximum batch size")
	fs.String(KeyCacheTypeK, d.CacheTypeK, "cache type for the K tensor")
	fs.String(KeyCacheTypeV, d.CacheTypeV, "cache type for the V tensor")
	toggleFlags(fs, KeyFlashAttn, "flash attention", d.FlashAttention)
	toggleFlags(fs, KeyMLock, "mlock to prevent paging", d.MLock)
}

// RegisterVisionFlags defines the OCR launcher flags on fs with defaults
// taken from d.
func RegisterVisionFlags(fs *pflag.FlagSet, d Vision) {
	fs.String(KeyDataDir, "", "directory holding model and image files (default: data/ next to the executable)")
	fs.String(KeyExecutable, d.Executable, "multimodal llama.cpp CLI executable name or path")
	fs.String(KeyBinDir, "", "directory containing llama.cpp binaries (default: search PATH)")
	fs.String(KeyModel, "", "path to the GGUF model file (default: $DATA_DIR/"+DefaultModelFile+")")
	fs.String(KeyMMProj, "", "path to the multimodal projector file (default: $DATA_DIR/"+DefaultMMProjFile+")")
	fs.String(KeyImage, "", "path to the statement image (default: $DATA_DIR/"+DefaultImageFile+")")
	fs.String(KeyPrompt, "", "prompt text (default: built-in extraction prompt)")
	fs.String(KeyPromptFile, "", "read the prompt from a file")
	intFlag(fs, KeyGPULayers, "", d.GPULayers, "number of layers to offload to GPU")
	intFlag(fs, KeyThreads, "", d.Threads, "number of CPU threads")
	intFlag(fs, KeyCtxSize, "c", d.CtxSize, "context size")
	intFlag(fs, KeyNPredict, "n", d.NPredict, "number of tokens to predict")
	fs.Float64(KeyTemperature, d.Temperature, "sampling temperature")
	fs.String(KeyCacheTypeK, d.CacheTypeK, "cache type for the K tensor")
	fs.String(KeyCacheTypeV, d.CacheTypeV, "cache type for the V tensor")
	toggleFlags(fs, KeyFlashAttn, "flash attention", d.FlashAttention)
	toggleFlags(fs, KeyMLock, "mlock to prevent paging", d.MLock)
}

// RegisterWatchFlags defines the GPU monitor flags on fs.
func RegisterWatchFlags(fs *pflag.FlagSet, d Watch) {
	fs.String(KeyExecutable, d.Executable, "watch executable name or path")
	fs.String(KeyTarget, d.Target, "GPU status tool to refresh")
	fs.Float64(KeyInterval, d.Interval, "refresh interval in seconds")
}

// ExclusiveFlags lists flag groups that must not be combined. Groups whose
// flags a launcher does not define are skipped.
var ExclusiveFlags = [][]string{
	{KeyFlashAttn, "no-" + KeyFlashAttn},
	{KeyMLock, "no-" + KeyMLock},
	{KeyPrompt, KeyPromptFile},
}
