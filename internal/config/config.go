package config

// Option keys. They double as CLI flag names, config file keys and viper keys.
const (
	KeyDataDir     = "data-dir"
	KeyExecutable  = "executable"
	KeyBinDir      = "bin-dir"
	KeyModel       = "model"
	KeyMMProj      = "mmproj"
	KeyImage       = "image"
	KeyPrompt      = "prompt"
	KeyPromptFile  = "prompt-file"
	KeyPort        = "port"
	KeyGPULayers   = "n-gpu-layers"
	KeyThreads     = "threads"
	KeyCtxSize     = "context-size"
	KeyBatchSize   = "batch-size"
	KeyUBatchSize  = "ubatch-size"
	KeyCacheTypeK  = "cache-type-k"
	KeyCacheTypeV  = "cache-type-v"
	KeyFlashAttn   = "flash-attn"
	KeyMLock       = "mlock"
	KeyNPredict    = "n-predict"
	KeyTemperature = "temp"
	KeyTarget      = "target"
	KeyInterval    = "interval"
)

// Default file names looked up inside the data directory.
const (
	DefaultModelFile  = "gemma-3-4b-it-Q5_K_M.gguf"
	DefaultMMProjFile = "mmproj-BF16.gguf"
	DefaultImageFile  = "temp.png"
)

// Server is the resolved configuration for the llama-server chat launcher.
type Server struct {
	Executable     string `yaml:"executable"`
	BinDir         string `yaml:"bin_dir,omitempty"`
	Model          string `yaml:"model"`
	Port           int    `yaml:"port"`
	GPULayers      int    `yaml:"n_gpu_layers"`
	CtxSize        int    `yaml:"context_size"`
	BatchSize      int    `yaml:"batch_size"`
	UBatchSize     int    `yaml:"ubatch_size"`
	CacheTypeK     string `yaml:"cache_type_k"`
	CacheTypeV     string `yaml:"cache_type_v"`
	FlashAttention bool   `yaml:"flash_attn"`
	MLock          bool   `yaml:"mlock"`
}

// DefaultServer returns the built-in chat defaults. Model is left empty and
// filled from the data directory during resolution.
func DefaultServer() Server {
	return Server{
		Executable:     "llama-server",
		Port:           4000,
		GPULayers:      48,
		CtxSize:        8192,
		BatchSize:      512,
		UBatchSize:     128,
		CacheTypeK:     "q5_1",
		CacheTypeV:     "q5_1",
		FlashAttention: true,
		MLock:          true,
	}
}

// ServerEnv maps chat options to the environment variables that set them.
var ServerEnv = map[string]string{
	KeyDataDir:    "DATA_DIR",
	KeyExecutable: "LLAMA_SERVER_EXECUTABLE",
	KeyBinDir:     "LLAMA_BIN_DIR",
	KeyModel:      "MODEL_PATH",
	KeyPort:       "SERVER_PORT",
	KeyGPULayers:  "N_GPU_LAYERS",
	KeyCtxSize:    "CONTEXT_SIZE",
	KeyBatchSize:  "BATCH_SIZE",
	KeyUBatchSize: "UBATCH_SIZE",
	KeyCacheTypeK: "CACHE_TYPE_K",
	KeyCacheTypeV: "CACHE_TYPE_V",
	KeyFlashAttn:  "FLASH_ATTN",
	KeyMLock:      "MLOCK",
}

// Vision is the resolved configuration for the multimodal OCR launchers.
type Vision struct {
	Executable     string  `yaml:"executable"`
	BinDir         string  `yaml:"bin_dir,omitempty"`
	Model          string  `yaml:"model"`
	MMProj         string  `yaml:"mmproj"`
	Image          string  `yaml:"image"`
	Prompt         string  `yaml:"prompt"`
	GPULayers      int     `yaml:"n_gpu_layers"`
	Threads        int     `yaml:"threads"`
	CtxSize        int     `yaml:"context_size"`
	NPredict       int     `yaml:"n_predict"`
	Temperature    float64 `yaml:"temp"`
	CacheTypeK     string  `yaml:"cache_type_k"`
	CacheTypeV     string  `yaml:"cache_type_v"`
	FlashAttention bool    `yaml:"flash_attn"`
	MLock          bool    `yaml:"mlock"`
}

// DefaultVision returns the built-in OCR defaults shared by both extraction
// launchers. Callers set NPredict and Prompt per task.
func DefaultVision() Vision {
	return Vision{
		Executable:     "llama-gemma3-cli",
		GPULayers:      34,
		Threads:        3,
		CtxSize:        16384,
		NPredict:       1024,
		Temperature:    0.3,
		CacheTypeK:     "q4_1",
		CacheTypeV:     "q4_1",
		FlashAttention: true,
		MLock:          true,
	}
}

// VisionEnv returns the environment mapping for an OCR launcher whose prompt
// override lives in promptEnv.
func VisionEnv(promptEnv string) map[string]string {
	return map[string]string{
		KeyDataDir:     "DATA_DIR",
		KeyExecutable:  "LLAMA_CLI_EXECUTABLE",
		KeyBinDir:      "LLAMA_BIN_DIR",
		KeyModel:       "MODEL_PATH",
		KeyMMProj:      "MMPROJ_PATH",
		KeyImage:       "IMAGE_PATH",
		KeyPrompt:      promptEnv,
		KeyGPULayers:   "N_GPU_LAYERS",
		KeyThreads:     "THREADS",
		KeyCtxSize:     "CONTEXT_SIZE",
		KeyNPredict:    "N_PREDICT",
		KeyTemperature: "TEMPERATURE",
		KeyCacheTypeK:  "CACHE_TYPE_K",
		KeyCacheTypeV:  "CACHE_TYPE_V",
		KeyFlashAttn:   "FLASH_ATTN",
		KeyMLock:       "MLOCK",
	}
}

// Watch is the resolved configuration for the GPU monitor launcher.
type Watch struct {
	Executable string  `yaml:"executable"`
	Target     string  `yaml:"target"`
	Interval   float64 `yaml:"interval"`
}

// DefaultWatch returns the built-in GPU monitor defaults.
func DefaultWatch() Watch {
	return Watch{
		Executable: "watch",
		Target:     "nvidia-smi",
		Interval:   1,
	}
}

// WatchEnv maps GPU monitor options to environment variables.
var WatchEnv = map[string]string{
	KeyExecutable: "WATCH_EXECUTABLE",
	KeyTarget:     "NVIDIA_SMI_EXECUTABLE",
	KeyInterval:   "WATCH_INTERVAL",
}
