package config

import (
	"errors"
	"os"
)

func dataDir(r *Resolver) string {
	if dir := r.String(KeyDataDir); dir != "" {
		return dir
	}
	return DefaultDataDir()
}

// ResolveServer resolves the chat launcher configuration.
func ResolveServer(r *Resolver) (Server, error) {
	c := &collector{r: r}
	dir := dataDir(r)

	cfg := Server{
		Executable:     r.String(KeyExecutable),
		BinDir:         r.String(KeyBinDir),
		Model:          dataFile(r.String(KeyModel), dir, DefaultModelFile),
		Port:           c.int(KeyPort),
		GPULayers:      c.int(KeyGPULayers),
		CtxSize:        c.int(KeyCtxSize),
		BatchSize:      c.int(KeyBatchSize),
		UBatchSize:     c.int(KeyUBatchSize),
		CacheTypeK:     r.String(KeyCacheTypeK),
		CacheTypeV:     r.String(KeyCacheTypeV),
		FlashAttention: r.Toggle(KeyFlashAttn),
		MLock:          r.Toggle(KeyMLock),
	}
	if c.errs != nil {
		return Server{}, c.errs
	}
	return cfg, nil
}

// ResolveVision resolves an OCR launcher configuration. defaultPrompt is used
// when neither a prompt nor a prompt file is configured.
func ResolveVision(r *Resolver, defaultPrompt string) (Vision, error) {
	c := &collector{r: r}
	dir := dataDir(r)

	cfg := Vision{
		Executable:     r.String(KeyExecutable),
		BinDir:         r.String(KeyBinDir),
		Model:          dataFile(r.String(KeyModel), dir, DefaultModelFile),
		MMProj:         dataFile(r.String(KeyMMProj), dir, DefaultMMProjFile),
		Image:          dataFile(r.String(KeyImage), dir, DefaultImageFile),
		GPULayers:      c.int(KeyGPULayers),
		Threads:        c.int(KeyThreads),
		CtxSize:        c.int(KeyCtxSize),
		NPredict:       c.int(KeyNPredict),
		Temperature:    c.float(KeyTemperature),
		CacheTypeK:     r.String(KeyCacheTypeK),
		CacheTypeV:     r.String(KeyCacheTypeV),
		FlashAttention: r.Toggle(KeyFlashAttn),
		MLock:          r.Toggle(KeyMLock),
	}
	if c.errs != nil {
		return Vision{}, c.errs
	}

	prompt, err := resolvePrompt(r, defaultPrompt)
	if err != nil {
		return Vision{}, err
	}
	cfg.Prompt = prompt
	return cfg, nil
}

// resolvePrompt picks, in order: an explicit --prompt, an explicit
// --prompt-file, a prompt from the environment, a prompt file from the config
// file, a prompt from the config file, then the built-in prompt.
func resolvePrompt(r *Resolver, defaultPrompt string) (string, error) {
	switch {
	case r.Changed(KeyPrompt):
		return r.String(KeyPrompt), nil
	case r.Changed(KeyPromptFile):
		return readPromptFile(r.String(KeyPromptFile))
	case r.fromEnv(KeyPrompt):
		return r.String(KeyPrompt), nil
	}
	if path := r.String(KeyPromptFile); path != "" {
		return readPromptFile(path)
	}
	if prompt := r.String(KeyPrompt); prompt != "" {
		return prompt, nil
	}
	return defaultPrompt, nil
}

func readPromptFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", &Error{Option: KeyPromptFile, Path: path, Err: err}
		}
		return "", &Error{Option: KeyPromptFile, Source: path, Err: err}
	}
	return string(data), nil
}

// ResolveWatch resolves the GPU monitor configuration.
func ResolveWatch(r *Resolver) (Watch, error) {
	c := &collector{r: r}
	cfg := Watch{
		Executable: r.String(KeyExecutable),
		Target:     r.String(KeyTarget),
		Interval:   c.float(KeyInterval),
	}
	if c.errs != nil {
		return Watch{}, c.errs
	}
	if cfg.Interval <= 0 {
		return Watch{}, r.invalid(KeyInterval, errors.New("interval must be positive"))
	}
	return cfg, nil
}
