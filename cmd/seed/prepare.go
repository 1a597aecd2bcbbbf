package main

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"support-bot/internal/catalog"

	"go.uber.org/zap"
)

type prepareOptions struct {
	rawIntents string
	rawFaqs    string
	outIntents string
	outFaqs    string
	cacheFile  string
	force      bool
}

// ProcessedFile records the hash of a raw dataset at the time it was cleaned
type ProcessedFile struct {
	FilePath    string    `json:"file_path"`
	FileHash    string    `json:"file_hash"`
	OutputPath  string    `json:"output_path"`
	ProcessedAt time.Time `json:"processed_at"`
}

// CacheData stores information about processed files
type CacheData struct {
	ProcessedFiles map[string]ProcessedFile `json:"processed_files"` // key: raw file path
}

type datasetJob struct {
	kind    string
	rawPath string
	outPath string
	process func(data []byte) (kept, skipped int, err error)
}

func prepareCatalogs(opts prepareOptions, logger *zap.Logger) error {
	cache, err := loadCache(opts.cacheFile)
	if err != nil {
		logger.Warn("Failed to load cache, will process all files", zap.Error(err))
		cache = &CacheData{ProcessedFiles: make(map[string]ProcessedFile)}
	}

	jobs := []datasetJob{
		{
			kind:    "intents",
			rawPath: opts.rawIntents,
			outPath: opts.outIntents,
			process: func(data []byte) (int, int, error) {
				raw, err := catalog.ParseRawIntents(data, opts.rawIntents)
				if err != nil {
					return 0, 0, err
				}
				cleaned, skipped := catalog.CleanIntents(raw)
				return len(cleaned), skipped, catalog.WriteIntents(opts.outIntents, cleaned)
			},
		},
		{
			kind:    "faqs",
			rawPath: opts.rawFaqs,
			outPath: opts.outFaqs,
			process: func(data []byte) (int, int, error) {
				raw, err := catalog.ParseRawFaqs(data, opts.rawFaqs)
				if err != nil {
					return 0, 0, err
				}
				cleaned, skipped := catalog.CleanFaqs(raw)
				return len(cleaned), skipped, catalog.WriteFaqs(opts.outFaqs, cleaned)
			},
		},
	}

	for _, job := range jobs {
		if err := runJob(job, cache, opts.force, logger); err != nil {
			return err
		}
	}

	if err := saveCache(opts.cacheFile, cache); err != nil {
		logger.Warn("Failed to save cache", zap.Error(err))
	} else {
		logger.Info("Cache saved", zap.Int("processed_files", len(cache.ProcessedFiles)))
	}
	return nil
}

func runJob(job datasetJob, cache *CacheData, force bool, logger *zap.Logger) error {
	if _, err := os.Stat(job.rawPath); os.IsNotExist(err) {
		logger.Warn("No dataset found, skipping", zap.String("kind", job.kind), zap.String("path", job.rawPath))
		return nil
	}

	fileHash, err := calculateFileHash(job.rawPath)
	if err != nil {
		return err
	}

	if cached, ok := cache.ProcessedFiles[job.rawPath]; ok && !force {
		_, outErr := os.Stat(job.outPath)
		if cached.FileHash == fileHash && cached.OutputPath == job.outPath && outErr == nil {
			logger.Info("Dataset unchanged, skipping",
				zap.String("path", job.rawPath),
				zap.Time("processed_at", cached.ProcessedAt),
			)
			return nil
		}
	}

	data, err := os.ReadFile(job.rawPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", job.rawPath, err)
	}

	if err := os.MkdirAll(filepath.Dir(job.outPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	kept, skipped, err := job.process(data)
	if err != nil {
		return fmt.Errorf("failed to process %s dataset %s: %w", job.kind, job.rawPath, err)
	}

	logger.Info("Dataset cleaned",
		zap.String("kind", job.kind),
		zap.String("output", job.outPath),
		zap.Int("kept", kept),
		zap.Int("skipped", skipped),
	)

	cache.ProcessedFiles[job.rawPath] = ProcessedFile{
		FilePath:    job.rawPath,
		FileHash:    fileHash,
		OutputPath:  job.outPath,
		ProcessedAt: time.Now(),
	}
	return nil
}

func loadCache(cacheFile string) (*CacheData, error) {
	cache := &CacheData{
		ProcessedFiles: make(map[string]ProcessedFile),
	}

	data, err := os.ReadFile(cacheFile)
	if os.IsNotExist(err) {
		return cache, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}
	if len(data) == 0 {
		return cache, nil
	}

	if err := json.Unmarshal(data, cache); err != nil {
		return nil, fmt.Errorf("failed to parse cache file: %w", err)
	}
	if cache.ProcessedFiles == nil {
		cache.ProcessedFiles = make(map[string]ProcessedFile)
	}
	return cache, nil
}

func saveCache(cacheFile string, cache *CacheData) error {
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cacheFile), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(cacheFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}

// calculateFileHash calculates MD5 hash of a file
func calculateFileHash(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("failed to calculate hash: %w", err)
	}

	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}
