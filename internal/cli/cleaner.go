package cli

import (
	"os"

	"go.uber.org/zap"

	"github.com/toyz/decorator/internal/errors"
	"github.com/toyz/decorator/internal/generator"
	"github.com/toyz/decorator/internal/utils"
	"github.com/toyz/decorator/internal/utils/fileops"
)

// headerProbeLimit bounds how much of a file is read to find its header
const headerProbeLimit = 4096

// Cleaner handles cleaning up generated files
type Cleaner struct {
	fileProcessor *utils.FileProcessor
	fileOps       *fileops.FileOps
	logger        *zap.Logger
}

// NewCleaner creates a new cleaner
func NewCleaner(logger *zap.Logger) *Cleaner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cleaner{
		fileProcessor: utils.NewFileProcessor(),
		fileOps:       fileops.NewFileOps(),
		logger:        logger,
	}
}

// CleanGeneratedFiles removes every .java file below the directories whose
// first line is the generated header. Hand-written files are left alone.
func (c *Cleaner) CleanGeneratedFiles(directories []string) ([]string, error) {
	roots := make([]string, 0, len(directories))
	for _, dir := range directories {
		base, _ := Recursive(dir)
		roots = append(roots, base)
	}

	removed, err := c.fileProcessor.RemoveFiles(roots, c.isGenerated)
	if err != nil {
		return removed, errors.Wrap(errors.FileSystemErrorCode, "failed to clean generated files", err)
	}

	for _, file := range removed {
		c.logger.Debug("removed generated file", zap.String(logFieldFile, file))
	}
	return removed, nil
}

func (c *Cleaner) isGenerated(path string, info os.DirEntry) bool {
	if !utils.JavaFileFilter()(path, info) {
		return false
	}
	first, err := c.fileOps.ReadFirstLine(path, headerProbeLimit)
	return err == nil && first == generator.GeneratedHeaderLine
}
