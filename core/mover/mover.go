package mover

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tristendillon/relocate/core/logger"
	"github.com/tristendillon/relocate/core/models"
	"github.com/tristendillon/relocate/core/paths"
)

type FileMover struct {
	DirPerm os.FileMode
	// Verify hashes the written destination.
	Verify func(path string) (models.Digest, error)
}

func NewFileMover() *FileMover {
	return &FileMover{DirPerm: 0755, Verify: models.DigestFile}
}

// MakeDirs creates every missing ancestor of pair.To, outermost first.
func (m *FileMover) MakeDirs(pair models.MovePair) ([]string, error) {
	missing := paths.MissingAncestors(filepath.Dir(pair.To), m.pathExists)

	for _, dir := range missing {
		logger.Progress("Creating new directory at %s", dir)
		if err := os.Mkdir(dir, m.DirPerm); err != nil && !errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return missing, nil
}

// MoveFile streams pair.From into pair.To, checks the written bytes hash the
// same as the source, and only then removes the source.
func (m *FileMover) MoveFile(pair models.MovePair) (models.Digest, error) {
	logger.Progress("Moving file %s", pair)

	src, err := os.Open(pair.From)
	if err != nil {
		return models.Digest{}, fmt.Errorf("failed to open source: %w", err)
	}
	info, err := src.Stat()
	if err != nil {
		src.Close()
		return models.Digest{}, fmt.Errorf("failed to stat source: %w", err)
	}

	srcDigest, err := m.copyContent(src, pair.To, info.Mode().Perm())
	src.Close()
	if err != nil {
		return models.Digest{}, err
	}

	verify := m.Verify
	if verify == nil {
		verify = models.DigestFile
	}
	dstDigest, err := verify(pair.To)
	if err != nil {
		return models.Digest{}, fmt.Errorf("failed to verify destination: %w", err)
	}
	if dstDigest != srcDigest {
		return models.Digest{}, fmt.Errorf("%w: %s (%s != %s)", models.ErrDigestMismatch, pair.To, dstDigest, srcDigest)
	}
	logger.Debug("Verified %s (%d bytes, xxhash %s)", pair.To, dstDigest.Size, dstDigest)

	if err := os.Remove(pair.From); err != nil {
		return models.Digest{}, fmt.Errorf("failed to remove source: %w", err)
	}

	return srcDigest, nil
}

// copyContent hashes the source while writing it, so the source is read once.
func (m *FileMover) copyContent(src io.Reader, target string, perm os.FileMode) (models.Digest, error) {
	dst, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return models.Digest{}, fmt.Errorf("failed to create destination: %w", err)
	}

	digest, err := models.DigestReader(io.TeeReader(src, dst))
	if err != nil {
		dst.Close()
		return models.Digest{}, fmt.Errorf("failed to copy %s: %w", target, err)
	}
	if err := dst.Sync(); err != nil {
		dst.Close()
		return models.Digest{}, fmt.Errorf("failed to sync %s: %w", target, err)
	}
	if err := dst.Close(); err != nil {
		return models.Digest{}, fmt.Errorf("failed to close %s: %w", target, err)
	}

	return digest, nil
}

func (m *FileMover) pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
