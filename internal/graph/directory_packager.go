package graph

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/AnotherFullstackDev/promotectl/internal/lib"
	"github.com/AnotherFullstackDev/promotectl/internal/promotion"
	ignore "github.com/sabhiram/go-gitignore"
)

const dockerignoreFile = ".dockerignore"

// ContextPackager models the external asset-packaging service. It assigns a
// build context a content-addressed image URI in a staging repository; the
// actual build and push happen later, in the build executor. Identical
// context content always resolves to the identical URI.
type ContextPackager struct {
	staging *EcrRepository
}

func NewContextPackager(staging *EcrRepository) *ContextPackager {
	return &ContextPackager{staging: staging}
}

func (p *ContextPackager) PackageDirectory(path string, excludes []string) (promotion.ImageAsset, error) {
	fingerprint, err := fingerprintDirectory(path, excludes)
	if err != nil {
		return nil, fmt.Errorf("fingerprinting build context %s: %w", path, err)
	}

	slog.Debug("packaged build context",
		"path", path,
		"staging_repository", p.staging.URI(),
		"fingerprint", fingerprint)

	return &StagedAsset{
		uri:        fmt.Sprintf("%s:%s", p.staging.URI(), fingerprint),
		repository: p.staging,
	}, nil
}

// StagedAsset is an image artifact addressed into a repository.
type StagedAsset struct {
	uri        string
	repository promotion.Repository
}

// NewStagedAsset wraps an artifact that was built and pushed outside this
// run, e.g. by an earlier pipeline stage.
func NewStagedAsset(uri string, repository promotion.Repository) *StagedAsset {
	return &StagedAsset{uri: uri, repository: repository}
}

func (a *StagedAsset) ImageURI() string {
	return a.uri
}

func (a *StagedAsset) Repository() promotion.Repository {
	return a.repository
}

// fingerprintDirectory hashes the relative paths and contents of every file
// under root, minus .dockerignore matches and the exclude globs. WalkDir is
// lexical, so the digest is stable across runs.
func fingerprintDirectory(root string, excludes []string) (string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("%w - build context is not accessible: %w", lib.BadUserInputError, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w - build context %s is not a directory", lib.BadUserInputError, root)
	}

	var contextIgnore *ignore.GitIgnore
	ignorePath := filepath.Join(root, dockerignoreFile)
	if _, statErr := os.Stat(ignorePath); statErr == nil {
		contextIgnore, err = ignore.CompileIgnoreFile(ignorePath)
		if err != nil {
			return "", fmt.Errorf("parsing %s: %w", ignorePath, err)
		}
	}

	digest := sha256.New()
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return fmt.Errorf("relativizing %s: %w", path, relErr)
		}
		rel = filepath.ToSlash(rel)

		if contextIgnore != nil && contextIgnore.MatchesPath(rel) {
			return nil
		}
		excluded, matchErr := lib.MatchesAnyPattern(rel, excludes)
		if matchErr != nil {
			return matchErr
		}
		if excluded {
			return nil
		}

		fileInfo, infoErr := d.Info()
		if infoErr != nil {
			return fmt.Errorf("stating %s: %w", path, infoErr)
		}

		f, openErr := os.Open(path)
		if openErr != nil {
			return fmt.Errorf("opening %s: %w", path, openErr)
		}

		// Length-prefix the path and size-prefix the content so record
		// boundaries stay unambiguous regardless of file contents.
		fmt.Fprintf(digest, "%d:%s\n%d:", len(rel), rel, fileInfo.Size())
		copied, copyErr := io.Copy(digest, f)
		f.Close()
		if copyErr != nil {
			return fmt.Errorf("hashing %s: %w", path, copyErr)
		}
		if copied != fileInfo.Size() {
			return fmt.Errorf("build context file %s changed while hashing", path)
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(digest.Sum(nil)), nil
}
