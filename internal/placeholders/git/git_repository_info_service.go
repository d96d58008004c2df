package git

import (
	"fmt"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
)

// RepositoryInfoService exposes the bits of repository state that image tags
// are commonly derived from.
type RepositoryInfoService interface {
	CurrentBranch() (string, error)
	CurrentCommitSHA() (string, error)
	// CurrentTag returns the short name of a tag pointing at HEAD, or ""
	// when the current commit is untagged.
	CurrentTag() (string, error)
}

type repositoryInfoServiceImpl struct {
	r *git.Repository
}

func NewRepositoryInfoService(repoPath string) (RepositoryInfoService, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}

	return &repositoryInfoServiceImpl{r: repo}, nil
}

func (s *repositoryInfoServiceImpl) CurrentBranch() (string, error) {
	headRef, err := s.r.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}

	name := headRef.Name()
	if !name.IsBranch() {
		return "", fmt.Errorf("HEAD is not pointing to a branch")
	}

	return name.Short(), nil
}

func (s *repositoryInfoServiceImpl) CurrentCommitSHA() (string, error) {
	headRef, err := s.r.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}

	return headRef.Hash().String(), nil
}

func (s *repositoryInfoServiceImpl) CurrentTag() (string, error) {
	headRef, err := s.r.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}
	head := headRef.Hash()

	tagsIter, err := s.r.Tags()
	if err != nil {
		return "", fmt.Errorf("getting tags iterator: %w", err)
	}
	defer tagsIter.Close()

	var found string
	err = tagsIter.ForEach(func(reference *plumbing.Reference) error {
		if found != "" {
			return nil
		}

		// Lightweight tags point directly at the commit. Annotated tags
		// point at a tag object that in turn points at the commit.
		if reference.Hash().Equal(head) {
			found = reference.Name().Short()
			return nil
		}
		if obj, tagErr := s.r.TagObject(reference.Hash()); tagErr == nil && obj.Target.Equal(head) {
			found = reference.Name().Short()
		}

		return nil
	})
	if err != nil {
		return "", fmt.Errorf("iterating over tags: %w", err)
	}

	return found, nil
}
