package placeholders

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/AnotherFullstackDev/promotectl/internal/lib"
	"github.com/AnotherFullstackDev/promotectl/internal/placeholders/git"
)

// Resolver produces the value for a single placeholder name.
type Resolver func() (string, error)

// Placeholders look like {{ git.commit }} or {{ git.branch | short }}, with
// an optional chain of modifiers separated by pipes. Modifier arguments are
// comma-separated and may be quoted, e.g. {{ git.branch | replace_all("/", "-") }}.
var (
	placeholderRegExp = regexp.MustCompile(`{{\s*([^{}]+?)\s*}}`)
	modifierRegExp    = regexp.MustCompile(`^(\w+)(\(([^()]*)\))?$`)
)

type Service struct {
	gitRepoInfo git.RepositoryInfoService
}

// NewService builds a placeholders service. gitRepoInfo may be nil, in which
// case git.* placeholders fail with an explanation instead of panicking.
func NewService(gitRepoInfo git.RepositoryInfoService) *Service {
	return &Service{gitRepoInfo: gitRepoInfo}
}

func (s *Service) Resolve(value string) (string, error) {
	matches := placeholderRegExp.FindAllStringSubmatch(value, -1)

	resolvers := map[string]Resolver{
		"git.branch":     s.resolveGitBranch,
		"git.commit":     s.resolveGitCommit,
		"git.tag":        s.resolveGitTag,
		"time.timestamp": resolveUnixTimestamp,
		"time.iso8601":   resolveISO8601Timestamp,
	}

	for _, match := range matches {
		raw, inner := match[0], match[1]

		parts := strings.Split(inner, "|")
		placeholderName := strings.TrimSpace(parts[0])

		resolver, ok := resolvers[placeholderName]
		if !ok {
			return "", fmt.Errorf("no resolver found for placeholder %s. %w", raw, lib.BadUserInputError)
		}

		resolved, err := resolver()
		if err != nil {
			return "", fmt.Errorf("resolving placeholder %s: %w", raw, err)
		}

		resolved, err = applyModifiers(resolved, raw, parts[1:])
		if err != nil {
			return "", err
		}

		value = strings.Replace(value, raw, resolved, 1)
	}

	return value, nil
}

func applyModifiers(input, raw string, rawModifiers []string) (string, error) {
	for _, rawModifier := range rawModifiers {
		rawModifier = strings.TrimSpace(rawModifier)
		if rawModifier == "" {
			continue
		}

		name, args, err := parseModifier(rawModifier)
		if err != nil {
			return "", fmt.Errorf("parsing modifier %q of placeholder %s: %w", rawModifier, raw, err)
		}

		input, err = resolveModifier(input, name, args)
		if err != nil {
			return "", fmt.Errorf("applying modifier %s to placeholder %s: %w", name, raw, err)
		}
	}

	return input, nil
}

func parseModifier(rawModifier string) (string, []string, error) {
	match := modifierRegExp.FindStringSubmatch(rawModifier)
	if match == nil {
		return "", nil, fmt.Errorf("invalid modifier format. %w", lib.BadUserInputError)
	}

	name := match[1]
	var args []string
	if rawArgs := match[3]; rawArgs != "" {
		args = strings.Split(rawArgs, ",")
		for i := range args {
			args[i] = strings.TrimSpace(args[i])
			if unquoted, err := strconv.Unquote(args[i]); err == nil {
				args[i] = unquoted
			}
		}
	}

	return name, args, nil
}

func resolveModifier(input, name string, args []string) (string, error) {
	switch name {
	case "upper":
		return strings.ToUpper(input), nil
	case "lower":
		return strings.ToLower(input), nil
	case "trim":
		if len(args) > 1 {
			return "", fmt.Errorf("trim modifier expects at most one argument, got %d. %w", len(args), lib.BadUserInputError)
		}
		if len(args) == 0 {
			return strings.TrimSpace(input), nil
		}
		return strings.Trim(input, args[0]), nil
	case "short":
		length := 12
		if len(args) > 1 {
			return "", fmt.Errorf("short modifier expects at most one argument, got %d. %w", len(args), lib.BadUserInputError)
		}
		if len(args) == 1 {
			parsed, err := strconv.Atoi(args[0])
			if err != nil || parsed <= 0 {
				return "", fmt.Errorf("short modifier expects a positive number, got %q. %w", args[0], lib.BadUserInputError)
			}
			length = parsed
		}
		if len(input) <= length {
			return input, nil
		}
		return input[:length], nil
	case "replace":
		if len(args) != 2 {
			return "", fmt.Errorf("replace modifier expects exactly two arguments, got %d. %w", len(args), lib.BadUserInputError)
		}
		return strings.Replace(input, args[0], args[1], 1), nil
	case "replace_all":
		if len(args) != 2 {
			return "", fmt.Errorf("replace_all modifier expects exactly two arguments, got %d. %w", len(args), lib.BadUserInputError)
		}
		return strings.ReplaceAll(input, args[0], args[1]), nil
	default:
		return "", fmt.Errorf("unknown modifier %s. %w", name, lib.BadUserInputError)
	}
}

func (s *Service) resolveGitBranch() (string, error) {
	if s.gitRepoInfo == nil {
		return "", fmt.Errorf("git placeholders are unavailable outside a git repository. %w", lib.BadUserInputError)
	}

	branch, err := s.gitRepoInfo.CurrentBranch()
	if err != nil {
		return "", fmt.Errorf("getting current git branch: %w", err)
	}
	return branch, nil
}

func (s *Service) resolveGitCommit() (string, error) {
	if s.gitRepoInfo == nil {
		return "", fmt.Errorf("git placeholders are unavailable outside a git repository. %w", lib.BadUserInputError)
	}

	sha, err := s.gitRepoInfo.CurrentCommitSHA()
	if err != nil {
		return "", fmt.Errorf("getting current git commit: %w", err)
	}
	return sha, nil
}

func (s *Service) resolveGitTag() (string, error) {
	if s.gitRepoInfo == nil {
		return "", fmt.Errorf("git placeholders are unavailable outside a git repository. %w", lib.BadUserInputError)
	}

	tag, err := s.gitRepoInfo.CurrentTag()
	if err != nil {
		return "", fmt.Errorf("getting current git tag: %w", err)
	}
	if tag == "" {
		return "", fmt.Errorf("no git tag found for current commit. %w", lib.BadUserInputError)
	}

	return tag, nil
}

func resolveUnixTimestamp() (string, error) {
	return strconv.FormatInt(time.Now().UTC().Unix(), 10), nil
}

func resolveISO8601Timestamp() (string, error) {
	return time.Now().UTC().Format(time.RFC3339), nil
}
