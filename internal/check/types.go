package check

const (
	defaultReadmeFileNameConstant    = "README.md"
	defaultGitignoreFileNameConstant = ".gitignore"
)

// RequiredFileSet is an ordered sequence of relative paths that must exist for validation to pass.
type RequiredFileSet []string

// DefaultRequiredFileSet returns the baseline files every repository must carry.
func DefaultRequiredFileSet() RequiredFileSet {
	return RequiredFileSet{defaultReadmeFileNameConstant, defaultGitignoreFileNameConstant}
}

// CheckResult partitions the checked paths into order-preserving present and missing subsequences.
type CheckResult struct {
	Present          []string
	Missing          []string
	ForbiddenPresent []string
}

// Passed reports whether the repository satisfies the compliance policy.
func (result CheckResult) Passed() bool {
	return len(result.Missing) == 0 && len(result.ForbiddenPresent) == 0
}

// RepositoryCheck associates a repository path with its computed result.
type RepositoryCheck struct {
	RepositoryPath string
	Result         CheckResult
}
