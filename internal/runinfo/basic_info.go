// Package runinfo captures CI metadata for evaluation reports.
package runinfo

import (
	"os"
	"regexp"
	"strings"
)

var githubPullRefPattern = regexp.MustCompile(`^refs/pull/([0-9]+)/`)

// BasicInfo captures CI/run metadata embedded in report summaries.
type BasicInfo struct {
	CI          bool   `json:"ci,omitempty"`
	Provider    string `json:"provider,omitempty"`
	Repository  string `json:"repository,omitempty"`
	Branch      string `json:"branch,omitempty"`
	Commit      string `json:"commit,omitempty"`
	RunID       string `json:"run_id,omitempty"`
	PullRequest string `json:"pull_request,omitempty"`
	Actor       string `json:"actor,omitempty"`
	BuildURL    string `json:"build_url,omitempty"`
}

// FromEnv builds run metadata from environment variables. Explicit
// TSQL_CI_* values take precedence over provider defaults. It returns nil
// when nothing identifies a CI run.
func FromEnv() *BasicInfo {
	info := detectBase()
	applyOverrides(&info)
	normalize(&info)
	if info.isZero() {
		return nil
	}
	return &info
}

func (b BasicInfo) isZero() bool {
	return !b.CI &&
		b.Provider == "" &&
		b.Repository == "" &&
		b.Branch == "" &&
		b.Commit == "" &&
		b.RunID == "" &&
		b.PullRequest == "" &&
		b.Actor == "" &&
		b.BuildURL == ""
}

func detectBase() BasicInfo {
	info := BasicInfo{}

	if isTruthy(env("GITHUB_ACTIONS")) {
		info.CI = true
		info.Provider = "github_actions"
		info.Repository = env("GITHUB_REPOSITORY")
		info.Branch = envFirst("GITHUB_HEAD_REF", "GITHUB_REF_NAME")
		info.Commit = env("GITHUB_SHA")
		info.RunID = env("GITHUB_RUN_ID")
		info.Actor = env("GITHUB_ACTOR")
		info.PullRequest = githubPullRequestFromRef(env("GITHUB_REF"))
		serverURL := env("GITHUB_SERVER_URL")
		if serverURL == "" {
			serverURL = "https://github.com"
		}
		if info.Repository != "" && info.RunID != "" {
			info.BuildURL = strings.TrimRight(serverURL, "/") + "/" + info.Repository + "/actions/runs/" + info.RunID
		}
	}
	if isTruthy(env("CI")) {
		info.CI = true
	}

	setIfEmpty(&info.Provider, strings.ToLower(envFirst("CI_PROVIDER", "CI_SYSTEM")))
	setIfEmpty(&info.Repository, env("CI_PROJECT_PATH"))
	setIfEmpty(&info.Branch, envFirst("CI_COMMIT_REF_NAME", "BRANCH_NAME", "GIT_BRANCH"))
	setIfEmpty(&info.Commit, envFirst("CI_COMMIT_SHA", "GIT_COMMIT"))
	setIfEmpty(&info.RunID, envFirst("CI_PIPELINE_ID", "BUILD_ID"))
	setIfEmpty(&info.BuildURL, envFirst("CI_JOB_URL", "BUILD_URL"))

	return info
}

func applyOverrides(info *BasicInfo) {
	if v, ok := lookupTrimmed("TSQL_CI"); ok && v != "" {
		info.CI = isTruthy(v)
	}
	explicit := false
	explicit = setFromEnv(&info.Provider, "TSQL_CI_PROVIDER") || explicit
	explicit = setFromEnv(&info.Repository, "TSQL_CI_REPOSITORY") || explicit
	explicit = setFromEnv(&info.Branch, "TSQL_CI_BRANCH") || explicit
	explicit = setFromEnv(&info.Commit, "TSQL_CI_COMMIT") || explicit
	explicit = setFromEnv(&info.RunID, "TSQL_CI_RUN_ID") || explicit
	explicit = setFromEnv(&info.PullRequest, "TSQL_CI_PULL_REQUEST") || explicit
	explicit = setFromEnv(&info.Actor, "TSQL_CI_ACTOR") || explicit
	explicit = setFromEnv(&info.BuildURL, "TSQL_CI_BUILD_URL") || explicit
	if explicit && !info.CI && !ciExplicitFalse() {
		info.CI = true
	}
}

func ciExplicitFalse() bool {
	v, ok := lookupTrimmed("TSQL_CI")
	return ok && v != "" && !isTruthy(v)
}

func normalize(info *BasicInfo) {
	info.Provider = strings.TrimSpace(strings.ToLower(info.Provider))
	info.Repository = strings.TrimSpace(info.Repository)
	info.Branch = normalizeBranch(info.Branch)
	info.Commit = strings.TrimSpace(info.Commit)
	info.RunID = strings.TrimSpace(info.RunID)
	info.PullRequest = strings.TrimSpace(info.PullRequest)
	info.Actor = strings.TrimSpace(info.Actor)
	info.BuildURL = strings.TrimSpace(info.BuildURL)
	if info.CI && info.Provider == "" {
		info.Provider = "generic"
	}
}

func normalizeBranch(branch string) string {
	branch = strings.TrimSpace(branch)
	branch = strings.TrimPrefix(branch, "refs/heads/")
	branch = strings.TrimPrefix(branch, "origin/")
	return branch
}

func githubPullRequestFromRef(ref string) string {
	m := githubPullRefPattern.FindStringSubmatch(strings.TrimSpace(ref))
	if len(m) > 1 {
		return m[1]
	}
	return ""
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envFirst(keys ...string) string {
	for _, key := range keys {
		if value := env(key); value != "" {
			return value
		}
	}
	return ""
}

func setIfEmpty(dst *string, value string) {
	if *dst != "" || value == "" {
		return
	}
	*dst = value
}

func lookupTrimmed(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(value), true
}

func setFromEnv(dst *string, key string) bool {
	value, ok := lookupTrimmed(key)
	if !ok || value == "" {
		return false
	}
	*dst = value
	return true
}

func isTruthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
