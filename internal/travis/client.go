package travis

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/joho/godotenv"

	"tfa/internal/domain"
)

// Client drives the external authenticated travis command-line client.
// Authentication and endpoint selection are the client's concern; an
// optional .env file can override its environment (TRAVIS_ENDPOINT,
// TRAVIS_TOKEN).
type Client struct {
	cmdName string
	env     []string
}

// NewClient creates a Client, folding .env overrides into the environment
// passed to the travis command. A missing .env is not an error.
func NewClient() *Client {
	env := os.Environ()
	if vars, err := godotenv.Read(".env"); err == nil {
		for k, v := range vars {
			env = append(env, fmt.Sprintf("%s=%s", k, v))
		}
	}
	return &Client{cmdName: "travis", env: env}
}

// NormalizeBuildURL rewrites a www-style build reference into the API
// resource form the travis client expects.
func NormalizeBuildURL(ref string) string {
	if strings.Contains(ref, "api.travis-ci.org") {
		return ref
	}
	return strings.Replace(ref, "travis-ci.org/", "api.travis-ci.org/repos/", 1)
}

// raw sends one request through the travis client and returns the body
func (c *Client) raw(resource string) ([]byte, error) {
	cmd := exec.Command(c.cmdName, "raw", "--json", resource)
	cmd.Env = c.env
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("travis request %s: %w", resource, err)
	}
	return out, nil
}

type jobPayload struct {
	ID     int    `json:"id"`
	State  string `json:"state"`
	Config struct {
		Env json.RawMessage `json:"env"`
	} `json:"config"`
}

type buildPayload struct {
	Jobs []jobPayload `json:"jobs"`
}

// Build fetches build metadata and returns its jobs keyed by id.
func (c *Client) Build(buildURL string) (*domain.Build, error) {
	raw, err := c.raw(buildURL)
	if err != nil {
		return nil, err
	}

	var payload buildPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode build %s: %w", buildURL, err)
	}

	build := &domain.Build{BuildURL: buildURL, Jobs: make(map[int]*domain.Job)}
	for _, jp := range payload.Jobs {
		build.Jobs[jp.ID] = &domain.Job{
			ID:    jp.ID,
			State: domain.JobState(jp.State),
			Env:   decodeEnv(jp.Config.Env),
		}
	}
	return build, nil
}

// Log fetches the console log for one job, split into trimmed lines.
func (c *Client) Log(jobID int) ([]string, error) {
	raw, err := c.raw(fmt.Sprintf("/jobs/%d/log", jobID))
	if err != nil {
		return nil, err
	}
	return SplitLines(decodeLogPayload(raw)), nil
}

// decodeLogPayload normalizes the log body at the fetch boundary: the
// provider returns either a bare JSON string, a {"log": ...} wrapper, or
// plain text.
func decodeLogPayload(raw []byte) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var wrapped struct {
		Log *string `json:"log"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Log != nil {
		return *wrapped.Log
	}
	return string(raw)
}

// decodeEnv accepts the job config env as either a string or an array
// of strings.
func decodeEnv(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var parts []string
	if err := json.Unmarshal(raw, &parts); err == nil {
		return strings.Join(parts, " ")
	}
	return string(raw)
}

// SplitLines splits a log body into lines with surrounding whitespace
// stripped, matching the cache file format.
func SplitLines(body string) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimRight(body, "\n"), "\n") {
		lines = append(lines, strings.TrimSpace(line))
	}
	return lines
}
