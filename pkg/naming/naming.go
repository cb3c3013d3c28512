package naming

import (
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"regexp"
	"strings"
)

const (
	// JobPrefix starts every derived container name.
	JobPrefix = "job-"
	// MaxContainerNameLength is the longest name the blob service accepts.
	MaxContainerNameLength = 63

	// MaxMungedBodyLength caps the job id part of a hashed name. It matches
	// the Batch file conventions so hashed names stay compatible with
	// containers created by other Batch tooling.
	MaxMungedBodyLength = 15

	// emptyBodyFallback replaces a munged body that ended up empty.
	emptyBodyFallback = "job"
	// maxUsableJobIDLength bounds job ids that can be used without hashing.
	maxUsableJobIDLength = MaxContainerNameLength - len(JobPrefix)
)

var (
	// ErrEmptyIdentifier is returned when no job id was supplied.
	ErrEmptyIdentifier = errors.New("job id must not be empty")
	// ErrDigestTooLong is returned when a digest leaves no room for the job id body.
	ErrDigestTooLong = errors.New("digest too long for container name")
)

var (
	// permittedNameRegex matches job ids usable as-is once lowercased
	permittedNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)
	// invalidBodyCharsRegex matches anything the munged body must not keep
	invalidBodyCharsRegex = regexp.MustCompile(`[^a-z0-9_-]+`)
	// separatorRunRegex matches runs of underscores and dashes
	separatorRunRegex = regexp.MustCompile(`[_-]+`)
)

// Result describes a derived container name.
type Result struct {
	JobID         string `json:"jobId" yaml:"jobId"`
	ContainerName string `json:"containerName" yaml:"containerName"`
	// Hashed is true when the job id could not be used directly and the
	// name carries a digest suffix.
	Hashed bool `json:"hashed" yaml:"hashed"`
}

// Deriver maps job ids to container names using a fixed digest. It holds no
// mutable state and is safe for concurrent use.
type Deriver struct {
	newHash    func() hash.Hash
	bodyBudget int
}

// NewDeriver returns a Deriver hashing with newHash. The room left for the
// job id body is derived from the digest size:
//
//	63 - len("job-") - 1 - 2*size
//
// and capped at MaxMungedBodyLength. Digests that cannot fit the "job"
// fallback body are rejected.
func NewDeriver(newHash func() hash.Hash) (*Deriver, error) {
	if newHash == nil {
		return nil, errors.New("hash constructor is nil")
	}
	budget, err := bodyBudget(newHash().Size())
	if err != nil {
		return nil, err
	}
	return &Deriver{newHash: newHash, bodyBudget: budget}, nil
}

func bodyBudget(digestSize int) (int, error) {
	hexLength := hex.EncodedLen(digestSize)
	room := MaxContainerNameLength - len(JobPrefix) - 1 - hexLength
	if room < len(emptyBodyFallback) {
		return 0, fmt.Errorf("%w: %d hex characters leave %d for the body", ErrDigestTooLong, hexLength, room)
	}
	return min(room, MaxMungedBodyLength), nil
}

// BodyBudget returns the maximum length of the job id part of a hashed name.
func (d *Deriver) BodyBudget() int {
	return d.bodyBudget
}

// Derive returns the container name for jobID.
func (d *Deriver) Derive(jobID string) (string, error) {
	res, err := d.Resolve(jobID)
	if err != nil {
		return "", err
	}
	return res.ContainerName, nil
}

// Resolve returns the container name for jobID together with the path that
// produced it.
func (d *Deriver) Resolve(jobID string) (Result, error) {
	if jobID == "" {
		return Result{}, ErrEmptyIdentifier
	}

	// Job ids cannot differ only by case, so the lowercased id is still unique.
	normalized := strings.ToLower(jobID)

	if usableAsIs(normalized) {
		return Result{JobID: jobID, ContainerName: JobPrefix + normalized}, nil
	}
	return Result{
		JobID:         jobID,
		ContainerName: JobPrefix + d.munge(normalized) + "-" + d.digest(normalized),
		Hashed:        true,
	}, nil
}

func usableAsIs(normalized string) bool {
	if len(normalized) > maxUsableJobIDLength {
		return false
	}
	if !permittedNameRegex.MatchString(normalized) {
		return false
	}
	return !strings.Contains(normalized, "--") && !strings.HasSuffix(normalized, "-")
}

// munge shortens normalized into a readable body for a hashed name.
func (d *Deriver) munge(normalized string) string {
	body := invalidBodyCharsRegex.ReplaceAllString(normalized, "")
	body = separatorRunRegex.ReplaceAllString(body, "-")
	body = strings.Trim(body, "-")

	if body == "" {
		return emptyBodyFallback
	}
	if len(body) > d.bodyBudget {
		// truncation may expose a trailing dash
		body = strings.TrimSuffix(body[:d.bodyBudget], "-")
	}
	return body
}

func (d *Deriver) digest(normalized string) string {
	h := d.newHash()
	_, _ = h.Write([]byte(normalized))
	return hex.EncodeToString(h.Sum(nil))
}

var defaultDeriver = mustDeriver(AlgorithmSHA1)

func mustDeriver(alg Algorithm) *Deriver {
	d, err := NewDeriverForAlgorithm(alg)
	if err != nil {
		panic(err)
	}
	return d
}

// ContainerName returns the SHA-1 based container name for jobID. The name is
// "job-" followed by the lowercased id when that is already a valid container
// name. Otherwise it is "job-", a shortened form of the id, a dash and the
// hex SHA-1 of the lowercased id.
func ContainerName(jobID string) (string, error) {
	return defaultDeriver.Derive(jobID)
}
