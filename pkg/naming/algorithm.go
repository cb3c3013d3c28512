package naming

import (
	"crypto/sha1" //nolint:gosec // SHA-1 is part of the container naming scheme, not used for security
	"errors"
	"fmt"
	"hash"
	"slices"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/exp/maps"
)

// Algorithm names the digest used for hashed container names.
type Algorithm string

const (
	AlgorithmSHA1       Algorithm = "sha1"
	AlgorithmBLAKE2b160 Algorithm = "blake2b-160"
	AlgorithmBLAKE2b128 Algorithm = "blake2b-128"

	// DefaultAlgorithm keeps names compatible with containers created by
	// existing Batch tooling.
	DefaultAlgorithm = AlgorithmSHA1
)

// ErrUnknownAlgorithm is returned for digest names that are not supported.
var ErrUnknownAlgorithm = errors.New("unknown digest algorithm")

var algorithms = map[Algorithm]func() hash.Hash{
	AlgorithmSHA1:       sha1.New,
	AlgorithmBLAKE2b160: blake2bOfSize(20),
	AlgorithmBLAKE2b128: blake2bOfSize(16),
}

func blake2bOfSize(size int) func() hash.Hash {
	return func() hash.Hash {
		h, err := blake2b.New(size, nil)
		if err != nil {
			// only reachable with a size outside 1..64
			panic(err)
		}
		return h
	}
}

// Algorithms returns the supported digest names in sorted order.
func Algorithms() []Algorithm {
	keys := maps.Keys(algorithms)
	slices.Sort(keys)
	return keys
}

// ParseAlgorithm resolves a case-insensitive digest name. An empty name
// selects DefaultAlgorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultAlgorithm, nil
	}
	alg := Algorithm(name)
	if _, ok := algorithms[alg]; !ok {
		return "", fmt.Errorf("%w %q (supported: %v)", ErrUnknownAlgorithm, name, Algorithms())
	}
	return alg, nil
}

// NewDeriverForAlgorithm returns a Deriver for a named digest.
func NewDeriverForAlgorithm(alg Algorithm) (*Deriver, error) {
	newHash, ok := algorithms[alg]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownAlgorithm, alg)
	}
	return NewDeriver(newHash)
}
