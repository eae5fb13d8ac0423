package winnow

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/twmb/murmur3"
)

// HashedGram is a gram reduced to its hash, keeping the gram's offset.
type HashedGram struct {
	Offset int
	Hash   uint64
}

// HashFunc maps gram text to a fixed-width hash. Implementations must be pure
// so a single value can be shared by concurrent fingerprinting calls.
type HashFunc func(text string) uint64

// Supported hash algorithm names.
const (
	HashMurmur3 = "murmur3"
	HashXXHash  = "xxhash"
)

// Murmur3 is MurmurHash3 x86 32-bit with seed 0, widened to uint64.
func Murmur3(text string) uint64 {
	return uint64(murmur3.Sum32([]byte(text)))
}

// XXHash is the 64-bit XXH64 digest of text.
func XXHash(text string) uint64 {
	return xxhash.Sum64String(text)
}

var hashFuncs = map[string]HashFunc{
	HashMurmur3: Murmur3,
	HashXXHash:  XXHash,
}

// HashNames lists the algorithm names accepted by LookupHash.
func HashNames() []string {
	names := make([]string, 0, len(hashFuncs))
	for name := range hashFuncs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// LookupHash resolves an algorithm name. The empty name selects murmur3.
func LookupHash(name string) (HashFunc, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = HashMurmur3
	}
	fn, ok := hashFuncs[key]
	if !ok {
		return nil, &ConfigError{
			Param:  "hash",
			Value:  name,
			Reason: fmt.Sprintf("must be one of %s", strings.Join(HashNames(), ", ")),
		}
	}
	return fn, nil
}

// Hash maps every gram in seq to its hash.
func Hash(seq iter.Seq[Gram], fn HashFunc) iter.Seq[HashedGram] {
	if fn == nil {
		fn = Murmur3
	}
	return func(yield func(HashedGram) bool) {
		for gram := range seq {
			if !yield(HashedGram{Offset: gram.Offset, Hash: fn(gram.Text)}) {
				return
			}
		}
	}
}
