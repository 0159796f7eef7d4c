package address

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
)

// Namespace tags for the three record registries.
const (
	NamespacePoll      = "poll"
	NamespaceCandidate = "candidate"
	NamespaceVote      = "vote"
)

// Seed limits mirror the hosted runtime: the namespace counts as a seed.
const (
	MaxSeedLength = 32
	MaxSeeds      = 16
)

const MaxIdentityLength = 32

var (
	ErrEmptyNamespace  = errors.New("derivation namespace is empty")
	ErrSeedTooLong     = errors.New("derivation seed too long")
	ErrTooManySeeds    = errors.New("too many derivation seeds")
	ErrInvalidIdentity = errors.New("invalid signer identity")
)

// Address is a deterministic storage key. Records are only ever written at
// addresses produced by Derive.
type Address string

// Identity is an authenticated actor reference, usable both as a record
// field and as a derivation seed.
type Identity string

// Derive computes the storage address for a namespace and seed list. It is
// pure and deterministic: the same inputs always produce the same address,
// and distinct inputs never collide. The digest covers a length-prefixed
// encoding of every part so that seed boundaries cannot be shifted.
func Derive(namespace string, seeds ...[]byte) (Address, error) {
	if namespace == "" {
		return "", ErrEmptyNamespace
	}
	if len(namespace) > MaxSeedLength {
		return "", fmt.Errorf("%w: namespace is %d bytes, limit %d", ErrSeedTooLong, len(namespace), MaxSeedLength)
	}
	if len(seeds)+1 > MaxSeeds {
		return "", fmt.Errorf("%w: %d seeds, limit %d", ErrTooManySeeds, len(seeds)+1, MaxSeeds)
	}

	h := sha256.New()
	writeSeed(h, []byte(namespace))
	for _, seed := range seeds {
		if len(seed) > MaxSeedLength {
			return "", fmt.Errorf("%w: seed is %d bytes, limit %d", ErrSeedTooLong, len(seed), MaxSeedLength)
		}
		writeSeed(h, seed)
	}

	return Address(hex.EncodeToString(h.Sum(nil))), nil
}

// ForPoll derives the Poll record address for a poll id.
func ForPoll(pollID uint64) (Address, error) {
	return Derive(NamespacePoll, pollIDSeed(pollID))
}

// ForCandidate derives the Candidate record address for a poll and the
// identity that registered the candidacy.
func ForCandidate(pollID uint64, candidate Identity) (Address, error) {
	return Derive(NamespaceCandidate, pollIDSeed(pollID), []byte(candidate))
}

// ForVote derives the VoteRecord address for a poll and voter.
func ForVote(pollID uint64, voter Identity) (Address, error) {
	return Derive(NamespaceVote, pollIDSeed(pollID), []byte(voter))
}

// ParseIdentity validates a raw signer key from the transport boundary.
// Identities are 1..32 bytes of printable ASCII without whitespace, so that
// they always fit inside a single derivation seed.
func ParseIdentity(raw string) (Identity, error) {
	if raw == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidIdentity)
	}
	if len(raw) > MaxIdentityLength {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrInvalidIdentity, len(raw), MaxIdentityLength)
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] <= ' ' || raw[i] > '~' {
			return "", fmt.Errorf("%w: byte %d is not printable ASCII", ErrInvalidIdentity, i)
		}
	}
	return Identity(raw), nil
}

func pollIDSeed(pollID uint64) []byte {
	seed := make([]byte, 8)
	binary.LittleEndian.PutUint64(seed, pollID)
	return seed
}

func writeSeed(h hash.Hash, seed []byte) {
	var prefix [4]byte
	binary.LittleEndian.PutUint32(prefix[:], uint32(len(seed)))
	h.Write(prefix[:])
	h.Write(seed)
}
