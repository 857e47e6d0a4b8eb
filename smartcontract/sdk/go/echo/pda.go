package echo

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gagliardetto/solana-go"
)

var (
	// ErrDerivationExhausted is returned when no bump seed in [0, 255] yields an off-curve address.
	ErrDerivationExhausted = errors.New("unable to find a valid program address")

	ErrMaxSeedsExceeded      = errors.New("max seeds exceeded")
	ErrMaxSeedLengthExceeded = errors.New("max seed length exceeded")
)

// DeriveAddress finds the program derived address for the given seeds. Bump candidates
// are tried from 255 down to 0 and the first one whose hash falls off the ed25519 curve
// is returned together with the address.
func DeriveAddress(programID solana.PublicKey, seeds [][]byte) (solana.PublicKey, uint8, error) {
	if len(seeds)+1 > MaxSeeds {
		return solana.PublicKey{}, 0, fmt.Errorf("%w: %d seeds plus bump, max %d", ErrMaxSeedsExceeded, len(seeds), MaxSeeds)
	}
	for i, seed := range seeds {
		if len(seed) > MaxSeedLength {
			return solana.PublicKey{}, 0, fmt.Errorf("%w: seed %d is %d bytes", ErrMaxSeedLengthExceeded, i, len(seed))
		}
	}

	candidate := make([][]byte, len(seeds)+1)
	copy(candidate, seeds)
	for bump := math.MaxUint8; bump >= 0; bump-- {
		candidate[len(seeds)] = []byte{uint8(bump)}

		// Seeds were checked above, so an error here means the hash landed on the curve.
		address, err := solana.CreateProgramAddress(candidate, programID)
		if err != nil {
			continue
		}
		return address, uint8(bump), nil
	}

	return solana.PublicKey{}, 0, ErrDerivationExhausted
}

// AuthorizedBufferSeeds returns the ordered seeds of an authority-gated buffer:
// ["authority", authority, bufferSeed as u64 LE].
func AuthorizedBufferSeeds(authority solana.PublicKey, bufferSeed uint64) [][]byte {
	bufferSeedBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(bufferSeedBytes, bufferSeed)

	return [][]byte{
		[]byte(AuthorityBufferSeedPrefix),
		authority[:],
		bufferSeedBytes,
	}
}

// DeriveAuthorizedBufferAddress derives the PDA of the buffer owned by authority for bufferSeed.
func DeriveAuthorizedBufferAddress(programID solana.PublicKey, authority solana.PublicKey, bufferSeed uint64) (solana.PublicKey, uint8, error) {
	return DeriveAddress(programID, AuthorizedBufferSeeds(authority, bufferSeed))
}
