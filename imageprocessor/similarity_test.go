package imageprocessor

import (
	"testing"

	"github.com/corona10/goimagehash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fingerprintWithBits builds a 256-bit difference-hash fingerprint
// whose first word carries the given bit pattern. Handy for exact
// Hamming distances without decoding images.
func fingerprintWithBits(word uint64) *goimagehash.ExtImageHash {
	return goimagehash.NewExtImageHash([]uint64{word, 0, 0, 0}, goimagehash.DHash, 256)
}

func TestSimilarityReflexive(t *testing.T) {
	fp := fingerprintWithBits(0xdeadbeefcafe)

	sim, err := Similarity(fp, fp)
	require.NoError(t, err)
	assert.Equal(t, 1.0, sim)
}

func TestSimilaritySymmetric(t *testing.T) {
	a := fingerprintWithBits(0)
	b := fingerprintWithBits(1<<30 - 1) // 30 differing bits

	ab, err := Similarity(a, b)
	require.NoError(t, err)
	ba, err := Similarity(b, a)
	require.NoError(t, err)

	assert.Equal(t, ab, ba)
}

func TestSimilarityNormalizesByBitLength(t *testing.T) {
	a := fingerprintWithBits(0)
	b := fingerprintWithBits(1<<30 - 1)

	sim, err := Similarity(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 1.0-30.0/256.0, sim, 1e-12)

	// The same 30-bit distance on a 64-bit fingerprint must score
	// differently: the divisor is the fingerprint length, not a
	// constant.
	a64 := goimagehash.NewExtImageHash([]uint64{0}, goimagehash.DHash, 64)
	b64 := goimagehash.NewExtImageHash([]uint64{1<<30 - 1}, goimagehash.DHash, 64)
	sim64, err := Similarity(a64, b64)
	require.NoError(t, err)
	assert.InDelta(t, 1.0-30.0/64.0, sim64, 1e-12)
}

func TestSimilarityMismatchedLengths(t *testing.T) {
	a := fingerprintWithBits(0)
	b := goimagehash.NewExtImageHash([]uint64{0}, goimagehash.DHash, 64)

	_, err := Similarity(a, b)
	assert.Error(t, err)
}

func TestSimilarityNilFingerprint(t *testing.T) {
	fp := fingerprintWithBits(0)

	_, err := Similarity(nil, fp)
	assert.Error(t, err)
	_, err = Similarity(fp, nil)
	assert.Error(t, err)
}
