package random

import (
	"crypto/rand"
	"math/big"
)

// Random abstracts randomness for testability
type Random interface {
	// Intn returns a uniform random int in [0, n)
	Intn(n int) int
	// Shuffle permutes n elements in place via the swap callback
	Shuffle(n int, swap func(i, j int))
}

// CryptoRandom uses crypto/rand as the entropy source
type CryptoRandom struct{}

func NewCryptoRandom() *CryptoRandom {
	return &CryptoRandom{}
}

func (r *CryptoRandom) Intn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand should never fail on supported platforms
		panic(err)
	}
	return int(v.Int64())
}

func (r *CryptoRandom) Shuffle(n int, swap func(i, j int)) {
	// Fisher-Yates
	for i := n - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		swap(i, j)
	}
}
