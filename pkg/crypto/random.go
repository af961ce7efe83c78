package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// adapted from https://gist.github.com/dopey/c69559607800d2f2f90b1b1ed4e550fb

func init() {
	assertAvailablePRNG()
}

func assertAvailablePRNG() {
	// Assert that a cryptographically secure PRNG is available.
	// Panic otherwise.
	buf := make([]byte, 1)

	_, err := io.ReadFull(rand.Reader, buf)
	if err != nil {
		panic(fmt.Sprintf("crypto/rand is unavailable: Read() failed with %#v", err))
	}
}

const letters = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// GenerateShortID returns an 8 char random string used as the suffix of
// record identifiers.
// It will return an error if the system's secure random number generator
// fails to function correctly, in which case the caller should not continue.
func GenerateShortID() (string, error) {
	return randomString(8)
}

func randomString(n int) (string, error) {
	ret := make([]byte, n)
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		if err != nil {
			return "", err
		}
		ret[i] = letters[num.Int64()]
	}

	return string(ret), nil
}
