package models

import (
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// Digest identifies file content by size and xxhash.
type Digest struct {
	Size int64
	Sum  uint64
}

func (d Digest) String() string {
	return fmt.Sprintf("%016x", d.Sum)
}

func DigestBytes(b []byte) Digest {
	return Digest{Size: int64(len(b)), Sum: xxhash.Sum64(b)}
}

func DigestReader(r io.Reader) (Digest, error) {
	h := xxhash.New()
	n, err := io.Copy(h, r)
	if err != nil {
		return Digest{}, err
	}
	return Digest{Size: n, Sum: h.Sum64()}, nil
}

func DigestFile(filePath string) (Digest, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return Digest{}, err
	}
	defer file.Close()

	d, err := DigestReader(file)
	if err != nil {
		return Digest{}, fmt.Errorf("failed to hash %s: %w", filePath, err)
	}
	return d, nil
}
