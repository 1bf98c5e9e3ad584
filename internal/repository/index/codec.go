package index

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"

	"github.com/kailas-cloud/museum-search/internal/domain"
)

var magic = [4]byte{'M', 'S', 'F', 'L'}

// maxDim bounds the header so a corrupt blob cannot trigger huge allocations.
const maxDim = 1 << 16

// Encode writes the index as: magic, uint32 dim, uint64 rows, then row-major
// little-endian float32 components.
func Encode(w io.Writer, f *Flat) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(magic[:]); err != nil {
		return fmt.Errorf("write magic: %w", err)
	}
	var hdr [12]byte
	binary.LittleEndian.PutUint32(hdr[0:4], uint32(f.dim))        //nolint:gosec // dim is positive
	binary.LittleEndian.PutUint64(hdr[4:12], uint64(len(f.rows))) //nolint:gosec // len is non-negative
	if _, err := bw.Write(hdr[:]); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	buf := make([]byte, 4*f.dim)
	for _, r := range f.rows {
		for i, x := range r {
			binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(x))
		}
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// Decode reads an index written by Encode.
func Decode(r io.Reader) (*Flat, error) {
	br := bufio.NewReader(r)
	var got [4]byte
	if _, err := io.ReadFull(br, got[:]); err != nil {
		return nil, fmt.Errorf("read magic: %w", err)
	}
	if got != magic {
		return nil, fmt.Errorf("bad magic %q", got[:])
	}
	var hdr [12]byte
	if _, err := io.ReadFull(br, hdr[:]); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	dim := binary.LittleEndian.Uint32(hdr[0:4])
	count := binary.LittleEndian.Uint64(hdr[4:12])
	if dim == 0 || dim > maxDim {
		return nil, fmt.Errorf("invalid dimension %d", dim)
	}

	buf := make([]byte, 4*int(dim))
	var rows [][]float32
	for i := uint64(0); i < count; i++ {
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, fmt.Errorf("read row %d of %d: %w", i, count, err)
		}
		row := make([]float32, dim)
		for j := range row {
			row[j] = math.Float32frombits(binary.LittleEndian.Uint32(buf[j*4:]))
		}
		rows = append(rows, row)
	}
	if _, err := br.ReadByte(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("trailing data after %d rows", count)
	}
	return New(int(dim), rows)
}

// WriteFile persists f at path atomically: a temp file in the same directory is
// written, synced and renamed over path.
func WriteFile(path string, f *Flat) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp index: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = Encode(tmp, f); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp index: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp index: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename index: %w", err)
	}
	return nil
}

// ReadFile loads an index blob. A missing file is domain.ErrResourceMissing, a
// corrupt one domain.ErrMalformedInput.
func ReadFile(path string) (*Flat, error) {
	fh, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NewMissingResource(domain.ResourceIndex, path, err)
		}
		return nil, &domain.ResourceError{Kind: domain.ResourceIndex, Path: path, Err: err}
	}
	defer func() { _ = fh.Close() }()

	f, err := Decode(fh)
	if err != nil {
		if errors.Is(err, domain.ErrMalformedInput) {
			return nil, &domain.ResourceError{Kind: domain.ResourceIndex, Path: path, Err: err}
		}
		return nil, domain.NewMalformedResource(domain.ResourceIndex, path, err)
	}
	return f, nil
}
