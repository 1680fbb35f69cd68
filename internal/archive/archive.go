// Package archive implements the `.ach` binary format (spec section 6): a
// fixed 64-byte header, a MessagePack-encoded body carrying an
// environment's bindings plus metadata, and a trailing SHA-256 checksum
// over the (possibly zstd-compressed) body. It is the persistence half of
// the `achronyme env` CLI subcommand.
//
// Grounded on the teacher's general approach to binary serialization
// (internal/vm bytecode framing in CWBudde-go-dws uses a small fixed
// header followed by a length-prefixed payload); the specific header
// layout, MessagePack body, and checksum trailer are spec.md §6's own
// byte-for-byte contract.
package archive

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
	"runtime"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	magic        = "ACH\x00"
	versionMajor = 1
	versionMinor = 0
	headerSize   = 64

	// CompressionNone and CompressionZstd are the two values spec.md §6
	// allows in the header's compression byte.
	CompressionNone = 0
	CompressionZstd = 1
)

// Metadata describes the archive as a whole (spec.md §6's metadata
// record), separate from the per-binding SerializedValue payloads.
type Metadata struct {
	CreatedBy    string            `msgpack:"created_by"`
	CreatedAt    int64             `msgpack:"created_at"`
	Platform     string            `msgpack:"platform"`
	NumBindings  int               `msgpack:"num_bindings"`
	Description  string            `msgpack:"description,omitempty"`
	Tags         []string          `msgpack:"tags,omitempty"`
	BindingNames []string          `msgpack:"binding_names"`
	Custom       map[string]string `msgpack:"custom,omitempty"`
}

// Binding pairs a serialized value with the mutability its original
// Environment slot was declared with (spec 3.3's `mut` vs `let`), so
// restoring it recreates the same binding kind rather than always `let`.
type Binding struct {
	Value SerializedValue `msgpack:"value"`
	Mut   bool            `msgpack:"mut"`
}

// body is the exact shape MessagePack-encodes to and from (spec.md §6:
// "{metadata: {...}, bindings: {name -> SerializedValue}}").
type body struct {
	Metadata Metadata           `msgpack:"metadata"`
	Bindings map[string]Binding `msgpack:"bindings"`
}

// Archive is a fully decoded `.ach` file: header fields plus the decoded
// body, ready for Restore.
type Archive struct {
	VersionMajor uint16
	VersionMinor uint16
	CreatedAt    int64
	Metadata     Metadata
	Bindings     map[string]Binding
}

// WriteOptions controls how Write encodes an archive.
type WriteOptions struct {
	// Compress, if true, zstd-compresses the MessagePack body (header
	// flag `compression = 1`).
	Compress bool
	// Description and Tags populate the metadata record's optional
	// fields; Custom carries caller-defined key/value annotations.
	Description string
	Tags        []string
	Custom      map[string]string
	// CreatorVersion is recorded in the 16-byte header field, truncated
	// to 15 bytes plus the mandatory trailing NUL.
	CreatorVersion string
	// Now overrides the embedded timestamp; zero means "unset", and the
	// caller is expected to stamp it (archive never calls time.Now()
	// itself so callers can keep output reproducible in tests).
	Now int64
}

// Write encodes bindings plus metadata into the `.ach` binary format and
// writes it to w: a 64-byte header, the (optionally zstd-compressed)
// MessagePack body, and a 32-byte SHA-256 trailer over the body bytes as
// written (spec.md §6).
func Write(w io.Writer, bindings map[string]Binding, opts WriteOptions) error {
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sortStrings(names)

	b := body{
		Metadata: Metadata{
			CreatedBy:    "achronyme",
			CreatedAt:    opts.Now,
			Platform:     runtime.GOOS + "/" + runtime.GOARCH,
			NumBindings:  len(bindings),
			Description:  opts.Description,
			Tags:         opts.Tags,
			BindingNames: names,
			Custom:       opts.Custom,
		},
		Bindings: bindings,
	}

	raw, err := msgpack.Marshal(&b)
	if err != nil {
		return fmt.Errorf("archive: encoding body: %w", err)
	}

	compression := uint8(CompressionNone)
	payload := raw
	if opts.Compress {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return fmt.Errorf("archive: creating zstd encoder: %w", err)
		}
		payload = enc.EncodeAll(raw, nil)
		enc.Close()
		compression = CompressionZstd
	}

	header := make([]byte, headerSize)
	copy(header[0:4], magic)
	binary.BigEndian.PutUint16(header[4:6], versionMajor)
	binary.BigEndian.PutUint16(header[6:8], versionMinor)
	binary.BigEndian.PutUint32(header[8:12], 0) // flags: reserved, always 0 for now
	binary.BigEndian.PutUint64(header[12:20], uint64(opts.Now))
	copy(header[20:36], []byte(truncateCreatorVersion(opts.CreatorVersion)))
	header[36] = compression
	// header[37:64] stays zero: the 27 reserved bytes.

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("archive: writing header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("archive: writing body: %w", err)
	}

	sum := sha256.Sum256(payload)
	if _, err := w.Write(sum[:]); err != nil {
		return fmt.Errorf("archive: writing checksum trailer: %w", err)
	}
	return nil
}

func truncateCreatorVersion(s string) string {
	const maxLen = 15 // leaves room for the mandatory trailing NUL
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	return s
}

// Read decodes a `.ach` file from r: validates the magic and version,
// verifies the SHA-256 trailer (unless skipChecksum), decompresses
// the body if the header's compression byte demands it, and unmarshals
// the MessagePack record.
func Read(r io.Reader, skipChecksum bool) (*Archive, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("archive: reading input: %w", err)
	}
	if len(data) < headerSize+sha256.Size {
		return nil, fmt.Errorf("archive: truncated file (%d bytes, need at least %d)", len(data), headerSize+sha256.Size)
	}

	header := data[:headerSize]
	if string(header[0:4]) != magic {
		return nil, fmt.Errorf("archive: bad magic %q, expected %q", header[0:4], magic)
	}
	major := binary.BigEndian.Uint16(header[4:6])
	minor := binary.BigEndian.Uint16(header[6:8])
	if major != versionMajor {
		return nil, fmt.Errorf("archive: unsupported major version %d (expected %d)", major, versionMajor)
	}
	timestamp := int64(binary.BigEndian.Uint64(header[12:20]))
	compression := header[36]

	payload := data[headerSize : len(data)-sha256.Size]
	trailer := data[len(data)-sha256.Size:]

	if !skipChecksum {
		sum := sha256.Sum256(payload)
		if !bytes.Equal(sum[:], trailer) {
			return nil, fmt.Errorf("archive: checksum mismatch, file is corrupt or was truncated")
		}
	}

	switch compression {
	case CompressionNone:
	case CompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("archive: creating zstd decoder: %w", err)
		}
		defer dec.Close()
		payload, err = dec.DecodeAll(payload, nil)
		if err != nil {
			return nil, fmt.Errorf("archive: decompressing body: %w", err)
		}
	default:
		return nil, fmt.Errorf("archive: unknown compression flag %d", compression)
	}

	var b body
	if err := msgpack.Unmarshal(payload, &b); err != nil {
		return nil, fmt.Errorf("archive: decoding body: %w", err)
	}

	return &Archive{
		VersionMajor: major,
		VersionMinor: minor,
		CreatedAt:    timestamp,
		Metadata:     b.Metadata,
		Bindings:     b.Bindings,
	}, nil
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
