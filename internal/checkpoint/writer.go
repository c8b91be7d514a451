package checkpoint

import (
	"encoding/binary"
	"encoding/json"
	"io"
	"math"
	"os"
	"time"

	"github.com/pkg/errors"
)

const writerVersion = "v0.1.0"

// Write encodes params and header to w.
//
// FormatVersion, Version and ParamCount are filled in by Write. CreatedAt
// is set to the current time when zero.
func Write(w io.Writer, header Header, params []float64) error {
	header.FormatVersion = FormatVersion
	header.Version = writerVersion
	header.ParamCount = len(params)
	if header.CreatedAt.IsZero() {
		header.CreatedAt = time.Now().UTC()
	}
	if header.Metadata == nil {
		header.Metadata = make(map[string]string)
	}

	data := encodeValues(params)
	checksum := ComputeChecksum(data)

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return errors.Wrap(err, "failed to marshal header")
	}
	if len(headerJSON) > MaxHeaderSize {
		return errors.WithMessagef(ErrHeaderTooLarge, "%d bytes", len(headerJSON))
	}

	fixedHeader := make([]byte, FixedHeaderSize)

	// 0x00-0x03: Magic bytes "MGRD"
	copy(fixedHeader[0:4], MagicBytes)

	// 0x04-0x07: Version
	binary.LittleEndian.PutUint32(fixedHeader[4:8], uint32(FormatVersion))

	// 0x08-0x0B: Flags
	flags := uint32(0)
	if len(header.Metadata) > 0 {
		flags |= FlagHasMetadata
	}
	if header.Training != nil {
		flags |= FlagHasTraining
	}
	binary.LittleEndian.PutUint32(fixedHeader[8:12], flags)

	// 0x10-0x17: Header size
	binary.LittleEndian.PutUint64(fixedHeader[16:24], uint64(len(headerJSON)))

	// 0x18-0x1F: Data size
	binary.LittleEndian.PutUint64(fixedHeader[24:32], uint64(len(data)))

	// 0x20-0x3F: SHA-256 checksum
	copy(fixedHeader[ChecksumOffset:ChecksumOffset+ChecksumSize], checksum[:])

	if _, err := w.Write(fixedHeader); err != nil {
		return errors.Wrap(err, "failed to write fixed header")
	}
	if _, err := w.Write(headerJSON); err != nil {
		return errors.Wrap(err, "failed to write header JSON")
	}
	if pad := padding(int64(FixedHeaderSize + len(headerJSON))); pad > 0 {
		if _, err := w.Write(make([]byte, pad)); err != nil {
			return errors.Wrap(err, "failed to write padding")
		}
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "failed to write parameter data")
	}
	return nil
}

// Save writes a checkpoint file at path, replacing any existing file.
func Save(path string, header Header, params []float64) error {
	//nolint:gosec // G304: File path comes from user input, which is expected for model saving
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	if err := Write(file, header, params); err != nil {
		_ = file.Close()
		return err
	}
	return errors.Wrap(file.Close(), "failed to close file")
}

func encodeValues(params []float64) []byte {
	data := make([]byte, len(params)*ValueSize)
	for i, p := range params {
		binary.LittleEndian.PutUint64(data[i*ValueSize:], math.Float64bits(p))
	}
	return data
}
