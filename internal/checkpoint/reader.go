package checkpoint

import (
	"encoding/binary"
	"encoding/json"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
)

// Read decodes a checkpoint from r, verifying the checksum of the data
// section before returning the parameter values.
func Read(r io.Reader) (Header, []float64, error) {
	fixedHeader := make([]byte, FixedHeaderSize)
	if _, err := io.ReadFull(r, fixedHeader); err != nil {
		return Header{}, nil, errors.Wrap(err, "failed to read fixed header")
	}

	if magic := string(fixedHeader[0:4]); magic != MagicBytes {
		return Header{}, nil, errors.WithMessagef(ErrInvalidMagic, "got %q, expected %q", magic, MagicBytes)
	}

	// 0x04-0x07: version
	if version := binary.LittleEndian.Uint32(fixedHeader[4:8]); version != FormatVersion {
		return Header{}, nil, errors.WithMessagef(ErrUnsupportedVersion, "got %d, expected %d", version, FormatVersion)
	}

	// 0x10-0x17: header size
	headerSize := binary.LittleEndian.Uint64(fixedHeader[16:24])
	if headerSize > MaxHeaderSize {
		return Header{}, nil, errors.WithMessagef(ErrHeaderTooLarge, "%d bytes", headerSize)
	}

	// 0x18-0x1F: data size
	dataSize := binary.LittleEndian.Uint64(fixedHeader[24:32])
	if dataSize > MaxDataSize {
		return Header{}, nil, errors.WithMessagef(ErrDataTooLarge, "%d bytes", dataSize)
	}
	if dataSize%ValueSize != 0 {
		return Header{}, nil, errors.WithMessagef(ErrInvalidDataSize, "%d bytes", dataSize)
	}

	// 0x20-0x3F: SHA-256 checksum
	var stored [ChecksumSize]byte
	copy(stored[:], fixedHeader[ChecksumOffset:ChecksumOffset+ChecksumSize])

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return Header{}, nil, errors.Wrap(err, "failed to read header JSON")
	}
	var header Header
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return Header{}, nil, errors.Wrap(err, "failed to parse header JSON")
	}

	//nolint:gosec // G115: headerSize is bounded by MaxHeaderSize
	if pad := padding(int64(FixedHeaderSize) + int64(headerSize)); pad > 0 {
		if _, err := io.CopyN(io.Discard, r, pad); err != nil {
			return Header{}, nil, errors.Wrap(err, "failed to read padding")
		}
	}

	data := make([]byte, dataSize)
	if _, err := io.ReadFull(r, data); err != nil {
		return Header{}, nil, errors.Wrap(err, "failed to read parameter data")
	}
	if err := ValidateChecksum(ComputeChecksum(data), stored); err != nil {
		return Header{}, nil, err
	}

	params := decodeValues(data)
	if header.ParamCount != len(params) {
		return Header{}, nil, errors.WithMessagef(ErrParamCountMismatch,
			"header says %d, data holds %d", header.ParamCount, len(params))
	}
	return header, params, nil
}

// Load reads the checkpoint file at path.
func Load(path string) (Header, []float64, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	file, err := os.Open(path)
	if err != nil {
		return Header{}, nil, errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	header, params, err := Read(file)
	if err != nil {
		return Header{}, nil, errors.WithMessage(err, path)
	}
	return header, params, nil
}

func decodeValues(data []byte) []float64 {
	params := make([]float64, len(data)/ValueSize)
	for i := range params {
		params[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[i*ValueSize:]))
	}
	return params
}
