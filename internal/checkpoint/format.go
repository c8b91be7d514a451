package checkpoint

import (
	"time"

	"github.com/google/uuid"
)

// Format constants.
const (
	MagicBytes      = "MGRD"
	FormatVersion   = 1
	HeaderAlignment = 64   // Align parameter data to 64 bytes
	FixedHeaderSize = 64   // Fixed header size (0x40 bytes)
	ChecksumSize    = 32   // SHA-256 checksum size (32 bytes)
	ChecksumOffset  = 0x20 // Checksum offset in the fixed header
	ValueSize       = 8    // Bytes per parameter (float64)
)

// Limits enforced by the reader.
const (
	MaxHeaderSize = 1 << 20 // 1MB
	MaxDataSize   = 1 << 30 // 1GB, about 134M parameters
)

// Flags for the .mgrd format.
const (
	FlagHasMetadata uint32 = 1 << 0 // bit 0: custom metadata included
	FlagHasTraining uint32 = 1 << 1 // bit 1: training state included
)

// Header represents the JSON header in a .mgrd file.
type Header struct {
	FormatVersion int               `json:"format_version"`     // Version of the .mgrd format
	Version       string            `json:"version"`            // Version of the writer
	RunID         uuid.UUID         `json:"run_id"`             // Training run that produced the values
	CreatedAt     time.Time         `json:"created_at"`         // When the file was created
	Architecture  Architecture      `json:"architecture"`       // Network shape
	ParamCount    int               `json:"param_count"`        // Number of float64 values in the data section
	Metadata      map[string]string `json:"metadata"`           // Custom metadata
	Training      *TrainingMeta     `json:"training,omitempty"` // Training state (optional)
}

// Architecture describes the MLP the parameters belong to.
type Architecture struct {
	Inputs  int   `json:"inputs"`
	Outputs []int `json:"outputs"` // Layer sizes, last is the output width
}

// TrainingMeta records where training stood when the file was written.
type TrainingMeta struct {
	Step      int     `json:"step"`
	Loss      float64 `json:"loss"`
	Accuracy  float64 `json:"accuracy"`
	Optimizer string  `json:"optimizer"`
	LR        float64 `json:"lr"`
}

func padding(pos int64) int64 {
	return (HeaderAlignment - (pos % HeaderAlignment)) % HeaderAlignment
}
