// Package checkpoint saves and loads the trained parameter values of an
// MLP in the .mgrd format.
//
// Only the flat list of parameter values is stored, in the order reported
// by Parameters(). The computation graph is never persisted: a loaded
// checkpoint rebuilds the network from its recorded architecture and then
// overwrites the parameter values.
//
//	Format Structure:
//	  [0x00-0x03: Magic "MGRD"]
//	  [0x04-0x07: Version (uint32 LE)]
//	  [0x08-0x0B: Flags (uint32 LE)]
//	  [0x0C-0x0F: Reserved]
//	  [0x10-0x17: Header Size (uint64 LE)]
//	  [0x18-0x1F: Data Size (uint64 LE)]
//	  [0x20-0x3F: SHA-256 of the data section]
//	  [Header: JSON metadata]
//	  [Padding to a 64-byte boundary]
//	  [Data: float64 LE parameter values]
//
// Example usage:
//
//	// Save a model
//	if err := checkpoint.SaveModel("moons.mgrd", model, checkpoint.Header{}); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Load a model
//	model, header, err := checkpoint.LoadModel("moons.mgrd")
//	if err != nil {
//	    log.Fatal(err)
//	}
package checkpoint
