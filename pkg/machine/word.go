// Package machine implements the Universal Machine: a segmented-memory,
// register-based abstract machine executing fixed-width 32-bit
// instructions.
//
// The package is organised the way pkg/vm was in this module's ancestor:
// a single state type (Machine), free-standing decode helpers, and a
// dispatch loop, but generalised to the segmented memory model and the
// fourteen-operation instruction set this machine actually implements.
package machine

// Word is a 32-bit unsigned machine word. All arithmetic on words is
// modulo 2^32 and relies on Go's native unsigned wraparound.
type Word = uint32

// NumRegisters is the number of general-purpose registers.
const NumRegisters = 8
