// Package packer is the runtime for fixed-layout big-endian wire values.
//
// Ownership boundary:
// - primitive, arbitrary-width integer and string codecs
// - record, tagged union, sequence, optional and enum composition
// - exact-count reads off a blocking stream
//
// Every codec satisfies Packer. Pack and Unpack are pure; Recv blocks on the
// reader it is given and never applies its own timeout. Codecs hold no
// mutable state, so one value may be shared by any number of goroutines as
// long as each decode owns its buffer or reader.
package packer
