// Package objects holds the geometry object set used by packctl and by the
// runtime's end-to-end tests. The packers are laid out the way the schema
// generator emits them: one record, union or sequence declaration per type,
// each built only from packer primitives and earlier declarations.
package objects
