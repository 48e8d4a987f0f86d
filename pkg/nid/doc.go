// Package nid decodes the encoded symbol names found in the dynamic metadata of
// orbis module images and resolves them to (module, library, NID) triples.
//
// An encoded reference looks like "<nid>#<library>#<module>" where every field
// is at most 11 characters drawn from a 64 symbol alphabet. The NID field packs
// a full 64-bit hash (10 groups of 6 bits plus a 4-bit tail), the library and
// module fields carry small table identifiers.
//
// Identifier tables and the import index are built once by the loader and are
// read-only afterwards, so a Context may be shared between goroutines.
package nid
