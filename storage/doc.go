// Package storage defines repository interfaces and serialization for the
// judgment corpus.
//
// Concrete backends live in subpackages (see storage/badger). Records are
// serialized with the MUS binary format; the serializers themselves are
// defined next to the record types in package core.
package storage
