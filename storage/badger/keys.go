package badger

import (
	"fmt"

	"github.com/caselens/caselens/core"
)

// Key prefixes for different data types. The name index shares the record
// prefix, so corpus scans must skip index keys explicitly.
const (
	casePrefix     = "caserec"
	caseNamePrefix = "caserecn"
)

// makeCaseKey generates a key for a case record by ID.
func makeCaseKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", casePrefix, id))
}

// makeCaseNameKey generates a key for the case name index.
// Format: prefix:name
func makeCaseNameKey(name string) []byte {
	prefix := caseNamePrefix + ":"
	buf := make([]byte, len(prefix)+len(name))
	offset := copy(buf, []byte(prefix))
	copy(buf[offset:], []byte(name))
	return buf
}
