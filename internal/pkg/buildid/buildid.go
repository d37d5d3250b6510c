package buildid

import (
	"strings"

	"github.com/oklog/ulid/v2"
)

// New mints the identifier stamped into a build's meta document. ULIDs sort
// by mint time, so artifact listings line up chronologically for free.
func New() string {
	return strings.ToLower(ulid.Make().String())
}
