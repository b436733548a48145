// Package all wires every built-in storage backend into the storage factory.
//
// It exists purely for side effects: blank-importing it runs the init
// functions of each concrete backend, which register their factories with
// the storage package. Binaries that need only a subset of backends can
// import the individual backend packages instead.
package all

import (
	_ "datarefinery/internal/storage/postgres"
	_ "datarefinery/internal/storage/sqlite"
)
