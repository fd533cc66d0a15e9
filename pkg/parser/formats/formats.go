// Package formats pulls in all shipped race format variants so their
// registrations run. Import it for side effects wherever the registry is
// used.
package formats

import (
	// registered format variants
	_ "github.com/racelap/timing-ingest-go/pkg/parser/alkamel"
	_ "github.com/racelap/timing-ingest-go/pkg/parser/imsa"
	_ "github.com/racelap/timing-ingest-go/pkg/parser/speedhive"
)
