// Package cli provides the cobra commands for the smartqa binary.
package cli

import (
	gocontext "context"

	"github.com/example/smartqa/internal/ctxutil"
	"github.com/example/smartqa/internal/wire"
)

// NewContext returns a background context tagged with the CLI actor so audit
// entries record where a change came from.
func NewContext() gocontext.Context {
	return ctxutil.WithActorID(gocontext.Background(), ctxutil.ActorCLI)
}

// Bootstrap points the wire container at the --config file. Called from the
// root command's PersistentPreRun.
func Bootstrap(configPath string) {
	wire.SetConfigPath(configPath)
}
