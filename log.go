package chuffman

import (
	"io"
	"log/slog"
)

// noopLogger discards everything; it's the default for Reader and Iterator
// so SetLogger is opt-in rather than required.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
