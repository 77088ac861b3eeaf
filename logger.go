package msdf

import (
	"log/slog"
	"sync/atomic"
)

// silent is the logger in effect until SetLogger installs another one.
// slog.DiscardHandler reports every level as disabled, so generation code
// never formats attributes it would throw away.
var silent = slog.New(slog.DiscardHandler)

// active is read by every generator worker and may be swapped at any time.
var active atomic.Pointer[slog.Logger]

func init() {
	active.Store(silent)
}

// SetLogger routes diagnostics of field generation, shape loading and
// glyph batches to l. A nil l silences them again, which is the default.
//
// Generation logs at three levels:
//   - [slog.LevelDebug]: one record per generated field (kind, size,
//     contour and edge counts) and per error correction pass (texels
//     corrected).
//   - [slog.LevelInfo]: one record per glyph batch.
//   - [slog.LevelWarn]: glyphs skipped because a font has no outline
//     for them.
//
// SetLogger may be called while fields are being generated.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	active.Store(l)
}

// Logger returns the logger set by SetLogger. The outline and glyph
// packages log through it too.
func Logger() *slog.Logger {
	return active.Load()
}
