package application

import (
	"context"
	"fmt"
	"log/slog"

	"polyglot/internal/ports/output"
)

// BundleImporter copies every bundle of one repository into another.
type BundleImporter struct {
	from   output.MessageBundleRepository
	to     output.MessageBundleRepository
	logger *slog.Logger
}

func NewBundleImporter(from, to output.MessageBundleRepository, logger *slog.Logger) *BundleImporter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &BundleImporter{from: from, to: to, logger: logger}
}

// Import saves each source bundle into the target, replacing bundles of the
// same id, and returns how many were written. It stops at the first failure.
func (i *BundleImporter) Import(ctx context.Context) (int, error) {
	bundles, err := i.from.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list source bundles: %w", err)
	}
	for n, b := range bundles {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if err := i.to.Save(ctx, b); err != nil {
			return n, fmt.Errorf("import bundle %s: %w", b.ID, err)
		}
		i.logger.InfoContext(ctx, "bundle imported", "locale", b.Locale.String(), "messages", b.Len())
	}
	return len(bundles), nil
}
