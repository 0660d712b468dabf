package fs

import (
	"context"

	"github.com/aretw0/corkboard/pkg/core"
)

// Watch implements core.Watchable. It emits a signal whenever the snapshot
// file changes on disk, including changes made by another process. Signals
// are coalesced; consumers reload the full snapshot, so one signal covers a
// burst of writes. The channel closes when ctx is done.
func (s *Store) Watch(ctx context.Context) (<-chan struct{}, error) {
	signal := make(chan struct{}, 1)
	w := newWatchWorker(s, signal)
	if err := w.Start(ctx); err != nil {
		return nil, err
	}

	go func() {
		<-ctx.Done()
		if err := w.Stop(context.Background()); err != nil {
			s.logger.Debug("watcher stop", "error", err)
		}
		close(signal)
	}()

	return signal, nil
}

var _ core.Watchable = (*Store)(nil)
