package usecase

import (
	"context"

	"github.com/sourcegraph/conc"
)

// ChangeNotifier is told when the matches of a sport changed so readers can
// re-fetch the bracket.
type ChangeNotifier interface {
	MatchesChanged(ctx context.Context, sportID string)
}

// ChangeNotifiers fans a change out to every notifier concurrently and returns
// once all of them finished. A panicking notifier is re-raised after the rest
// completed.
type ChangeNotifiers []ChangeNotifier

func (n ChangeNotifiers) MatchesChanged(ctx context.Context, sportID string) {
	var wg conc.WaitGroup
	for _, notifier := range n {
		if notifier == nil {
			continue
		}
		wg.Go(func() {
			notifier.MatchesChanged(ctx, sportID)
		})
	}
	wg.Wait()
}

type noopNotifier struct{}

func (noopNotifier) MatchesChanged(context.Context, string) {}
