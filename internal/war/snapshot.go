package war

import (
	"context"
	"fmt"

	"github.com/mauv0809/riverwatch/internal/royale"
	"golang.org/x/sync/errgroup"
)

// fetchSnapshot reads the roster and the current race concurrently.
func fetchSnapshot(ctx context.Context, client royale.RoyaleClient) (*royale.Clan, *royale.RiverRace, error) {
	var (
		roster *royale.Clan
		race   *royale.RiverRace
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := client.GetClan(gctx)
		if err != nil {
			return fmt.Errorf("roster: %w", err)
		}
		roster = c
		return nil
	})
	g.Go(func() error {
		r, err := client.GetCurrentRiverRace(gctx)
		if err != nil {
			return fmt.Errorf("current race: %w", err)
		}
		race = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	return roster, race, nil
}
