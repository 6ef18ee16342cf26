package commands

import (
	"context"
	"os"
)

// CopyCmd implements the 'copy' command.
type CopyCmd struct {
	Inputs `embed:""`
}

func (c *CopyCmd) Run(ctx context.Context, g *Global) error {
	event, err := c.event(os.Stdin)
	if err != nil {
		return err
	}
	opts, err := c.options(g.Config)
	if err != nil {
		return err
	}
	r, err := newReaction(g, c.metricsFile(g.Config))
	if err != nil {
		return err
	}
	return r.dispatch(ctx, event, opts)
}
