package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/staticfiles/cmd/staticfiles/commands"
	"git.home.luguber.info/inful/staticfiles/internal/errors"
	"git.home.luguber.info/inful/staticfiles/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli := &commands.CLI{}
	global := &commands.Global{Out: os.Stdout}
	parser, err := kong.New(cli,
		kong.Name("staticfiles"),
		kong.Description("Copy static files into build output directories after a successful build."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(global),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	if err != nil {
		return errors.NewCLIErrorAdapter(false, nil).Handle(errors.InternalError("cannot build command line parser").WithCause(err).Build(), os.Stderr)
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		// Runner config failures surface from AfterApply during parsing.
		if errors.IsClassified(err) {
			return errors.NewCLIErrorAdapter(cli.Verbose, global.Logger).Handle(err, os.Stderr)
		}
		parser.Errorf("%s", err)
		return 2
	}

	if err := kctx.Run(); err != nil {
		return errors.NewCLIErrorAdapter(cli.Verbose, global.Logger).Handle(err, os.Stderr)
	}
	return 0
}
