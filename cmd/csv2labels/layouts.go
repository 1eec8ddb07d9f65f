package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	csv2labels "github.com/alnah/go-csv2labels"
	"github.com/alnah/go-csv2labels/internal/hints"
)

// runLayouts lists the available layouts or prints one layout's YAML.
//
//	csv2labels layouts              list names, sizes and required fields
//	csv2labels layouts show <name>  print the layout source
func runLayouts(args []string, env *Environment) error {
	flags, positional, err := parseLayoutsFlags(args)
	if err != nil {
		return err
	}

	gen, err := env.NewGenerator(csv2labels.WithAssetPath(flags.assetPath))
	if err != nil {
		return err
	}
	defer gen.Close()

	switch {
	case len(positional) == 0 || (len(positional) == 1 && positional[0] == "list"):
		return listLayouts(gen, env)
	case len(positional) == 2 && positional[0] == "show":
		return showLayout(gen, env, positional[1])
	default:
		return fmt.Errorf("%w: usage: csv2labels layouts [list | show <name>]", ErrUsage)
	}
}

func listLayouts(gen Generator, env *Environment) error {
	names, err := gen.Layouts()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(env.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPAGE\tREQUIRED\tDESCRIPTION")
	for _, name := range names {
		lay, err := gen.LoadLayout(name)
		if err != nil {
			fmt.Fprintf(tw, "%s\t-\t-\tinvalid: %v\n", name, err)
			continue
		}
		unit := lay.Page.Unit
		if unit == "" {
			unit = csv2labels.UnitMM
		}
		fmt.Fprintf(tw, "%s\t%gx%g %s\t%s\t%s\n",
			name, lay.Page.Width, lay.Page.Height, unit,
			strings.Join(lay.Required, ","), lay.Description)
	}
	return tw.Flush()
}

func showLayout(gen Generator, env *Environment, name string) error {
	src, err := gen.LayoutSource(name)
	if err != nil {
		if errors.Is(err, csv2labels.ErrLayoutNotFound) {
			available, _ := gen.Layouts()
			return fmt.Errorf("%w%s", err, hints.ForLayoutNotFound(available))
		}
		return err
	}
	_, err = env.Stdout.Write(src)
	return err
}
