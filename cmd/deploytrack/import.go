package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"deploytrack/internal/modkit/module"
	perr "deploytrack/internal/platform/errors"
	cdom "deploytrack/internal/services/api/components/domain"
	compmod "deploytrack/internal/services/api/components/module"
	"deploytrack/internal/services/api/imports/domain"
	isvc "deploytrack/internal/services/api/imports/service"

	"github.com/spf13/cobra"
)

type importFlags struct {
	commit bool
	strict bool
}

func newImportCmd() *cobra.Command {
	var f importFlags
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Parse a batch import file and optionally create the components",
		Long:  "Each line holds a component name followed by its link. Use - to read stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			return runImport(cmd.Context(), cmd.OutOrStdout(), string(text), f)
		},
	}
	cmd.Flags().BoolVar(&f.commit, "commit", false, "create the parsed components")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "report dropped lines and empty ids")
	return cmd
}

// previewOnly backs runs without --commit, which never create anything
type previewOnly struct{}

func (previewOnly) Create(context.Context, cdom.CreateInput) (cdom.Component, error) {
	return cdom.Component{}, perr.Unavailablef("preview only, pass --commit to create components")
}

func runImport(ctx context.Context, w io.Writer, text string, f importFlags) error {
	if !f.commit {
		return printPreview(ctx, w, isvc.New(previewOnly{}, nil), text, f.strict)
	}

	st, deps, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close(ctx) }()

	creator := module.MustPortsOf[compmod.Exposed](compmod.New(deps)).Service
	svc := isvc.New(creator, nil)
	prev, err := svc.Preview(ctx, domain.PreviewInput{Text: text})
	if err != nil {
		return err
	}
	items := make([]domain.CommitItem, 0, len(prev.Components))
	for _, c := range prev.Components {
		items = append(items, domain.CommitItem{
			Name:        c.Name,
			ComponentID: c.ComponentID,
			URLLink:     c.URLLink,
			Category:    string(c.Category),
			Type:        c.Type,
			ChangeType:  string(c.ChangeType),
			Description: c.Description,
		})
	}
	if len(items) == 0 {
		fmt.Fprintln(w, "no components found")
		return nil
	}
	out, err := svc.Commit(ctx, domain.CommitInput{Items: items})
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LINE\tNAME\tRESULT")
	for _, r := range out.Results {
		res := r.UID
		if r.Error != "" {
			res = "error: " + r.Error
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", prev.Components[r.Index].Line, items[r.Index].Name, res)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "%d created, %d failed\n", out.Created, out.Failed)
	return nil
}

func printPreview(ctx context.Context, w io.Writer, svc isvc.Service, text string, strict bool) error {
	out, err := svc.Preview(ctx, domain.PreviewInput{Text: text, Strict: strict})
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LINE\tCATEGORY\tTYPE\tID\tNAME")
	for _, c := range out.Components {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", c.Line, c.Category, c.Type, c.ComponentID, c.Name)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "%d components\n", out.Total)
	for _, is := range out.Issues {
		fmt.Fprintf(w, "line %d: %s: %s\n", is.Line, is.Code, is.Text)
	}
	return nil
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
