package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/eringen/flatblog"
)

func (m *Main) listCommand() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return m.list(cmd.OutOrStdout(), category)
		},
	}
	cmd.Flags().String("content", "", `content directory (default "content/posts")`)
	cmd.Flags().StringVarP(&category, "category", "c", "", "only list documents in this category")
	return cmd
}

func (m *Main) list(w io.Writer, category string) error {
	store, err := m.openStore(false)
	if err != nil {
		return err
	}
	defer store.Close()

	catalog := flatblog.NewCatalog(store, m.Config.DefaultCategory)

	var docs []flatblog.Document
	if category != "" {
		docs, err = catalog.InCategory(category)
		if errors.Is(err, flatblog.ErrNotFound) {
			return fmt.Errorf("no documents in category %q", category)
		}
	} else {
		docs, err = catalog.Recent()
	}
	if err != nil {
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintf(w, "No documents found in %s.\n", store.Root())
		return nil
	}

	for _, d := range docs {
		date := d.Date()
		if date == "" {
			date = "-"
		}
		fmt.Fprintf(w, "%s  %s  %s  %s\n", date, catalog.CategoryOf(d), d.Path, d.Title())
	}
	return nil
}
