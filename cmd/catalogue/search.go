package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/ONSdigital/dp-frontend-catalogue-controller/catalogue"
	"github.com/ONSdigital/dp-frontend-catalogue-controller/mapper"
	"github.com/ONSdigital/dp-frontend-catalogue-controller/models"
	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	query      string
	sortMode   string
	page       int
	size       int
	tags       []string
	sectors    []string
	formats    []string
	geography  []string
	viewMode   string
	lastPage   bool
	jsonOutput bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Show one page of datasets",
	Long:  "Search the catalogue and print one page of datasets with the facet counts and the page picker.",
	Args:  cobra.NoArgs,
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&query, "query", "q", "", "free text search")
	searchCmd.Flags().StringVar(&sortMode, "sort", string(catalogue.SortNewest), "sort mode: newest, oldest, last-week, last-month, last-year")
	searchCmd.Flags().IntVarP(&page, "page", "p", 1, "page number")
	searchCmd.Flags().IntVar(&size, "size", catalogue.DefaultPageSize, "datasets per page: 6, 12, 24 or 48")
	searchCmd.Flags().StringArrayVar(&tags, "tag", nil, "select a tag, repeatable")
	searchCmd.Flags().StringArrayVar(&sectors, "sector", nil, "select a sector, repeatable")
	searchCmd.Flags().StringArrayVar(&formats, "format", nil, "select a data type, repeatable")
	searchCmd.Flags().StringArrayVar(&geography, "geography", nil, "select a geography, repeatable")
	searchCmd.Flags().StringVar(&viewMode, "view", string(catalogue.ViewCard), "layout: card or list")
	searchCmd.Flags().BoolVar(&lastPage, "last", false, "jump to the last page after loading")
	searchCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the page model as JSON")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	state, err := searchState()
	if err != nil {
		return err
	}

	b, err := newBrowser(state)
	if err != nil {
		return errors.Wrap(err, "invalid search")
	}
	if err := b.Load(ctx); err != nil {
		return errors.Wrap(err, "failed to load datasets")
	}
	if lastPage {
		if err := b.LastPage(ctx); err != nil {
			return errors.Wrap(err, "failed to load the last page")
		}
	}

	p := mapper.CreateCataloguePage(b.View(), "", nil)
	if jsonOutput {
		out, err := sonic.ConfigStd.MarshalIndent(p, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to encode page")
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return err
	}
	return printPage(cmd.OutOrStdout(), p.Data)
}

func searchState() (catalogue.State, error) {
	s := catalogue.DefaultState()

	mode, err := catalogue.ParseSortMode(sortMode)
	if err != nil {
		return s, err
	}
	view, err := catalogue.ParseViewMode(viewMode)
	if err != nil {
		return s, err
	}
	if !catalogue.ValidPageSize(size) {
		return s, errors.Wrapf(catalogue.ErrInvalidPageSize, "%d", size)
	}

	s.Search = strings.TrimSpace(query)
	s.Sort = mode
	s.ViewMode = view
	s.Page = max(page, 1)
	s.PageSize = size
	s.Filters = catalogue.FiltersOf(map[catalogue.Category][]string{
		catalogue.Tags:      tags,
		catalogue.Sectors:   sectors,
		catalogue.Formats:   formats,
		catalogue.Geography: geography,
	})
	return s, nil
}

func printPage(out io.Writer, c models.Catalogue) error {
	fmt.Fprintln(out, c.Summary)
	for _, w := range c.Warnings {
		fmt.Fprintf(out, "warning: %s\n", w)
	}

	if len(c.Datasets) > 0 {
		fmt.Fprintln(out)
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "TITLE\tORGANIZATION\tUPDATED\tDOWNLOADS\tFORMATS")
		for _, d := range c.Datasets {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", d.Title, d.Organization, d.LastUpdated, d.Downloads, d.FormatsText)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintln(out)
	for _, f := range c.Facets {
		fmt.Fprintf(out, "%s: %s\n", f.Title, facetText(f))
	}

	if c.Pagination.ShowPicker {
		fmt.Fprintf(out, "\npages: %s\n", pickerText(c.Pagination.Pages))
	}
	return nil
}

func facetText(f models.Facet) string {
	if len(f.Options) == 0 {
		return f.Empty
	}
	opts := make([]string, 0, len(f.Options))
	for _, o := range f.Options {
		s := fmt.Sprintf("%s (%d)", o.Value, o.Count)
		if o.Selected {
			s = "[x] " + s
		}
		opts = append(opts, s)
	}
	return strings.Join(opts, ", ")
}

func pickerText(pages []models.PageLink) string {
	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		switch {
		case p.Ellipsis:
			parts = append(parts, "...")
		case p.Current:
			parts = append(parts, "["+strconv.Itoa(p.Number)+"]")
		default:
			parts = append(parts, strconv.Itoa(p.Number))
		}
	}
	return strings.Join(parts, " ")
}
