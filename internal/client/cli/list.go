package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/jkuschner/Document-Storage-App/internal/client/files"
)

// refreshList fetches the catalog and caches it for index-based commands.
// Last fetch wins: a result whose generation has been superseded by a newer
// fetch is discarded instead of overwriting fresher data.
func (a *App) refreshList(ctx context.Context) ([]files.FileMetadata, error) {
	gen := a.listGen.Add(1)

	items, err := a.fileService.List(ctx)
	if err != nil {
		return nil, err
	}
	if a.listGen.Load() != gen {
		return a.lastList, nil
	}
	a.lastList = items
	return items, nil
}

// List prints the file catalog as a table, most recent upload first as the
// server returns it.
func (a *App) List(ctx context.Context) error {
	items, err := a.refreshList(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Could not load files: %v\n", err)
		return err
	}

	if len(items) == 0 {
		fmt.Fprintln(a.out, "No files yet. Use \"upload\" to add one.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tName\tType\tSize\tUploaded\tStatus")
	for i, f := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			i+1,
			f.FileName,
			files.FileType(f.FileName, f.ContentType),
			files.FormatFileSize(f.Size),
			files.FormatRelativeTime(f.UploadDate),
			f.Status,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d file(s)\n", len(items))
	return nil
}

// pickFile resolves a user-entered list index against the cached catalog,
// refreshing it first when the cache is empty.
func (a *App) pickFile(ctx context.Context, prompt string) (*files.FileMetadata, error) {
	if len(a.lastList) == 0 {
		if _, err := a.refreshList(ctx); err != nil {
			return nil, err
		}
	}
	if len(a.lastList) == 0 {
		fmt.Fprintln(a.out, "No files yet.")
		return nil, nil
	}

	raw, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return nil, err
	}

	var idx int
	if _, err := fmt.Sscanf(raw, "%d", &idx); err != nil || idx < 1 || idx > len(a.lastList) {
		fmt.Fprintf(a.out, "Enter a number between 1 and %d.\n", len(a.lastList))
		return nil, nil
	}
	return &a.lastList[idx-1], nil
}
