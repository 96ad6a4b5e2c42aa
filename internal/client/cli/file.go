package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jkuschner/Document-Storage-App/internal/client/files"
)

// Upload asks for a local path and pushes the file, printing phase changes
// and transfer progress as it goes.
func (a *App) Upload(ctx context.Context) error {
	path, err := getSimpleText(a.reader, "Enter path to the file", a.out)
	if err != nil {
		return err
	}

	lastPct := -1
	fileID, err := a.fileService.Upload(ctx, path, func(phase files.UploadPhase, progress int) {
		switch phase {
		case files.PhaseRequesting:
			fmt.Fprintln(a.out, "Requesting upload slot...")
		case files.PhaseTransferring:
			if progress != lastPct && progress%10 == 0 {
				fmt.Fprintf(a.out, "Uploading... %d%%\n", progress)
				lastPct = progress
			}
		}
	})
	if err != nil {
		fmt.Fprintf(a.out, "Upload failed: %v\n", err)
		return err
	}

	fmt.Fprintf(a.out, "Uploaded (id %s).\n", fileID)
	_, err = a.refreshList(ctx)
	return err
}

// Download saves the picked file into the configured download directory.
func (a *App) Download(ctx context.Context) error {
	f, err := a.pickFile(ctx, "Enter the number of the file to download")
	if err != nil || f == nil {
		return err
	}

	path, err := a.fileService.SaveTo(ctx, f.FileID, a.config.DownloadDir)
	if err != nil {
		fmt.Fprintf(a.out, "Download failed: %v\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Saved to %s\n", path)
	return nil
}

// Delete removes the picked file after a confirmation prompt.
func (a *App) Delete(ctx context.Context) error {
	f, err := a.pickFile(ctx, "Enter the number of the file to delete")
	if err != nil || f == nil {
		return err
	}

	answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete %q? (y/n)", f.FileName), a.out)
	if err != nil {
		return err
	}
	if answer != "y" && answer != "yes" {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	if err := a.fileService.Delete(ctx, f.FileID); err != nil {
		fmt.Fprintf(a.out, "Delete failed: %v\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Deleted %s.\n", f.FileName)
	_, err = a.refreshList(ctx)
	return err
}

// Share issues a public link for the picked file.
func (a *App) Share(ctx context.Context) error {
	f, err := a.pickFile(ctx, "Enter the number of the file to share")
	if err != nil || f == nil {
		return err
	}

	raw, err := getSimpleText(a.reader, "Link validity in hours (default 24)", a.out)
	if err != nil {
		return err
	}
	hours := 24
	if raw != "" {
		hours, err = strconv.Atoi(raw)
		if err != nil || hours <= 0 {
			fmt.Fprintln(a.out, "Enter a positive whole number of hours.")
			return nil
		}
	}

	share, err := a.fileService.Share(ctx, f.FileID, hours)
	if err != nil {
		fmt.Fprintf(a.out, "Share failed: %v\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Share link: %s\nExpires: %s\n", share.ShareURL, share.ExpiresAt)
	return nil
}

// Summary asks the backend for an AI summary of the picked file.
func (a *App) Summary(ctx context.Context) error {
	f, err := a.pickFile(ctx, "Enter the number of the file to summarize")
	if err != nil || f == nil {
		return err
	}

	fmt.Fprintln(a.out, "Summarizing...")
	result, err := a.fileService.Summarize(ctx, f.FileID, f.FileName)
	if err != nil {
		fmt.Fprintf(a.out, "Summarization failed: %v\n", err)
		return err
	}
	fmt.Fprintf(a.out, "\n%s\n\n(%d characters read, model %s)\n", result.Summary, result.ContentLength, result.Model)
	return nil
}
