package cmd

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"toolbelt/internal/models"
	"toolbelt/internal/organizer"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "File tasks: backup, clean, organize, history",
}

var (
	backupFormat   string
	backupName     string
	backupExcludes []string
)

var taskBackupCmd = &cobra.Command{
	Use:   "backup <source> <dest>",
	Short: "Create a timestamped backup of a directory",
	Args:  cobra.ExactArgs(2),
	RunE:  runTaskBackup,
}

var (
	cleanPattern   string
	cleanOlderThan int
	cleanDryRun    bool
)

var taskCleanCmd = &cobra.Command{
	Use:   "clean <dir>",
	Short: "Remove files matching a pattern",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskClean,
}

var taskOrganizeCmd = &cobra.Command{
	Use:   "organize <dir>",
	Short: "Move files into typed subfolders",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskOrganize,
}

var (
	historyLimit int
	historyKind  string
)

var taskHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded task runs and downloads",
	RunE:  runTaskHistory,
}

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskBackupCmd, taskCleanCmd, taskOrganizeCmd, taskHistoryCmd)

	taskBackupCmd.Flags().StringVarP(&backupFormat, "format", "f", organizer.FormatZip, "backup format (zip, iso, copy)")
	taskBackupCmd.Flags().StringVar(&backupName, "name", "", "extra suffix for the backup name")
	taskBackupCmd.Flags().StringSliceVar(&backupExcludes, "exclude", nil, "glob patterns to skip")

	taskCleanCmd.Flags().StringVarP(&cleanPattern, "pattern", "p", "*", "glob pattern of files to remove")
	taskCleanCmd.Flags().IntVar(&cleanOlderThan, "older-than", 0, "only remove files older than this many days")
	taskCleanCmd.Flags().BoolVar(&cleanDryRun, "dry-run", false, "list candidates without removing them")

	taskHistoryCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of entries to show")
	taskHistoryCmd.Flags().StringVarP(&historyKind, "kind", "k", "", "filter by task kind (backup, clean, organize)")
}

// recordTaskRun stores the run in the history catalog. Recording is best
// effort and never fails the command.
func recordTaskRun(run *models.TaskRun, elapsed time.Duration, runErr error) {
	store := openCatalog()
	if store == nil {
		return
	}
	defer store.Close()

	run.Duration = elapsed
	run.Status = models.StatusOK
	if runErr != nil {
		run.Status = models.StatusError
		run.Error = runErr.Error()
	}

	if err := store.RecordTaskRun(run); err != nil {
		log.Warn().Err(err).Msg("could not record task run")
	}
}

func runTaskBackup(cmd *cobra.Command, args []string) error {
	source, dest := args[0], args[1]

	run := &models.TaskRun{
		Kind:        models.TaskBackup,
		Source:      source,
		Destination: dest,
		Detail:      backupFormat,
		Excludes:    backupExcludes,
	}

	start := time.Now()
	result, err := organizer.New(&log).Backup(organizer.BackupOptions{
		Source:   source,
		Dest:     dest,
		Format:   backupFormat,
		Name:     backupName,
		Excludes: backupExcludes,
	})
	if result != nil {
		run.Destination = result.Path
		run.Files = result.Files
		run.Bytes = result.Bytes
	}
	recordTaskRun(run, time.Since(start), err)
	if err != nil {
		return err
	}

	fmt.Printf("Backup created: %s\n", result.Path)
	fmt.Printf("%d files, %s\n", result.Files, humanize.Bytes(uint64(result.Bytes)))
	return nil
}

func runTaskClean(cmd *cobra.Command, args []string) error {
	dir := args[0]

	run := &models.TaskRun{
		Kind:   models.TaskClean,
		Source: dir,
		Detail: cleanPattern,
	}

	start := time.Now()
	result, err := organizer.New(&log).Clean(organizer.CleanOptions{
		Dir:           dir,
		Pattern:       cleanPattern,
		OlderThanDays: cleanOlderThan,
		DryRun:        cleanDryRun,
	})
	if result != nil {
		run.Files = result.Files
		run.Bytes = result.Bytes
	}
	// Dry runs are previews, not history.
	if !cleanDryRun {
		recordTaskRun(run, time.Since(start), err)
	}
	if err != nil {
		return err
	}

	if result.DryRun {
		fmt.Printf("Would remove %d files (%s):\n", result.Files, humanize.Bytes(uint64(result.Bytes)))
		shown := len(result.Candidates)
		if shown > 10 {
			shown = 10
		}
		for _, path := range result.Candidates[:shown] {
			fmt.Printf("  %s\n", path)
		}
		if rest := len(result.Candidates) - shown; rest > 0 {
			fmt.Printf("  ... and %d more\n", rest)
		}
		return nil
	}

	fmt.Printf("Removed %d files (%s)\n", result.Files, humanize.Bytes(uint64(result.Bytes)))
	return nil
}

func runTaskOrganize(cmd *cobra.Command, args []string) error {
	dir := args[0]

	run := &models.TaskRun{Kind: models.TaskOrganize, Source: dir}

	start := time.Now()
	result, err := organizer.New(&log).Organize(dir, nil)
	if result != nil {
		run.Files = result.Files
	}
	recordTaskRun(run, time.Since(start), err)
	if err != nil {
		return err
	}

	fmt.Printf("Moved %d files\n", result.Files)

	folders := make([]string, 0, len(result.Folders))
	for folder := range result.Folders {
		folders = append(folders, folder)
	}
	sort.Strings(folders)
	for _, folder := range folders {
		fmt.Printf("  %-24s %d\n", folder, result.Folders[folder])
	}
	return nil
}

func runTaskHistory(cmd *cobra.Command, args []string) error {
	store, err := openStorage()
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListTaskRuns(historyKind, historyLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No recorded task runs")
	} else {
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"When", "Kind", "Source", "Files", "Size", "Status"})
		for _, run := range runs {
			table.Append([]string{
				run.CreatedAt.Format("2006-01-02 15:04"),
				run.Kind,
				run.Source,
				strconv.Itoa(run.Files),
				humanize.Bytes(uint64(run.Bytes)),
				run.Status,
			})
		}
		table.Render()
	}

	if historyKind != "" {
		return nil
	}

	downloads, err := store.ListDownloads(historyLimit)
	if err != nil {
		return err
	}
	if len(downloads) > 0 {
		fmt.Println("\nDownloads:")
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"When", "Kind", "URL", "Size", "Status"})
		for _, d := range downloads {
			table.Append([]string{
				d.CreatedAt.Format("2006-01-02 15:04"),
				d.Kind,
				d.URL,
				humanize.Bytes(uint64(d.Bytes)),
				d.Status,
			})
		}
		table.Render()
	}

	if counts, err := store.GetStats(); err == nil && counts["task_runs"]+counts["downloads"] > 0 {
		fmt.Printf("\nTotals: %d task runs (%d failed), %d downloads (%d failed)\n",
			counts["task_runs"], counts["failed_task_runs"],
			counts["downloads"], counts["failed_downloads"])
	}
	return nil
}
