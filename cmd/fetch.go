package cmd

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"toolbelt/internal/fetch"
	"toolbelt/internal/models"
)

var (
	fetchAudio   bool
	fetchQuality string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Download media and files (YouTube, HTTP, TFTP)",
	Long: `Download a file. YouTube URLs resolve through the YouTube API with
format selection, tftp:// URLs go over TFTP, anything else http(s) is a
plain download. Completed downloads are recorded in the task history.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().BoolVar(&fetchAudio, "audio", false, "download the best audio-only stream (YouTube)")
	fetchCmd.Flags().StringVar(&fetchQuality, "quality", "best", "video quality, e.g. 1080, 720 or best (YouTube)")
	fetchCmd.Flags().StringP("output-dir", "o", "downloads", "directory downloads are written to")
	viper.BindPFlag("fetch.output_dir", fetchCmd.Flags().Lookup("output-dir"))
}

func runFetch(cmd *cobra.Command, args []string) error {
	rawURL := args[0]

	opts := fetch.Options{Type: fetch.TypeVideo, Quality: fetchQuality}
	if fetchAudio {
		opts.Type = fetch.TypeAudio
	}

	fetcher := fetch.New(&log, viper.GetString("fetch.output_dir"))

	result, err := fetcher.Fetch(cmd.Context(), rawURL, opts)
	recordDownload(rawURL, result, err)
	if err != nil {
		return err
	}

	fmt.Printf("Saved %s (%s in %s)\n", result.Path,
		humanize.Bytes(uint64(result.Bytes)), result.Duration.Round(time.Millisecond))
	return nil
}

// recordDownload stores the outcome in the history catalog. Recording is
// best effort and never fails the command.
func recordDownload(rawURL string, result *fetch.Result, fetchErr error) {
	store := openCatalog()
	if store == nil {
		return
	}
	defer store.Close()

	download := &models.Download{URL: rawURL, Status: models.StatusOK}
	if result != nil {
		download.Path = result.Path
		download.Kind = result.Kind
		download.Bytes = result.Bytes
		download.Duration = result.Duration
	}
	if fetchErr != nil {
		download.Status = models.StatusError
		download.Error = fetchErr.Error()
	}

	if err := store.RecordDownload(download); err != nil {
		log.Warn().Err(err).Msg("could not record download")
	}
}
