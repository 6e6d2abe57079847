package cmd

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"toolbelt/internal/imgproc"
)

var (
	imageOutput     string
	imageQuality    int
	imageResize     int
	imageMaxWidth   int
	imageMaxHeight  int
	imageFormat     string
	imageRecursive  bool
	imageExtensions []string
)

var imageCmd = &cobra.Command{
	Use:   "image <path>",
	Short: "Compress, resize and convert images",
	Long: `Compress a single image or every image in a directory. Without an
explicit output the result is written next to the input as
"<name>_compressed.<ext>".`,
	Args: cobra.ExactArgs(1),
	RunE: runImage,
}

func init() {
	rootCmd.AddCommand(imageCmd)
	imageCmd.Flags().StringVarP(&imageOutput, "output", "o", "", "output file or directory")
	imageCmd.Flags().IntVarP(&imageQuality, "quality", "q", imgproc.DefaultQuality, "JPEG quality (1-100)")
	imageCmd.Flags().IntVar(&imageResize, "resize", 0, "resize to this percentage of the original")
	imageCmd.Flags().IntVar(&imageMaxWidth, "max-width", 0, "shrink so the width fits this bound")
	imageCmd.Flags().IntVar(&imageMaxHeight, "max-height", 0, "shrink so the height fits this bound")
	imageCmd.Flags().StringVarP(&imageFormat, "format", "f", "", "convert to this format (jpg, png, gif, bmp, tif)")
	imageCmd.Flags().BoolVarP(&imageRecursive, "recursive", "R", false, "process directories recursively")
	imageCmd.Flags().StringSliceVarP(&imageExtensions, "extensions", "e", nil, "extensions picked up in directory mode (default jpg,jpeg,png)")
}

func runImage(cmd *cobra.Command, args []string) error {
	path := args[0]

	opts := imgproc.Options{
		Output:        imageOutput,
		Quality:       imageQuality,
		ResizePercent: imageResize,
		MaxWidth:      imageMaxWidth,
		MaxHeight:     imageMaxHeight,
		Format:        imageFormat,
		Recursive:     imageRecursive,
		Extensions:    imageExtensions,
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot open %q: %w", path, err)
	}

	compressor := imgproc.New(&log)

	if info.IsDir() {
		stats, err := compressor.CompressDir(path, opts)
		if err != nil {
			return err
		}

		fmt.Printf("Processed %d images, %d failed\n", stats.Processed, stats.Failed)
		if stats.Processed > 0 {
			fmt.Printf("Size: %s -> %s (%.1f%% smaller)\n",
				humanize.Bytes(uint64(stats.OriginalBytes)),
				humanize.Bytes(uint64(stats.CompressedBytes)),
				stats.Reduction())
		}
		return nil
	}

	result, err := compressor.Compress(path, opts)
	if err != nil {
		return err
	}

	fmt.Printf("Saved %s\n", result.Path)
	fmt.Printf("Size: %s -> %s (%.1f%% smaller)\n",
		humanize.Bytes(uint64(result.OriginalBytes)),
		humanize.Bytes(uint64(result.CompressedBytes)),
		result.Reduction())
	return nil
}
