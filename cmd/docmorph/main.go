// Command docmorph converts documents between formats from the command
// line.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tsawler/docmorph"
)

var (
	flagQuality  string
	flagPages    string
	flagPageSize string
	flagVocab    string
	flagVerbose  bool
)

func main() {
	root := &cobra.Command{
		Use:   "docmorph",
		Short: "Convert documents between formats",
		Long: "docmorph converts documents between formats. PDF sources are\n" +
			"reconstructed natively into editable layouts; office formats use\n" +
			"LibreOffice; images and Markdown convert in-process.",
	}

	convert := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert one document; the formats come from the file extensions",
		Args:  cobra.ExactArgs(2),
		RunE:  runConvert,
	}
	convert.Flags().StringVarP(&flagQuality, "quality", "q", docmorph.QualityMedium,
		"conversion quality: high, medium, or low")
	convert.Flags().StringVarP(&flagPages, "pages", "p", "",
		`page range for PDF sources, for example "1-3,7"`)
	convert.Flags().StringVar(&flagPageSize, "page-size", "",
		"fit converted images onto a page: a4 or letter")
	convert.Flags().StringVar(&flagVocab, "vocab", "",
		"YAML file overriding the classification keyword lists")
	convert.Flags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"log conversion progress")

	root.AddCommand(convert)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	log := zap.NewNop()
	if flagVerbose {
		var err error
		log, err = zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer log.Sync()
	}

	opts := docmorph.DefaultOptions()
	opts.Quality = flagQuality
	opts.PageRange = flagPages
	opts.PageSize = flagPageSize
	opts.VocabularyPath = flagVocab

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res := docmorph.New(opts, log).Convert(ctx, args[0], args[1])
	if !res.OK {
		return fmt.Errorf("%s conversion failed: %s", res.Method, res.Err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%s, %s)\n",
		args[0], res.OutputPath, res.Method, res.Elapsed.Round(time.Millisecond))
	return nil
}
