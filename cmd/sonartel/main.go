package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alitto/pond"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/dwcaress/sonartel"
)

func main() {
	app := &cli.App{
		Name:  "sonartel",
		Usage: "inspect and convert sonar telemetry container files",
		Commands: []*cli.Command{
			inspectCommand(),
			convertCommand(),
			batchCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(cCtx *cli.Context) (*zap.Logger, error) {
	if cCtx.Bool("quiet") {
		return sonartel.NewDiscardLogger(), nil
	}
	return sonartel.NewDevelopmentLogger()
}

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "summarize a container file's record stream",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Required: true, Usage: "path to the container file"},
			&cli.BoolFlag{Name: "quiet"},
			&cli.BoolFlag{Name: "types", Usage: "print the known record-type table and exit"},
		},
		Action: func(cCtx *cli.Context) error {
			if cCtx.Bool("types") {
				return printRecordFamilies()
			}

			log, err := newLogger(cCtx)
			if err != nil {
				return err
			}
			defer log.Sync()

			f, err := os.Open(cCtx.String("path"))
			if err != nil {
				return err
			}
			defer f.Close()

			reader, err := sonartel.NewReader(sonartel.Collaborators{Source: f, Logger: log})
			if err != nil {
				return err
			}
			defer reader.Close()

			var pings, aux int
			for {
				outcome := reader.ReadNext()
				switch outcome.Kind {
				case sonartel.OutcomePing:
					pings++
				case sonartel.OutcomeAux:
					aux++
					if outcome.RecordType == sonartel.RecordFileHeader {
						fh := reader.Store().FileHeader
						if sonartel.CatalogPayloadIsBareList(fh.CatalogSize) {
							fmt.Printf("%s: catalog size %d looks like a bare entry list (no table header/checksum overhead)\n",
								cCtx.String("path"), fh.CatalogSize)
						}
					}
				case sonartel.OutcomeEOF:
					fmt.Printf("%s: %d pings, %d auxiliary records, %d bad records, %d skipped bytes\n",
						cCtx.String("path"), pings, aux, reader.BadRecords(), reader.SkippedBytes())
					return nil
				case sonartel.OutcomeErr:
					log.Warn("record error", zap.Error(outcome.Err))
				}
			}
		},
	}
}

func printRecordFamilies() error {
	families, err := sonartel.DescribeRecordFamilies()
	if err != nil {
		return err
	}
	for _, f := range families {
		fmt.Printf("%5d  %-22s %s\n", f.Type, sonartel.RecordNames[f.Type], f.Family)
	}
	return nil
}

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:  "convert",
		Usage: "read one container file and rewrite it, rebuilding the catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in", Required: true},
			&cli.StringFlag{Name: "out", Required: true},
			&cli.BoolFlag{Name: "quiet"},
		},
		Action: func(cCtx *cli.Context) error {
			log, err := newLogger(cCtx)
			if err != nil {
				return err
			}
			defer log.Sync()
			return convertFile(cCtx.String("in"), cCtx.String("out"), log)
		},
	}
}

func convertFile(inPath, outPath string, log *zap.Logger) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	reader, err := sonartel.NewReader(sonartel.Collaborators{Source: in, Logger: log})
	if err != nil {
		return err
	}
	defer reader.Close()

	writer, err := sonartel.NewWriter(sonartel.Collaborators{Sink: out, Logger: log})
	if err != nil {
		return err
	}

	headerWritten := false
	for {
		outcome := reader.ReadNext()
		st := reader.Store()

		switch outcome.Kind {
		case sonartel.OutcomeAux:
			if outcome.RecordType == sonartel.RecordFileHeader && !headerWritten {
				if err := writer.WriteFileHeader(st.FileHeader); err != nil {
					return err
				}
				headerWritten = true
				continue
			}
			if !headerWritten {
				continue // comments before the header are buffered, not yet writable
			}
			if err := writer.WriteRecord(outcome.RecordType, st.Timestamp); err != nil {
				log.Warn("skipping record on write error", zap.Error(err))
			}
		case sonartel.OutcomePing:
			st.Kind = sonartel.KindPing
			if err := writer.Write(st); err != nil {
				log.Warn("skipping ping on write error", zap.Error(err))
			}
		case sonartel.OutcomeEOF:
			return writer.Close()
		case sonartel.OutcomeErr:
			log.Warn("skipping unreadable record", zap.Error(outcome.Err))
		}
	}
}

func batchCommand() *cli.Command {
	return &cli.Command{
		Name:  "batch",
		Usage: "convert every container file in a directory concurrently",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Required: true},
			&cli.StringFlag{Name: "out-dir", Required: true},
			&cli.IntFlag{Name: "workers", Value: 4},
			&cli.BoolFlag{Name: "quiet"},
		},
		Action: func(cCtx *cli.Context) error {
			log, err := newLogger(cCtx)
			if err != nil {
				return err
			}
			defer log.Sync()

			matches, err := filepath.Glob(filepath.Join(cCtx.String("dir"), "*"))
			if err != nil {
				return err
			}

			pool := pond.New(cCtx.Int("workers"), len(matches))
			defer pool.StopAndWait()

			for _, path := range matches {
				path := path
				pool.Submit(func() {
					outPath := filepath.Join(cCtx.String("out-dir"), filepath.Base(path))
					if err := convertFile(path, outPath, log); err != nil {
						log.Error("batch conversion failed", zap.String("path", path), zap.Error(err))
					}
				})
			}
			return nil
		},
	}
}
