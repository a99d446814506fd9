// Package render implements the render subcommand: it finds report forms in
// files, directories or zip archives and renders each of them into PDF.
package render

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"rpw/archive"
	"rpw/config"
	"rpw/datasource"
	"rpw/engine"
	"rpw/props"
	"rpw/report"
	"rpw/state"
	"rpw/surface"
	"rpw/surface/pdf"
	"rpw/surface/record"
)

// resources tells where images referenced by the form are looked up: home is
// the form directory, inside fsys when it is not nil.
type resources struct {
	home string
	fsys fs.FS
}

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("render")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Mailformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	// command line takes precedence over configuration
	if cmd.Bool("outlines") {
		env.Cfg.Document.ShowBandOutlines = true
	}
	if cmd.Bool("test-cursor") {
		env.Cfg.Document.UseTestCursor = true
	}
	if q := cmd.String("query"); len(q) > 0 {
		env.Cfg.Data.Query = q
	}

	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")

	// Since zip "standard" does not define file name encoding we may need to
	// force archaic code page for old archives
	cp := cmd.String("force-zip-cp")
	if len(cp) > 0 {
		env.CodePage, err = ianaindex.IANA.Encoding(cp)
		if err != nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			env.CodePage = nil
		} else {
			n, _ := ianaindex.IANA.Name(env.CodePage)
			log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", n))
		}
	}

	if data := cmd.String("data"); len(data) > 0 {
		if env.Data, err = loadData(ctx, data, &env.Cfg.Data, log); err != nil {
			return fmt.Errorf("unable to load data: %w", err)
		}
		if env.Rpt != nil {
			env.Rpt.Store("data"+filepath.Ext(data), data)
		}
	} else if !env.Cfg.Document.UseTestCursor {
		log.Warn("No data source has been specified, rendering without records")
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Int("records", len(env.Data)))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, log)
}

// loadData reads data source honoring configured timeout.
func loadData(ctx context.Context, path string, cfg *config.DataConfig, log *zap.Logger) (datasource.Cursor, error) {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.Timeout)*time.Second)
		defer cancel()
	}

	opts := datasource.Options{Query: cfg.Query}
	if sep := []rune(cfg.CSVSeparator); len(sep) > 0 {
		opts.Separator = sep[0]
	}
	return datasource.Open(ctx, path, opts, log)
}

// process handles the core rendering logic independently of CLI framework. It
// determines the input type (directory, archive, or single form) and processes
// accordingly.
func process(ctx context.Context, src, dst string, log *zap.Logger) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			if err := processDir(ctx, head, dst, log); err != nil {
				return fmt.Errorf("unable to process directory: %w", err)
			}
			break
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		archive, err := isArchiveFile(head)
		if err != nil {
			// checking format - but cannot open target file
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if archive {
			// we need to look inside to see if path makes sense
			tail = filepath.ToSlash(strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator)))
			if err := processArchive(ctx, head, tail, "", dst, log); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			break
		}

		if isReportForm(head) && len(tail) == 0 {
			// form cannot have tail
			if err := processFile(ctx, head, filepath.Base(head), dst, log); err != nil {
				log.Error("Unable to process file", zap.String("file", head), zap.Error(err))
			}
			break
		}
		return fmt.Errorf("input was not recognized as report form (%s)", head)
	}
	if len(head) == 0 {
		return fmt.Errorf("input source was not found (%s)", src)
	}
	return nil
}

// processDir walks directory tree finding forms and archives and processes
// them in natural order of their paths.
func processDir(ctx context.Context, dir, dst string, log *zap.Logger) error {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.Type().IsRegular() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	slices.SortFunc(paths, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		}
		return 0
	})

	count := 0
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		rel := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
		if isReportForm(path) {
			count++
			if err := processFile(ctx, path, rel, dst, log); err != nil {
				log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
			}
			continue
		}

		archive, err := isArchiveFile(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			continue
		}
		if !archive {
			log.Debug("Skipping file, not recognized as report form or archive", zap.String("file", path))
			continue
		}
		count++
		if err := processArchive(ctx, path, "", filepath.Dir(rel), dst, log); err != nil {
			log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
		}
	}
	if count == 0 {
		log.Debug("Nothing to process", zap.String("dir", dir))
	}
	return nil
}

func processFile(ctx context.Context, path, src, dst string, log *zap.Logger) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return processReport(ctx, file, src, resources{home: filepath.Dir(path)}, dst, log)
}

// processArchive walks all files inside archive, finds forms under "pathIn"
// and processes them. Images are resolved inside the archive.
func processArchive(ctx context.Context, arc, pathIn, pathOut, dst string, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("archive", arc))
		}
	}()

	cp := state.EnvFromContext(ctx).CodePage

	return archive.Walk(arc, pathIn, func(archive string, fsys fs.FS, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !isReportForm(f.FileHeader.Name) {
			log.Debug("Skipping file, not recognized as report form", zap.String("archive", archive), zap.String("file", f.FileHeader.Name))
			return nil
		}

		count++

		r, err := f.Open()
		if err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", archive), zap.String("file", f.FileHeader.Name), zap.Error(err))
			return nil
		}
		defer r.Close()

		pathInArchive := f.FileHeader.Name
		if cp != nil && f.FileHeader.NonUTF8 {
			// forcing zip file name encoding
			if n, err := cp.NewDecoder().String(pathInArchive); err == nil {
				pathInArchive = n
			} else {
				n, _ = ianaindex.IANA.Name(cp)
				log.Warn("Unable to convert archive name from specified encoding",
					zap.String("charset", n), zap.String("path", pathInArchive), zap.Error(err))
			}
		}

		res := resources{home: path.Dir(f.FileHeader.Name), fsys: fsys}
		if err := processReport(ctx, r, filepath.Join(pathOut, filepath.FromSlash(pathInArchive)), res, dst, log); err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", archive), zap.String("file", f.FileHeader.Name), zap.Error(err))
		}
		return nil
	})
}

// processReport renders single form. "src" is part of the source path
// (always including file name) relative to the original path. When actual
// file was specified it will be just base file name without a path. When
// looking inside archive or directory it will be relative path inside archive
// or directory (including base file name). "dst" is the destination directory
// where the PDF should be written.
func processReport(ctx context.Context, r io.Reader, src string, res resources, dst string, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	var outputName string

	log.Info("Rendering starting", zap.String("from", src))
	defer func(start time.Time) {
		// NOTE: image decoders and expression evaluation run user supplied
		// content, one broken form should not stop the whole batch.
		if r := recover(); r != nil {
			log.Error("Rendering ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("rendering panic: %v", r)
		} else if rerr == nil {
			log.Info("Rendering completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName))
		}
	}(time.Now())

	rpt, err := report.Decode(r)
	if err != nil {
		return fmt.Errorf("unable to parse report form (%s): %w", src, err)
	}
	rpt.HomeDir = res.home

	values := newValues(rpt, src, env.RunID, log)

	// Determine output file name and path based on input and configuration.
	outputName = buildOutputPath(values, src, dst, env)

	// Check if output file already exists
	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
		if err = os.Remove(outputName); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	s, err := newSurface(rpt, &env.Cfg.Document.PDF, log)
	if err != nil {
		return fmt.Errorf("unable to create document: %w", err)
	}
	opts := renderOptions(values, res, env, log)

	out, err := os.Create(outputName)
	if err != nil {
		return fmt.Errorf("unable to create output file: %w", err)
	}
	opts.Output = out
	if err := engine.Write(ctx, rpt, env.Data, s, opts, log); err != nil {
		out.Close()
		os.Remove(outputName)
		return fmt.Errorf("unable to render report (%s): %w", src, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("unable to write output file: %w", err)
	}

	// Store rendering results for debugging
	if env.Rpt != nil {
		name := slug.Make(src)
		env.Rpt.Store(fmt.Sprintf("result-%s%s", name, outputExt), outputName)
		storeLayout(ctx, rpt, name, opts, env, log)
	}
	return nil
}

// newSurface creates PDF surface. Encoding requested by the form overrides
// configuration.
func newSurface(rpt *report.Report, cfg *config.PDFConfig, log *zap.Logger) (surface.Surface, error) {
	res := props.NewResolver(props.NewContext(), log)
	if enc := res.String(rpt, "Encoding"); len(enc) > 0 && !strings.EqualFold(enc, cfg.Encoding) {
		log.Debug("Using form text encoding", zap.String("encoding", enc))
		c := *cfg
		c.Encoding = enc
		cfg = &c
	}
	return pdf.New(cfg, log)
}

func renderOptions(values *Values, res resources, env *state.LocalEnv, log *zap.Logger) engine.Options {
	opts := engine.Options{
		ShowBandOutlines: env.Cfg.Document.ShowBandOutlines,
		UseTestCursor:    env.Cfg.Document.UseTestCursor,
		Resources:        res.fsys,
		Images:           &env.Cfg.Document.Images,
	}
	if len(env.Cfg.Document.CreatorTemplate) > 0 {
		creator, err := expandTemplate(values, config.CreatorTemplateFieldName, env.Cfg.Document.CreatorTemplate)
		if err != nil {
			log.Warn("Unable to prepare document creator", zap.Error(err))
		} else {
			opts.Creator = creator
		}
	}
	return opts
}

// storeLayout puts form and textual dump of its layout into debug report.
func storeLayout(ctx context.Context, rpt *report.Report, name string, opts engine.Options, env *state.LocalEnv, log *zap.Logger) {
	form := new(bytes.Buffer)
	if err := report.Encode(form, rpt); err != nil {
		log.Warn("Unable to encode form for debug report", zap.Error(err))
	} else {
		env.Rpt.StoreData(fmt.Sprintf("form-%s%s", name, formExt), form.Bytes())
	}

	layout := new(bytes.Buffer)
	opts.Output = layout
	if err := engine.Write(ctx, rpt, env.Data, record.New(), opts, zap.NewNop()); err != nil {
		log.Warn("Unable to record layout for debug report", zap.Error(err))
		return
	}
	env.Rpt.StoreData(fmt.Sprintf("layout-%s.txt", name), layout.Bytes())
}
