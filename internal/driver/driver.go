// Package driver runs the linter over files and directories: input
// discovery, per-file pipelines, parallelism and the result cache live
// here, keeping cmd thin.
package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tanquar/deno-lint/internal/ast"
	"github.com/tanquar/deno-lint/internal/lint"
	"github.com/tanquar/deno-lint/internal/plugin"
	"github.com/tanquar/deno-lint/internal/rules"
	"github.com/tanquar/deno-lint/internal/source"
)

// astSuffix marks lintable inputs: ESTree JSON dumps produced by a parser
// front end (acorn, espree, typescript-eslint).
const astSuffix = ".ast.json"

// Options configures a run.
type Options struct {
	// Rules selects rules by code: built-in rules are filtered here and the
	// same selection is handed to plugin sandboxes as the run's active
	// codes. Empty means everything.
	Rules []string

	// Plugins are external rule modules, run after the built-in rules.
	Plugins []plugin.Descriptor

	// Runner overrides the plugin sandbox command for descriptors that do
	// not carry their own.
	Runner []string

	// Jobs bounds file-level parallelism; <=0 means GOMAXPROCS.
	Jobs int

	// Cache enables the disk result cache.
	Cache *DiskCache
}

// FileResult is the outcome for one input file. Err is set when the file
// could not be read or decoded; diagnostics are empty in that case.
type FileResult struct {
	Path string

	// FileID is the file diagnostic spans resolve against: the sibling
	// source file (`foo.ts` next to `foo.ts.ast.json`) when it exists,
	// otherwise the dump itself.
	FileID source.FileID

	Diagnostics []lint.Diagnostic
	Failures    []*lint.PluginError
	Err         error
}

// selectRules resolves the configured rule set, preserving registry order.
func selectRules(opts Options) []lint.Rule {
	var selected []lint.Rule
	if len(opts.Rules) == 0 {
		selected = rules.All()
	} else {
		want := make(map[string]bool, len(opts.Rules))
		for _, code := range opts.Rules {
			want[code] = true
		}
		for _, r := range rules.All() {
			if want[r.Code()] {
				selected = append(selected, r)
			}
		}
	}
	for _, desc := range opts.Plugins {
		if len(desc.Runner) == 0 {
			desc.Runner = opts.Runner
		}
		// явный выбор правил действует и на плагины: незарегистрированный
		// код внутри модуля — no-op
		if len(desc.Codes) == 0 {
			desc.Codes = opts.Rules
		}
		selected = append(selected, plugin.NewHost(desc))
	}
	return selected
}

// listASTFiles возвращает отсортированный список всех *.ast.json в каталоге
func listASTFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, astSuffix) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// LintFile lints one input file.
func LintFile(ctx context.Context, path string, opts Options) (*source.FileSet, FileResult, error) {
	fileSet := source.NewFileSetWithBase(filepath.Dir(path))
	linter := lint.New(selectRules(opts)...)

	id, err := fileSet.Load(path)
	if err != nil {
		return fileSet, FileResult{Path: path, Err: err}, err
	}
	res := lintOne(ctx, path, loadSibling(fileSet, path, id), fileSet.Get(id).Content, linter, opts.Cache)
	return fileSet, res, res.Err
}

// loadSibling picks the file spans resolve against: the source file the
// dump was parsed from when it sits next to it, else the dump.
func loadSibling(fileSet *source.FileSet, path string, astID source.FileID) source.FileID {
	src := strings.TrimSuffix(path, astSuffix)
	if src == path {
		return astID
	}
	if id, err := fileSet.Load(src); err == nil {
		return id
	}
	return astID
}

// LintDir lints every *.ast.json under dir, running independent per-file
// pipelines in parallel. Results come back in sorted path order regardless
// of which goroutine finished first.
func LintDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []FileResult, error) {
	files, err := listASTFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// Предзагружаем файлы до параллельной фазы: FileSet не под мьютексом,
	// горутины его только читают
	fileIDs := make(map[string]source.FileID, len(files))
	displayIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = id
		displayIDs[path] = loadSibling(fileSet, path, id)
	}

	linter := lint.New(selectRules(opts)...)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			if loadErr, hadError := loadErrors[path]; hadError {
				results[i] = FileResult{Path: path, Err: loadErr}
				return nil
			}
			content := fileSet.Get(fileIDs[path]).Content
			results[i] = lintOne(gctx, path, displayIDs[path], content, linter, opts.Cache)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// lintOne runs the single-file pipeline: consult the cache, decode, lint,
// fill the cache. Pipelines share nothing but the immutable linter.
func lintOne(ctx context.Context, path string, id source.FileID, content []byte, linter *lint.Linter, cache *DiskCache) FileResult {
	res := FileResult{Path: path, FileID: id}

	key := cacheKey(content, linter.Rules())
	if cache != nil {
		var payload CachedResult
		if hit, err := cache.Get(key, &payload); err == nil && hit {
			res.Diagnostics = payload.Diagnostics
			return res
		}
	}

	prog, err := ast.Decode(content)
	if err != nil {
		res.Err = err
		return res
	}

	out := linter.Run(ctx, prog)
	res.Diagnostics = out.Diagnostics
	res.Failures = out.Failures

	// неудавшиеся плагины в кеш не попадают: их повтор — осознанный
	if cache != nil && len(out.Failures) == 0 {
		cache.Put(key, &CachedResult{
			Schema:      cacheSchemaVersion,
			Diagnostics: out.Diagnostics,
		})
	}
	return res
}
