package analyzer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/amosWeiskopf/onpage/internal/models"
	"github.com/amosWeiskopf/onpage/pkg/storage"
	"github.com/amosWeiskopf/onpage/pkg/textdecode"
	"github.com/amosWeiskopf/onpage/pkg/workbook"
)

var (
	// ErrNoKeywords is returned when the keyword source yields no usable keyword.
	ErrNoKeywords = errors.New("no usable keywords")
	// ErrNoReportFiles is returned when no .txt or .html file is found to inspect.
	ErrNoReportFiles = errors.New("no report files found")
)

// reportExtensions are the file types produced by the audit pipeline.
var reportExtensions = map[string]bool{".txt": true, ".html": true}

// Analyzer counts keyword occurrences across persisted reports and pages
type Analyzer struct {
	config *Config
	logger *zap.Logger
	now    func() time.Time
}

// Config holds analyzer configuration
type Config struct {
	KeywordFile  string   // xlsx file, keywords in column A from row 2
	InputDirs    []string // directories scanned for .txt and .html files
	ExcludeFiles []string // file names never inspected
	OutputDir    string   // where output_<timestamp>.xlsx is written
	SheetName    string   // sheet name of the output workbook
}

// Document is the lower-cased content of one inspected file.
type Document struct {
	File    models.ReportFile
	Content string
}

// New creates an Analyzer with the given configuration
func New(config *Config, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{config: config, logger: logger, now: time.Now}
}

// Run loads the keywords, scans the input directories, counts matches and
// writes the results workbook. It returns the path of the written file.
func (a *Analyzer) Run() (string, []models.KeywordResult, error) {
	keywords, err := a.LoadKeywords()
	if err != nil {
		return "", nil, err
	}

	files := a.FindReportFiles()
	if len(files) == 0 {
		return "", nil, fmt.Errorf("%w in %s", ErrNoReportFiles, strings.Join(a.config.InputDirs, ", "))
	}

	results := CountKeywords(keywords, a.LoadDocuments(files))
	for _, res := range results {
		a.logger.Info("Keyword analyzed",
			zap.String("keyword", res.Keyword),
			zap.Int("matches", res.MatchCount),
			zap.Int("files", len(res.FoundIn)))
	}

	path, err := a.WriteResults(results)
	if err != nil {
		return "", results, err
	}
	return path, results, nil
}

// LoadKeywords reads and normalizes the keyword column of the keyword file.
func (a *Analyzer) LoadKeywords() ([]string, error) {
	a.logger.Info("Reading keywords", zap.String("file", a.config.KeywordFile))

	raw, err := workbook.ReadKeywordColumn(a.config.KeywordFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoKeywords, err)
	}

	keywords, duplicates := NormalizeKeywords(raw)
	if duplicates > 0 {
		a.logger.Warn("Duplicate keywords removed", zap.Int("count", duplicates))
	}
	if len(keywords) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoKeywords, a.config.KeywordFile)
	}

	a.logger.Info("Unique keywords loaded", zap.Int("count", len(keywords)))
	return keywords, nil
}

// NormalizeKeywords trims and lower-cases raw keywords, drops empty ones,
// removes duplicates and sorts the result. It also returns how many
// duplicates were removed.
func NormalizeKeywords(raw []string) ([]string, int) {
	seen := make(map[string]bool, len(raw))
	kept := 0
	keywords := make([]string, 0, len(raw))

	for _, r := range raw {
		kw := strings.ToLower(strings.TrimSpace(r))
		if kw == "" {
			continue
		}
		kept++
		if seen[kw] {
			continue
		}
		seen[kw] = true
		keywords = append(keywords, kw)
	}

	sort.Strings(keywords)
	return keywords, kept - len(keywords)
}

// FindReportFiles lists the .txt and .html files directly inside each input
// directory, in directory order then file name order. Missing directories
// are skipped with a warning.
func (a *Analyzer) FindReportFiles() []models.ReportFile {
	exclude := make(map[string]bool, len(a.config.ExcludeFiles))
	for _, name := range a.config.ExcludeFiles {
		exclude[filepath.Base(name)] = true
	}

	var files []models.ReportFile
	for _, dir := range a.config.InputDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			a.logger.Warn("Input directory not found, skipping", zap.String("dir", dir), zap.Error(err))
			continue
		}
		a.logger.Debug("Inspecting directory", zap.String("dir", dir))

		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || exclude[name] || !reportExtensions[filepath.Ext(name)] {
				continue
			}
			files = append(files, models.ReportFile{
				ID:   filepath.Join(filepath.Base(dir), name),
				Path: filepath.Join(dir, name),
			})
		}
	}

	a.logger.Info("Report files found", zap.Int("count", len(files)))
	return files
}

// LoadDocuments reads and lower-cases every file. A file that cannot be
// read or decoded yields empty content.
func (a *Analyzer) LoadDocuments(files []models.ReportFile) []Document {
	docs := make([]Document, 0, len(files))
	for _, file := range files {
		text, _, err := textdecode.ReadFile(file.Path, textdecode.Fallback)
		if err != nil {
			a.logger.Warn("Failed to read report file", zap.String("file", file.ID), zap.Error(err))
		}
		docs = append(docs, Document{File: file, Content: strings.ToLower(text)})
	}
	return docs
}

// CountKeywords counts non-overlapping occurrences of each keyword in every
// document. Keywords are matched as plain substrings.
func CountKeywords(keywords []string, docs []Document) []models.KeywordResult {
	results := make([]models.KeywordResult, 0, len(keywords))
	for _, kw := range keywords {
		res := models.KeywordResult{Keyword: kw, FoundIn: []string{}}
		for _, doc := range docs {
			if doc.Content == "" {
				continue
			}
			if n := strings.Count(doc.Content, kw); n > 0 {
				res.MatchCount += n
				res.FoundIn = append(res.FoundIn, doc.File.ID)
			}
		}
		results = append(results, res)
	}
	return results
}

// OutputFileName returns the timestamped results file name for t.
func OutputFileName(t time.Time) string {
	return fmt.Sprintf("output_%s.xlsx", t.Format("20060102_150405"))
}

// WriteResults writes results to a timestamped workbook in the output directory.
func (a *Analyzer) WriteResults(results []models.KeywordResult) (string, error) {
	if err := storage.EnsureDir(a.config.OutputDir, a.logger); err != nil {
		return "", err
	}

	path := filepath.Join(a.config.OutputDir, OutputFileName(a.now()))
	if err := workbook.WriteResults(path, a.config.SheetName, results); err != nil {
		return "", err
	}

	a.logger.Info("Keyword report written", zap.String("path", path))
	return path, nil
}
