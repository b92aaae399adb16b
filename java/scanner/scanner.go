// Package scanner runs background syntax scans over directories, file
// lists, and source archives, collecting per-file parser diagnostics.
package scanner

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/dhamidi/javaparse/java/parser"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

type Request struct {
	ID        string
	Path      string
	Files     []string
	ZipFile   string
	CreatedAt time.Time
}

// FileReport is the outcome of parsing one source file.
type FileReport struct {
	File        string
	Diagnostics []parser.Diagnostic
	Complete    bool
}

func (r FileReport) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == parser.SeverityError {
			return true
		}
	}
	return false
}

type Result struct {
	ID        string
	Status    Status
	Request   Request
	Reports   []FileReport
	Error     string
	Errors    []string
	StartedAt time.Time
	EndedAt   time.Time
	Progress  int
	Total     int
	done      chan struct{}
}

func (r *Result) ProgressPercent() int {
	if r.Total == 0 {
		return 0
	}
	return (r.Progress * 100) / r.Total
}

// ErrorCount returns the number of scanned files with at least one
// error diagnostic.
func (r *Result) ErrorCount() int {
	count := 0
	for _, report := range r.Reports {
		if report.HasErrors() {
			count++
		}
	}
	return count
}

type Scanner struct {
	mu       sync.RWMutex
	scans    map[string]*Result
	requests chan Request
	nextID   int
}

func New() *Scanner {
	s := &Scanner{
		scans:    make(map[string]*Result),
		requests: make(chan Request, 100),
	}
	go s.run()
	return s
}

func (s *Scanner) run() {
	for req := range s.requests {
		s.processScan(req)
	}
}

type scanResult struct {
	reports []FileReport
	errors  []string
}

func (s *Scanner) processScan(req Request) {
	s.mu.Lock()
	result := s.scans[req.ID]
	result.Status = StatusInProgress
	result.StartedAt = time.Now()
	s.mu.Unlock()

	var sr scanResult

	if req.Path != "" {
		sr = s.scanDirectory(req.ID, req.Path)
	} else if len(req.Files) > 0 {
		sr = s.scanFiles(req.ID, req.Files)
	} else if req.ZipFile != "" {
		sr = s.scanZipFile(req.ID, req.ZipFile)
	} else {
		sr.errors = append(sr.errors, "no path, files, or zip file provided")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	result.EndedAt = time.Now()
	result.Reports = sr.reports
	result.Errors = sr.errors
	if len(sr.errors) > 0 && len(sr.reports) == 0 {
		result.Status = StatusFailed
		result.Error = sr.errors[0]
	} else {
		result.Status = StatusCompleted
	}
	close(result.done)
}

func (s *Scanner) scanDirectory(id, path string) scanResult {
	var files []string
	var errors []string
	err := filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			errors = append(errors, fmt.Sprintf("walk %s: %v", p, err))
			return nil
		}
		if !info.IsDir() && filepath.Ext(p) == ".java" {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		errors = append(errors, fmt.Sprintf("walk %s: %v", path, err))
	}
	sr := s.scanFiles(id, files)
	sr.errors = append(errors, sr.errors...)
	return sr
}

func (s *Scanner) scanFiles(id string, files []string) scanResult {
	s.mu.Lock()
	s.scans[id].Total = len(files)
	s.mu.Unlock()

	var sr scanResult
	for i, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			sr.errors = append(sr.errors, fmt.Sprintf("read %s: %v", file, err))
		} else {
			sr.reports = append(sr.reports, parseReport(file, data))
		}

		s.mu.Lock()
		s.scans[id].Progress = i + 1
		s.mu.Unlock()
	}
	return sr
}

// scanZipFile parses every .java entry in a source archive such as the
// JDK's src.zip, including .java entries of jars nested inside it.
func (s *Scanner) scanZipFile(id, path string) scanResult {
	r, err := zip.OpenReader(path)
	if err != nil {
		return scanResult{errors: []string{fmt.Sprintf("open zip: %v", err)}}
	}
	defer r.Close()

	var sourceFiles []*zip.File
	var jarFiles []*zip.File
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		switch filepath.Ext(f.Name) {
		case ".java":
			sourceFiles = append(sourceFiles, f)
		case ".jar":
			jarFiles = append(jarFiles, f)
		}
	}

	total := len(sourceFiles)
	for _, jarFile := range jarFiles {
		total += countJavaFilesInJar(jarFile)
	}

	s.mu.Lock()
	s.scans[id].Total = total
	s.mu.Unlock()

	var sr scanResult
	progress := 0
	bump := func() {
		progress++
		s.mu.Lock()
		s.scans[id].Progress = progress
		s.mu.Unlock()
	}

	for _, f := range sourceFiles {
		report, err := parseZipEntry(f, path)
		if err != nil {
			sr.errors = append(sr.errors, err.Error())
		} else {
			sr.reports = append(sr.reports, report)
		}
		bump()
	}

	for _, jarFile := range jarFiles {
		jarSr := scanJarInZip(jarFile, bump)
		sr.reports = append(sr.reports, jarSr.reports...)
		sr.errors = append(sr.errors, jarSr.errors...)
	}

	return sr
}

func parseZipEntry(f *zip.File, zipPath string) (FileReport, error) {
	rc, err := f.Open()
	if err != nil {
		return FileReport{}, fmt.Errorf("open %s in %s: %v", f.Name, zipPath, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return FileReport{}, fmt.Errorf("read %s in %s: %v", f.Name, zipPath, err)
	}

	return parseReport(zipPath+"!"+f.Name, data), nil
}

func countJavaFilesInJar(jarFile *zip.File) int {
	jarReader, err := openNestedJar(jarFile)
	if err != nil {
		return 0
	}
	count := 0
	for _, f := range jarReader.File {
		if !f.FileInfo().IsDir() && filepath.Ext(f.Name) == ".java" {
			count++
		}
	}
	return count
}

func scanJarInZip(jarFile *zip.File, onProgress func()) scanResult {
	jarReader, err := openNestedJar(jarFile)
	if err != nil {
		return scanResult{errors: []string{fmt.Sprintf("open jar %s: %v", jarFile.Name, err)}}
	}

	var sr scanResult
	for _, f := range jarReader.File {
		if f.FileInfo().IsDir() || filepath.Ext(f.Name) != ".java" {
			continue
		}
		report, err := parseZipEntry(f, jarFile.Name)
		if err != nil {
			sr.errors = append(sr.errors, err.Error())
		} else {
			sr.reports = append(sr.reports, report)
		}
		onProgress()
	}
	return sr
}

func openNestedJar(jarFile *zip.File) (*zip.Reader, error) {
	rc, err := jarFile.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	jarData, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}

	return zip.NewReader(bytes.NewReader(jarData), int64(len(jarData)))
}

func parseReport(file string, data []byte) FileReport {
	p := parser.ParseCompilationUnit(bytes.NewReader(data), parser.WithFile(file))
	p.Finish()
	return FileReport{
		File:        file,
		Diagnostics: p.Diagnostics(),
		Complete:    p.IsComplete(),
	}
}

func (s *Scanner) Submit(req Request) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	req.ID = fmt.Sprintf("%d", s.nextID)
	req.CreatedAt = time.Now()

	s.scans[req.ID] = &Result{
		ID:      req.ID,
		Status:  StatusPending,
		Request: req,
		done:    make(chan struct{}),
	}

	s.requests <- req
	return req.ID
}

func (s *Scanner) Get(id string) (*Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.scans[id]
	return result, ok
}

// Wait blocks until the scan with the given id finishes and returns it.
func (s *Scanner) Wait(id string) (*Result, bool) {
	s.mu.RLock()
	result, ok := s.scans[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	<-result.done
	return result, true
}

func (s *Scanner) List() []*Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	results := make([]*Result, 0, len(s.scans))
	for _, r := range s.scans {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].ID < results[j].ID
	})
	return results
}
