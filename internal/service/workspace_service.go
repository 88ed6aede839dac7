package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"cadtools/internal/collection"
	"cadtools/internal/domain"
	"cadtools/internal/port"
	"cadtools/internal/textutil"
)

// LoadResult summarizes a workspace load from the document provider.
type LoadResult struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
	Total   int `json:"total"`
}

// WorkspaceService holds the set of open documents, ordered by full path.
type WorkspaceService interface {
	Add(doc *domain.Record) (bool, error)
	Load(ctx context.Context, replace bool) (*LoadResult, error)
	List(types []domain.DocumentType, query string) []*domain.Record
	Get(path string) (*domain.Record, error)
	At(index int) (*domain.Record, error)
	Find(text string) (*domain.Record, error)
	FileNames(search string) []string
	Remove(path string) error
	RemoveAt(index int) error
	Clear()
	Len() int
	CountSheets(ctx context.Context) (*domain.SheetSizeReport, error)
}

type workspaceService struct {
	mu       sync.RWMutex
	docs     *collection.Collection[*domain.Record]
	provider port.DocumentProvider
	sheetSvc SheetSizeService
	log      *zap.Logger
}

// NewWorkspaceService creates an empty workspace. provider may be nil when
// documents are only added through Add.
func NewWorkspaceService(provider port.DocumentProvider, sheetSvc SheetSizeService, log *zap.Logger) WorkspaceService {
	if log == nil {
		log = zap.NewNop()
	}
	return &workspaceService{
		docs:     collection.New[*domain.Record](),
		provider: provider,
		sheetSvc: sheetSvc,
		log:      log.Named("workspace"),
	}
}

func (s *workspaceService) Add(doc *domain.Record) (bool, error) {
	if doc == nil || strings.TrimSpace(doc.FullPath) == "" {
		return false, fmt.Errorf("%w: full file name is required", domain.ErrInvalidDocument)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docs.Add(doc), nil
}

func (s *workspaceService) Load(ctx context.Context, replace bool) (*LoadResult, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("%w: no document provider configured", domain.ErrManifestReadFailed)
	}
	records, err := s.provider.Documents(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if replace {
		s.docs.Clear()
	}
	result := &LoadResult{}
	for _, r := range records {
		if s.docs.Add(r) {
			result.Added++
		} else {
			result.Skipped++
		}
	}
	result.Total = s.docs.Len()

	s.log.Info("documents loaded",
		zap.Int("added", result.Added),
		zap.Int("skipped", result.Skipped),
		zap.Int("total", result.Total),
	)
	return result, nil
}

// List returns the documents of the given types whose full path contains query.
// No types means all types; an empty query matches everything.
func (s *workspaceService) List(types []domain.DocumentType, query string) []*domain.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := s.docs
	if len(types) > 0 {
		docs = docs.FilterByType(types...)
	}
	needle := strings.ToLower(query)
	out := []*domain.Record{}
	for key, doc := range docs.All() {
		if needle == "" || strings.Contains(strings.ToLower(key), needle) {
			out = append(out, doc)
		}
	}
	return out
}

func (s *workspaceService) Get(path string) (*domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs.Get(path)
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return doc, nil
}

func (s *workspaceService) At(index int) (*domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs.At(index)
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return doc, nil
}

func (s *workspaceService) Find(text string) (*domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs.FindByName(text)
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return doc, nil
}

// FileNames returns the base names in order, narrowed by a case-insensitive search when given.
func (s *workspaceService) FileNames(search string) []string {
	s.mu.RLock()
	names := s.docs.FileNames()
	s.mu.RUnlock()
	if search == "" {
		return names
	}
	return textutil.Search(names, search)
}

func (s *workspaceService) Remove(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.docs.Remove(path) {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (s *workspaceService) RemoveAt(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.docs.RemoveAt(index) {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (s *workspaceService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs.Clear()
}

func (s *workspaceService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docs.Len()
}

// CountSheets counts the sheet formats of every drawing in the workspace.
func (s *workspaceService) CountSheets(ctx context.Context) (*domain.SheetSizeReport, error) {
	s.mu.RLock()
	drawings := s.docs.FilterByType(domain.DocumentTypeDrawing).Values()
	s.mu.RUnlock()

	docs := make([]domain.DrawingDocument, len(drawings))
	for i, d := range drawings {
		docs[i] = d
	}
	return s.sheetSvc.Count(ctx, docs)
}
