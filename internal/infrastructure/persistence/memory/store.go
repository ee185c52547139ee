// Package memory 提供进程内仓储实现，用于本地开发与测试
package memory

import (
	"context"
	"sort"
	"sync"

	"ghostwriter-api/internal/domain/entity"
	"ghostwriter-api/internal/domain/repository"
)

// Store 进程内数据集合，维护与数据库相同的唯一排序号与级联删除语义
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	projects     map[string]*entity.Project
	projectDocs  map[string]*entity.ProjectDocument
	parts        map[string]*entity.Part
	chapters     map[string]*entity.Chapter
	chapterDocs  map[string]*entity.ChapterDocument
	paragraphs   map[string]*entity.Paragraph
	settings     *entity.Settings
	failNextCall error
}

// NewStore 创建空数据集合
func NewStore() *Store {
	return &Store{
		projects:    make(map[string]*entity.Project),
		projectDocs: make(map[string]*entity.ProjectDocument),
		parts:       make(map[string]*entity.Part),
		chapters:    make(map[string]*entity.Chapter),
		chapterDocs: make(map[string]*entity.ChapterDocument),
		paragraphs:  make(map[string]*entity.Paragraph),
	}
}

// FailNext 使下一次仓储调用返回 err
func (s *Store) FailNext(err error) {
	s.mu.Lock()
	s.failNextCall = err
	s.mu.Unlock()
}

// takeFailure 调用方需持有写锁
func (s *Store) takeFailure() error {
	err := s.failNextCall
	s.failNextCall = nil
	return err
}

type txKey struct{}

// WithTransaction 串行执行事务函数，不支持回滚
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(context.WithValue(ctx, txKey{}, struct{}{}))
}

var _ repository.Transactor = (*Store)(nil)

func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func maxIndex(indices []int) *int {
	if len(indices) == 0 {
		return nil
	}
	m := indices[0]
	for _, v := range indices[1:] {
		if v > m {
			m = v
		}
	}
	return &m
}

func sortByOrder[T any](items []T, order func(T) int) {
	sort.SliceStable(items, func(i, j int) bool { return order(items[i]) < order(items[j]) })
}

// deleteChapterLocked 级联删除章节下的段落与文档
func (s *Store) deleteChapterLocked(id string) {
	delete(s.chapters, id)
	for pid, p := range s.paragraphs {
		if p.ChapterID == id {
			delete(s.paragraphs, pid)
		}
	}
	for did, d := range s.chapterDocs {
		if d.ChapterID == id {
			delete(s.chapterDocs, did)
		}
	}
}

func (s *Store) deletePartLocked(id string) {
	delete(s.parts, id)
	for cid, c := range s.chapters {
		if c.PartID == id {
			s.deleteChapterLocked(cid)
		}
	}
}

func (s *Store) deleteProjectLocked(id string) {
	delete(s.projects, id)
	for pid, p := range s.parts {
		if p.ProjectID == id {
			s.deletePartLocked(pid)
		}
	}
	for did, d := range s.projectDocs {
		if d.ProjectID == id {
			delete(s.projectDocs, did)
		}
	}
}
