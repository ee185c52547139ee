package memory

import (
	"context"
	"sort"
	"time"

	"ghostwriter-api/internal/domain/entity"
	"ghostwriter-api/internal/domain/repository"
)

// Projects 项目仓储
func (s *Store) Projects() repository.ProjectRepository { return projectRepo{s} }

// ProjectDocuments 项目文档仓储
func (s *Store) ProjectDocuments() repository.ProjectDocumentRepository { return projectDocRepo{s} }

// Parts 部仓储
func (s *Store) Parts() repository.PartRepository { return partRepo{s} }

// Chapters 章节仓储
func (s *Store) Chapters() repository.ChapterRepository { return chapterRepo{s} }

// ChapterDocuments 章节文档仓储
func (s *Store) ChapterDocuments() repository.ChapterDocumentRepository { return chapterDocRepo{s} }

// Paragraphs 段落仓储
func (s *Store) Paragraphs() repository.ParagraphRepository { return paragraphRepo{s} }

// Settings 设置仓储
func (s *Store) Settings() repository.SettingsRepository { return settingsRepo{s} }

type projectRepo struct{ s *Store }

func (r projectRepo) Create(_ context.Context, p *entity.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(); err != nil {
		return err
	}
	r.s.projects[p.ID] = clone(p)
	return nil
}

func (r projectRepo) GetByID(_ context.Context, id string) (*entity.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(); err != nil {
		return nil, err
	}
	return clone(r.s.projects[id]), nil
}

func (r projectRepo) Update(_ context.Context, p *entity.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(); err != nil {
		return err
	}
	cur, ok := r.s.projects[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	p.UpdatedAt = time.Now()
	cur.Name, cur.Description, cur.UpdatedAt = p.Name, p.Description, p.UpdatedAt
	return nil
}

func (r projectRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(); err != nil {
		return err
	}
	if _, ok := r.s.projects[id]; !ok {
		return repository.ErrNotFound
	}
	r.s.deleteProjectLocked(id)
	return nil
}

func (r projectRepo) List(_ context.Context, pagination repository.Pagination) (*repository.PagedResult[*entity.Project], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(); err != nil {
		return nil, err
	}
	all := make([]*entity.Project, 0, len(r.s.projects))
	for _, p := range r.s.projects {
		all = append(all, clone(p))
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	start := min(pagination.Offset(), len(all))
	end := min(start+pagination.Limit(), len(all))
	return repository.NewPagedResult(all[start:end], int64(len(all)), pagination), nil
}

type projectDocRepo struct{ s *Store }

func (r projectDocRepo) Create(_ context.Context, d *entity.ProjectDocument) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(); err != nil {
		return err
	}
	r.s.projectDocs[d.ID] = clone(d)
	return nil
}

func (r projectDocRepo) GetByID(_ context.Context, id string) (*entity.ProjectDocument, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(); err != nil {
		return nil, err
	}
	return clone(r.s.projectDocs[id]), nil
}

func (r projectDocRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(); err != nil {
		return err
	}
	if _, ok := r.s.projectDocs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.projectDocs, id)
	return nil
}

func (r projectDocRepo) ListByProject(_ context.Context, projectID string) ([]*entity.ProjectDocument, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(); err != nil {
		return nil, err
	}
	var out []*entity.ProjectDocument
	for _, d := range r.s.projectDocs {
		if d.ProjectID == projectID {
			out = append(out, clone(d))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type chapterDocRepo struct{ s *Store }

func (r chapterDocRepo) Create(_ context.Context, d *entity.ChapterDocument) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(); err != nil {
		return err
	}
	r.s.chapterDocs[d.ID] = clone(d)
	return nil
}

func (r chapterDocRepo) GetByID(_ context.Context, id string) (*entity.ChapterDocument, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(); err != nil {
		return nil, err
	}
	return clone(r.s.chapterDocs[id]), nil
}

func (r chapterDocRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(); err != nil {
		return err
	}
	if _, ok := r.s.chapterDocs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.chapterDocs, id)
	return nil
}

func (r chapterDocRepo) ListByChapter(_ context.Context, chapterID string) ([]*entity.ChapterDocument, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(); err != nil {
		return nil, err
	}
	var out []*entity.ChapterDocument
	for _, d := range r.s.chapterDocs {
		if d.ChapterID == chapterID {
			out = append(out, clone(d))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type partRepo struct{ s *Store }

func (r partRepo) Create(_ context.Context, p *entity.Part) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(); err != nil {
		return err
	}
	for _, existing := range r.s.parts {
		if existing.ProjectID == p.ProjectID && existing.OrderIndex == p.OrderIndex {
			return repository.ErrOrderIndexConflict
		}
	}
	r.s.parts[p.ID] = clone(p)
	return nil
}

func (r partRepo) GetByID(_ context.Context, id string) (*entity.Part, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(); err != nil {
		return nil, err
	}
	return clone(r.s.parts[id]), nil
}

func (r partRepo) Update(_ context.Context, p *entity.Part) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(); err != nil {
		return err
	}
	cur, ok := r.s.parts[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	p.UpdatedAt = time.Now()
	cur.Name, cur.Status, cur.UpdatedAt = p.Name, p.Status, p.UpdatedAt
	return nil
}

func (r partRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(); err != nil {
		return err
	}
	if _, ok := r.s.parts[id]; !ok {
		return repository.ErrNotFound
	}
	r.s.deletePartLocked(id)
	return nil
}

func (r partRepo) ListByProject(_ context.Context, projectID string) ([]*entity.Part, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(); err != nil {
		return nil, err
	}
	var out []*entity.Part
	for _, p := range r.s.parts {
		if p.ProjectID == projectID {
			out = append(out, clone(p))
		}
	}
	sortByOrder(out, func(p *entity.Part) int { return p.OrderIndex })
	return out, nil
}

func (r partRepo) MaxOrderIndex(_ context.Context, projectID string) (*int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(); err != nil {
		return nil, err
	}
	var idx []int
	for _, p := range r.s.parts {
		if p.ProjectID == projectID {
			idx = append(idx, p.OrderIndex)
		}
	}
	return maxIndex(idx), nil
}

type chapterRepo struct{ s *Store }

func (r chapterRepo) Create(_ context.Context, c *entity.Chapter) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(); err != nil {
		return err
	}
	for _, existing := range r.s.chapters {
		if existing.PartID == c.PartID && existing.OrderIndex == c.OrderIndex {
			return repository.ErrOrderIndexConflict
		}
	}
	r.s.chapters[c.ID] = clone(c)
	return nil
}

func (r chapterRepo) GetByID(_ context.Context, id string) (*entity.Chapter, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(); err != nil {
		return nil, err
	}
	return clone(r.s.chapters[id]), nil
}

func (r chapterRepo) Update(_ context.Context, c *entity.Chapter) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(); err != nil {
		return err
	}
	cur, ok := r.s.chapters[c.ID]
	if !ok {
		return repository.ErrNotFound
	}
	c.UpdatedAt = time.Now()
	cur.Name, cur.Status, cur.UpdatedAt = c.Name, c.Status, c.UpdatedAt
	return nil
}

func (r chapterRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(); err != nil {
		return err
	}
	if _, ok := r.s.chapters[id]; !ok {
		return repository.ErrNotFound
	}
	r.s.deleteChapterLocked(id)
	return nil
}

func (r chapterRepo) ListByPart(_ context.Context, partID string) ([]*entity.Chapter, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(); err != nil {
		return nil, err
	}
	var out []*entity.Chapter
	for _, c := range r.s.chapters {
		if c.PartID == partID {
			out = append(out, clone(c))
		}
	}
	sortByOrder(out, func(c *entity.Chapter) int { return c.OrderIndex })
	return out, nil
}

func (r chapterRepo) ListByParts(_ context.Context, partIDs []string) ([]*entity.Chapter, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(); err != nil {
		return nil, err
	}
	wanted := make(map[string]bool, len(partIDs))
	for _, id := range partIDs {
		wanted[id] = true
	}
	var out []*entity.Chapter
	for _, c := range r.s.chapters {
		if wanted[c.PartID] {
			out = append(out, clone(c))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PartID != out[j].PartID {
			return out[i].PartID < out[j].PartID
		}
		return out[i].OrderIndex < out[j].OrderIndex
	})
	return out, nil
}

func (r chapterRepo) MaxOrderIndex(_ context.Context, partID string) (*int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(); err != nil {
		return nil, err
	}
	var idx []int
	for _, c := range r.s.chapters {
		if c.PartID == partID {
			idx = append(idx, c.OrderIndex)
		}
	}
	return maxIndex(idx), nil
}

func (r chapterRepo) GetProjectID(_ context.Context, chapterID string) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(); err != nil {
		return "", err
	}
	c, ok := r.s.chapters[chapterID]
	if !ok {
		return "", nil
	}
	p, ok := r.s.parts[c.PartID]
	if !ok {
		return "", nil
	}
	return p.ProjectID, nil
}

type paragraphRepo struct{ s *Store }

func (r paragraphRepo) CreateBatch(_ context.Context, paragraphs []*entity.Paragraph) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(); err != nil {
		return err
	}
	taken := make(map[string]map[int]bool)
	for _, p := range r.s.paragraphs {
		if taken[p.ChapterID] == nil {
			taken[p.ChapterID] = make(map[int]bool)
		}
		taken[p.ChapterID][p.OrderIndex] = true
	}
	for _, p := range paragraphs {
		if taken[p.ChapterID] == nil {
			taken[p.ChapterID] = make(map[int]bool)
		}
		if taken[p.ChapterID][p.OrderIndex] {
			return repository.ErrOrderIndexConflict
		}
		taken[p.ChapterID][p.OrderIndex] = true
	}
	for _, p := range paragraphs {
		r.s.paragraphs[p.ID] = clone(p)
	}
	return nil
}

func (r paragraphRepo) GetByID(_ context.Context, id string) (*entity.Paragraph, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(); err != nil {
		return nil, err
	}
	return clone(r.s.paragraphs[id]), nil
}

func (r paragraphRepo) Update(_ context.Context, p *entity.Paragraph) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(); err != nil {
		return err
	}
	cur, ok := r.s.paragraphs[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	p.UpdatedAt = time.Now()
	cur.Content, cur.ApprovedAt, cur.UpdatedAt = p.Content, p.ApprovedAt, p.UpdatedAt
	return nil
}

func (r paragraphRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(); err != nil {
		return err
	}
	if _, ok := r.s.paragraphs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.paragraphs, id)
	return nil
}

func (r paragraphRepo) list(chapterID string, approvedOnly bool) []*entity.Paragraph {
	var out []*entity.Paragraph
	for _, p := range r.s.paragraphs {
		if p.ChapterID != chapterID || (approvedOnly && !p.IsApproved()) {
			continue
		}
		out = append(out, clone(p))
	}
	sortByOrder(out, func(p *entity.Paragraph) int { return p.OrderIndex })
	return out
}

func (r paragraphRepo) ListByChapter(_ context.Context, chapterID string) ([]*entity.Paragraph, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(); err != nil {
		return nil, err
	}
	return r.list(chapterID, false), nil
}

func (r paragraphRepo) ListApprovedByChapter(_ context.Context, chapterID string) ([]*entity.Paragraph, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(); err != nil {
		return nil, err
	}
	return r.list(chapterID, true), nil
}

func (r paragraphRepo) MaxOrderIndex(_ context.Context, chapterID string) (*int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(); err != nil {
		return nil, err
	}
	var idx []int
	for _, p := range r.s.paragraphs {
		if p.ChapterID == chapterID {
			idx = append(idx, p.OrderIndex)
		}
	}
	return maxIndex(idx), nil
}

type settingsRepo struct{ s *Store }

func (r settingsRepo) Get(_ context.Context) (*entity.Settings, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(); err != nil {
		return nil, err
	}
	return clone(r.s.settings), nil
}

func (r settingsRepo) Upsert(_ context.Context, settings *entity.Settings) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(); err != nil {
		return err
	}
	settings.ID = entity.SettingsID
	settings.UpdatedAt = time.Now()
	r.s.settings = clone(settings)
	return nil
}
