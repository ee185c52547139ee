package dto

import (
	"strings"
	"time"

	"ghostwriter-api/internal/domain/entity"
)

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=5000"`
}

// ToProjectEntity 转换为项目实体
func (r *CreateProjectRequest) ToProjectEntity() *entity.Project {
	return entity.NewProject(strings.TrimSpace(r.Name), r.Description)
}

// UpdateProjectRequest 更新项目请求，未出现的字段保持不变
type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=5000"`
}

// ApplyToProject 应用更新
func (r *UpdateProjectRequest) ApplyToProject(p *entity.Project) {
	if r.Name != nil && strings.TrimSpace(*r.Name) != "" {
		p.Name = strings.TrimSpace(*r.Name)
	}
	if r.Description != nil {
		p.Description = r.Description
	}
}

// ProjectResponse 项目响应
type ProjectResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProjectListResponse 项目列表响应
type ProjectListResponse struct {
	Projects []*ProjectResponse `json:"projects"`
}

// ToProjectResponse 将领域实体转换为响应 DTO
func ToProjectResponse(p *entity.Project) *ProjectResponse {
	if p == nil {
		return nil
	}
	return &ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProjectListResponse 转换项目列表
func ToProjectListResponse(projects []*entity.Project) *ProjectListResponse {
	out := &ProjectListResponse{Projects: make([]*ProjectResponse, 0, len(projects))}
	for _, p := range projects {
		out.Projects = append(out.Projects, ToProjectResponse(p))
	}
	return out
}
