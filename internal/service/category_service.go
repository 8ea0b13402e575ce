package service

import (
	"errors"

	"examen_backend/internal/model"
	"examen_backend/internal/repository"
	"examen_backend/internal/util"

	"gorm.io/gorm"
)

type CategoryService struct {
	Repo *repository.CategoryRepository
}

func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{Repo: repo}
}

type CategoryReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	Icon        *string `json:"icon"`
	Active      *bool   `json:"active"`
}

func (s *CategoryService) Create(req CategoryReq) (*model.Category, error) {
	if req.Name == nil || *req.Name == "" {
		return nil, util.ErrValidation
	}

	category := &model.Category{Name: *req.Name, Active: true}
	applyCategoryReq(category, req)

	if err := s.Repo.Create(category); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, util.ErrConflict
		}
		return nil, err
	}
	return category, nil
}

func applyCategoryReq(c *model.Category, req CategoryReq) {
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.Color != nil {
		c.Color = *req.Color
	}
	if req.Icon != nil {
		c.Icon = *req.Icon
	}
	if req.Active != nil {
		c.Active = *req.Active
	}
}

func (s *CategoryService) Update(id uint, req CategoryReq) (*model.Category, error) {
	category, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}

	applyCategoryReq(category, req)
	if err := s.Repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Delete(id uint) error {
	return s.Repo.Delete(id)
}

func (s *CategoryService) ListActive() ([]model.Category, error) {
	return s.Repo.ListActive()
}
