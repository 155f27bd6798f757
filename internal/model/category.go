package model

import (
	"errors"
	"strings"
)

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (c Category) EntityID() string { return c.ID }

func (c Category) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return errors.New("model: category id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("model: category name is required")
	}
	return nil
}

// DefaultCategories is the seed list shown before any category has been stored.
func DefaultCategories() []Category {
	return []Category{
		{ID: "1", Name: "ASP.NET程序设计"},
		{ID: "2", Name: "金融数据分析"},
		{ID: "3", Name: "软件测试技术"},
		{ID: "4", Name: "金融市场基础"},
		{ID: "5", Name: "个人计划"},
	}
}
