package postgres

import "time"

type documentModel struct {
	Collection string    `gorm:"column:collection;primaryKey"`
	Key        string    `gorm:"column:key;primaryKey"`
	Rev        string    `gorm:"column:rev"`
	Body       string    `gorm:"column:body;type:jsonb"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (documentModel) TableName() string { return "documents" }
