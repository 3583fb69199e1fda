package catalog

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// DefaultDocumentKey names the single catalog document the shop uses.
const DefaultDocumentKey = "default"

// Document is the persisted form of a Tree.
type Document struct {
	Key       string         `gorm:"column:doc_key;primaryKey"`
	Body      datatypes.JSON `gorm:"column:body;not null"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (Document) TableName() string { return "catalog_documents" }

// Tree decodes the stored body. An empty body yields an empty tree.
func (d Document) Tree() (*Tree, error) {
	tree := NewTree()
	if len(d.Body) == 0 {
		return tree, nil
	}
	if err := json.Unmarshal(d.Body, tree); err != nil {
		return nil, fmt.Errorf("decode catalog document %q: %w", d.Key, err)
	}
	tree.normalize()
	return tree, nil
}

// NewDocument encodes tree under key.
func NewDocument(key string, tree *Tree) (Document, error) {
	if tree == nil {
		tree = NewTree()
	}
	tree.normalize()
	body, err := json.Marshal(tree)
	if err != nil {
		return Document{}, fmt.Errorf("encode catalog document: %w", err)
	}
	return Document{Key: key, Body: datatypes.JSON(body)}, nil
}
