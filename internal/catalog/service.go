package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	pkgerrors "github.com/mobishop/mobishop-backend/pkg/errors"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type documentCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// LevelInput names a node of the tree. Only Gender is mandatory; Group and
// Sub narrow the target one level at a time.
type LevelInput struct {
	Gender string `json:"gender" validate:"required"`
	Group  string `json:"group"`
	Sub    string `json:"sub"`
}

func (in LevelInput) normalized() (LevelInput, error) {
	out := LevelInput{
		Gender: strings.TrimSpace(in.Gender),
		Group:  strings.TrimSpace(in.Group),
		Sub:    strings.TrimSpace(in.Sub),
	}
	if out.Gender == "" {
		return out, pkgerrors.New(pkgerrors.CodeValidation, "gender required")
	}
	if out.Sub != "" && out.Group == "" {
		return out, pkgerrors.New(pkgerrors.CodeValidation, "group required when sub is set")
	}
	for _, label := range []string{out.Gender, out.Group, out.Sub} {
		if err := ValidateLabel(label); err != nil {
			return out, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "category labels must not contain spaces").
				WithDetails(map[string]any{"label": label})
		}
	}
	return out, nil
}

// Service reads and mutates the shop's catalog document.
type Service interface {
	Get(ctx context.Context) (*Tree, error)
	Insert(ctx context.Context, in LevelInput) (*Tree, error)
	Delete(ctx context.Context, in LevelInput) (*Tree, error)
	AddColor(ctx context.Context, color Color) (*Tree, error)
	RemoveColor(ctx context.Context, value string) (*Tree, error)
	AddSize(ctx context.Context, size string) (*Tree, error)
	RemoveSize(ctx context.Context, size string) (*Tree, error)
}

type ServiceParams struct {
	Repo     *Repository
	Tx       txRunner
	Cache    documentCache
	CacheKey string
	CacheTTL time.Duration
}

type service struct {
	repo     *Repository
	tx       txRunner
	cache    documentCache
	cacheKey string
	cacheTTL time.Duration
}

// NewService wires the catalog service. Cache is optional.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog repo is required")
	}
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction runner is required")
	}
	key := params.CacheKey
	if key == "" {
		key = "catalog:" + DefaultDocumentKey
	}
	return &service{
		repo:     params.Repo,
		tx:       params.Tx,
		cache:    params.Cache,
		cacheKey: key,
		cacheTTL: params.CacheTTL,
	}, nil
}

func (s *service) Get(ctx context.Context) (*Tree, error) {
	if tree, ok := s.cached(ctx); ok {
		return tree, nil
	}
	doc, err := s.repo.Find(ctx, DefaultDocumentKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewTree(), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog")
	}
	tree, err := doc.Tree()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode catalog")
	}
	s.store(ctx, tree)
	return tree, nil
}

// Insert adds the deepest level named by in, creating missing parents.
func (s *service) Insert(ctx context.Context, in LevelInput) (*Tree, error) {
	level, err := in.normalized()
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, func(t *Tree) {
		switch {
		case level.Sub != "":
			t.AddSubcategory(level.Gender, level.Group, level.Sub)
		case level.Group != "":
			t.AddGroup(level.Gender, level.Group)
		default:
			t.AddGender(level.Gender)
		}
	})
}

// Delete removes the deepest level named by in together with its children.
func (s *service) Delete(ctx context.Context, in LevelInput) (*Tree, error) {
	level, err := in.normalized()
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, func(t *Tree) {
		switch {
		case level.Sub != "":
			t.RemoveSubcategory(level.Gender, level.Group, level.Sub)
		case level.Group != "":
			t.RemoveGroup(level.Gender, level.Group)
		default:
			t.RemoveGender(level.Gender)
		}
	})
}

func (s *service) AddColor(ctx context.Context, color Color) (*Tree, error) {
	color.Label = strings.TrimSpace(color.Label)
	color.Value = strings.TrimSpace(color.Value)
	if color.Value == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "color value required")
	}
	if color.Label == "" {
		color.Label = color.Value
	}
	return s.mutate(ctx, func(t *Tree) { t.AddColor(color) })
}

func (s *service) RemoveColor(ctx context.Context, value string) (*Tree, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "color value required")
	}
	return s.mutate(ctx, func(t *Tree) { t.RemoveColor(value) })
}

func (s *service) AddSize(ctx context.Context, size string) (*Tree, error) {
	size = strings.TrimSpace(size)
	if size == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "size required")
	}
	return s.mutate(ctx, func(t *Tree) { t.AddSize(size) })
}

func (s *service) RemoveSize(ctx context.Context, size string) (*Tree, error) {
	size = strings.TrimSpace(size)
	if size == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "size required")
	}
	return s.mutate(ctx, func(t *Tree) { t.RemoveSize(size) })
}

// mutate performs a read-modify-write of the whole document. There is no
// version check, so the last concurrent writer wins.
func (s *service) mutate(ctx context.Context, apply func(*Tree)) (*Tree, error) {
	var result *Tree
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		tree := NewTree()
		doc, err := repo.Find(ctx, DefaultDocumentKey)
		switch {
		case err == nil:
			if tree, err = doc.Tree(); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode catalog")
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog")
		}

		apply(tree)

		next, err := NewDocument(DefaultDocumentKey, tree)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode catalog")
		}
		if err := repo.Save(ctx, &next); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save catalog")
		}
		result = tree
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.store(ctx, result)
	return result, nil
}

func (s *service) cached(ctx context.Context) (*Tree, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, s.cacheKey)
	if err != nil || raw == "" {
		return nil, false
	}
	tree := NewTree()
	if err := json.Unmarshal([]byte(raw), tree); err != nil {
		_ = s.cache.Del(ctx, s.cacheKey)
		return nil, false
	}
	tree.normalize()
	return tree, true
}

// store refreshes the cache; a failed write only costs the next reader a
// database round trip.
func (s *service) store(ctx context.Context, tree *Tree) {
	if s.cache == nil || tree == nil {
		return
	}
	body, err := json.Marshal(tree)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cacheKey, string(body), s.cacheTTL); err != nil {
		_ = s.cache.Del(ctx, s.cacheKey)
	}
}
