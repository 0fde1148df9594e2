package repository

import (
	"context"

	"github.com/dohuuduy/quanlytailieu-sub000/internal/model"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/store"
)

// documentJoins 文档列表默认展开的关联
var documentJoins = []string{"Category", "IssuingUser"}

// DocumentRepository 文档数据访问接口
type DocumentRepository interface {
	Create(ctx context.Context, doc *model.Document) error
	GetByID(ctx context.Context, id string) (*model.Document, error)
	GetByCode(ctx context.Context, code string) (*model.Document, error)
	List(ctx context.Context) ([]model.Document, error)
	Update(ctx context.Context, doc *model.Document) error
	UpdateStatus(ctx context.Context, id string, status model.Status) error
	Delete(ctx context.Context, id string) error
	// ReplaceStandards 用 standardIDs 覆盖文档的标准关联
	ReplaceStandards(ctx context.Context, documentID string, standardIDs []string) error
}

type documentRepo struct {
	st store.Store
}

// NewDocumentRepo 创建 DocumentRepository 实例
func NewDocumentRepo(st store.Store) DocumentRepository {
	return &documentRepo{st: st}
}

func (r *documentRepo) Create(ctx context.Context, doc *model.Document) error {
	return r.st.Insert(ctx, model.TableDocuments, doc)
}

func (r *documentRepo) GetByID(ctx context.Context, id string) (*model.Document, error) {
	return getByID[model.Document](ctx, r.st, model.TableDocuments, id, documentJoins...)
}

func (r *documentRepo) GetByCode(ctx context.Context, code string) (*model.Document, error) {
	return findOne[model.Document](ctx, r.st, model.TableDocuments, "code", code)
}

func (r *documentRepo) List(ctx context.Context) ([]model.Document, error) {
	var docs []model.Document
	err := r.st.Fetch(ctx, model.TableDocuments, store.Query{
		Order: []store.Order{{Field: "created_at", Desc: true}},
		Joins: documentJoins,
	}, &docs)
	return docs, err
}

func (r *documentRepo) Update(ctx context.Context, doc *model.Document) error {
	return r.st.Update(ctx, model.TableDocuments, doc.ID, map[string]any{
		"code":            doc.Code,
		"title":           doc.Title,
		"version":         doc.Version,
		"issue_date":      doc.IssueDate,
		"expiry_date":     doc.ExpiryDate,
		"status":          doc.Status,
		"note":            doc.Note,
		"link":            doc.Link,
		"category_id":     doc.CategoryID,
		"issuing_user_id": doc.IssuingUserID,
	})
}

func (r *documentRepo) UpdateStatus(ctx context.Context, id string, status model.Status) error {
	return r.st.Update(ctx, model.TableDocuments, id, map[string]any{"status": status})
}

func (r *documentRepo) Delete(ctx context.Context, id string) error {
	return r.st.Delete(ctx, model.TableDocuments, id)
}

func (r *documentRepo) ReplaceStandards(ctx context.Context, documentID string, standardIDs []string) error {
	if err := r.st.DeleteWhere(ctx, model.TableDocumentStandards, store.Eq("document_id", documentID)); err != nil {
		return err
	}
	if len(standardIDs) == 0 {
		return nil
	}
	links := make([]model.DocumentStandard, len(standardIDs))
	for i, sid := range standardIDs {
		links[i] = model.DocumentStandard{DocumentID: documentID, StandardID: sid}
	}
	return r.st.Insert(ctx, model.TableDocumentStandards, &links)
}
