// Package seed 将 YAML 示例数据写入注册表，供本地开发与演示使用。
// 数据经由 Service 层写入，与 HTTP 接口走同一套校验。
package seed

import (
	"context"
	"embed"
	"fmt"
	"io"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/dohuuduy/quanlytailieu-sub000/internal/dto"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/service"
)

//go:embed fixtures/*.yaml
var fixtureFiles embed.FS

// Fixtures 示例数据集，引用关系使用 key 而非数据库 ID
type Fixtures struct {
	Users      []UserFixture     `yaml:"users"`
	Categories []NamedFixture    `yaml:"categories"`
	Standards  []NamedFixture    `yaml:"standards"`
	Documents  []DocumentFixture `yaml:"documents"`
	Schedules  []ScheduleFixture `yaml:"schedules"`
}

// UserFixture 用户
type UserFixture struct {
	Key      string `yaml:"key"`
	FullName string `yaml:"full_name"`
	Email    string `yaml:"email"`
	Role     string `yaml:"role"`
}

// NamedFixture 类别或标准
type NamedFixture struct {
	Key         string  `yaml:"key"`
	Name        string  `yaml:"name"`
	Description *string `yaml:"description"`
	Status      string  `yaml:"status"`
}

// DocumentFixture 文档；Approve 为 true 时创建后再执行一次审批
type DocumentFixture struct {
	Code       string   `yaml:"code"`
	Title      string   `yaml:"title"`
	Version    string   `yaml:"version"`
	IssueDate  string   `yaml:"issue_date"`
	ExpiryDate *string  `yaml:"expiry_date"`
	Status     string   `yaml:"status"`
	Note       *string  `yaml:"note"`
	Link       *string  `yaml:"link"`
	Category   string   `yaml:"category"`
	Issuer     string   `yaml:"issuer"`
	Standards  []string `yaml:"standards"`
	Approve    bool     `yaml:"approve"`
}

// ScheduleFixture 评审计划
type ScheduleFixture struct {
	Standard     string  `yaml:"standard"`
	PlannedDate  string  `yaml:"planned_date"`
	ActualStart  *string `yaml:"actual_start"`
	ActualEnd    *string `yaml:"actual_end"`
	Auditor      *string `yaml:"auditor"`
	Organization *string `yaml:"organization"`
	Status       string  `yaml:"status"`
}

// Default 读取内置示例数据
func Default() (*Fixtures, error) {
	f, err := fixtureFiles.Open("fixtures/default.yaml")
	if err != nil {
		return nil, fmt.Errorf("读取内置示例数据失败: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse 解析 YAML 示例数据并检查 key 引用
func Parse(r io.Reader) (*Fixtures, error) {
	var fx Fixtures
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fx); err != nil {
		return nil, fmt.Errorf("解析示例数据失败: %w", err)
	}
	if err := fx.Validate(); err != nil {
		return nil, err
	}
	return &fx, nil
}

// Validate 检查 key 唯一且引用均可解析
func (fx *Fixtures) Validate() error {
	users, err := keySet("用户", userKeys(fx.Users))
	if err != nil {
		return err
	}
	cats, err := keySet("类别", namedKeys(fx.Categories))
	if err != nil {
		return err
	}
	stds, err := keySet("标准", namedKeys(fx.Standards))
	if err != nil {
		return err
	}

	for _, d := range fx.Documents {
		if !cats[d.Category] {
			return fmt.Errorf("文档 %s 引用了未知类别 %q", d.Code, d.Category)
		}
		if !users[d.Issuer] {
			return fmt.Errorf("文档 %s 引用了未知签发人 %q", d.Code, d.Issuer)
		}
		for _, k := range d.Standards {
			if !stds[k] {
				return fmt.Errorf("文档 %s 引用了未知标准 %q", d.Code, k)
			}
		}
	}
	for i, s := range fx.Schedules {
		if !stds[s.Standard] {
			return fmt.Errorf("第 %d 条评审计划引用了未知标准 %q", i+1, s.Standard)
		}
	}
	return nil
}

func keySet(kind string, keys []string) (map[string]bool, error) {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		if k == "" {
			return nil, fmt.Errorf("%s缺少 key", kind)
		}
		if set[k] {
			return nil, fmt.Errorf("%s key 重复: %s", kind, k)
		}
		set[k] = true
	}
	return set, nil
}

func userKeys(us []UserFixture) []string {
	out := make([]string, len(us))
	for i, u := range us {
		out[i] = u.Key
	}
	return out
}

func namedKeys(ns []NamedFixture) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.Key
	}
	return out
}

// Result 写入后的 key → ID 映射
type Result struct {
	Users      map[string]*dto.UserResponse
	Categories map[string]string
	Standards  map[string]string
	Documents  map[string]string
}

// Apply 按依赖顺序写入示例数据：用户、类别、标准、文档、评审计划
func Apply(ctx context.Context, svc *service.Service, fx *Fixtures, logger *zap.Logger) (*Result, error) {
	res := &Result{
		Users:      make(map[string]*dto.UserResponse, len(fx.Users)),
		Categories: make(map[string]string, len(fx.Categories)),
		Standards:  make(map[string]string, len(fx.Standards)),
		Documents:  make(map[string]string, len(fx.Documents)),
	}

	for _, u := range fx.Users {
		out, err := svc.User.Create(ctx, &dto.CreateUserRequest{FullName: u.FullName, Email: u.Email, Role: u.Role})
		if err != nil {
			return nil, fmt.Errorf("写入用户 %s 失败: %w", u.Key, err)
		}
		res.Users[u.Key] = out
	}

	for _, c := range fx.Categories {
		out, err := svc.Category.Create(ctx, &dto.CreateCategoryRequest{Name: c.Name, Description: c.Description, Status: c.Status})
		if err != nil {
			return nil, fmt.Errorf("写入类别 %s 失败: %w", c.Key, err)
		}
		res.Categories[c.Key] = out.ID
	}

	for _, s := range fx.Standards {
		out, err := svc.Standard.Create(ctx, &dto.CreateStandardRequest{Name: s.Name, Description: s.Description, Status: s.Status})
		if err != nil {
			return nil, fmt.Errorf("写入标准 %s 失败: %w", s.Key, err)
		}
		res.Standards[s.Key] = out.ID
	}

	for _, d := range fx.Documents {
		issuer := res.Users[d.Issuer]
		stdIDs := make([]string, 0, len(d.Standards))
		for _, k := range d.Standards {
			stdIDs = append(stdIDs, res.Standards[k])
		}
		out, err := svc.Document.Create(ctx, &dto.CreateDocumentRequest{
			Code:          d.Code,
			Title:         d.Title,
			Version:       d.Version,
			IssueDate:     d.IssueDate,
			ExpiryDate:    d.ExpiryDate,
			Status:        d.Status,
			Note:          d.Note,
			Link:          d.Link,
			CategoryID:    res.Categories[d.Category],
			IssuingUserID: issuer.ID,
			StandardIDs:   stdIDs,
		}, issuer.ID)
		if err != nil {
			return nil, fmt.Errorf("写入文档 %s 失败: %w", d.Code, err)
		}
		res.Documents[d.Code] = out.ID

		if d.Approve {
			if _, err := svc.Document.Approve(ctx, out.ID, &dto.TransitionRequest{}, issuer.ID); err != nil {
				return nil, fmt.Errorf("审批文档 %s 失败: %w", d.Code, err)
			}
		}
	}

	for i, s := range fx.Schedules {
		if _, err := svc.Schedule.Create(ctx, &dto.CreateScheduleRequest{
			StandardID:   res.Standards[s.Standard],
			PlannedDate:  s.PlannedDate,
			ActualStart:  s.ActualStart,
			ActualEnd:    s.ActualEnd,
			Auditor:      s.Auditor,
			Organization: s.Organization,
			Status:       s.Status,
		}); err != nil {
			return nil, fmt.Errorf("写入第 %d 条评审计划失败: %w", i+1, err)
		}
	}

	logger.Info("示例数据写入完成",
		zap.Int("users", len(res.Users)),
		zap.Int("categories", len(res.Categories)),
		zap.Int("standards", len(res.Standards)),
		zap.Int("documents", len(res.Documents)),
		zap.Int("schedules", len(fx.Schedules)),
	)
	return res, nil
}
