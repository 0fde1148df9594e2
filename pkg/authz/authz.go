// Package authz 基于 Cedar 策略的接口授权
package authz

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/cedar-policy/cedar-go"
)

//go:embed policies/registry.cedar
var policyContent []byte

// 动作
const (
	ActionRead    = "read"
	ActionWrite   = "write"
	ActionDelete  = "delete"
	ActionApprove = "approve"
	ActionCancel  = "cancel"
	ActionExport  = "export"
)

const (
	userType     = "Registry::User"
	actionType   = "Registry::Action"
	resourceType = "Registry::Resource"
)

// Authorizer 持有解析后的策略集，可并发使用
type Authorizer struct {
	policySet *cedar.PolicySet
}

// NewAuthorizer 加载内置策略
func NewAuthorizer() (*Authorizer, error) {
	return NewAuthorizerFromBytes("registry.cedar", policyContent)
}

// NewAuthorizerFromBytes 从指定策略文本创建
func NewAuthorizerFromBytes(name string, policies []byte) (*Authorizer, error) {
	ps, err := cedar.NewPolicySetFromBytes(name, policies)
	if err != nil {
		return nil, fmt.Errorf("解析授权策略失败: %w", err)
	}
	return &Authorizer{policySet: ps}, nil
}

// IsAuthorized 判断角色为 role 的用户能否对 resource（资源集合名，如 "documents"）执行 action
func (a *Authorizer) IsAuthorized(userID, role, action, resource string) (bool, error) {
	entitiesJSON := []map[string]interface{}{
		{
			"uid":     map[string]string{"type": userType, "id": userID},
			"attrs":   map[string]interface{}{"role": role},
			"parents": []interface{}{},
		},
	}
	raw, err := json.Marshal(entitiesJSON)
	if err != nil {
		return false, fmt.Errorf("构造授权实体失败: %w", err)
	}
	var entities cedar.EntityMap
	if err := json.Unmarshal(raw, &entities); err != nil {
		return false, fmt.Errorf("构造授权实体失败: %w", err)
	}

	req := cedar.Request{
		Principal: cedar.NewEntityUID(cedar.EntityType(userType), cedar.String(userID)),
		Action:    cedar.NewEntityUID(cedar.EntityType(actionType), cedar.String(action)),
		Resource:  cedar.NewEntityUID(cedar.EntityType(resourceType), cedar.String(resource)),
		Context:   cedar.NewRecord(cedar.RecordMap{}),
	}

	decision, _ := a.policySet.IsAuthorized(entities, req)
	return decision == cedar.Allow, nil
}
