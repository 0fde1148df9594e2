package model

import "testing"

func TestStatus_Valid(t *testing.T) {
	for _, s := range Statuses {
		if !s.Valid() {
			t.Errorf("%s 应为合法状态", s)
		}
	}
	for _, s := range []Status{"", "Active", "archived"} {
		if s.Valid() {
			t.Errorf("%q 不应为合法状态", s)
		}
	}
}

func TestScheduleStatusAndRole_Valid(t *testing.T) {
	if !SchedulePlanned.Valid() || ScheduleStatus("done").Valid() {
		t.Error("ScheduleStatus.Valid 判断错误")
	}
	if !RoleApprover.Valid() || Role("root").Valid() {
		t.Error("Role.Valid 判断错误")
	}
}

func TestDocument_RelationNames(t *testing.T) {
	d := &Document{}
	if d.CategoryName() != "" || d.IssuerName() != "" {
		t.Error("未加载关联时应返回空字符串")
	}
	d.Category = &Category{Name: "Quy trình"}
	d.IssuingUser = &User{FullName: "Trần Thị B"}
	if d.CategoryName() != "Quy trình" || d.IssuerName() != "Trần Thị B" {
		t.Error("关联名称不符")
	}
}
