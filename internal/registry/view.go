package registry

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

var (
	ErrInvalidTransition = errors.New("非法的视图状态迁移")
	ErrUnknownGeneration = errors.New("未知的请求批次")
	ErrNotReady          = errors.New("视图尚未就绪")
)

// Phase 视图阶段
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
	PhaseError   Phase = "error"
)

// View 单个表格视图的状态：Idle → Loading → Ready | Error。
// 所有迁移均返回新值，不修改接收者。
//
// 并发的多次加载不做合并或取消：每次 BeginLoad 递增 Generation，
// 任一已发出批次的响应都会被应用，最后到达者生效。Stale 标记该响应是否来自旧批次。
type View[T any] struct {
	Phase      Phase
	Rows       []T
	Err        error
	Controls   Controls
	Generation uint64
	Stale      bool
}

// NewView 创建空闲视图
func NewView[T any](ctl Controls) View[T] {
	return View[T]{Phase: PhaseIdle, Controls: ctl}
}

// BeginLoad 首次加载或刷新
func (v View[T]) BeginLoad() View[T] {
	v.Phase = PhaseLoading
	v.Generation++
	return v
}

// Loaded 应用 gen 批次的响应；列表被复制为视图私有副本
func (v View[T]) Loaded(gen uint64, rows []T) (View[T], error) {
	if err := v.checkResponse(gen); err != nil {
		return v, err
	}
	v.Phase = PhaseReady
	v.Rows = slices.Clone(rows)
	v.Err = nil
	v.Stale = gen != v.Generation
	return v, nil
}

// Failed 应用 gen 批次的失败
func (v View[T]) Failed(gen uint64, err error) (View[T], error) {
	if cerr := v.checkResponse(gen); cerr != nil {
		return v, cerr
	}
	v.Phase = PhaseError
	v.Rows = nil
	v.Err = err
	v.Stale = gen != v.Generation
	return v, nil
}

func (v View[T]) checkResponse(gen uint64) error {
	if v.Phase == PhaseIdle {
		return fmt.Errorf("%w: idle 状态下不接受响应", ErrInvalidTransition)
	}
	if gen == 0 || gen > v.Generation {
		return fmt.Errorf("%w: %d", ErrUnknownGeneration, gen)
	}
	return nil
}

// Update 修改控件状态；就绪时重算同步进行，不经过 Loading
func (v View[T]) Update(change func(Controls) Controls) View[T] {
	v.Controls = change(v.Controls)
	return v
}

// Page 以当前控件状态计算当前页
func (v View[T]) Page(cfg TableConfig[T]) (Page[T], error) {
	if v.Phase != PhaseReady {
		return Page[T]{}, fmt.Errorf("%w: %s", ErrNotReady, v.Phase)
	}
	return cfg.Run(v.Rows, v.Controls)
}

// Load 完成一次 Loading 周期：发出请求并应用其结果
func Load[T any](ctx context.Context, v View[T], fetch func(context.Context) ([]T, error)) View[T] {
	v = v.BeginLoad()
	gen := v.Generation
	rows, err := fetch(ctx)
	if err != nil {
		v, _ = v.Failed(gen, err)
		return v
	}
	v, _ = v.Loaded(gen, rows)
	return v
}
