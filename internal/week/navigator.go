package week

import (
	"context"
	"sync"
	"time"
)

// ChangeHook вызывается после каждого изменения якоря недели
type ChangeHook func(ctx context.Context, anchor time.Time) error

// Navigator хранит якорь отображаемой недели и единообразно его двигает.
// Оба календаря используют один и тот же навигатор, отличаясь только хуком.
type Navigator struct {
	mu       sync.Mutex
	anchor   time.Time
	now      func() time.Time
	onChange ChangeHook
}

// NewNavigator создаёт навигатор, установленный на текущую неделю
func NewNavigator(now func() time.Time, onChange ChangeHook) *Navigator {
	if now == nil {
		now = time.Now
	}
	return &Navigator{
		anchor:   StartOf(now()),
		now:      now,
		onChange: onChange,
	}
}

// Anchor возвращает понедельник отображаемой недели
func (n *Navigator) Anchor() time.Time {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.anchor
}

// Previous переходит на неделю назад
func (n *Navigator) Previous(ctx context.Context) error {
	return n.set(ctx, func(anchor time.Time) time.Time { return Shift(anchor, -1) })
}

// Next переходит на неделю вперёд
func (n *Navigator) Next(ctx context.Context) error {
	return n.set(ctx, func(anchor time.Time) time.Time { return Shift(anchor, 1) })
}

// Today возвращает окно на текущую неделю
func (n *Navigator) Today(ctx context.Context) error {
	return n.set(ctx, func(time.Time) time.Time { return StartOf(n.now()) })
}

// GoTo устанавливает неделю, содержащую date
func (n *Navigator) GoTo(ctx context.Context, date time.Time) error {
	return n.set(ctx, func(time.Time) time.Time { return StartOf(date) })
}

func (n *Navigator) set(ctx context.Context, next func(time.Time) time.Time) error {
	n.mu.Lock()
	n.anchor = next(n.anchor)
	anchor := n.anchor
	n.mu.Unlock()

	if n.onChange == nil {
		return nil
	}
	return n.onChange(ctx, anchor)
}
