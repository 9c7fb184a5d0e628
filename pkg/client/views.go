package client

import (
	"context"
	"errors"
	"sync"
)

// ListView holds the last fetched page of a resource. Mutations made through
// it or through a bound Form reload it.
type ListView[T, In any] struct {
	res  *Resource[T, In]
	id   func(T) int64
	mu   sync.RWMutex
	rows []T
	err  error
}

func NewListView[T, In any](res *Resource[T, In], id func(T) int64) *ListView[T, In] {
	return &ListView[T, In]{res: res, id: id}
}

// Load fetches the collection. A failure keeps the previous rows and is
// also exposed through Err.
func (v *ListView[T, In]) Load(ctx context.Context) error {
	rows, err := v.res.List(ctx)
	v.mu.Lock()
	defer v.mu.Unlock()
	v.err = err
	if err == nil {
		v.rows = rows
	}
	return err
}

func (v *ListView[T, In]) Reload(ctx context.Context) error { return v.Load(ctx) }

func (v *ListView[T, In]) Items() []T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]T, len(v.rows))
	copy(out, v.rows)
	return out
}

func (v *ListView[T, In]) Err() error {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.err
}

// Delete removes the row with the given id and reloads on success.
func (v *ListView[T, In]) Delete(ctx context.Context, id int64) error {
	if err := v.res.Delete(ctx, id); err != nil {
		v.mu.Lock()
		v.err = err
		v.mu.Unlock()
		return err
	}
	return v.Reload(ctx)
}

// Find returns the loaded row with the given id.
func (v *ListView[T, In]) Find(id int64) (T, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	for _, r := range v.rows {
		if v.id(r) == id {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// Form creates a record, or edits one when built from an existing record.
type Form[T, In any] struct {
	res  *Resource[T, In]
	list *ListView[T, In]
	id   int64

	violations *APIError
	err        error
}

// NewForm builds a create form when id is 0 and an edit form otherwise.
// list may be nil.
func NewForm[T, In any](res *Resource[T, In], id int64, list *ListView[T, In]) *Form[T, In] {
	return &Form[T, In]{res: res, id: id, list: list}
}

// EditForm builds an edit form for a row already loaded in list.
func EditForm[T, In any](list *ListView[T, In], row T) *Form[T, In] {
	return NewForm(list.res, list.id(row), list)
}

func (f *Form[T, In]) Editing() bool { return f.id != 0 }

// Submit posts in create mode and puts in edit mode. On a 400 with a
// violation list the messages become available through FieldError.
func (f *Form[T, In]) Submit(ctx context.Context, in In) (T, error) {
	f.violations, f.err = nil, nil

	var (
		out T
		err error
	)
	if f.Editing() {
		out, err = f.res.Update(ctx, f.id, in)
	} else {
		out, err = f.res.Create(ctx, in)
	}
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && len(apiErr.Violations) > 0 {
			f.violations = apiErr
		} else {
			f.err = err
		}
		return out, err
	}
	if f.list != nil {
		if err := f.list.Reload(ctx); err != nil {
			return out, err
		}
	}
	return out, nil
}

// FieldError is the message for one input, "" when it passed.
func (f *Form[T, In]) FieldError(field string) string {
	if f.violations == nil {
		return ""
	}
	return f.violations.FieldError(field)
}

// Err is the last failure that is not tied to a field.
func (f *Form[T, In]) Err() error { return f.err }
