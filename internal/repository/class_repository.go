package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iliyamo/classroom-layout/internal/model"
	"github.com/iliyamo/classroom-layout/internal/store"
)

// classKeyPrefix namespaces per-class records in the key-value store.
// The full record for class ABC123 lives under "class:ABC123".
const classKeyPrefix = "class:"

// classIndexKey holds the list of known class codes so the dashboard can
// enumerate classes without a key scan.
const classIndexKey = "classes"

// ClassRepo persists class records through the injected Store. All
// methods read the full record, mutate it and write it back; the store
// is last-write-wins, concurrent editors on one class are out of scope.
type ClassRepo struct {
	store store.Store
}

// NewClassRepo constructs a ClassRepo over the given store.
func NewClassRepo(st store.Store) *ClassRepo {
	return &ClassRepo{store: st}
}

func classKey(code string) string {
	return classKeyPrefix + strings.ToUpper(strings.TrimSpace(code))
}

// Get loads the class record for the given code. Returns
// ErrClassNotFound when the code is unregistered.
func (r *ClassRepo) Get(ctx context.Context, code string) (*model.Class, error) {
	raw, ok, err := r.store.Get(ctx, classKey(code))
	if err != nil {
		return nil, fmt.Errorf("load class: %w", err)
	}
	if !ok {
		return nil, ErrClassNotFound
	}
	var c model.Class
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode class record: %w", err)
	}
	return &c, nil
}

// put writes the class record back and makes sure its code is in the
// index.
func (r *ClassRepo) put(ctx context.Context, c *model.Class) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode class record: %w", err)
	}
	if err := r.store.Set(ctx, classKey(c.Code), raw); err != nil {
		return fmt.Errorf("store class: %w", err)
	}
	return r.index(ctx, c.Code)
}

// index adds a code to the class index if it is not already listed.
func (r *ClassRepo) index(ctx context.Context, code string) error {
	codes, err := r.Codes(ctx)
	if err != nil {
		return err
	}
	for _, c := range codes {
		if c == code {
			return nil
		}
	}
	codes = append(codes, code)
	raw, err := json.Marshal(codes)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, classIndexKey, raw)
}

// Codes returns every registered class code.
func (r *ClassRepo) Codes(ctx context.Context) ([]string, error) {
	raw, ok, err := r.store.Get(ctx, classIndexKey)
	if err != nil {
		return nil, fmt.Errorf("load class index: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var codes []string
	if err := json.Unmarshal(raw, &codes); err != nil {
		return nil, fmt.Errorf("decode class index: %w", err)
	}
	return codes, nil
}

// List loads every registered class record.
func (r *ClassRepo) List(ctx context.Context) ([]*model.Class, error) {
	codes, err := r.Codes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Class, 0, len(codes))
	for _, code := range codes {
		c, err := r.Get(ctx, code)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Create stores a new, empty class under the given code. Returns
// ErrClassExists when the code is already taken so the caller can retry
// with a fresh one.
func (r *ClassRepo) Create(ctx context.Context, code, name string) (*model.Class, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if _, ok, err := r.store.Get(ctx, classKey(code)); err != nil {
		return nil, fmt.Errorf("check class: %w", err)
	} else if ok {
		return nil, ErrClassExists
	}
	c := &model.Class{
		Code:     code,
		Name:     strings.TrimSpace(name),
		Students: []model.Student{},
		Layouts:  []model.Layout{},
	}
	if err := r.put(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// AppendLayout appends a saved layout to the class's layout sequence.
// Layouts are immutable once stored; saving never replaces an earlier
// one.
func (r *ClassRepo) AppendLayout(ctx context.Context, code string, layout model.Layout) (*model.Class, error) {
	c, err := r.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	c.Layouts = append(c.Layouts, layout)
	if err := r.put(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpsertStudent adds a roster entry or, when a student with the same
// name already submitted, replaces that entry's preferences and comments
// instead of double-counting the student.
func (r *ClassRepo) UpsertStudent(ctx context.Context, code string, student model.Student) (*model.Class, error) {
	c, err := r.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	replaced := false
	for i := range c.Students {
		if c.Students[i].Name == student.Name {
			c.Students[i] = student
			replaced = true
			break
		}
	}
	if !replaced {
		c.Students = append(c.Students, student)
	}
	if err := r.put(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveStudent drops the named student from the roster. Returns
// ErrStudentNotFound when no entry matches.
func (r *ClassRepo) RemoveStudent(ctx context.Context, code, name string) (*model.Class, error) {
	c, err := r.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	kept := c.Students[:0]
	found := false
	for _, s := range c.Students {
		if s.Name == name {
			found = true
			continue
		}
		kept = append(kept, s)
	}
	if !found {
		return nil, ErrStudentNotFound
	}
	c.Students = kept
	if err := r.put(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemovePreference deletes one seating preference, by position, from the
// named student's submission.
func (r *ClassRepo) RemovePreference(ctx context.Context, code, name string, index int) (*model.Class, error) {
	c, err := r.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	for i := range c.Students {
		if c.Students[i].Name != name {
			continue
		}
		prefs := c.Students[i].Preferences
		if index < 0 || index >= len(prefs) {
			return nil, ErrPreferenceNotFound
		}
		c.Students[i].Preferences = append(prefs[:index], prefs[index+1:]...)
		if err := r.put(ctx, c); err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, ErrStudentNotFound
}
