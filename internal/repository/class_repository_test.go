package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iliyamo/classroom-layout/internal/model"
	"github.com/iliyamo/classroom-layout/internal/store"
)

func newTestRepo() *ClassRepo {
	return NewClassRepo(store.NewMemory())
}

func mustCreate(t *testing.T, r *ClassRepo, code, name string) *model.Class {
	t.Helper()
	c, err := r.Create(context.Background(), code, name)
	if err != nil {
		t.Fatalf("Create(%s): %v", code, err)
	}
	return c
}

func TestCreateAndGet(t *testing.T) {
	r := newTestRepo()
	mustCreate(t, r, "ABC234", "Homeroom 3B")

	c, err := r.Get(context.Background(), "ABC234")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if c.Name != "Homeroom 3B" || c.Code != "ABC234" {
		t.Errorf("got %q/%q, want Homeroom 3B/ABC234", c.Name, c.Code)
	}
	if len(c.Students) != 0 || len(c.Layouts) != 0 {
		t.Errorf("new class not empty: %d students, %d layouts", len(c.Students), len(c.Layouts))
	}
}

func TestGetIsCaseInsensitiveOnCode(t *testing.T) {
	r := newTestRepo()
	mustCreate(t, r, "ABC234", "Homeroom 3B")
	if _, err := r.Get(context.Background(), " abc234 "); err != nil {
		t.Errorf("Get with lowercase/padded code: %v", err)
	}
}

func TestGetUnknownCode(t *testing.T) {
	r := newTestRepo()
	if _, err := r.Get(context.Background(), "ZZZZZZ"); !errors.Is(err, ErrClassNotFound) {
		t.Errorf("error = %v, want ErrClassNotFound", err)
	}
}

func TestCreateDuplicateCode(t *testing.T) {
	r := newTestRepo()
	mustCreate(t, r, "ABC234", "first")
	if _, err := r.Create(context.Background(), "abc234", "second"); !errors.Is(err, ErrClassExists) {
		t.Errorf("error = %v, want ErrClassExists", err)
	}
}

func TestListInCreationOrder(t *testing.T) {
	r := newTestRepo()
	mustCreate(t, r, "AAA234", "first")
	mustCreate(t, r, "BBB234", "second")

	classes, err := r.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(classes) != 2 {
		t.Fatalf("List returned %d classes, want 2", len(classes))
	}
	if classes[0].Code != "AAA234" || classes[1].Code != "BBB234" {
		t.Errorf("order = %s, %s; want AAA234, BBB234", classes[0].Code, classes[1].Code)
	}
}

func TestAppendLayoutIsAppendOnly(t *testing.T) {
	r := newTestRepo()
	mustCreate(t, r, "ABC234", "Homeroom")
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		c, err := r.AppendLayout(ctx, "ABC234", model.Layout{
			Data:      []byte(`{"version":1,"tables":[]}`),
			CreatedAt: time.Now().UTC(),
			DeskCount: i,
		})
		if err != nil {
			t.Fatalf("AppendLayout %d: %v", i, err)
		}
		if len(c.Layouts) != i {
			t.Errorf("after save %d: %d layouts", i, len(c.Layouts))
		}
	}
	c, _ := r.Get(ctx, "ABC234")
	if c.Layouts[0].DeskCount != 1 || c.Layouts[2].DeskCount != 3 {
		t.Errorf("layout order lost: %d, %d", c.Layouts[0].DeskCount, c.Layouts[2].DeskCount)
	}
}

func TestUpsertStudentReplacesByName(t *testing.T) {
	r := newTestRepo()
	mustCreate(t, r, "ABC234", "Homeroom")
	ctx := context.Background()

	if _, err := r.UpsertStudent(ctx, "ABC234", model.Student{Name: "Ada", Preferences: []string{"Ben"}}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	c, err := r.UpsertStudent(ctx, "ABC234", model.Student{Name: "Ada", Preferences: []string{"Cleo", "Dan"}})
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if len(c.Students) != 1 {
		t.Fatalf("roster has %d entries, want 1", len(c.Students))
	}
	if got := c.Students[0].Preferences; len(got) != 2 || got[0] != "Cleo" {
		t.Errorf("preferences = %v, want [Cleo Dan]", got)
	}
}

func TestRemoveStudent(t *testing.T) {
	r := newTestRepo()
	mustCreate(t, r, "ABC234", "Homeroom")
	ctx := context.Background()
	r.UpsertStudent(ctx, "ABC234", model.Student{Name: "Ada"})
	r.UpsertStudent(ctx, "ABC234", model.Student{Name: "Ben"})

	c, err := r.RemoveStudent(ctx, "ABC234", "Ada")
	if err != nil {
		t.Fatalf("RemoveStudent: %v", err)
	}
	if len(c.Students) != 1 || c.Students[0].Name != "Ben" {
		t.Errorf("roster = %v, want just Ben", c.Students)
	}
	if _, err := r.RemoveStudent(ctx, "ABC234", "Ada"); !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("second remove error = %v, want ErrStudentNotFound", err)
	}
}

func TestRemovePreference(t *testing.T) {
	r := newTestRepo()
	mustCreate(t, r, "ABC234", "Homeroom")
	ctx := context.Background()
	r.UpsertStudent(ctx, "ABC234", model.Student{Name: "Ada", Preferences: []string{"Ben", "Cleo", "Dan"}})

	c, err := r.RemovePreference(ctx, "ABC234", "Ada", 1)
	if err != nil {
		t.Fatalf("RemovePreference: %v", err)
	}
	got := c.Students[0].Preferences
	if len(got) != 2 || got[0] != "Ben" || got[1] != "Dan" {
		t.Errorf("preferences = %v, want [Ben Dan]", got)
	}

	tests := []struct {
		name    string
		student string
		index   int
		wantErr error
	}{
		{"index out of range", "Ada", 5, ErrPreferenceNotFound},
		{"negative index", "Ada", -1, ErrPreferenceNotFound},
		{"unknown student", "Zoe", 0, ErrStudentNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.RemovePreference(ctx, "ABC234", tt.student, tt.index); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
