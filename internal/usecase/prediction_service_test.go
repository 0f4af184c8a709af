package usecase

import (
	"errors"
	"testing"

	"github.com/nutriscan/backend/internal/domain"
)

func TestPredictionService_SaveAndList(t *testing.T) {
	svc := NewPredictionService()

	first := svc.Save("user-1", "pizza", 0.93, "a.jpg")
	second := svc.Save("user-1", "salad", 0.71, "b.jpg")
	svc.Save("user-2", "ramen", 0.88, "c.jpg")

	if first.ID == "" || first.ID == second.ID {
		t.Fatalf("ids not unique: %q vs %q", first.ID, second.ID)
	}
	if first.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	got, err := svc.ListByUser("user-1")
	if err != nil {
		t.Fatalf("ListByUser error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d predictions, want 2", len(got))
	}
	if got[0].FoodClass != "pizza" || got[1].FoodClass != "salad" {
		t.Errorf("creation order not preserved: %q, %q", got[0].FoodClass, got[1].FoodClass)
	}
}

func TestPredictionService_ListEmpty(t *testing.T) {
	svc := NewPredictionService()

	_, err := svc.ListByUser("nobody")
	if !errors.Is(err, domain.ErrPredictionNotFound) {
		t.Errorf("err = %v, want ErrPredictionNotFound", err)
	}
}

func TestPredictionService_GetOwnerChecked(t *testing.T) {
	svc := NewPredictionService()
	p := svc.Save("user-1", "pizza", 0.93, "a.jpg")

	got, err := svc.Get("user-1", p.ID)
	if err != nil {
		t.Fatalf("Get error = %v", err)
	}
	if got.FoodClass != "pizza" {
		t.Errorf("FoodClass = %q", got.FoodClass)
	}

	if _, err := svc.Get("user-2", p.ID); !errors.Is(err, domain.ErrNotOwner) {
		t.Errorf("cross-user Get err = %v, want ErrNotOwner", err)
	}
	if _, err := svc.Get("user-1", "missing"); !errors.Is(err, domain.ErrPredictionNotFound) {
		t.Errorf("missing Get err = %v, want ErrPredictionNotFound", err)
	}
}

func TestPredictionService_Delete(t *testing.T) {
	svc := NewPredictionService()
	p := svc.Save("user-1", "pizza", 0.93, "a.jpg")

	if err := svc.Delete("user-2", p.ID); !errors.Is(err, domain.ErrNotOwner) {
		t.Errorf("cross-user Delete err = %v, want ErrNotOwner", err)
	}
	if err := svc.Delete("user-1", p.ID); err != nil {
		t.Fatalf("Delete error = %v", err)
	}
	if err := svc.Delete("user-1", p.ID); !errors.Is(err, domain.ErrPredictionNotFound) {
		t.Errorf("second Delete err = %v, want ErrPredictionNotFound", err)
	}
	if _, err := svc.ListByUser("user-1"); !errors.Is(err, domain.ErrPredictionNotFound) {
		t.Errorf("list after delete err = %v, want ErrPredictionNotFound", err)
	}
}
